package integrators

import "github.com/mohammed-7/habitat-sim/internal/dynamo"

type RK4 struct {
	stage dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

// offset writes x + h*k into the scratch stage.
func (r *RK4) offset(x, k dynamo.State, h float64) dynamo.State {
	if len(r.stage) != len(x) {
		r.stage = make(dynamo.State, len(x))
	}
	for i := range x {
		r.stage[i] = x[i] + h*k[i]
	}
	return r.stage
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	k1 := sys.Derive(x, t).Clone()
	k2 := sys.Derive(r.offset(x, k1, dt/2), t+dt/2).Clone()
	k3 := sys.Derive(r.offset(x, k2, dt/2), t+dt/2).Clone()
	k4 := sys.Derive(r.offset(x, k3, dt), t+dt)

	next := make(dynamo.State, len(x))
	for i := range x {
		next[i] = x[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return next
}
