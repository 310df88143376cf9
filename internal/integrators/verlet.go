package integrators

import "github.com/mohammed-7/habitat-sim/internal/dynamo"

// Verlet is velocity Verlet over a [positions, velocities] state.
type Verlet struct {
	probe dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n, half := len(x), len(x)/2
	if len(v.probe) != n {
		v.probe = make(dynamo.State, n)
	}

	a0 := sys.Derive(x, t)
	next := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		next[i] = x[i] + dt*x[half+i] + 0.5*dt*dt*a0[half+i]
		v.probe[i] = next[i]
		v.probe[half+i] = x[half+i]
	}

	a1 := sys.Derive(v.probe, t+dt)
	for i := 0; i < half; i++ {
		next[half+i] = x[half+i] + 0.5*dt*(a0[half+i]+a1[half+i])
	}
	return next
}

// Leapfrog is kick-drift-kick.
type Leapfrog struct {
	probe dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n, half := len(x), len(x)/2
	if len(l.probe) != n {
		l.probe = make(dynamo.State, n)
	}

	a0 := sys.Derive(x, t)
	for i := 0; i < half; i++ {
		vHalf := x[half+i] + 0.5*dt*a0[half+i]
		l.probe[half+i] = vHalf
		l.probe[i] = x[i] + dt*vHalf
	}

	a1 := sys.Derive(l.probe, t+dt)
	next := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		next[i] = l.probe[i]
		next[half+i] = l.probe[half+i] + 0.5*dt*a1[half+i]
	}
	return next
}
