package integrators

import "github.com/mohammed-7/habitat-sim/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := sys.Derive(x, t)
	next := make(dynamo.State, len(x))
	for i := range x {
		next[i] = x[i] + dt*dx[i]
	}
	return next
}

// SemiImplicitEuler updates velocity first and moves with the new velocity.
// The state is split in half: positions, then velocities.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	half := len(x) / 2
	dx := sys.Derive(x, t)
	next := make(dynamo.State, len(x))
	for i := 0; i < half; i++ {
		next[half+i] = x[half+i] + dt*dx[half+i]
		next[i] = x[i] + dt*next[half+i]
	}
	return next
}
