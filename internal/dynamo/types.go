package dynamo

import (
	"math"

	"cogentcore.org/core/math32"
)

// BodyDim is the length of a packed linear body state.
const BodyDim = 6

type State []float64

// BodyState packs a position and velocity.
func BodyState(pos, vel math32.Vector3) State {
	return State{
		float64(pos.X), float64(pos.Y), float64(pos.Z),
		float64(vel.X), float64(vel.Y), float64(vel.Z),
	}
}

func (s State) Position() math32.Vector3 {
	return math32.Vec3(float32(s[0]), float32(s[1]), float32(s[2]))
}

func (s State) Velocity() math32.Vector3 {
	return math32.Vec3(float32(s[3]), float32(s[4]), float32(s[5]))
}

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// ConstantAcceleration is the linear system of a body under a fixed
// acceleration over one substep.
type ConstantAcceleration struct {
	Acc math32.Vector3
}

func (c ConstantAcceleration) StateDim() int { return BodyDim }

func (c ConstantAcceleration) Derive(x State, t float64) State {
	return State{x[3], x[4], x[5], float64(c.Acc.X), float64(c.Acc.Y), float64(c.Acc.Z)}
}
