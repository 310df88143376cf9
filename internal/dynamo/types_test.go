package dynamo

import (
	"errors"
	"math"
	"testing"

	"cogentcore.org/core/math32"
)

func TestBodyStatePacking(t *testing.T) {
	s := BodyState(math32.Vec3(1, 2, 3), math32.Vec3(4, 5, 6))
	if len(s) != BodyDim {
		t.Fatalf("expected %d values, got %d", BodyDim, len(s))
	}
	if s.Position() != math32.Vec3(1, 2, 3) {
		t.Errorf("position mismatch: %v", s.Position())
	}
	if s.Velocity() != math32.Vec3(4, 5, 6) {
		t.Errorf("velocity mismatch: %v", s.Velocity())
	}
}

func TestStateIsValid(t *testing.T) {
	if !(State{0, 1}).IsValid() {
		t.Error("finite state should be valid")
	}
	if (State{0, math.NaN()}).IsValid() {
		t.Error("NaN state should be invalid")
	}
	if (State{math.Inf(1)}).IsValid() {
		t.Error("Inf state should be invalid")
	}
}

func TestConstantAcceleration(t *testing.T) {
	sys := ConstantAcceleration{Acc: math32.Vec3(0, -9.8, 0)}
	d := sys.Derive(BodyState(math32.Vector3{}, math32.Vec3(1, 0, 0)), 0)
	if d[0] != 1 || math.Abs(d[4]+9.8) > 1e-6 {
		t.Errorf("unexpected derivative %v", d)
	}
}

func TestStepErrorUnwrap(t *testing.T) {
	err := error(&StepError{ObjectID: 2, Time: 0.5, Wrapped: ErrInvalidState})
	if !errors.Is(err, ErrInvalidState) {
		t.Error("StepError should unwrap to its cause")
	}
	var se *StepError
	if !errors.As(err, &se) || se.ObjectID != 2 {
		t.Error("errors.As should recover the StepError")
	}
}
