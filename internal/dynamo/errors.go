package dynamo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates NaN or Inf in a state vector.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates a state whose length does not match the system.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// StepError wraps a failure with the body and world time it occurred at.
type StepError struct {
	ObjectID int
	Time     float64
	State    State
	Wrapped  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("object %d (t=%.4f): %v", e.ObjectID, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
