package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned by graph accessors for an id outside the
	// allocated range.
	ErrOutOfRange = errors.New("sim: scene graph id out of range")

	// ErrLoadFailed marks a scene that could not be loaded during
	// Reconfigure. The simulator is unusable afterwards.
	ErrLoadFailed = errors.New("sim: scene load failed")

	ErrNilConfig     = errors.New("sim: nil configuration")
	ErrUnknownSensor = errors.New("sim: unknown sensor")
)

// ConfigurationError reports a fatal failure to apply a configuration. It
// matches both ErrLoadFailed and its cause under errors.Is.
type ConfigurationError struct {
	Scene string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("sim: load scene %s: %v", e.Scene, e.Err)
}

func (e *ConfigurationError) Unwrap() []error { return []error{ErrLoadFailed, e.Err} }
