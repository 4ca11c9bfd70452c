package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation setup and persistence.
var (
	// ErrInvalidState indicates a state with NaN or Inf where a finite value is required.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidConfig indicates a configuration that cannot build an ensemble.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrCanceled indicates a headless run was interrupted.
	ErrCanceled = errors.New("dynamo: run canceled by context")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrRunNotFound indicates a stored run id with no data on disk.
	ErrRunNotFound = errors.New("dynamo: run not found")
)

// SimError wraps an error with the tick at which it was observed.
type SimError struct {
	Tick    int
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
