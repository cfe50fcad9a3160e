package cluster

import "errors"

// Sentinel errors returned by the Engine.
var (
	// ErrProjectorRequired is returned when the projector is nil.
	ErrProjectorRequired = errors.New("projector is required")

	// ErrInvalidGridSize is returned when the configured grid size is not
	// a positive pixel count.
	ErrInvalidGridSize = errors.New("grid size must be positive")

	// ErrEngineClosed is returned when an operation is attempted on a
	// disposed engine. Disposal is terminal; the engine must not be
	// reused.
	ErrEngineClosed = errors.New("engine is closed")
)
