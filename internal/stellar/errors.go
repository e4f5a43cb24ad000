package stellar

import "errors"

// Domain errors for lifecycle operations.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("stellar: invalid configuration value")

	// ErrUnknownPreset indicates a preset name with no registered configuration.
	ErrUnknownPreset = errors.New("stellar: unknown preset")

	// ErrUnknownPhase indicates a name that matches no lifecycle phase.
	ErrUnknownPhase = errors.New("stellar: unknown phase name")

	// ErrRunNotFound indicates a recorded run ID missing from the data directory.
	ErrRunNotFound = errors.New("stellar: recorded run not found")

	// ErrEmptySeries indicates an analysis request over a series with no samples.
	ErrEmptySeries = errors.New("stellar: series has no samples")
)
