package timer

import "errors"

// Sentinel errors returned by the service and its store. Callers classify
// failures with errors.Is; anything else is a persistence failure.
var (
	// ErrNotFound indicates one or more referenced timer ids do not exist.
	ErrNotFound = errors.New("timer not found")

	// ErrInvalidDuration indicates a create request with a non-positive duration.
	ErrInvalidDuration = errors.New("duration must be a positive number of milliseconds")

	// ErrUnknownAction indicates an action name outside the supported set.
	ErrUnknownAction = errors.New("unknown action")
)
