package lua

import "errors"

// Errors returned by script operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrUnknownMacro is returned when running a macro that was never defined.
	ErrUnknownMacro = errors.New("unknown macro")

	// ErrUnknownDirection is returned for a move direction other than
	// left, right, up or down.
	ErrUnknownDirection = errors.New("unknown direction")
)
