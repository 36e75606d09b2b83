package buffer

import (
	"errors"

	"github.com/dshills/mathfield/internal/engine/arena"
)

// Errors returned by buffer operations.
var (
	// ErrInvalidState is returned when a restored state does not describe a
	// well formed layout tree with a cursor inside it.
	ErrInvalidState = errors.New("invalid buffer state")

	// ErrArenaExhausted is returned when an edit needs more blocks than the
	// buffer capacity. The buffer is left untouched.
	ErrArenaExhausted = arena.ErrArenaExhausted
)
