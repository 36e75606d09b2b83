package engine

import (
	"errors"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/history"
)

// Errors returned by field operations.
var (
	// ErrArenaExhausted indicates an edit needed more blocks than the field
	// capacity. The field is left as it was before the edit.
	ErrArenaExhausted = arena.ErrArenaExhausted

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrUnknownTemplate indicates a template name with no registered template.
	ErrUnknownTemplate = history.ErrUnknownTemplate

	// ErrSnapshotNotFound indicates a snapshot was not found.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrReadOnly indicates an operation was attempted on a read-only field.
	ErrReadOnly = errors.New("field is read-only")
)
