package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mathfield/internal/engine/buffer"
)

// Operation represents a single undoable edit.
type Operation struct {
	ID          uuid.UUID
	Description string

	Before buffer.State // restored by undo
	After  buffer.State // restored by redo

	Timestamp time.Time
}

// NewOperation creates an operation with a fresh ID.
func NewOperation(description string, before, after buffer.State) *Operation {
	return &Operation{
		ID:          uuid.New(),
		Description: description,
		Before:      before,
		After:       after,
		Timestamp:   time.Now(),
	}
}

// BlocksDelta returns the change in tree size, in blocks.
func (op *Operation) BlocksDelta() int {
	return len(op.After.Blocks) - len(op.Before.Blocks)
}

// Info returns the displayable part of the operation.
func (op *Operation) Info() OperationInfo {
	return OperationInfo{
		ID:          op.ID,
		Description: op.Description,
		Timestamp:   op.Timestamp,
		BlocksDelta: op.BlocksDelta(),
	}
}

// OperationInfo provides read-only info about an operation.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	ID          uuid.UUID
	Description string
	Timestamp   time.Time
	BlocksDelta int // positive when the tree grew
}
