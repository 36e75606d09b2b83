package history

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrUnknownTemplate = errors.New("unknown template")
)

// DefaultMaxEntries is the undo depth used when none is given.
const DefaultMaxEntries = 1000

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Operation
	redoStack []*Operation

	// Grouping state
	grouping  bool
	groupName string
	groupOp   *Operation

	// Configuration
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Execute runs a command and records it when it changed the tree. A failed
// command leaves the buffer as it was before Execute.
func (h *History) Execute(cmd Command, buf *buffer.Buffer) error {
	before := buf.State()
	rev := buf.RevisionID()

	if err := cmd.Execute(buf); err != nil {
		if buf.RevisionID() != rev {
			if rerr := buf.Restore(before); rerr != nil {
				Log.WithFields(logrus.Fields{
					"command": cmd.Description(),
					"error":   rerr,
				}).Warn("rollback failed")
			}
		}
		return err
	}
	if buf.RevisionID() == rev {
		return nil
	}

	h.Push(NewOperation(cmd.Description(), before, buf.State()))
	return nil
}

// Push adds an operation to the undo stack.
// Clears the redo stack.
func (h *History) Push(op *Operation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		if h.groupOp == nil {
			h.groupOp = NewOperation(h.groupName, op.Before, op.After)
			return
		}
		h.groupOp.After = op.After
		return
	}

	h.pushLocked(op)
}

// pushLocked adds an operation without acquiring the lock.
func (h *History) pushLocked(op *Operation) {
	h.undoStack = append(h.undoStack, op)

	// Clear redo stack
	h.redoStack = nil

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo puts the buffer back in the state before the last operation.
func (h *History) Undo(buf *buffer.Buffer) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}

	op := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := buf.Restore(op.Before); err != nil {
		// Restore entry on failure
		h.mu.Lock()
		h.undoStack = append(h.undoStack, op)
		h.mu.Unlock()
		return err
	}

	Log.WithField("op", op.Description).Debug("undo")
	h.mu.Lock()
	h.redoStack = append(h.redoStack, op)
	h.mu.Unlock()
	return nil
}

// Redo reapplies the last undone operation.
func (h *History) Redo(buf *buffer.Buffer) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}

	op := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := buf.Restore(op.After); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, op)
		h.mu.Unlock()
		return err
	}

	Log.WithField("op", op.Description).Debug("redo")
	h.mu.Lock()
	h.undoStack = append(h.undoStack, op)
	h.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// BeginGroup starts an operation group.
// Operations pushed while grouping are merged into a single undo unit.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		// Already grouping, ignore nested calls
		return
	}

	h.grouping = true
	h.groupName = name
	h.groupOp = nil
}

// EndGroup finishes an operation group.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}

	h.grouping = false
	if h.groupOp != nil {
		h.pushLocked(h.groupOp)
	}
	h.groupOp = nil
}

// CancelGroup cancels a group without adding to history.
// Note: Operations already executed still affect the buffer!
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.groupOp = nil
}

// IsGrouping returns true if currently in a group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupOp = nil
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.undoStack)
}

// RedoInfo returns info about available redo operations.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.redoStack)
}

func infos(ops []*Operation) []OperationInfo {
	result := make([]OperationInfo, len(ops))
	for i, op := range ops {
		result[i] = op.Info()
	}
	return result
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].Info(), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].Info(), true
}

// Find returns the undo operation with the given ID.
func (h *History) Find(id uuid.UUID) (*Operation, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, op := range h.undoStack {
		if op.ID == id {
			return op, true
		}
	}
	return nil, false
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
