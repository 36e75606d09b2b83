package history

import (
	"github.com/dshills/mathfield/internal/engine/buffer"
)

// GroupScope closes a group opened by History.GroupScope. Deferring End
// makes every edit of a keystroke sequence, such as typing "sqrt", one undo
// step:
//
//	defer h.GroupScope("Typing").End()
type GroupScope struct {
	history *History
	open    bool
}

// GroupScope opens a group and returns its scope.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, open: true}
}

// End records the group. Later calls do nothing.
func (g *GroupScope) End() {
	if !g.open {
		return
	}
	g.open = false
	g.history.EndGroup()
}

// Cancel drops the group from the history. The edits it ran stay applied to
// the field.
func (g *GroupScope) Cancel() {
	if !g.open {
		return
	}
	g.open = false
	g.history.CancelGroup()
}

// Transaction runs fn inside a group named name, dropping the group when fn
// fails.
func (h *History) Transaction(name string, fn func() error) error {
	scope := h.GroupScope(name)
	if err := fn(); err != nil {
		scope.Cancel()
		return err
	}
	scope.End()
	return nil
}

// ExecuteGrouped runs cmds as one undo step. A lone command is recorded
// as is.
func (h *History) ExecuteGrouped(name string, buf *buffer.Buffer, cmds ...Command) error {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return h.Execute(cmds[0], buf)
	}
	return h.Execute(NewCompoundCommand(name, cmds...), buf)
}

// Checkpoint marks an undo depth.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint marks the current undo depth.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes the steps recorded after cp.
func (h *History) UndoToCheckpoint(cp Checkpoint, buf *buffer.Buffer) error {
	for h.UndoCount() > cp.undoDepth {
		if err := h.Undo(buf); err != nil {
			return err
		}
	}
	return nil
}

// RedoToCheckpoint redoes steps until the undo depth of cp is reached or
// nothing is left to redo.
func (h *History) RedoToCheckpoint(cp Checkpoint, buf *buffer.Buffer) error {
	for h.UndoCount() < cp.undoDepth && h.CanRedo() {
		if err := h.Redo(buf); err != nil {
			return err
		}
	}
	return nil
}
