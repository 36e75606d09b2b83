package buffer

import (
	"fmt"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
)

// State is a serializable copy of a buffer: the blocks of its tree and the
// cursor. Anchor is -1 when nothing is selected.
type State struct {
	Blocks   []arena.Block `cbor:"1,keyasint"`
	Rack     arena.Node    `cbor:"2,keyasint"`
	Position int           `cbor:"3,keyasint"`
	Anchor   int           `cbor:"4,keyasint"`
}

// check validates st against s, the stack holding st.Blocks.
func (st State) check(s *arena.Stack) error {
	if s.Len() == 0 {
		return fmt.Errorf("%w: no tree", ErrInvalidState)
	}
	if err := layout.Validate(s, root); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if s.TreeSize(root) != s.Len() {
		return fmt.Errorf("%w: %d blocks after the tree", ErrInvalidState, s.Len()-s.TreeSize(root))
	}

	found := false
	s.Walk(root, func(n arena.Node) bool {
		if n == st.Rack && s.Type(n) == layout.TypeRack {
			found = true
		}
		return !found
	})
	if !found {
		return fmt.Errorf("%w: cursor rack %d is not a rack of the tree", ErrInvalidState, st.Rack)
	}
	count := s.NumberOfChildren(st.Rack)
	if st.Position < 0 || st.Position > count {
		return fmt.Errorf("%w: position %d outside [0, %d]", ErrInvalidState, st.Position, count)
	}
	if st.Anchor < -1 || st.Anchor > count {
		return fmt.Errorf("%w: anchor %d outside [-1, %d]", ErrInvalidState, st.Anchor, count)
	}
	return nil
}

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	state      State
	revisionID RevisionID
}

// State returns a copy of the snapshot state.
func (s *Snapshot) State() State {
	st := s.state
	st.Blocks = append([]arena.Block(nil), s.state.Blocks...)
	return st
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// Tree returns a copy of the layout tree of the snapshot.
func (s *Snapshot) Tree() layout.Tree {
	return append(layout.Tree(nil), s.state.Blocks...)
}

// IsEmpty returns true if the snapshot tree has no layout.
func (s *Snapshot) IsEmpty() bool {
	return s.stack().NumberOfChildren(root) == 0
}

// String returns the tree in the layout notation with the cursor marked.
func (s *Snapshot) String() string {
	return layout.FormatWithCursor(s.stack(), root, s.state.Rack, s.state.Position)
}

func (s *Snapshot) stack() *arena.Stack {
	st := arena.NewStack(arena.WithMaxBlocks(len(s.state.Blocks)))
	st.Load(s.state.Blocks)
	return st
}
