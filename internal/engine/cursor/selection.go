package cursor

import (
	"fmt"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/render"
)

// Selection represents a run of selected siblings of Rack.
// Anchor is where the selection started; Head is the cursor position.
// When Anchor == Head, this represents a cursor with no selection.
// Selection is an immutable value type.
type Selection struct {
	Rack   arena.Node
	Anchor int // Where selection started
	Head   int // Current cursor position (where typing occurs)
}

// NewSelection creates a selection of rack from anchor to head.
func NewSelection(rack arena.Node, anchor, head int) Selection {
	return Selection{Rack: rack, Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(rack arena.Node, position int) Selection {
	return Selection{Rack: rack, Anchor: position, Head: position}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Len returns the number of selected layouts.
func (s Selection) Len() int {
	if s.Anchor <= s.Head {
		return s.Head - s.Anchor
	}
	return s.Anchor - s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// IsForward returns true if the selection extends forward (head >= anchor).
func (s Selection) IsForward() bool {
	return s.Head >= s.Anchor
}

// Span returns the selected children for drawing.
func (s Selection) Span() render.Span {
	return render.Span{Rack: s.Rack, From: s.Start(), To: s.End()}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d:%d)", s.Rack, s.Head)
	}
	dir := "→"
	if !s.IsForward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d:%d%s%d)", s.Rack, s.Anchor, dir, s.Head)
}
