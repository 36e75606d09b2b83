package cursor

import (
	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/beautify"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/render"
)

// noSelection is the anchor of a cursor that is not selecting.
const noSelection = -1

// Cursor edits the layout tree rooted at a rack of a stack. It sits between
// two children of its rack, 0 <= position <= NumberOfChildren(rack), and
// never inside a non-rack layout.
//
// A Cursor is not safe for concurrent use. Buffer runs every edit of a
// Cursor on a scratch stack.
type Cursor struct {
	s          *arena.Stack
	root       arena.Node
	rack       *arena.Ref
	position   int
	anchor     int
	metrics    render.Metrics
	beautifier beautify.Beautifier
}

// NewCursor creates a cursor at position of rack, inside the tree rooted at
// root. A nil metrics or beautifier falls back to render.NewCells and
// beautify.Nop.
func NewCursor(s *arena.Stack, root, rack arena.Node, position int, m render.Metrics, b beautify.Beautifier) *Cursor {
	if m == nil {
		m = render.NewCells()
	}
	if b == nil {
		b = beautify.Nop{}
	}
	return &Cursor{
		s:          s,
		root:       root,
		rack:       s.Ref(rack),
		position:   position,
		anchor:     noSelection,
		metrics:    m,
		beautifier: b,
	}
}

// Release stops tracking the cursor rack in the stack.
func (c *Cursor) Release() {
	c.s.Release(c.rack)
}

// Rack returns the rack holding the cursor.
func (c *Cursor) Rack() arena.Node { return c.rack.Node() }

// Position returns the index of the cursor in its rack.
func (c *Cursor) Position() int { return c.position }

// IsSelecting reports whether a selection is being made.
func (c *Cursor) IsSelecting() bool { return c.anchor != noSelection }

// Selection returns the current selection, empty when not selecting.
func (c *Cursor) Selection() Selection {
	if !c.IsSelecting() {
		return NewCursorSelection(c.rack.Node(), c.position)
	}
	return NewSelection(c.rack.Node(), c.anchor, c.position)
}

// ResetSelection drops the selection, leaving the cursor where it is.
func (c *Cursor) ResetSelection() { c.stopSelecting() }

// Select selects the children of the cursor rack between anchor and the
// cursor. An anchor outside the rack or equal to the position clears the
// selection.
func (c *Cursor) Select(anchor int) {
	if anchor < 0 || anchor > c.count() || anchor == c.position {
		c.stopSelecting()
		return
	}
	c.anchor = anchor
}

func (c *Cursor) startSelecting() {
	if !c.IsSelecting() {
		c.anchor = c.position
	}
}

func (c *Cursor) stopSelecting() { c.anchor = noSelection }

func (c *Cursor) count() int { return c.s.NumberOfChildren(c.rack.Node()) }

func (c *Cursor) leftLayout() arena.Node {
	if c.position == 0 {
		return arena.NoNode
	}
	return c.s.Child(c.rack.Node(), c.position-1)
}

func (c *Cursor) rightLayout() arena.Node {
	if c.position == c.count() {
		return arena.NoNode
	}
	return c.s.Child(c.rack.Node(), c.position)
}

// parentLayout returns the layout owning the cursor rack and the index of
// the rack in it.
func (c *Cursor) parentLayout() (arena.Node, int) {
	return c.s.ParentOfDescendant(c.root, c.rack.Node())
}

func (c *Cursor) beautifyCursor() beautify.Cursor {
	return beautify.Cursor{Stack: c.s, Root: c.root, Rack: c.rack, Position: &c.position}
}

// moveCursorToLayout puts the cursor on side of n. A rack is entered at
// that end, any other layout is left in its parent rack.
func (c *Cursor) moveCursorToLayout(n arena.Node, side layout.Direction) {
	c.stopSelecting()
	if c.s.Type(n) != layout.TypeRack {
		parent, index := c.s.ParentOfDescendant(c.root, n)
		c.rack.Set(parent)
		c.position = index
		if side == layout.Right {
			c.position++
		}
		return
	}
	c.rack.Set(n)
	c.position = 0
	if side == layout.Right {
		c.position = c.count()
	}
}

// bounds returns the children the cursor is measured against: the selection,
// or the neighbours of the cursor.
func (c *Cursor) bounds() (int, int) {
	if sel := c.Selection(); !sel.IsEmpty() {
		return sel.Start(), sel.End()
	}
	return neighbours(c.position, c.count())
}

func neighbours(position, count int) (int, int) {
	return max(0, position-1), min(count, position+1)
}

// measure returns the top and the height of a cursor at position of rack
// that spans the children [left, right). Grids are measured as seen from the
// current cursor.
func (c *Cursor) measure(rack arena.Node, position, left, right int) (render.Point, int) {
	m, cursor := c.metrics, c.rack.Node()
	height := m.SizeBetween(c.s, rack, left, right, cursor).Height
	x := 0
	if position > 0 {
		x = m.SizeBetween(c.s, rack, 0, position, cursor).Width
	}
	y := m.Baseline(c.s, rack, cursor) - m.BaselineBetween(c.s, rack, left, right, cursor)
	return m.AbsoluteOrigin(c.s, c.root, rack, cursor).Add(render.Point{X: x, Y: y}), height
}

// CursorHeight returns the height of the cursor in cells.
func (c *Cursor) CursorHeight() int {
	left, right := c.bounds()
	_, height := c.measure(c.rack.Node(), c.position, left, right)
	return height
}

// CursorOrigin returns the top of the cursor relative to the root.
func (c *Cursor) CursorOrigin() render.Point {
	left, right := c.bounds()
	origin, _ := c.measure(c.rack.Node(), c.position, left, right)
	return origin
}

// MiddleLeftPoint returns the middle of the cursor bar.
func (c *Cursor) MiddleLeftPoint() render.Point {
	left, right := c.bounds()
	origin, height := c.measure(c.rack.Node(), c.position, left, right)
	return origin.Add(render.Point{Y: height / 2})
}

func (c *Cursor) isOnEmptySquare() bool {
	return layout.IsEmptyRack(c.s, c.rack.Node())
}

// mostNestedGridParent returns the innermost grid holding the cursor.
func (c *Cursor) mostNestedGridParent() arena.Node {
	ancestors := c.s.Ancestors(c.root, c.rack.Node())
	for i := len(ancestors) - 1; i >= 0; i-- {
		if layout.IsGrid(c.s.Type(ancestors[i])) {
			return ancestors[i]
		}
	}
	return arena.NoNode
}

// IsAtNumeratorOfEmptyFraction reports whether the cursor is in the empty
// numerator of a fraction whose denominator is empty too.
func (c *Cursor) IsAtNumeratorOfEmptyFraction() bool {
	if c.count() != 0 {
		return false
	}
	parent, index := c.parentLayout()
	return parent != arena.NoNode && c.s.Type(parent) == layout.TypeFraction &&
		index == layout.FractionNumerator &&
		layout.IsEmptyRack(c.s, c.s.Child(parent, layout.FractionDenominator))
}

// PrepareForExitingPosition moves the cursor out of a gray grid cell into
// the closest real one, since gray cells vanish once the cursor leaves the
// grid.
func (c *Cursor) PrepareForExitingPosition() {
	parent, index := c.parentLayout()
	if parent == arena.NoNode || !layout.IsGrid(c.s.Type(parent)) {
		return
	}
	g := layout.AsGrid(c.s, parent)
	if !g.IsPlaceholder(index) {
		return
	}
	c.moveCursorToLayout(c.s.Child(parent, g.ClosestNonGrayIndex(index, true)), layout.Right)
}

// BeautifyLeft beautifies the identifiers left of the cursor.
func (c *Cursor) BeautifyLeft() bool {
	changed := c.beautifier.BeforeCursorMove(c.beautifyCursor())
	c.position = min(c.position, c.count())
	return changed
}
