package cursor

import (
	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/beautify"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/render"
)

// Move moves the cursor one step in dir, extending the selection when
// selecting. It reports whether the cursor moved and whether the layout must
// be redrawn: placeholders and gray grid cells appear and disappear as the
// cursor enters and leaves them.
func (c *Cursor) Move(dir layout.Direction, selecting bool) (moved, redraw bool) {
	if !selecting && c.IsSelecting() {
		c.stopSelecting()
		return true, true
	}
	if selecting {
		c.startSelecting()
	}
	oldRack := c.rack.Node()
	wasEmpty := c.isOnEmptySquare()
	oldGrid := c.mostNestedGridParent()

	if dir.IsVertical() {
		moved = c.verticalMove(dir)
	} else {
		moved = c.horizontalMove(dir)
	}
	if moved {
		redraw = selecting || wasEmpty || c.isOnEmptySquare() || c.mostNestedGridParent() != oldGrid
		if c.rack.Node() != oldRack {
			redraw = c.beautifyRightOfRack(oldRack) || redraw
		}
	}
	if c.IsSelecting() && c.Selection().IsEmpty() {
		c.stopSelecting()
	}
	return moved, redraw
}

// MoveMultipleSteps moves steps times in dir. It reports whether the cursor
// moved at all.
func (c *Cursor) MoveMultipleSteps(dir layout.Direction, steps int, selecting bool) (moved, redraw bool) {
	for i := 0; i < steps; i++ {
		m, r := c.Move(dir, selecting)
		redraw = redraw || r
		if !m {
			break
		}
		moved = true
	}
	return moved, redraw
}

// beautifyRightOfRack beautifies the end of a rack the cursor just left.
func (c *Cursor) beautifyRightOfRack(rack arena.Node) bool {
	ref := c.s.Ref(rack)
	defer c.s.Release(ref)
	position := c.s.NumberOfChildren(rack)
	return c.beautifier.BeforeCursorMove(beautify.Cursor{
		Stack:    c.s,
		Root:     c.root,
		Rack:     ref,
		Position: &position,
	})
}

// horizontalMove asks the layout next to the cursor, or the parent layout at
// the ends of the rack, where the cursor goes.
func (c *Cursor) horizontalMove(dir layout.Direction) bool {
	s := c.s
	current := layout.OutsideIndex
	next := c.leftLayout()
	if dir == layout.Right {
		next = c.rightLayout()
	}
	if next == arena.NoNode {
		next, current = c.parentLayout()
		if next == arena.NoNode {
			return false
		}
	}

	// A selection swallows whole layouts instead of entering them.
	newIndex := layout.OutsideIndex
	if !c.IsSelecting() {
		newIndex = layout.IndexAfterHorizontalCursorMove(s, next, dir, current)
	}
	if newIndex == layout.CantMoveIndex {
		return false
	}
	if newIndex != layout.OutsideIndex {
		c.moveCursorToLayout(s.Child(next, newIndex), dir.Opposite())
		return true
	}

	parent, index := s.ParentOfDescendant(c.root, next)
	previous := c.rack.Node()
	c.rack.Set(parent)
	c.position = index
	if dir == layout.Right {
		c.position++
	}
	if c.IsSelecting() && parent != previous {
		if dir == layout.Right {
			c.anchor = c.position - 1
		} else {
			c.anchor = c.position + 1
		}
	}
	return true
}

func (c *Cursor) verticalMove(dir layout.Direction) bool {
	previous := c.rack.Node()
	moved := c.verticalMoveWithoutSelection(dir)
	if moved && c.IsSelecting() && previous != c.rack.Node() {
		// Widen the selection to the layout holding both racks. Down selects
		// left to right and up right to left.
		ancestor := c.s.CommonAncestor(c.root, c.rack.Node(), previous)
		if dir == layout.Up {
			c.moveCursorToLayout(ancestor, layout.Left)
			c.anchor = min(c.position+1, c.count())
		} else {
			c.moveCursorToLayout(ancestor, layout.Right)
			c.anchor = max(c.position-1, 0)
		}
	}
	return moved
}

func (c *Cursor) verticalMoveWithoutSelection(dir layout.Direction) bool {
	s := c.s
	if !c.IsSelecting() {
		// Enter the layout on the right, then on the left, from above or
		// below.
		next, side := c.rightLayout(), layout.AtLeft
		for i := 0; i < 2; i++ {
			if next != arena.NoNode {
				index := layout.IndexAfterVerticalCursorMove(s, next, dir, layout.OutsideIndex, side)
				if index != layout.CantMoveIndex {
					c.rack.Set(s.Child(next, index))
					c.position = 0
					if side == layout.AtRight {
						c.position = c.count()
					}
					return true
				}
			}
			next, side = c.leftLayout(), layout.AtRight
		}
	}

	parent, index := c.parentLayout()
	at := layout.AtMiddle
	switch c.position {
	case 0:
		at = layout.AtLeft
	case c.count():
		at = layout.AtRight
	}
	for parent != arena.NoNode {
		next := layout.IndexAfterVerticalCursorMove(s, parent, dir, index, at)
		if next != layout.CantMoveIndex {
			if next == layout.OutsideIndex {
				side := layout.Right
				if at == layout.AtLeft {
					side = layout.Left
				}
				c.moveCursorToLayout(parent, side)
			} else {
				rack, position := c.closestCursorInDescendantsOfRack(s.Child(parent, next))
				c.rack.Set(rack)
				c.position = position
			}
			return true
		}
		rack := s.Parent(c.root, parent)
		parent, index = s.ParentOfDescendant(c.root, rack)
		at = layout.AtMiddle
	}
	return false
}

// closestCursorInDescendantsOfRack returns the cursor position inside rack
// or its descendants closest to the current cursor.
func (c *Cursor) closestCursorInDescendantsOfRack(rack arena.Node) (arena.Node, int) {
	p := c.MiddleLeftPoint()
	best, bestPosition := rack, 0
	bestDistance := p.SquareDistanceTo(c.middleLeftPointAt(rack, 0))
	c.scoreCursorInDescendants(p, rack, &best, &bestPosition, &bestDistance)
	return best, bestPosition
}

func (c *Cursor) scoreCursorInDescendants(p render.Point, rack arena.Node, best *arena.Node, bestPosition, bestDistance *int) {
	n := c.s.NumberOfChildren(rack)
	for i := 0; i <= n; i++ {
		// Ends first so that they win ties.
		position := i - 1
		switch i {
		case 0:
			position = 0
		case 1:
			position = n
		}
		if d := p.SquareDistanceTo(c.middleLeftPointAt(rack, position)); d < *bestDistance {
			*best, *bestPosition, *bestDistance = rack, position, d
		}
	}
	for _, l := range c.s.Children(rack) {
		for _, r := range c.s.Children(l) {
			c.scoreCursorInDescendants(p, r, best, bestPosition, bestDistance)
		}
	}
}

// middleLeftPointAt measures a cursor without selection at position of rack.
func (c *Cursor) middleLeftPointAt(rack arena.Node, position int) render.Point {
	left, right := neighbours(position, c.s.NumberOfChildren(rack))
	origin, height := c.measure(rack, position, left, right)
	return origin.Add(render.Point{Y: height / 2})
}
