package cursor

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/balance"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/nary"
)

// PerformBackspace deletes the selection, or applies the deletion method of
// the layout left of the cursor, or of the parent layout at the start of a
// rack.
func (c *Cursor) PerformBackspace() {
	if c.IsSelecting() {
		c.deleteAndResetSelection()
		return
	}
	if left := c.leftLayout(); left != arena.NoNode {
		c.privateDelete(layout.DeletionMethodForCursorLeftOfChild(c.s, left, layout.OutsideIndex), false)
	} else {
		parent, index := c.parentLayout()
		if parent == arena.NoNode {
			return
		}
		c.privateDelete(layout.DeletionMethodForCursorLeftOfChild(c.s, parent, index), true)
	}
	balance.Balance(c.s, c.root, c.rack, &c.position)
	c.removeEmptyRowOrColumnOfGridParent()
}

func (c *Cursor) deleteAndResetSelection() {
	sel := c.Selection()
	if sel.IsEmpty() {
		return
	}
	nary.RemoveChildren(c.s, c.rack.Node(), sel.Start(), sel.End())
	c.position = sel.Start()
	c.stopSelecting()
	c.removeEmptyRowOrColumnOfGridParent()
}

// privateDelete applies m. onParent tells that the cursor is at the start
// of its rack and m is the method of the layout owning the rack.
func (c *Cursor) privateDelete(m layout.DeletionMethod, onParent bool) {
	s := c.s
	Log.WithFields(logrus.Fields{
		"method":   m.String(),
		"onParent": onParent,
	}).Debug("backspace")

	switch m {
	case layout.MoveLeft:
		c.Move(layout.Left, false)

	case layout.DeleteParent:
		// Replace the parent layout by the content of the cursor rack.
		parent := s.Parent(c.root, c.rack.Node())
		parentRack, index := s.ParentOfDescendant(c.root, parent)
		pr := s.Ref(parentRack)
		defer s.Release(pr)
		detached := nary.DetachChildAtIndex(s, parentRack, index)
		content := s.MoveTreeOverTree(detached, c.rack.Node())
		nary.AddOrMergeChildAtIndex(s, pr.Node(), content, index)
		c.rack.Set(pr.Node())
		c.position = index

	case layout.BracketPairMakeTemporary:
		if onParent {
			layout.SetTemporary(s, s.Parent(c.root, c.rack.Node()), layout.Left, true)
		} else {
			layout.SetTemporary(s, c.leftLayout(), layout.Right, true)
		}
		c.Move(layout.Left, false)
		balance.Balance(s, c.root, c.rack, &c.position)

	case layout.FractionDenominatorDeletion:
		// Merge the denominator into the numerator and unwrap it.
		fraction := s.Parent(c.root, c.rack.Node())
		parentRack, index := s.ParentOfDescendant(c.root, fraction)
		position := index + s.NumberOfChildren(s.Child(fraction, layout.FractionNumerator))
		pr := s.Ref(parentRack)
		defer s.Release(pr)
		detached := nary.DetachChildAtIndex(s, parentRack, index)
		s.RemoveNode(detached)
		numerator := s.Ref(detached)
		defer s.Release(numerator)
		nary.AddOrMergeChild(s, numerator.Node(), c.rack.Node())
		nary.AddOrMergeChildAtIndex(s, pr.Node(), numerator.Node(), index)
		c.rack.Set(pr.Node())
		c.position = position

	case layout.TwoRowsMoveFromLowerToUpper:
		c.rack.Set(s.Child(s.Parent(c.root, c.rack.Node()), layout.TwoRowsUpper))
		c.position = c.count()

	case layout.GridMoveToUpperRow:
		parent, index := c.parentLayout()
		g := layout.AsGrid(s, parent)
		up := g.IndexAt(g.RowAt(index)-1, g.Columns()-2)
		c.moveCursorToLayout(s.Child(parent, up), layout.Right)

	case layout.GridDeleteRow, layout.GridDeleteColumn, layout.GridDeleteColumnAndRow:
		parent, index := c.parentLayout()
		g := layout.AsGrid(s, parent)
		row, column := g.RowAt(index), g.ColumnAt(index)
		if m != layout.GridDeleteColumn {
			g.DeleteRow(row)
		}
		if m != layout.GridDeleteRow {
			g.DeleteColumn(column)
		}
		// Deleting the last real row or column leaves the cell in the gray
		// one: go to the end of the cell before it instead.
		side := layout.Left
		target := g.IndexAt(row, column)
		if g.IsPlaceholder(target) {
			if g.IsBottom(target) && row > 0 {
				row--
				side = layout.Right
			}
			if g.IsRight(target) && !g.ColumnsFixed() && column > 0 {
				column--
				side = layout.Right
			}
			target = g.IndexAt(row, column)
		}
		c.moveCursorToLayout(s.Child(parent, target), side)

	default:
		if onParent {
			c.moveCursorToLayout(s.Parent(c.root, c.rack.Node()), layout.Right)
		}
		c.position--
		nary.RemoveChildAtIndex(s, c.rack.Node(), c.position)
	}
}

// removeEmptyRowOrColumnOfGridParent prunes the empty trailing rows and
// columns of the grid whose empty cell holds the cursor.
func (c *Cursor) removeEmptyRowOrColumnOfGridParent() {
	if !c.isOnEmptySquare() {
		return
	}
	parent, index := c.parentLayout()
	if parent == arena.NoNode || !layout.IsGrid(c.s.Type(parent)) {
		return
	}
	g := layout.AsGrid(c.s, parent)
	next := g.RemoveTrailingEmptyRowOrColumnAtChildIndex(index)
	c.moveCursorToLayout(c.s.Child(parent, next), layout.Left)
}
