package render

import (
	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
)

// gridBox lays cells out in columns separated by one blank cell. The gray
// row and column are only laid out while the cursor is inside the grid.
func (c *Cells) gridBox(s *arena.Stack, n, cursor arena.Node) box {
	g := layout.AsGrid(s, n)
	editing := cursor != arena.NoNode && g.Contains(cursor)
	rows, cols := g.Rows(), g.Columns()
	k := c.children(s, n, cursor)
	b := newBox(len(k))
	b.hidden = make([]bool, len(k))
	b.gray = make([]bool, len(k))

	visibleRows, visibleCols := rows, cols
	if !editing {
		visibleRows--
		if !g.ColumnsFixed() {
			visibleCols--
		}
	}
	for i := range k {
		r, col := g.RowAt(i), g.ColumnAt(i)
		b.hidden[i] = r >= visibleRows || col >= visibleCols
		b.gray[i] = editing && g.IsPlaceholder(i)
	}

	widths := make([]int, visibleCols)
	above := make([]int, visibleRows)
	below := make([]int, visibleRows)
	for i, cell := range k {
		if b.hidden[i] {
			continue
		}
		r, col := g.RowAt(i), g.ColumnAt(i)
		widths[col] = max(widths[col], cell.size.Width)
		above[r] = max(above[r], cell.base)
		below[r] = max(below[r], cell.size.Height-cell.base)
	}

	left := 1
	xs := make([]int, visibleCols)
	x := left
	for col := range widths {
		xs[col] = x
		x += widths[col] + 1
	}
	inner := max(x-left-1, 0)
	ys := make([]int, visibleRows)
	y := 0
	for r := range ys {
		ys[r] = y
		y += above[r] + below[r]
	}
	for i, cell := range k {
		if b.hidden[i] {
			continue
		}
		r, col := g.RowAt(i), g.ColumnAt(i)
		b.place(i, Point{xs[col] + (widths[col]-cell.size.Width)/2, ys[r] + above[r] - cell.base})
	}

	h := max(y, 1)
	lf, rf := fencesOf(s.Type(n))
	b.glyphs = lf.glyphs(0, h, false)
	b.size = Size{left + inner, h}
	if s.Type(n) == layout.TypeMatrix {
		b.glyphs = append(b.glyphs, rf.glyphs(left+inner, h, false)...)
		b.size.Width++
	}
	if visibleRows == 1 {
		b.base = above[0]
	} else {
		b.base = (h - 1) / 2
	}
	return b
}
