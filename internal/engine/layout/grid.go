package layout

import (
	"github.com/dshills/mathfield/internal/engine/arena"
)

// MinGridSizeWhileEditing is the smallest stored dimension of a resizable
// grid: one real row or column plus the gray one.
const MinGridSizeWhileEditing = 2

// GridLayout gives row and column access to a grid node. Edits only touch
// blocks after the grid's own offset, so the value stays usable across them.
type GridLayout struct {
	s *arena.Stack
	n arena.Node
}

// AsGrid wraps the grid node n.
func AsGrid(s *arena.Stack, n arena.Node) GridLayout {
	return GridLayout{s: s, n: n}
}

// Node returns the grid node.
func (g GridLayout) Node() arena.Node { return g.n }

// Rows returns the stored number of rows, gray row included.
func (g GridLayout) Rows() int { return int(g.s.Payload(g.n, 0)) }

// Columns returns the stored number of columns, gray column included.
func (g GridLayout) Columns() int { return int(g.s.Payload(g.n, 1)) }

func (g GridLayout) setRows(r int)    { g.s.SetPayload(g.n, 0, arena.Block(r)) }
func (g GridLayout) setColumns(c int) { g.s.SetPayload(g.n, 1, arena.Block(c)) }

// RowsFixed reports whether rows can not be added or removed.
func (g GridLayout) RowsFixed() bool { return false }

// ColumnsFixed reports whether columns can not be added or removed.
// Piecewise functions always have a value and a condition column.
func (g GridLayout) ColumnsFixed() bool { return g.s.Type(g.n) == TypePiecewise }

// RowAt returns the row of the child at index.
func (g GridLayout) RowAt(index int) int { return index / g.Columns() }

// ColumnAt returns the column of the child at index.
func (g GridLayout) ColumnAt(index int) int { return index % g.Columns() }

// IndexAt returns the child index of the cell at row, column.
func (g GridLayout) IndexAt(row, column int) int { return row*g.Columns() + column }

// Cell returns the rack at row, column.
func (g GridLayout) Cell(row, column int) arena.Node {
	return g.s.Child(g.n, g.IndexAt(row, column))
}

func (g GridLayout) IsLeft(index int) bool   { return g.ColumnAt(index) == 0 }
func (g GridLayout) IsRight(index int) bool  { return g.ColumnAt(index) == g.Columns()-1 }
func (g GridLayout) IsTop(index int) bool    { return g.RowAt(index) == 0 }
func (g GridLayout) IsBottom(index int) bool { return g.RowAt(index) == g.Rows()-1 }

// IsInLastNonGrayColumn reports whether index is in the column left of the
// gray column.
func (g GridLayout) IsInLastNonGrayColumn(index int) bool {
	return g.ColumnAt(index) == g.Columns()-2
}

// IsInLastNonGrayRow reports whether index is in the row above the gray row.
func (g GridLayout) IsInLastNonGrayRow(index int) bool {
	return g.RowAt(index) == g.Rows()-2
}

// IsPlaceholder reports whether the cell at index belongs to the gray row or
// column. The condition column of a piecewise function only has a gray cell
// on its last real row, and only while it is empty.
func (g GridLayout) IsPlaceholder(index int) bool {
	if g.IsBottom(index) {
		return true
	}
	if !g.IsRight(index) {
		return false
	}
	if g.s.Type(g.n) != TypePiecewise {
		return true
	}
	return g.IsInLastNonGrayRow(index) && IsEmptyRack(g.s, g.s.Child(g.n, index))
}

func (g GridLayout) isLineEmpty(column bool, index int) bool {
	count := g.Columns()
	if column {
		count = g.Rows()
	}
	for i := 0; i < count; i++ {
		var c arena.Node
		if column {
			c = g.Cell(i, index)
		} else {
			c = g.Cell(index, i)
		}
		if !IsEmptyRack(g.s, c) {
			return false
		}
	}
	return true
}

// IsRowEmpty reports whether every cell of row is empty.
func (g GridLayout) IsRowEmpty(row int) bool { return g.isLineEmpty(false, row) }

// IsColumnEmpty reports whether every cell of column is empty.
func (g GridLayout) IsColumnEmpty(column int) bool { return g.isLineEmpty(true, column) }

// AddEmptyRow appends a row of empty racks.
func (g GridLayout) AddEmptyRow() {
	end := g.s.NextTree(g.n)
	row := make([]arena.Block, 0, 3*g.Columns())
	for i := 0; i < g.Columns(); i++ {
		row = append(row, rackHeader(0)...)
	}
	g.s.InsertTreeBefore(end, row)
	g.setRows(g.Rows() + 1)
}

// AddEmptyColumn appends an empty rack to every row.
func (g GridLayout) AddEmptyColumn() {
	cols := g.Columns()
	rows := g.Rows()
	// Insert from the bottom so that earlier offsets stay valid.
	for r := rows - 1; r >= 0; r-- {
		var at arena.Node
		if r == rows-1 {
			at = g.s.NextTree(g.n)
		} else {
			at = g.Cell(r+1, 0)
		}
		g.s.InsertTreeBefore(at, rackHeader(0))
	}
	g.setColumns(cols + 1)
}

// DeleteRow removes row.
func (g GridLayout) DeleteRow(row int) {
	if g.RowsFixed() {
		panic("layout: DeleteRow on grid with fixed rows")
	}
	cols := g.Columns()
	from := g.Cell(row, 0)
	to := g.s.NextTree(g.Cell(row, cols-1))
	g.s.RemoveRange(from, to)
	g.setRows(g.Rows() - 1)
}

// DeleteColumn removes column.
func (g GridLayout) DeleteColumn(column int) {
	if g.ColumnsFixed() {
		panic("layout: DeleteColumn on grid with fixed columns")
	}
	for r := g.Rows() - 1; r >= 0; r-- {
		g.s.RemoveTree(g.Cell(r, column))
	}
	g.setColumns(g.Columns() - 1)
}

// WillFillEmptyChildAtIndex grows the grid when the cell at index is in the
// gray row or column and is about to receive content. It returns the rack
// at the same row and column afterwards.
func (g GridLayout) WillFillEmptyChildAtIndex(index int) arena.Node {
	row, column := g.RowAt(index), g.ColumnAt(index)
	bottom, right := g.IsBottom(index), g.IsRight(index)
	if right && !g.ColumnsFixed() {
		g.AddEmptyColumn()
	}
	if bottom && !g.RowsFixed() {
		g.AddEmptyRow()
	}
	return g.Cell(row, column)
}

// RemoveTrailingEmptyRowOrColumnAtChildIndex prunes the empty rows and
// columns that precede the gray ones, starting from the cell at index, and
// returns the index of the cell the cursor should use afterwards.
func (g GridLayout) RemoveTrailingEmptyRowOrColumnAtChildIndex(index int) int {
	row, column := g.RowAt(index), g.ColumnAt(index)
	right := g.IsInLastNonGrayColumn(index)
	bottom := g.IsInLastNonGrayRow(index)
	newRow, newColumn := row, column
	for right && !g.ColumnsFixed() && g.Columns() > MinGridSizeWhileEditing && g.IsColumnEmpty(column) {
		newColumn = column
		g.DeleteColumn(column)
		column--
	}
	for bottom && !g.RowsFixed() && g.Rows() > MinGridSizeWhileEditing && g.IsRowEmpty(row) {
		newRow = row
		g.DeleteRow(row)
		row--
	}
	return g.IndexAt(newRow, newColumn)
}

// ClosestNonGrayIndex maps a gray cell to the nearest real cell. Outside
// editing the index is returned unchanged.
func (g GridLayout) ClosestNonGrayIndex(index int, editing bool) int {
	if !editing {
		return index
	}
	row, column := g.RowAt(index), g.ColumnAt(index)
	if !g.ColumnsFixed() && g.IsRight(index) {
		column--
	}
	if !g.RowsFixed() && g.IsBottom(index) {
		row--
	}
	return g.IndexAt(row, column)
}

// Contains reports whether the tree of the grid contains n.
func (g GridLayout) Contains(n arena.Node) bool {
	return g.s.HasAncestor(n, g.n, true)
}
