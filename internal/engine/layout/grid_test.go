package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridAddAndDelete(t *testing.T) {
	tests := []struct {
		name string
		src  string
		edit func(g GridLayout)
		want string
	}{
		{"add column", "matrix:2x2{a}{b}{c}{d}", func(g GridLayout) { g.AddEmptyColumn() }, "matrix:2x3{a}{b}{}{c}{d}{}"},
		{"add row", "matrix:2x2{a}{b}{c}{d}", func(g GridLayout) { g.AddEmptyRow() }, "matrix:3x2{a}{b}{c}{d}{}{}"},
		{"delete row", "matrix:2x2{a}{b}{c}{d}", func(g GridLayout) { g.DeleteRow(0) }, "matrix:1x2{c}{d}"},
		{"delete column", "matrix:2x2{a}{b}{c}{d}", func(g GridLayout) { g.DeleteColumn(1) }, "matrix:2x1{a}{c}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, root := load(t, tt.src+"x")
			tt.edit(AsGrid(s, s.Child(root, 0)))
			require.NoError(t, Validate(s, root))
			assert.Equal(t, tt.want+"x", Format(s, root))
		})
	}
}

func TestGridDeleteColumnOfPiecewisePanics(t *testing.T) {
	s, root := load(t, "piecewise:2x2{a}{b}{}{}")
	g := AsGrid(s, s.Child(root, 0))
	assert.True(t, g.ColumnsFixed())
	assert.Panics(t, func() { g.DeleteColumn(0) })
}

func TestWillFillEmptyChildAtIndex(t *testing.T) {
	s, root := load(t, "matrix:2x2{}{}{}{}")
	g := AsGrid(s, s.Child(root, 0))

	cell := g.WillFillEmptyChildAtIndex(3)

	assert.Equal(t, "matrix:3x3{}{}{}{}{}{}{}{}{}", Format(s, root))
	assert.Equal(t, s.Child(g.Node(), 4), cell)

	// A real cell does not grow the grid.
	cell = g.WillFillEmptyChildAtIndex(0)
	assert.Equal(t, s.Child(g.Node(), 0), cell)
	assert.Equal(t, 3, g.Rows())
}

func TestPiecewiseWillFillOnlyAddsRows(t *testing.T) {
	s, root := load(t, "piecewise:2x2{x}{}{}{}")
	g := AsGrid(s, s.Child(root, 0))

	g.WillFillEmptyChildAtIndex(3)

	assert.Equal(t, "piecewise:3x2{x}{}{}{}{}{}", Format(s, root))
}

func TestRemoveTrailingEmptyRowOrColumn(t *testing.T) {
	s, root := load(t, "matrix:3x3{1}{}{}{}{}{}{}{}{}")
	g := AsGrid(s, s.Child(root, 0))

	index := g.RemoveTrailingEmptyRowOrColumnAtChildIndex(4)

	assert.Equal(t, "matrix:2x2{1}{}{}{}", Format(s, root))
	assert.Equal(t, 3, index)

	// Never below the editing minimum.
	index = g.RemoveTrailingEmptyRowOrColumnAtChildIndex(0)
	assert.Equal(t, 0, index)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Columns())
}

func TestGridPlaceholders(t *testing.T) {
	s, root := load(t, "piecewise:3x2{a}{b}{c}{}{}{}matrix:3x3{}{}{}{}{}{}{}{}{}")
	pw := AsGrid(s, s.Child(root, 0))
	m := AsGrid(s, s.Child(root, 1))

	assert.False(t, pw.IsPlaceholder(1))
	assert.True(t, pw.IsPlaceholder(3))
	assert.True(t, pw.IsPlaceholder(4))
	assert.False(t, pw.IsPlaceholder(2))

	assert.True(t, m.IsPlaceholder(2))
	assert.True(t, m.IsPlaceholder(7))
	assert.False(t, m.IsPlaceholder(4))

	assert.Equal(t, 4, m.ClosestNonGrayIndex(8, true))
	assert.Equal(t, 8, m.ClosestNonGrayIndex(8, false))
	assert.Equal(t, 2, pw.ClosestNonGrayIndex(4, true))
}

func TestRowAndColumnEmpty(t *testing.T) {
	s, root := load(t, "matrix:3x3{1}{}{}{}{}{}{}{2}{}")
	g := AsGrid(s, s.Child(root, 0))

	assert.False(t, g.IsRowEmpty(0))
	assert.True(t, g.IsRowEmpty(1))
	assert.False(t, g.IsColumnEmpty(1))
	assert.True(t, g.IsColumnEmpty(2))
	assert.Equal(t, 1, g.RowAt(5))
	assert.Equal(t, 2, g.ColumnAt(5))
	assert.Equal(t, 7, g.IndexAt(2, 1))
}
