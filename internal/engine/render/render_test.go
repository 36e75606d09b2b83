package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
)

func load(t *testing.T, src string) (*arena.Stack, arena.Node, arena.Node) {
	t.Helper()
	tree, mark, err := layout.Parse(src)
	require.NoError(t, err)
	s := arena.NewStack()
	root := tree.Push(s)
	cursor := arena.NoNode
	if mark.Found {
		cursor, _ = mark.Resolve(s, root)
	}
	return s, root, cursor
}

func TestPicture(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"text", "1+2", []string{"1+2"}},
		{"empty", "", []string{"□"}},
		{"fraction", "1+frac{2}{x}", []string{
			"   2",
			"1+───",
			"   x",
		}},
		{"square root", "sqrt{x}", []string{
			" ─",
			"√x",
		}},
		{"superscript", "2sup{3}", []string{
			" 3",
			"2",
		}},
		{"temporary parenthesis", "(1]", []string{"(1)"}},
		{"matrix", "matrix:3x3{1}{2}{}{3}{4}{}{}{}{}", []string{
			"⎡1 2⎤",
			"⎣3 4⎦",
		}},
		{"matrix while editing", "matrix:3x3{1|}{2}{}{3}{4}{}{}{}{}", []string{
			"⎡1 2 □⎤",
			"⎢3 4 □⎥",
			"⎣□ □ □⎦",
		}},
		{"sum", "sum{k}{1}{n}{k}", []string{
			" n",
			" Σ  k",
			"k=1",
		}},
		{"derivative", "diff{x}{a}{}{f}", []string{
			"d",
			"──(f)|",
			"dx    x=a",
		}},
	}
	cells := NewCells()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, root, cursor := load(t, tt.src)
			got := cells.Picture(s, root, Frame{Cursor: cursor}).Lines()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("picture mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGrayGlyphs(t *testing.T) {
	cells := NewCells()

	s, root, _ := load(t, "(1]")
	sh := cells.Picture(s, root, Frame{Cursor: arena.NoNode})
	assert.Equal(t, tcell.StyleDefault, sh.Style(0, 0))
	assert.Equal(t, Gray, sh.Style(2, 0))

	s, root, cursor := load(t, "matrix:3x3{1|}{2}{}{3}{4}{}{}{}{}")
	sh = cells.Picture(s, root, Frame{Cursor: cursor})
	assert.Equal(t, tcell.StyleDefault, sh.Style(1, 0))
	assert.Equal(t, Gray, sh.Style(5, 0))
	assert.Equal(t, Gray, sh.Style(1, 2))
}

func TestSelectionIsReversed(t *testing.T) {
	cells := NewCells()
	s, root, _ := load(t, "abc")

	sh := cells.Picture(s, root, Frame{Cursor: root, Selection: Span{Rack: root, From: 1, To: 2}})

	_, _, attrs := sh.Style(1, 0).Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse)
	_, _, attrs = sh.Style(0, 0).Decompose()
	assert.Zero(t, attrs&tcell.AttrReverse)
}

func TestMetrics(t *testing.T) {
	var m Metrics = NewCells()
	s, root, _ := load(t, "1+frac{2}{x}")
	frac := s.Child(root, 2)
	den := s.Child(frac, layout.FractionDenominator)

	assert.Equal(t, Size{5, 3}, m.Size(s, root, arena.NoNode))
	assert.Equal(t, 1, m.Baseline(s, root, arena.NoNode))
	assert.Equal(t, Size{2, 1}, m.SizeBetween(s, root, 0, 2, arena.NoNode))
	assert.Equal(t, 1, m.BaselineBetween(s, root, 2, 3, arena.NoNode))
	assert.Equal(t, 0, m.BaselineBetween(s, root, 0, 2, arena.NoNode))
	assert.Equal(t, Point{2, 0}, m.AbsoluteOrigin(s, root, frac, arena.NoNode))
	assert.Equal(t, Point{3, 2}, m.AbsoluteOrigin(s, root, den, arena.NoNode))
	assert.Equal(t, Point{3, 2}, m.AbsoluteOrigin(s, root, s.Child(den, 0), arena.NoNode))
	assert.Equal(t, Point{}, m.AbsoluteOrigin(s, root, root, arena.NoNode))
}

func TestMetricsGridFollowsCursor(t *testing.T) {
	cells := NewCells()
	s, root, cursor := load(t, "matrix:3x3{1|}{2}{}{3}{4}{}{}{}{}")
	grid := s.Child(root, 0)

	assert.Equal(t, Size{5, 2}, cells.Size(s, grid, arena.NoNode))
	assert.Equal(t, Size{7, 3}, cells.Size(s, grid, cursor))
	assert.Equal(t, Point{5, 2}, cells.AbsoluteOrigin(s, root, layout.AsGrid(s, grid).Cell(2, 2), cursor))
}

func TestDrawOnTcellScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(10, 3)

	s, root, _ := load(t, "1+frac{2}{x}")
	NewCells().Draw(screen, s, root, Point{X: 1}, Frame{Cursor: arena.NoNode})
	screen.Show()

	primary, _, _, _ := screen.GetContent(4, 0)
	assert.Equal(t, '2', primary)
	primary, _, _, _ = screen.GetContent(3, 1)
	assert.Equal(t, '─', primary)
	primary, _, _, _ = screen.GetContent(1, 1)
	assert.Equal(t, '1', primary)
}

func TestPointDistance(t *testing.T) {
	assert.Equal(t, 25, Point{0, 0}.SquareDistanceTo(Point{3, 4}))
	assert.Equal(t, Point{4, 6}, Point{1, 2}.Add(Point{3, 4}))
}
