package buffer

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/render"
)

func mustBuffer(t *testing.T, src string, opts ...Option) *Buffer {
	t.Helper()
	b, err := NewBufferFromString(src, opts...)
	require.NoError(t, err)
	return b
}

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	assert.True(t, b.IsEmpty())
	assert.Equal(t, "|", b.String())
	assert.Equal(t, arena.DefaultMaxBlocks, b.Capacity())
	assert.False(t, b.IsSelecting())
}

func TestNewBufferFromString(t *testing.T) {
	assert.Equal(t, "1+|2", mustBuffer(t, "1+|2").String())
	assert.Equal(t, "12|", mustBuffer(t, "12").String())

	_, err := NewBufferFromString("frac{1}")
	assert.ErrorIs(t, err, layout.ErrParse)
}

func TestBufferEditsBracketedTreeOverHalfCapacity(t *testing.T) {
	ones := strings.Repeat("1", 30)
	size := mustBuffer(t, "("+ones+"|)").Len()

	// The balancer copies the whole root, which needs more than the
	// capacity while the edit runs.
	b := mustBuffer(t, "("+ones+"|)", WithCapacity(size+10))
	require.NoError(t, b.InsertText("2", false, false, false))
	assert.Equal(t, "("+ones+"2|)", b.String())
	assert.Equal(t, size+2, b.Len())

	rev := b.RevisionID()
	err := b.InsertText("33333", false, false, false)
	assert.ErrorIs(t, err, ErrArenaExhausted)
	assert.Equal(t, "("+ones+"2|)", b.String())
	assert.Equal(t, rev, b.RevisionID())
}

func TestBufferLoad(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Load(layout.Frac(layout.Text("1"), layout.Text("2"))))
	assert.Equal(t, "frac{1}{2}|", b.String())

	require.NoError(t, b.Load(nil))
	assert.True(t, b.IsEmpty())
}

func TestBufferInsertText(t *testing.T) {
	b := mustBuffer(t, "(3+4|]")
	require.NoError(t, b.InsertText(")", false, false, false))
	assert.Equal(t, "(3+4)|", b.String())
}

func TestBufferTemplates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		tpl  Template
		want string
	}{
		{"fraction collapses", "|5", Fraction, "frac{|}{5}"},
		{"mixed fraction", "3|", MixedFraction, "3|frac{}{}"},
		{"square power", "2|", SquarePower, "2sup{2}|"},
		{"power", "2|", Power, "2sup{|}"},
		{"square root", "|x", SquareRoot, "sqrt{|x}"},
		{"exponential", "|", Exponential, "`esup{|}"},
		{"log base 10", "|", Logarithm10, "lo`gsub{10}(|]"},
		{"matrix", "|", Matrix, "matrix:2x2{|}{}{}{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBuffer(t, tt.in)
			require.NoError(t, b.InsertTemplate(tt.tpl))
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestBufferWithoutSiblingCollapsing(t *testing.T) {
	b := mustBuffer(t, "|5", WithSiblingCollapsing(false))
	require.NoError(t, b.InsertTemplate(Fraction))
	assert.Equal(t, "frac{|}{}5", b.String())
}

func TestTemplateByName(t *testing.T) {
	tpl, ok := TemplateByName("square_power")
	require.True(t, ok)
	assert.True(t, tpl.ForceRight)

	_, ok = TemplateByName("nope")
	assert.False(t, ok)

	names := TemplateNames()
	assert.Contains(t, names, "fraction")
	assert.IsIncreasing(t, names)
}

func TestBufferArenaExhausted(t *testing.T) {
	b := mustBuffer(t, "|", WithCapacity(10))
	rev := b.RevisionID()

	err := b.InsertText("1234", false, false, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArenaExhausted))
	assert.True(t, errors.Is(err, arena.ErrArenaExhausted))
	assert.Equal(t, "|", b.String(), "failed edit must leave the buffer untouched")
	assert.Equal(t, rev, b.RevisionID())

	require.NoError(t, b.InsertText("1", false, false, false))
	assert.Equal(t, "1|", b.String())
}

func TestBufferMoveAndSelect(t *testing.T) {
	b := mustBuffer(t, "12|34")

	moved, _, err := b.Move(layout.Left, true)
	require.NoError(t, err)
	assert.True(t, moved)
	_, _, err = b.Move(layout.Left, true)
	require.NoError(t, err)

	assert.True(t, b.IsSelecting())
	assert.Equal(t, 2, b.Selection().Len())

	var frame render.Frame
	b.View(func(_ *arena.Stack, _ arena.Node, f render.Frame) { frame = f })
	assert.Equal(t, render.Span{Rack: 0, From: 0, To: 2}, frame.Selection)

	require.NoError(t, b.PerformBackspace())
	assert.False(t, b.IsSelecting())
	assert.Equal(t, "|34", b.String())
}

func TestBufferResetSelection(t *testing.T) {
	b := mustBuffer(t, "1|2")
	_, _, err := b.Move(layout.Right, true)
	require.NoError(t, err)
	require.True(t, b.IsSelecting())

	b.ResetSelection()
	assert.False(t, b.IsSelecting())
	assert.Equal(t, "12|", b.String())
}

func TestBufferMoveMultipleSteps(t *testing.T) {
	b := mustBuffer(t, "|1frac{2}{3}")
	moved, _, err := b.MoveMultipleSteps(layout.Right, 2, false)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, "1frac{|2}{3}", b.String())
}

func TestBufferRevisionID(t *testing.T) {
	b := mustBuffer(t, "1|2")
	rev := b.RevisionID()

	_, _, err := b.Move(layout.Left, false)
	require.NoError(t, err)
	assert.Equal(t, rev, b.RevisionID(), "a move does not change the tree")

	require.NoError(t, b.InsertText("x", false, false, false))
	assert.NotEqual(t, rev, b.RevisionID())
}

func TestBufferStateRoundTrip(t *testing.T) {
	src := mustBuffer(t, "1+frac{2|}{3}")
	st := src.State()

	b := NewBuffer()
	require.NoError(t, b.Restore(st))
	assert.Equal(t, "1+frac{2|}{3}", b.String())
	if diff := cmp.Diff(st, b.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferRestoreRejectsInvalidState(t *testing.T) {
	good := mustBuffer(t, "12|").State()

	tests := []struct {
		name  string
		state func() State
	}{
		{"empty", func() State { return State{} }},
		{"position past the rack", func() State {
			st := good
			st.Position = 3
			return st
		}},
		{"rack on a code point", func() State {
			st := good
			st.Rack = 3
			st.Position = 0
			return st
		}},
		{"anchor past the rack", func() State {
			st := good
			st.Anchor = 7
			return st
		}},
		{"trailing blocks", func() State {
			st := good
			st.Blocks = append(append([]arena.Block(nil), good.Blocks...), layout.Rack()...)
			return st
		}},
		{"not a rack", func() State {
			return State{Blocks: layout.CodePoint('1').Blocks()}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBuffer(t, "x|")
			err := b.Restore(tt.state())
			assert.ErrorIs(t, err, ErrInvalidState)
			assert.Equal(t, "x|", b.String())
		})
	}
}

func TestBufferRestoreTooLarge(t *testing.T) {
	st := mustBuffer(t, "12345|").State()
	b := NewBuffer(WithCapacity(5))
	assert.ErrorIs(t, b.Restore(st), ErrArenaExhausted)
	assert.True(t, b.IsEmpty())
}

func TestBufferSnapshot(t *testing.T) {
	b := mustBuffer(t, "1|")
	snap := b.Snapshot()

	require.NoError(t, b.InsertText("2", false, false, false))

	assert.Equal(t, "1|", snap.String())
	assert.Equal(t, "12|", b.String())
	assert.False(t, snap.IsEmpty())
	assert.NotEqual(t, snap.RevisionID(), b.RevisionID())

	st := snap.State()
	st.Blocks[0] = 0
	assert.Equal(t, "1|", snap.String(), "State must return a copy")
}

func TestBufferCursorQueries(t *testing.T) {
	b := mustBuffer(t, "1+|frac{2}{x}")
	assert.Equal(t, 3, b.CursorHeight())
	assert.Equal(t, render.Point{X: 2, Y: 0}, b.CursorOrigin())

	assert.True(t, mustBuffer(t, "frac{|}{}").IsAtNumeratorOfEmptyFraction())
	assert.False(t, b.IsAtNumeratorOfEmptyFraction())
}

func TestBufferPrepareForExitingPosition(t *testing.T) {
	b := mustBuffer(t, "matrix:2x2{1}{|}{}{}")
	require.NoError(t, b.PrepareForExitingPosition())
	assert.Equal(t, "matrix:2x2{1|}{}{}{}", b.String())
}

func TestBufferBeautifyLeft(t *testing.T) {
	b := mustBuffer(t, "pi|")
	changed, err := b.BeautifyLeft()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestBufferConcurrentReadWrite(t *testing.T) {
	b := NewBuffer()

	var wg sync.WaitGroup

	// Writers
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = b.InsertText("x", false, false, false)
			}
		}()
	}

	// Readers
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = b.String()
				_ = b.CursorHeight()
			}
		}()
	}

	wg.Wait()
	tree := b.Tree()
	s := arena.NewStack()
	root := tree.Push(s)
	assert.Equal(t, 100, s.NumberOfChildren(root))
}

func TestBufferSelectionTree(t *testing.T) {
	b := mustBuffer(t, "1+frac{2}{3}|")
	assert.Equal(t, layout.Rack(), b.SelectionTree())

	_, _, err := b.MoveMultipleSteps(layout.Left, 2, true)
	require.NoError(t, err)
	assert.Equal(t, layout.Rack(layout.CodePoint('+'), layout.Frac(layout.Text("2"), layout.Text("3"))), b.SelectionTree())
}
