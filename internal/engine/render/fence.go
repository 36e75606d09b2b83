package render

import (
	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
)

// fence is a vertical delimiter that stretches to the height of its
// content.
type fence struct {
	single, top, mid, bottom, center rune
}

var (
	leftParen    = fence{'(', '⎛', '⎜', '⎝', 0}
	rightParen   = fence{')', '⎞', '⎟', '⎠', 0}
	leftCurly    = fence{'{', '⎧', '⎪', '⎩', '⎨'}
	rightCurly   = fence{'}', '⎫', '⎪', '⎭', '⎬'}
	leftSquare   = fence{'[', '⎡', '⎢', '⎣', 0}
	rightSquare  = fence{']', '⎤', '⎥', '⎦', 0}
	bar          = fence{'|', '│', '│', '│', 0}
	leftFloor    = fence{'⌊', '│', '│', '⌊', 0}
	rightFloor   = fence{'⌋', '│', '│', '⌋', 0}
	leftCeil     = fence{'⌈', '⌈', '│', '│', 0}
	rightCeil    = fence{'⌉', '⌉', '│', '│', 0}
	doubleBar    = fence{'‖', '‖', '‖', '‖', 0}
	radicalFence = fence{'√', '│', '│', '√', 0}
)

func (f fence) glyphs(x, h int, gray bool) []glyph {
	if h <= 1 {
		return []glyph{{at: Point{x, 0}, r: f.single, gray: gray}}
	}
	out := make([]glyph, 0, h)
	for y := 0; y < h; y++ {
		r := f.mid
		switch {
		case y == 0:
			r = f.top
		case y == h-1:
			r = f.bottom
		case f.center != 0 && y == h/2:
			r = f.center
		}
		out = append(out, glyph{at: Point{x, y}, r: r, gray: gray})
	}
	return out
}

func fencesOf(t arena.Type) (fence, fence) {
	switch t {
	case layout.TypeCurlyBraces, layout.TypePiecewise:
		return leftCurly, rightCurly
	case layout.TypeAbs:
		return bar, bar
	case layout.TypeFloor:
		return leftFloor, rightFloor
	case layout.TypeCeil:
		return leftCeil, rightCeil
	case layout.TypeVectorNorm:
		return doubleBar, doubleBar
	case layout.TypeMatrix:
		return leftSquare, rightSquare
	}
	return leftParen, rightParen
}

func hline(x0, x1, y int, r rune) []glyph {
	out := make([]glyph, 0, x1-x0)
	for x := x0; x < x1; x++ {
		out = append(out, glyph{at: Point{x, y}, r: r})
	}
	return out
}
