package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/mathfield/internal/engine/arena"
)

// Canvas receives drawn cells. tcell.Screen implements it.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Span is a run of children [From, To) of Rack.
type Span struct {
	Rack     arena.Node
	From, To int
}

// Frame carries the editing state that changes how a tree is drawn.
type Frame struct {
	// Cursor is the rack holding the cursor, or arena.NoNode.
	Cursor arena.Node
	// Selection is highlighted when non-empty.
	Selection Span
	// Style is the base style, tcell.StyleDefault when zero.
	Style tcell.Style
}

// Gray is applied to placeholders, temporary brackets and gray grid cells.
var Gray = tcell.StyleDefault.Foreground(tcell.ColorGray)

// Draw paints the tree rooted at n with its top left corner at at.
func (c *Cells) Draw(cv Canvas, s *arena.Stack, n arena.Node, at Point, f Frame) {
	c.draw(cv, s, n, at, f, f.Style, false)
}

func (c *Cells) draw(cv Canvas, s *arena.Stack, n arena.Node, at Point, f Frame, style tcell.Style, gray bool) {
	b := c.box(s, n, f.Cursor)
	for _, g := range b.glyphs {
		st := style
		if gray || g.gray {
			st = grayed(style)
		}
		cv.SetContent(at.X+g.at.X, at.Y+g.at.Y, g.r, g.comb, st)
	}
	kids := s.Children(n)
	for i, k := range kids {
		if b.hidden != nil && b.hidden[i] {
			continue
		}
		st := style
		if n == f.Selection.Rack && i >= f.Selection.From && i < f.Selection.To {
			st = style.Reverse(true)
		}
		c.draw(cv, s, k, at.Add(b.origin[i]), f, st, gray || (b.gray != nil && b.gray[i]))
	}
	for _, gh := range b.ghosts {
		c.draw(cv, s, kids[gh.child], at.Add(gh.at), f, style, gray)
	}
}

func grayed(st tcell.Style) tcell.Style {
	fg, _, _ := Gray.Decompose()
	return st.Foreground(fg)
}

// Sheet is an in-memory Canvas.
type Sheet struct {
	width, height int
	cells         [][]rune
	styles        [][]tcell.Style
}

// NewSheet creates a blank sheet.
func NewSheet(width, height int) *Sheet {
	sh := &Sheet{width: width, height: height}
	sh.cells = make([][]rune, height)
	sh.styles = make([][]tcell.Style, height)
	for y := range sh.cells {
		sh.cells[y] = []rune(strings.Repeat(" ", width))
		sh.styles[y] = make([]tcell.Style, width)
	}
	return sh
}

// SetContent implements Canvas. Cells outside the sheet are dropped.
func (sh *Sheet) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= sh.width || y >= sh.height {
		return
	}
	sh.cells[y][x] = primary
	sh.styles[y][x] = style
	for i := 1; i < runewidth.RuneWidth(primary) && x+i < sh.width; i++ {
		sh.cells[y][x+i] = 0
	}
}

// Rune returns the rune at x, y.
func (sh *Sheet) Rune(x, y int) rune {
	return sh.cells[y][x]
}

// Style returns the style at x, y.
func (sh *Sheet) Style(x, y int) tcell.Style {
	return sh.styles[y][x]
}

// Lines returns the rows of the sheet with trailing blanks removed.
func (sh *Sheet) Lines() []string {
	out := make([]string, sh.height)
	for y, row := range sh.cells {
		var b strings.Builder
		for _, r := range row {
			if r != 0 {
				b.WriteRune(r)
			}
		}
		out[y] = strings.TrimRight(b.String(), " ")
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func (sh *Sheet) String() string {
	return strings.Join(sh.Lines(), "\n")
}

// Picture draws the tree rooted at n on a sheet of its own size.
func (c *Cells) Picture(s *arena.Stack, n arena.Node, f Frame) *Sheet {
	size := c.Size(s, n, f.Cursor)
	sh := NewSheet(size.Width, size.Height)
	c.Draw(sh, s, n, Point{}, f)
	return sh
}
