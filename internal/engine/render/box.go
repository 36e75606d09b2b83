package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
)

type glyph struct {
	at   Point
	r    rune
	comb []rune
	gray bool
}

// ghost draws a child a second time at another origin. Derivatives show
// their variable and order in two places.
type ghost struct {
	child int
	at    Point
}

type box struct {
	size   Size
	base   int
	origin []Point
	hidden []bool
	gray   []bool
	ghosts []ghost
	glyphs []glyph
}

func (b *box) place(i int, p Point) {
	b.origin[i] = p
}

// Cells measures and draws layouts with one terminal cell per glyph.
type Cells struct {
	placeholder rune
}

// Option configures Cells.
type Option func(*Cells)

// WithPlaceholder sets the glyph drawn for empty racks.
func WithPlaceholder(r rune) Option {
	return func(c *Cells) {
		c.placeholder = r
	}
}

// NewCells creates a cell renderer.
func NewCells(opts ...Option) *Cells {
	c := &Cells{placeholder: '□'}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Size implements Metrics.
func (c *Cells) Size(s *arena.Stack, n, cursor arena.Node) Size {
	return c.box(s, n, cursor).size
}

// Baseline implements Metrics.
func (c *Cells) Baseline(s *arena.Stack, n, cursor arena.Node) int {
	return c.box(s, n, cursor).base
}

// SizeBetween implements Metrics.
func (c *Cells) SizeBetween(s *arena.Stack, rack arena.Node, from, to int, cursor arena.Node) Size {
	b := c.rackBetween(s, rack, from, to, cursor)
	return b.size
}

// BaselineBetween implements Metrics.
func (c *Cells) BaselineBetween(s *arena.Stack, rack arena.Node, from, to int, cursor arena.Node) int {
	b := c.rackBetween(s, rack, from, to, cursor)
	return b.base
}

// AbsoluteOrigin implements Metrics.
func (c *Cells) AbsoluteOrigin(s *arena.Stack, root, n, cursor arena.Node) Point {
	var p Point
	path := append(s.Ancestors(root, n), n)
	for i := 0; i+1 < len(path); i++ {
		b := c.box(s, path[i], cursor)
		p = p.Add(b.origin[s.IndexOfChild(path[i], path[i+1])])
	}
	return p
}

func (c *Cells) children(s *arena.Stack, n, cursor arena.Node) []box {
	kids := s.Children(n)
	out := make([]box, len(kids))
	for i, k := range kids {
		out[i] = c.box(s, k, cursor)
	}
	return out
}

func newBox(children int) box {
	return box{origin: make([]Point, children)}
}

func (c *Cells) box(s *arena.Stack, n, cursor arena.Node) box {
	t := s.Type(n)
	switch {
	case t == layout.TypeRack:
		return c.rackBetween(s, n, 0, s.NumberOfChildren(n), cursor)
	case layout.IsCodePoint(t):
		return codePointBox(s, n)
	case layout.IsGrid(t):
		return c.gridBox(s, n, cursor)
	}
	k := c.children(s, n, cursor)
	switch t {
	case layout.TypeParentheses, layout.TypeCurlyBraces:
		return pairBox(k[0], t, layout.IsTemporary(s, n, layout.Left), layout.IsTemporary(s, n, layout.Right))
	case layout.TypeAbs, layout.TypeFloor, layout.TypeCeil, layout.TypeVectorNorm:
		return pairBox(k[0], t, false, false)
	case layout.TypeConj:
		return conjBox(k[0])
	case layout.TypeSqrt:
		return radicalBox(k[0], nil)
	case layout.TypeRoot:
		return radicalBox(k[layout.RootRadicand], &k[layout.RootIndex])
	case layout.TypeFraction:
		return fractionBox(k[layout.FractionNumerator], k[layout.FractionDenominator])
	case layout.TypeBinomial, layout.TypePoint2D:
		return twoRowsBox(k[layout.TwoRowsUpper], k[layout.TwoRowsLower])
	case layout.TypePtBinomial, layout.TypePtPermute:
		return ptBox(k[layout.PtN], k[layout.PtK], t)
	case layout.TypeVerticalOffset:
		return offsetBox(k[0], layout.IsSubscript(s, n))
	case layout.TypeSum, layout.TypeProduct:
		return parametricBox(k, t)
	case layout.TypeIntegral:
		return integralBox(k)
	case layout.TypeDiff:
		return diffBox(k, layout.IsNthDiff(s, n), layout.GetDiffState(s, n))
	case layout.TypeListSequence:
		return listSequenceBox(k)
	}
	panic("render: no box for " + t.String())
}

func codePointBox(s *arena.Stack, n arena.Node) box {
	r := layout.CodePointOf(s, n)
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	g := glyph{r: r}
	if m := layout.CombiningOf(s, n); m != 0 {
		g.comb = []rune{m}
	}
	return box{size: Size{w, 1}, glyphs: []glyph{g}}
}

// rackBetween lays out the children of rack in [from, to) on a shared
// baseline. Origins are indexed by child index over the whole rack.
func (c *Cells) rackBetween(s *arena.Stack, rack arena.Node, from, to int, cursor arena.Node) box {
	count := s.NumberOfChildren(rack)
	b := newBox(count)
	if count == 0 {
		b.size = Size{1, 1}
		b.glyphs = []glyph{{r: c.placeholder, gray: true}}
		return b
	}
	kids := s.Children(rack)
	boxes := make([]box, count)
	above, below := 0, 0
	for i := from; i < to; i++ {
		boxes[i] = c.box(s, kids[i], cursor)
		above = max(above, boxes[i].base)
		below = max(below, boxes[i].size.Height-boxes[i].base)
	}
	x := 0
	for i := from; i < to; i++ {
		b.place(i, Point{x, above - boxes[i].base})
		x += boxes[i].size.Width
	}
	b.size = Size{x, above + below}
	b.base = above
	return b
}

func pairBox(k box, t arena.Type, leftGray, rightGray bool) box {
	left, right := fencesOf(t)
	b := newBox(1)
	b.place(0, Point{1, 0})
	b.size = Size{k.size.Width + 2, k.size.Height}
	b.base = k.base
	b.glyphs = append(left.glyphs(0, k.size.Height, leftGray), right.glyphs(k.size.Width+1, k.size.Height, rightGray)...)
	return b
}

func conjBox(k box) box {
	b := newBox(1)
	b.place(0, Point{0, 1})
	b.size = Size{k.size.Width, k.size.Height + 1}
	b.base = k.base + 1
	b.glyphs = hline(0, k.size.Width, 0, '─')
	return b
}

// radicalBox draws the radical sign left of the radicand with a bar above
// it. The index, when present, sits top left and its last row is the row of
// the bar.
func radicalBox(rad box, index *box) box {
	b := newBox(1)
	iw, ih := 0, 1
	if index != nil {
		b = newBox(2)
		iw, ih = index.size.Width, index.size.Height
		b.place(layout.RootIndex, Point{0, 0})
	}
	top := ih - 1
	b.place(layout.RootRadicand, Point{iw + 1, top + 1})
	b.size = Size{iw + 1 + rad.size.Width, top + 1 + rad.size.Height}
	b.base = top + 1 + rad.base
	for _, g := range radicalFence.glyphs(iw, rad.size.Height, false) {
		g.at.Y += top + 1
		b.glyphs = append(b.glyphs, g)
	}
	b.glyphs = append(b.glyphs, hline(iw+1, b.size.Width, top, '─')...)
	return b
}

func fractionBox(num, den box) box {
	b := newBox(2)
	w := max(num.size.Width, den.size.Width) + 2
	b.place(layout.FractionNumerator, Point{(w - num.size.Width) / 2, 0})
	b.place(layout.FractionDenominator, Point{(w - den.size.Width) / 2, num.size.Height + 1})
	b.size = Size{w, num.size.Height + 1 + den.size.Height}
	b.base = num.size.Height
	b.glyphs = hline(0, w, num.size.Height, '─')
	return b
}

func twoRowsBox(upper, lower box) box {
	b := newBox(2)
	inner := max(upper.size.Width, lower.size.Width)
	h := upper.size.Height + lower.size.Height
	b.place(layout.TwoRowsUpper, Point{1 + (inner-upper.size.Width)/2, 0})
	b.place(layout.TwoRowsLower, Point{1 + (inner-lower.size.Width)/2, upper.size.Height})
	b.size = Size{inner + 2, h}
	b.base = (h - 1) / 2
	b.glyphs = append(leftParen.glyphs(0, h, false), rightParen.glyphs(inner+1, h, false)...)
	return b
}

func ptBox(n, k box, t arena.Type) box {
	b := newBox(2)
	symbol := 'C'
	if t == layout.TypePtPermute {
		symbol = 'P'
	}
	b.place(layout.PtN, Point{0, 0})
	b.place(layout.PtK, Point{n.size.Width + 1, n.size.Height + 1})
	b.size = Size{n.size.Width + 1 + k.size.Width, n.size.Height + 1 + k.size.Height}
	b.base = n.size.Height
	b.glyphs = []glyph{{at: Point{n.size.Width, n.size.Height}, r: symbol}}
	return b
}

// offsetBox raises a superscript above the baseline row and lowers a
// subscript below it.
func offsetBox(k box, subscript bool) box {
	b := newBox(1)
	b.size = Size{k.size.Width, k.size.Height + 1}
	if subscript {
		b.place(0, Point{0, 1})
		return b
	}
	b.base = k.size.Height
	return b
}

// rowItem is either a child box or a one-cell glyph when child is negative.
type rowItem struct {
	child int
	b     box
	r     rune
}

// layoutRow aligns items on a shared baseline starting at x, with its top at
// y. It returns the width, baseline and height of the row.
func layoutRow(b *box, x, y int, items []rowItem) (width, base, height int) {
	above, below := 0, 1
	for _, it := range items {
		if it.child >= 0 {
			above = max(above, it.b.base)
			below = max(below, it.b.size.Height-it.b.base)
		}
	}
	start := x
	for _, it := range items {
		if it.child < 0 {
			b.glyphs = append(b.glyphs, glyph{at: Point{x, y + above}, r: it.r})
			x++
			continue
		}
		b.place(it.child, Point{x, y + above - it.b.base})
		x += it.b.size.Width
	}
	return x - start, above, above + below
}

func parametricBox(k []box, t arena.Type) box {
	b := newBox(4)
	symbol := 'Σ'
	if t == layout.TypeProduct {
		symbol = 'Π'
	}
	variable, lower := k[layout.ParametricVariable], k[layout.ParametricLower]
	upper, arg := k[layout.ParametricUpper], k[layout.ParametricArgument]

	lowWidth := variable.size.Width + 1 + lower.size.Width
	column := max(1, lowWidth, upper.size.Width)
	symbolRow := max(upper.size.Height, arg.base)

	b.place(layout.ParametricUpper, Point{(column - upper.size.Width) / 2, symbolRow - upper.size.Height})
	b.glyphs = append(b.glyphs, glyph{at: Point{column / 2, symbolRow}, r: symbol})
	_, _, lowHeight := layoutRow(&b, (column-lowWidth)/2, symbolRow+1, []rowItem{
		{child: layout.ParametricVariable, b: variable},
		{child: -1, r: '='},
		{child: layout.ParametricLower, b: lower},
	})
	b.place(layout.ParametricArgument, Point{column + 1, symbolRow - arg.base})

	b.size = Size{column + 1 + arg.size.Width, max(symbolRow+1+lowHeight, symbolRow-arg.base+arg.size.Height)}
	b.base = symbolRow
	return b
}

func integralBox(k []box) box {
	b := newBox(4)
	diff, lower := k[layout.IntegralDifferential], k[layout.IntegralLower]
	upper, integrand := k[layout.IntegralUpper], k[layout.IntegralIntegrand]

	column := max(1, lower.size.Width, upper.size.Width)
	symbolRow := max(upper.size.Height, integrand.base, diff.base)

	b.place(layout.IntegralUpper, Point{0, symbolRow - upper.size.Height})
	b.glyphs = append(b.glyphs, glyph{at: Point{0, symbolRow}, r: '∫'})
	b.place(layout.IntegralLower, Point{0, symbolRow + 1})
	x := column + 1
	b.place(layout.IntegralIntegrand, Point{x, symbolRow - integrand.base})
	x += integrand.size.Width + 1
	b.glyphs = append(b.glyphs, glyph{at: Point{x, symbolRow}, r: 'd'})
	x++
	b.place(layout.IntegralDifferential, Point{x, symbolRow - diff.base})
	x += diff.size.Width

	bottom := max(symbolRow+1+lower.size.Height,
		symbolRow-integrand.base+integrand.size.Height,
		symbolRow-diff.base+diff.size.Height)
	b.size = Size{x, bottom}
	b.base = symbolRow
	return b
}

// diffBox draws d/dx(f)|x=a. The variable and the order appear twice; the
// slot being edited holds the child and the other one a ghost.
func diffBox(k []box, nth bool, st layout.DiffState) box {
	b := newBox(4)
	variable, abscissa := k[layout.DiffVariable], k[layout.DiffAbscissa]
	order, derivand := k[layout.DiffOrder], k[layout.DiffDerivand]

	topHeight, topBase := 1, 0
	ow := 0
	if nth {
		topHeight, topBase = order.size.Height, order.base
		ow = order.size.Width
	}
	botBase := max(0, variable.base)
	botBelow := max(1, variable.size.Height-variable.base)
	if nth {
		botBase = max(botBase, order.base)
		botBelow = max(botBelow, order.size.Height-order.base)
	}
	fracWidth := max(1+ow, 1+variable.size.Width+ow)
	shift := max(0, derivand.base-topHeight)
	barRow := topHeight + shift
	denRow := barRow + 1 + botBase

	b.glyphs = append(b.glyphs,
		glyph{at: Point{0, shift + topBase}, r: 'd'},
		glyph{at: Point{0, denRow}, r: 'd'})
	b.glyphs = append(b.glyphs, hline(0, fracWidth, barRow, '─')...)
	numOrder := Point{1, shift + topBase - order.base}
	denOrder := Point{1 + variable.size.Width, denRow - order.base}
	fracVariable := Point{1, denRow - variable.base}

	x := fracWidth
	b.glyphs = append(b.glyphs, glyph{at: Point{x, barRow}, r: '('})
	x++
	b.place(layout.DiffDerivand, Point{x, barRow - derivand.base})
	x += derivand.size.Width
	b.glyphs = append(b.glyphs, glyph{at: Point{x, barRow}, r: ')'}, glyph{at: Point{x + 1, barRow}, r: '|'})
	x += 2

	assignment := newBox(4)
	width, _, rowHeight := layoutRow(&assignment, x, barRow+1, []rowItem{
		{child: layout.DiffVariable, b: variable},
		{child: -1, r: '='},
		{child: layout.DiffAbscissa, b: abscissa},
	})
	b.glyphs = append(b.glyphs, assignment.glyphs...)
	b.place(layout.DiffAbscissa, assignment.origin[layout.DiffAbscissa])
	assignVariable := assignment.origin[layout.DiffVariable]

	if st.Variable == layout.AssignmentSlot {
		b.place(layout.DiffVariable, assignVariable)
		b.ghosts = append(b.ghosts, ghost{child: layout.DiffVariable, at: fracVariable})
	} else {
		b.place(layout.DiffVariable, fracVariable)
		b.ghosts = append(b.ghosts, ghost{child: layout.DiffVariable, at: assignVariable})
	}
	if nth {
		if st.Order == layout.DenominatorSlot {
			b.place(layout.DiffOrder, denOrder)
			b.ghosts = append(b.ghosts, ghost{child: layout.DiffOrder, at: numOrder})
		} else {
			b.place(layout.DiffOrder, numOrder)
			b.ghosts = append(b.ghosts, ghost{child: layout.DiffOrder, at: denOrder})
		}
	} else {
		b.hidden = make([]bool, 4)
		b.hidden[layout.DiffOrder] = true
	}

	b.size = Size{x + width, max(denRow+botBelow, barRow-derivand.base+derivand.size.Height, barRow+1+rowHeight)}
	b.base = barRow
	return b
}

func listSequenceBox(k []box) box {
	b := newBox(3)
	f := k[layout.ListSequenceFunction]
	b.place(layout.ListSequenceFunction, Point{1, 0})
	b.glyphs = append(leftCurly.glyphs(0, f.size.Height, false), rightCurly.glyphs(f.size.Width+1, f.size.Height, false)...)
	width, _, rowHeight := layoutRow(&b, f.size.Width+2, f.size.Height, []rowItem{
		{child: layout.ListSequenceVariable, b: k[layout.ListSequenceVariable]},
		{child: -1, r: layout.LessOrEqual},
		{child: layout.ListSequenceUpper, b: k[layout.ListSequenceUpper]},
	})
	b.size = Size{f.size.Width + 2 + width, f.size.Height + rowHeight}
	b.base = f.base
	return b
}
