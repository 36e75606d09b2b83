package cursor

import (
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/balance"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/nary"
)

// InsertLayout inserts a copy of t at the cursor. forceRight and forceLeft
// leave the cursor right or left of the inserted layouts instead of in their
// first empty rack. collapse lets an inserted fraction, root or conjugate
// absorb its neighbours.
func (c *Cursor) InsertLayout(t layout.Tree, forceRight, forceLeft, collapse bool) {
	if len(t) == 0 {
		return
	}
	if !t.IsRack() {
		t = layout.Rack(t)
	}
	s := c.s
	inserted := s.Ref(t.Push(s))
	defer s.Release(inserted)
	if s.NumberOfChildren(inserted.Node()) == 0 {
		s.RemoveTree(inserted.Node())
		return
	}

	c.deleteAndResetSelection()

	method := c.beautifier.MethodWhenInserting(s, inserted.Node())
	if method.BeforeInserting {
		c.beautifier.BeforeCursorMove(c.beautifyCursor())
	}

	// Filling a gray cell makes it real: grow the grid first.
	if parent, index := c.parentLayout(); parent != arena.NoNode &&
		layout.IsGrid(s.Type(parent)) && c.isOnEmptySquare() {
		c.rack.Set(layout.AsGrid(s, parent).WillFillEmptyChildAtIndex(index))
		c.position = 0
	}

	// Typing next to a bracket temporary on the facing side closes it, unless
	// a same-type bracket temporary on its outer side is inserted: the
	// balancer then pairs them and only nested brackets are closed.
	first := s.Child(inserted.Node(), 0)
	last := s.LastChild(inserted.Node())
	left, right := c.leftLayout(), c.rightLayout()
	if left != arena.NoNode && layout.IsPair(s.Type(left)) {
		layout.MakeChildrenPermanent(s, left, layout.Right,
			s.Type(left) != s.Type(first) || !layout.IsTemporaryPair(s, first, layout.Left))
	}
	if right != arena.NoNode && layout.IsPair(s.Type(right)) {
		layout.MakeChildrenPermanent(s, right, layout.Left,
			s.Type(right) != s.Type(last) || !layout.IsTemporaryPair(s, last, layout.Right))
	}

	// a^b^c reads (a^b)^c: parenthesize the base of a neighbouring power.
	if layout.IsSuffixSuperscript(s, first) {
		var power *arena.Ref
		if right != arena.NoNode && layout.IsSuffixSuperscript(s, right) {
			power = s.Ref(right)
			defer s.Release(power)
		}
		if left != arena.NoNode && layout.IsSuffixSuperscript(s, left) {
			// ^c left of a^b: (a^b)
			lp := c.wrapCollapsableInParentheses(c.rack.Node(), c.position-1)
			c.position = lp + 1
		}
		if power != nil {
			// ^b right of a in a^c: (a)^c
			if index := s.IndexOfChild(c.rack.Node(), power.Node()); index > 0 {
				lp := c.wrapCollapsableInParentheses(c.rack.Node(), index-1)
				c.rack.Set(s.Child(s.Child(c.rack.Node(), lp), 0))
				c.position = c.count()
			}
		}
	}

	first = s.Child(inserted.Node(), 0)
	forced := forceRight || forceLeft
	var target *arena.Ref
	if !forced {
		deep := layout.DeepChildToPointToWhenInserting(s, inserted.Node())
		if layout.IsPair(s.Type(deep)) {
			deep = s.Child(deep, 0)
		}
		if deep != inserted.Node() {
			target = s.Ref(deep)
			defer s.Release(target)
		}
	}

	n := s.NumberOfChildren(inserted.Node())
	pairInserted := n == 1 && layout.IsPair(s.Type(first))
	var single *arena.Ref
	if n == 1 {
		single = s.Ref(first)
		defer s.Release(single)
	}
	nary.AddOrMergeChildAtIndex(s, c.rack.Node(), inserted.Node(), c.position)
	if !forceLeft {
		c.position += n
	}

	if n == 1 && !pairInserted {
		if collapse {
			c.collapseSiblings(single)
			c.position = s.IndexOfChild(c.rack.Node(), single.Node())
			if !forceLeft {
				c.position++
			}
		}
		index := layout.OutsideIndex
		if !forced {
			index = layout.IndexToPointToWhenInserting(s, single.Node())
		}
		if index != layout.OutsideIndex {
			if target == nil {
				target = s.Ref(arena.NoNode)
				defer s.Release(target)
			}
			target.Set(s.Child(single.Node(), index))
		}
	}

	if target != nil && target.Valid() {
		c.moveCursorToLayout(target.Node(), layout.Left)
	}

	balance.Balance(s, c.root, c.rack, &c.position)

	if method.AfterInserting {
		c.beautifier.AfterInsertion(c.beautifyCursor())
	}
}

// wrapCollapsableInParentheses moves the child at index of rack, with the
// layouts left of it it can collapse with, into new parentheses. It returns
// the index of the parentheses.
func (c *Cursor) wrapCollapsableInParentheses(rack arena.Node, index int) int {
	s := c.s
	lp := index + 1
	for lp > 0 && layout.IsCollapsable(s, rack, lp-1, layout.Left) {
		lp--
	}
	r := s.Ref(rack)
	defer s.Release(r)
	parens := s.Ref(layout.Parens(layout.Rack()).Push(s))
	defer s.Release(parens)
	nary.MoveChildren(s, s.Child(parens.Node(), 0), r.Node(), lp, index+1, 0)
	nary.AddChildAtIndex(s, r.Node(), parens.Node(), lp)
	return lp
}

// collapseSiblings lets l absorb the neighbours it collapses with.
func (c *Cursor) collapseSiblings(l *arena.Ref) {
	for _, dir := range []layout.Direction{layout.Right, layout.Left} {
		t := c.s.Type(l.Node())
		if layout.ShouldCollapseSiblingsOnDirection(t, dir) {
			c.collapseSiblingsOnDirection(l, dir, layout.CollapsingAbsorbingChildIndex(t, dir))
		}
	}
}

// collapseSiblingsOnDirection moves the siblings of l on side dir into its
// empty child absorbing until one can not be collapsed. Inserting √ in
// 1+√45+3 gives 1+√(45)+3.
func (c *Cursor) collapseSiblingsOnDirection(l *arena.Ref, dir layout.Direction, absorbing int) {
	s := c.s
	if !layout.IsEmptyRack(s, s.Child(l.Node(), absorbing)) {
		return
	}
	rack := c.rack.Node()
	index := s.IndexOfChild(rack, l.Node())
	count := s.NumberOfChildren(rack)
	step := 1
	if dir == layout.Left {
		step = -1
	}
	for {
		if (dir == layout.Right && index == count-1) || (dir == layout.Left && index == 0) {
			return
		}
		sibling := index + step
		if !layout.IsCollapsable(s, rack, sibling, dir) {
			return
		}
		detached := nary.DetachChildAtIndex(s, rack, sibling)
		target := s.Child(l.Node(), absorbing)
		at := 0
		if dir == layout.Right {
			at = s.NumberOfChildren(target)
		}
		nary.AddChildAtIndex(s, target, detached, at)
		count--
		if dir == layout.Left {
			index--
		}
	}
}

// InsertText inserts text as code point layouts. Outside linear mode
// brackets become pairs temporary on their closing side, left to the
// balancer. In linear mode without forced side, the cursor lands on the
// first U+0011 of text.
func (c *Cursor) InsertText(text string, forceRight, forceLeft, linear bool) {
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return
	}
	var items []layout.Tree
	toFirstEmpty := linear && !forceLeft && !forceRight
	for i := 0; i < len(clusters); i++ {
		cluster := clusters[i]
		r := cluster[0]
		if r == layout.EmptyCodePoint {
			if toFirstEmpty {
				// Insert the text before the mark, then the rest with the
				// cursor forced left of it.
				c.InsertLayout(layout.Rack(items...), false, false, true)
				items = nil
				forceLeft = true
				toFirstEmpty = false
			}
			if !linear && i+1 < len(clusters) && string(clusters[i+1]) == ")" {
				// cos(\x11) becomes cos( with a temporary closing side.
				i++
			}
			continue
		}
		if t, side, ok := layout.BracketCodePoint(r); ok && !linear && len(cluster) == 1 {
			items = append(items, layout.Pair(t, side != layout.Left, side == layout.Left, layout.Rack()))
			continue
		}
		items = append(items, clusterLayouts(cluster)...)
	}
	c.InsertLayout(layout.Rack(items...), forceRight, forceLeft, true)
}

// graphemes splits text into grapheme clusters after canonical composition,
// so that e followed by U+0301 is the single code point é.
func graphemes(text string) [][]rune {
	var out [][]rune
	g := uniseg.NewGraphemes(norm.NFC.String(text))
	for g.Next() {
		out = append(out, g.Runes())
	}
	return out
}

// clusterLayouts turns a grapheme cluster into code point layouts. A base
// with a combining mark that has no precomposed form becomes a combined code
// point.
func clusterLayouts(cluster []rune) []layout.Tree {
	out := make([]layout.Tree, 0, len(cluster))
	for i := 0; i < len(cluster); i++ {
		if i+1 < len(cluster) && unicode.Is(unicode.Mn, cluster[i+1]) {
			out = append(out, layout.Combined(cluster[i], cluster[i+1]))
			i++
			continue
		}
		out = append(out, layout.CodePoint(cluster[i]))
	}
	return out
}
