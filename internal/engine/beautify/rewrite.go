package beautify

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/nary"
)

// identifiersLeftOf tokenizes the run of identifier code points of rack
// ending at rightmost and applies rules to its tokens. Rules with parameters
// only apply to the last token, when parentheses follow it. With
// withLogarithm, "log" followed by a number and parentheses becomes a
// logarithm in that base.
func (r *Rules) identifiersLeftOf(c Cursor, rack arena.Node, rightmost int, rules map[string]Rule, withLogarithm bool) bool {
	s := c.Stack
	followedByParenthesis := rightmost < s.NumberOfChildren(rack)-1 &&
		s.Type(s.Child(rack, rightmost+1)) == layout.TypeParentheses

	first := rightmost + 1
	for first > 0 && layout.IsIdentifierNode(s, s.Child(rack, first-1)) {
		first--
	}
	if first > rightmost {
		return false
	}
	text := make([]rune, 0, rightmost-first+1)
	for i := first; i <= rightmost; i++ {
		text = append(text, layout.CodePointOf(s, s.Child(rack, i)))
	}
	tokens := r.tokenizer.Tokenize(text)

	beautified := false
	index := first
	for k, tok := range tokens {
		last := k == len(tokens)-1
		if withLogarithm && followedByParenthesis && k == len(tokens)-2 &&
			tok.Text == logRule.Alias && tokens[k+1].Kind == Number {
			from := index + tok.Length
			base := nary.CloneSubRange(s, rack, from, from+tokens[k+1].Length)
			if _, ok := r.replace(c, rack, index, from+tokens[k+1].Length-1, logRule, base, logBaseIndex); ok {
				return true
			}
			return beautified
		}
		rule, ok := rules[tok.Text]
		if ok && (rule.Parameters == 0 || (followedByParenthesis && last)) {
			if added, done := r.replace(c, rack, index, index+tok.Length-1, rule, arena.NoNode, -1); done {
				beautified = true
				index += tok.Length + added
				continue
			}
		}
		index += tok.Length
	}
	return beautified
}

// symbolsLeftOf applies the first symbol rule whose alias ends at rightmost.
func (r *Rules) symbolsLeftOf(c Cursor, rack arena.Node, rightmost int) bool {
	s := c.Stack
	if !layout.IsCodePoint(s.Type(s.Child(rack, rightmost))) {
		return false
	}
	for _, rule := range r.symbols {
		pattern := []rune(rule.Alias)
		start := rightmost - len(pattern) + 1
		if len(pattern) == 0 || start < 0 {
			continue
		}
		matches := true
		for i, p := range pattern {
			if !layout.IsCodePointNode(s, s.Child(rack, start+i), p) {
				matches = false
				break
			}
		}
		if !matches {
			continue
		}
		_, ok := r.replace(c, rack, start, rightmost, rule, arena.NoNode, -1)
		return ok
	}
	return false
}

// pipeKey turns a typed "|" into an absolute value holding the cursor.
func (r *Rules) pipeKey(c Cursor, rack arena.Node, index int) bool {
	s := c.Stack
	if !layout.IsCodePointNode(s, s.Child(rack, index), '|') {
		return false
	}
	nary.RemoveChildAtIndex(s, rack, index)
	abs := layout.Unary(layout.TypeAbs, layout.Rack()).Push(s)
	abs = nary.AddChildAtIndex(s, rack, abs, index)
	if c.Rack.Node() == rack && *c.Position == index+1 {
		c.set(s.Child(abs, 0), 0)
	}
	Log.WithFields(logrus.Fields{"index": index}).Debug("pipe beautified")
	return true
}

// fractionIntoDerivative turns d/dx followed by parentheses into a
// derivative.
func (r *Rules) fractionIntoDerivative(c Cursor, rack arena.Node, index int) bool {
	s := c.Stack
	ddx := layout.Frac(layout.Text("d"), layout.Text("dx")).Push(s)
	identical := s.IsIdentical(ddx, s.Child(rack, index))
	s.RemoveTree(ddx)
	if !identical {
		return false
	}
	_, ok := r.replace(c, rack, index, index, diffRule, arena.NoNode, -1)
	return ok
}

// nthOrderDerivative turns a superscript typed on the variable of a first
// order derivative into the order of an nth derivative.
func (r *Rules) nthOrderDerivative(c Cursor, rack arena.Node, index int) bool {
	s := c.Stack
	superscript := s.Child(rack, index)
	if !layout.IsSuffixSuperscript(s, superscript) {
		return false
	}
	diff, childIndex := s.ParentOfDescendant(c.Root, rack)
	if diff == arena.NoNode || s.Type(diff) != layout.TypeDiff ||
		childIndex != layout.DiffVariable || layout.IsNthDiff(s, diff) ||
		layout.GetDiffState(s, diff).Variable != layout.FractionSlot {
		return false
	}
	d := s.Ref(diff)
	defer s.Release(d)
	cursorInRack := c.Rack.Node() == rack
	sup := s.Ref(nary.DetachChildAtIndex(s, rack, index))
	defer s.Release(sup)
	s.MoveTreeOverTree(s.Child(d.Node(), layout.DiffOrder), s.Child(sup.Node(), 0))
	s.RemoveNode(sup.Node())
	if cursorInRack && *c.Position > index {
		*c.Position--
	}
	layout.SetNthDiff(s, d.Node(), true)
	Log.WithFields(logrus.Fields{"index": index}).Debug("derivative order beautified")
	return true
}

// sum beautifies "sum(" into a sum once a comma is typed inside the
// parentheses, since sum of a list reads the same until then.
func (r *Rules) sum(c Cursor, rack arena.Node, index int) bool {
	s := c.Stack
	if !layout.IsCodePointNode(s, s.Child(rack, index), ',') {
		return false
	}
	parenthesis := s.Parent(c.Root, rack)
	if parenthesis == arena.NoNode || s.Type(parenthesis) != layout.TypeParentheses {
		return false
	}
	parent, at := s.ParentOfDescendant(c.Root, parenthesis)
	if parent == arena.NoNode || s.Type(parent) != layout.TypeRack {
		return false
	}
	name := []rune(sumRule.Alias)
	if at < len(name) {
		return false
	}
	for i, p := range name {
		if !layout.IsCodePointNode(s, s.Child(parent, at-len(name)+i), p) {
			return false
		}
	}
	if !r.identifiersLeftOf(c, parent, at-1, map[string]Rule{sumRule.Alias: sumRule}, false) {
		return false
	}
	sum, i := s.ParentOfDescendant(c.Root, c.Rack.Node())
	if sum != arena.NoNode && s.Type(sum) == layout.TypeSum && i == layout.ParametricVariable {
		c.set(s.Child(sum, layout.ParametricLower), 0)
	}
	return true
}

// replace removes the children of rack in [start, end] and inserts the
// layout built by rule in their place. A rule with parameters also consumes
// the parentheses after end. pre, when set, is the already built parameter
// at preIndex. It returns the change in the number of children of rack and
// whether the rule applied.
func (r *Rules) replace(c Cursor, rack arena.Node, start, end int, rule Rule, pre arena.Node, preIndex int) (int, bool) {
	s := c.Stack
	before := s.NumberOfChildren(rack)
	params := make([]*arena.Ref, rule.Parameters)
	defer func() {
		for _, p := range params {
			if p != nil {
				s.Release(p)
			}
		}
	}()
	if pre != arena.NoNode {
		params[preIndex] = s.Ref(pre)
	}
	if rule.Parameters > 0 {
		end++
		if !r.parameters(c, rack, end, params) {
			if pre != arena.NoNode {
				s.RemoveTree(params[preIndex].Node())
			}
			return 0, false
		}
	}
	inserted := s.Ref(rule.Build(s, params))
	defer s.Release(inserted)

	removed := end - start + 1
	cursorInRack := c.Rack.Node() == rack
	insideRemoved := cursorInRack && *c.Position > start && *c.Position <= end
	afterRemoved := cursorInRack && *c.Position > end
	nary.RemoveChildren(s, rack, start, end+1)
	added := nary.AddOrMergeChildAtIndex(s, rack, inserted.Node(), start)
	switch {
	case insideRemoved:
		*c.Position = start
	case afterRemoved:
		*c.Position += added - removed
	}
	Log.WithFields(logrus.Fields{
		"alias": rule.Alias,
		"start": start,
		"end":   end,
	}).Debug("layouts beautified")
	return s.NumberOfChildren(rack) - before, true
}

// parameters splits the content of the parentheses at index of rack on
// commas into the empty slots of params. Missing arguments are empty racks.
// It reports false, leaving the stack as it was, when there are too many
// arguments. A cursor inside the parentheses follows its layouts into the
// parameters.
func (r *Rules) parameters(c Cursor, rack arena.Node, index int, params []*arena.Ref) bool {
	s := c.Stack
	mark := s.End()
	content := s.Child(s.Child(rack, index), 0)
	n := s.NumberOfChildren(content)
	cursorRack := c.Rack.Node()
	cursorPosition := -1
	if cursorRack == content {
		cursorPosition = *c.Position
	}
	var target *arena.Ref
	targetPosition := 0

	next := func(from int) int {
		for from < len(params) && params[from] != nil {
			from++
		}
		return from
	}
	p := next(0)
	current := s.Ref(layout.Rack().Push(s))
	defer s.Release(current)
	for i := 0; i <= n; i++ {
		if p >= len(params) {
			if target != nil {
				s.Release(target)
			}
			for j := range params {
				if params[j] != nil && params[j].Node() >= mark {
					s.Release(params[j])
					params[j] = nil
				}
			}
			s.DropFrom(mark)
			return false
		}
		if cursorPosition == i {
			target = s.Ref(current.Node())
			targetPosition = s.NumberOfChildren(current.Node())
		}
		if i == n || layout.IsCodePointNode(s, s.Child(content, i), ',') {
			params[p] = s.Ref(current.Node())
			p = next(p + 1)
			current.Set(layout.Rack().Push(s))
			continue
		}
		child := s.Child(content, i)
		inside := s.HasAncestor(cursorRack, child, false)
		offset := cursorRack - child
		clone := nary.AddChild(s, current.Node(), s.Clone(child))
		if inside {
			target = s.Ref(clone + offset)
			targetPosition = *c.Position
		}
	}
	s.RemoveTree(current.Node())
	for ; p < len(params); p = next(p + 1) {
		params[p] = s.Ref(layout.Rack().Push(s))
	}
	if target != nil {
		c.Rack.Set(target.Node())
		*c.Position = targetPosition
		s.Release(target)
	}
	return true
}
