package balance

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/nary"
)

// Types lists the bracket types Balance processes, in order.
var Types = []arena.Type{layout.TypeParentheses, layout.TypeCurlyBraces}

// maxRounds bounds the rounds of Balance. Absorbing a pair of one type can
// lift pairs of the other type one level up; the next round pairs them.
const maxRounds = 4

// Balance rewrites the rack rooted at root for every bracket type, repeating
// until a round changes neither the tree nor the cursor. cursor designates
// the cursor rack and is repointed into the rewritten tree along with
// position. root keeps its offset.
func Balance(s *arena.Stack, root arena.Node, cursor *arena.Ref, position *int) {
	for round := 1; round <= maxRounds; round++ {
		before := slices.Clone(s.TreeBlocks(root))
		rack, pos := cursor.Node(), *position
		for _, t := range Types {
			Type(s, t, root, cursor, position)
		}
		if cursor.Node() == rack && *position == pos && slices.Equal(before, s.TreeBlocks(root)) {
			return
		}
		Log.WithField("round", round).Debug("balancing again")
	}
}

// Type balances the pairs of type t inside root.
func Type(s *arena.Stack, t arena.Type, root arena.Node, cursor *arena.Ref, position *int) {
	if !containsType(s, root, t) {
		return
	}
	b := &balancer{s: s, t: t, cursor: cursor, position: position}
	b.run(root)
}

func containsType(s *arena.Stack, root arena.Node, t arena.Type) bool {
	found := false
	s.Walk(root, func(n arena.Node) bool {
		if s.Type(n) == t {
			found = true
		}
		return !found
	})
	return found
}

// NestingLevel counts the pairs of type t around rack, up to the nearest
// enclosing node of another type. Pairs temporary on both sides are about to
// disappear and do not count.
func NestingLevel(s *arena.Stack, t arena.Type, root, rack arena.Node) int {
	level := 0
	for i, a := range s.Ancestors(root, rack) {
		if i%2 == 0 {
			// racks
			continue
		}
		if s.Type(a) != t {
			level = 0
			continue
		}
		if !layout.IsTemporary(s, a, layout.Left) || !layout.IsTemporary(s, a, layout.Right) {
			level++
		}
	}
	return level
}

type balancer struct {
	s        *arena.Stack
	t        arena.Type
	cursor   *arena.Ref
	position *int
}

// run reads the tree of root from left to right and writes a balanced copy
// at the write head, then moves the copy over root.
func (b *balancer) run(root arena.Node) {
	s := b.s
	cursorLevel := -1
	if *b.position == 0 && s.HasAncestor(b.cursor.Node(), root, true) {
		cursorLevel = NestingLevel(s, b.t, root, b.cursor.Node())
	}

	result := s.Ref(layout.Rack().Push(s))
	written := s.Ref(result.Node())
	defer s.Release(result)
	defer s.Release(written)

	readRack := root
	readIndex := 0
	for {
		if readRack == b.cursor.Node() && readIndex == *b.position {
			b.cursor.Set(written.Node())
			*b.position = s.NumberOfChildren(written.Node())
		}

		if readIndex < s.NumberOfChildren(readRack) {
			child := s.Child(readRack, readIndex)
			if s.Type(child) != b.t {
				b.copyChild(child, written)
				readIndex++
				continue
			}
			if !layout.IsTemporary(s, child, layout.Left) {
				pair := layout.Pair(b.t, false, true, layout.Rack()).Push(s)
				pair = nary.AddChild(s, written.Node(), pair)
				written.Set(s.Child(pair, 0))
			}
			readRack = s.Child(child, 0)
			readIndex = 0
			continue
		}

		if readRack == root {
			break
		}

		// End of a pair's interior: leave it.
		readPair := s.Parent(root, readRack)
		parent, index := s.ParentOfDescendant(root, readPair)
		readRack = parent
		readIndex = index + 1

		if layout.IsTemporary(s, readPair, layout.Right) {
			continue
		}
		if open := s.Parent(result.Node(), written.Node()); open != arena.NoNode {
			layout.SetTemporary(s, open, layout.Right, false)
			written.Set(s.Parent(result.Node(), open))
			continue
		}
		b.wrapLeft(result)
		written.Set(result.Node())
	}

	if cursorLevel >= 0 && *b.position == 0 {
		level := NestingLevel(s, b.t, result.Node(), b.cursor.Node())
		for level > cursorLevel && *b.position == 0 {
			pair := s.Parent(result.Node(), b.cursor.Node())
			rack, index := s.ParentOfDescendant(result.Node(), pair)
			b.cursor.Set(rack)
			*b.position = index
			level--
		}
	}

	Log.WithFields(logrus.Fields{
		"type":     b.t.String(),
		"root":     root,
		"position": *b.position,
	}).Debug("brackets balanced")
	s.MoveTreeOverTree(root, result.Node())
}

// copyChild appends a copy of child to the written rack. The interior of a
// copied pair of another type is balanced in turn. When the cursor lies
// inside child, it follows into the copy and the rack of the copy holding it
// is balanced too.
func (b *balancer) copyChild(child arena.Node, written *arena.Ref) {
	s := b.s
	cursor := b.cursor.Node()
	inside := s.HasAncestor(cursor, child, false)
	offset := cursor - child
	clone := nary.AddChild(s, written.Node(), s.Clone(child))
	if inside {
		b.cursor.Set(clone + offset)
	}
	if layout.IsPair(s.Type(clone)) {
		Type(s, b.t, s.Child(clone, 0), b.cursor, b.position)
		return
	}
	if !inside {
		return
	}
	for _, rack := range s.Children(clone) {
		if s.HasAncestor(b.cursor.Node(), rack, true) {
			Type(s, b.t, rack, b.cursor, b.position)
			return
		}
	}
}

// wrapLeft moves the whole result into a new pair temporary on the left: a
// closing bracket was read with no opening bracket left to match.
func (b *balancer) wrapLeft(result *arena.Ref) {
	s := b.s
	pair := s.Ref(layout.Pair(b.t, true, false, layout.Rack()).Push(s))
	defer s.Release(pair)
	s.MoveTreeOverTree(s.Child(pair.Node(), 0), result.Node())
	rack := s.InsertTreeBefore(pair.Node(), layout.Rack().Blocks())
	nary.SetNumberOfChildren(s, rack, 1)
	result.Set(rack)
}
