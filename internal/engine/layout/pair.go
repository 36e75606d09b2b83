package layout

import (
	"github.com/dshills/mathfield/internal/engine/arena"
)

const (
	pairLeftTemporary  arena.Block = 1 << 0
	pairRightTemporary arena.Block = 1 << 1
)

func sideMask(side Direction) arena.Block {
	if side == Left {
		return pairLeftTemporary
	}
	return pairRightTemporary
}

// IsTemporary reports whether side of the pair n is temporary.
func IsTemporary(s *arena.Stack, n arena.Node, side Direction) bool {
	return s.Payload(n, 0)&sideMask(side) != 0
}

// SetTemporary sets or clears the temporary flag of side of the pair n.
func SetTemporary(s *arena.Stack, n arena.Node, side Direction, temporary bool) {
	flags := s.Payload(n, 0) &^ sideMask(side)
	if temporary {
		flags |= sideMask(side)
	}
	s.SetPayload(n, 0, flags)
}

// IsTemporaryPair reports whether n is a pair whose side is temporary.
func IsTemporaryPair(s *arena.Stack, n arena.Node, side Direction) bool {
	return IsPair(s.Type(n)) && IsTemporary(s, n, side)
}

// ChildOnSide returns the outermost child of the pair's rack on side, or the
// rack itself when it is empty.
func ChildOnSide(s *arena.Stack, n arena.Node, side Direction) arena.Node {
	rack := s.Child(n, 0)
	count := s.NumberOfChildren(rack)
	if count == 0 {
		return rack
	}
	if side == Left {
		return s.Child(rack, 0)
	}
	return s.Child(rack, count-1)
}

// MakeChildrenPermanent clears the temporary flag on side of n and of the
// same-type pairs nested on that side. n itself is left untouched unless
// includeThis is set. For example (((1]]|] followed by "+" gives (((1))+|].
func MakeChildrenPermanent(s *arena.Stack, n arena.Node, side Direction, includeThis bool) {
	if !IsTemporary(s, n, side) {
		return
	}
	child := ChildOnSide(s, n, side)
	if s.Type(child) == s.Type(n) {
		MakeChildrenPermanent(s, child, side, true)
	}
	if includeThis {
		SetTemporary(s, n, side, false)
	}
}

// BracketCodePoint maps a bracket character to its pair type and side.
func BracketCodePoint(r rune) (arena.Type, Direction, bool) {
	switch r {
	case '(':
		return TypeParentheses, Left, true
	case ')':
		return TypeParentheses, Right, true
	case '{':
		return TypeCurlyBraces, Left, true
	case '}':
		return TypeCurlyBraces, Right, true
	}
	return 0, Left, false
}
