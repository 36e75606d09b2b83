package layout

import "github.com/dshills/mathfield/internal/engine/arena"

// IsEmptyRack reports whether n is a rack without children.
func IsEmptyRack(s *arena.Stack, n arena.Node) bool {
	return s.Type(n) == TypeRack && s.NumberOfChildren(n) == 0
}

// IsTrivialRack reports whether the rack n holds exactly one layout that is
// not a vertical offset.
func IsTrivialRack(s *arena.Stack, n arena.Node) bool {
	return s.NumberOfChildren(n) == 1 && s.Type(s.Child(n, 0)) != TypeVerticalOffset
}

// FindBase returns the index of the layout a vertical offset at index applies
// to, or -1 when it has none. Suffix offsets look left past other offsets,
// prefix offsets look right.
func FindBase(s *arena.Stack, rack arena.Node, index int) int {
	offset := s.Child(rack, index)
	step := -1
	if IsPrefix(s, offset) {
		step = 1
	}
	count := s.NumberOfChildren(rack)
	for i := index + step; i >= 0 && i < count; i += step {
		c := s.Child(rack, i)
		if s.Type(c) != TypeVerticalOffset {
			return i
		}
		if IsPrefix(s, c) != IsPrefix(s, offset) {
			return -1
		}
	}
	return -1
}

// ChildrenOf returns the number of children of the rack n, treating NoNode
// as empty.
func ChildrenOf(s *arena.Stack, n arena.Node) int {
	if n == arena.NoNode {
		return 0
	}
	return s.NumberOfChildren(n)
}
