package layout

import "github.com/dshills/mathfield/internal/engine/arena"

// ShouldCollapseSiblingsOnDirection reports whether inserting n absorbs its
// neighbours on side dir.
func ShouldCollapseSiblingsOnDirection(t arena.Type, dir Direction) bool {
	if dir == Left {
		return t == TypeFraction
	}
	return t == TypeConj || t == TypeFraction || t == TypeSqrt || t == TypeRoot
}

// CollapsingAbsorbingChildIndex returns the child of a node of type t that
// receives the siblings absorbed on side dir.
func CollapsingAbsorbingChildIndex(t arena.Type, dir Direction) int {
	if dir == Right && t == TypeFraction {
		return FractionDenominator
	}
	return 0
}

// IsCollapsable reports whether the child at index of rack may be absorbed
// by a neighbour collapsing in direction dir.
func IsCollapsable(s *arena.Stack, rack arena.Node, index int, dir Direction) bool {
	n := s.Child(rack, index)
	switch s.Type(n) {
	case TypeFraction:
		// A fraction already absorbing something stays put, so that a
		// product of fractions needs no explicit sign.
		absorbing := index + 1
		if dir == Right {
			absorbing = index - 1
		}
		if absorbing < 0 || absorbing >= s.NumberOfChildren(rack) {
			return true
		}
		sibling := s.Child(rack, absorbing)
		if s.NumberOfChildren(sibling) == 0 {
			return true
		}
		return IsEmptyRack(s, s.Child(sibling, CollapsingAbsorbingChildIndex(s.Type(sibling), dir)))
	case TypeASCIICodePoint, TypeUnicodeCodePoint:
		r := CodePointOf(s, n)
		if r == '+' || r == RightwardsArrow || IsEquationOperator(r) || r == ',' {
			return false
		}
		if r == '-' {
			// Only the sign of an exponent, as in 3ᴇ-2.
			return index > 0 && IsCodePointNode(s, s.Child(rack, index-1), SmallCapitalE)
		}
		if r == '*' || r == MultiplicationSign || r == MiddleDot {
			var brother int
			switch {
			case index > 0 && dir == Left:
				brother = index - 1
			case index < s.NumberOfChildren(rack)-1 && dir == Right:
				brother = index + 1
			default:
				return true
			}
			return s.Type(s.Child(rack, brother)) != TypeFraction
		}
	}
	return true
}
