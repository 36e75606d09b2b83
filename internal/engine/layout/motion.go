package layout

import "github.com/dshills/mathfield/internal/engine/arena"

// IndexAfterHorizontalCursorMove returns the child of n the cursor enters
// when it moves horizontally from index, OutsideIndex to leave n. index is
// OutsideIndex when the cursor comes from a sibling of n. Derivatives record
// which of their variable and order slots the cursor uses.
func IndexAfterHorizontalCursorMove(s *arena.Stack, n arena.Node, dir Direction, index int) int {
	right := dir == Right
	pick := func(r, l int) int {
		if right {
			return r
		}
		return l
	}
	switch t := s.Type(n); {
	case t == TypeFraction || IsTwoRows(t):
		if index == OutsideIndex {
			return pick(TwoRowsUpper, TwoRowsLower)
		}
		return OutsideIndex
	case IsGrid(t):
		g := AsGrid(s, n)
		if index == OutsideIndex {
			if right {
				return 0
			}
			row := g.Rows() - 1
			if !g.RowsFixed() {
				row--
			}
			col := g.Columns() - 1
			if !g.ColumnsFixed() {
				col--
			}
			return g.IndexAt(row, col)
		}
		if (!right && g.IsLeft(index)) || (right && g.IsRight(index)) {
			return OutsideIndex
		}
		return index + pick(1, -1)
	case t == TypeDiff:
		next, st := diffHorizontal(IsNthDiff(s, n), dir, index, GetDiffState(s, n))
		SetDiffState(s, n, st)
		return next
	case t == TypeIntegral:
		switch index {
		case OutsideIndex:
			return pick(IntegralUpper, IntegralDifferential)
		case IntegralUpper, IntegralLower:
			return pick(IntegralIntegrand, OutsideIndex)
		case IntegralIntegrand:
			return pick(IntegralDifferential, IntegralLower)
		default:
			return pick(OutsideIndex, IntegralIntegrand)
		}
	case t == TypePtBinomial || t == TypePtPermute:
		switch index {
		case OutsideIndex:
			return pick(PtN, PtK)
		case PtN:
			return pick(PtK, OutsideIndex)
		default:
			return pick(OutsideIndex, PtN)
		}
	case t == TypeListSequence:
		switch index {
		case OutsideIndex:
			return pick(ListSequenceFunction, ListSequenceUpper)
		case ListSequenceFunction:
			return pick(ListSequenceVariable, OutsideIndex)
		case ListSequenceVariable:
			return pick(ListSequenceUpper, ListSequenceFunction)
		default:
			return pick(OutsideIndex, ListSequenceVariable)
		}
	case t == TypeRoot:
		switch index {
		case OutsideIndex:
			return pick(RootIndex, RootRadicand)
		case RootIndex:
			return pick(RootRadicand, OutsideIndex)
		default:
			return pick(OutsideIndex, RootIndex)
		}
	case IsParametric(t):
		switch index {
		case OutsideIndex:
			return pick(ParametricUpper, ParametricArgument)
		case ParametricUpper:
			return pick(ParametricArgument, OutsideIndex)
		case ParametricVariable:
			return pick(ParametricLower, OutsideIndex)
		case ParametricLower:
			return pick(ParametricArgument, ParametricVariable)
		default:
			return pick(OutsideIndex, ParametricLower)
		}
	}
	switch s.NumberOfChildren(n) {
	case 0:
		return OutsideIndex
	case 1:
		if index == OutsideIndex {
			return 0
		}
		return OutsideIndex
	}
	return CantMoveIndex
}

// IndexAfterVerticalCursorMove returns the child of n the cursor enters when
// it moves vertically from index, OutsideIndex to leave n, or CantMoveIndex
// when n does not handle the move. pos tells where the cursor sits in the
// rack it leaves, or on which side of n it is when index is OutsideIndex.
func IndexAfterVerticalCursorMove(s *arena.Stack, n arena.Node, dir Direction, index int, pos PositionInLayout) int {
	up := dir == Up
	down := !up
	switch t := s.Type(n); {
	case t == TypeFraction || IsTwoRows(t):
		if t == TypeFraction && index == OutsideIndex {
			if up {
				return TwoRowsUpper
			}
			return TwoRowsLower
		}
		if index == TwoRowsLower && up {
			return TwoRowsUpper
		}
		if index == TwoRowsUpper && down {
			return TwoRowsLower
		}
		return CantMoveIndex
	case IsGrid(t):
		g := AsGrid(s, n)
		if index == OutsideIndex {
			return CantMoveIndex
		}
		if up && !g.IsTop(index) {
			return index - g.Columns()
		}
		if down && !g.IsBottom(index) {
			return index + g.Columns()
		}
		return CantMoveIndex
	case t == TypeDiff:
		next, st := diffVertical(IsNthDiff(s, n), dir, index, pos, GetDiffState(s, n))
		SetDiffState(s, n, st)
		return next
	case t == TypeIntegral:
		if index == IntegralIntegrand && pos == AtLeft {
			if up {
				return IntegralUpper
			}
			return IntegralLower
		}
		if index == IntegralUpper && down {
			return IntegralLower
		}
		if index == IntegralLower && up {
			return IntegralUpper
		}
		return CantMoveIndex
	case t == TypePtBinomial || t == TypePtPermute:
		if up && (index == PtK || (index == OutsideIndex && pos == AtLeft)) {
			return PtN
		}
		if down && (index == PtN || (index == OutsideIndex && pos == AtRight)) {
			return PtK
		}
		return CantMoveIndex
	case t == TypeRoot:
		if up && pos == AtLeft && (index == OutsideIndex || index == RootRadicand) {
			return RootIndex
		}
		if down && index == RootIndex && pos != AtMiddle {
			if pos == AtRight {
				return RootRadicand
			}
			return OutsideIndex
		}
		return CantMoveIndex
	case IsParametric(t):
		atLeftOfArgument := pos == AtLeft && (index == OutsideIndex || index == ParametricArgument)
		if up && (index == ParametricVariable || index == ParametricLower || atLeftOfArgument) {
			return ParametricUpper
		}
		if down && (index == ParametricUpper || atLeftOfArgument) {
			return ParametricLower
		}
		return CantMoveIndex
	case t == TypeVerticalOffset:
		if index == OutsideIndex && ((up && IsSuperscript(s, n)) || (down && IsSubscript(s, n))) {
			return 0
		}
		if index == 0 && ((down && IsSuperscript(s, n)) || (up && IsSubscript(s, n))) && pos != AtMiddle {
			return OutsideIndex
		}
		return CantMoveIndex
	}
	return CantMoveIndex
}

// IndexToPointToWhenInserting returns the child of a freshly inserted node n
// that receives the cursor, or OutsideIndex.
func IndexToPointToWhenInserting(s *arena.Stack, n arena.Node) int {
	switch t := s.Type(n); {
	case IsParametric(t):
		return ParametricLower
	case t == TypeIntegral:
		return IntegralLower
	case t == TypeDiff:
		return DiffDerivand
	case t == TypeListSequence:
		return ListSequenceFunction
	case t == TypeFraction:
		if IsEmptyRack(s, s.Child(n, FractionNumerator)) {
			return FractionNumerator
		}
		return FractionDenominator
	}
	if s.NumberOfChildren(n) > 0 {
		return 0
	}
	return OutsideIndex
}

// DeepChildToPointToWhenInserting returns the descendant of n that receives
// the cursor once n is inserted: the first empty rack, or the first bracket
// pair unless its left side is temporary, in which case n itself.
func DeepChildToPointToWhenInserting(s *arena.Stack, n arena.Node) arena.Node {
	target := n
	s.Walk(n, func(d arena.Node) bool {
		if IsEmptyRack(s, d) {
			target = d
			return false
		}
		if IsPair(s.Type(d)) {
			if !IsTemporary(s, d, Left) {
				target = d
			}
			return false
		}
		return true
	})
	return target
}
