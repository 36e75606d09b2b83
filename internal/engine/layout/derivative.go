package layout

import "github.com/dshills/mathfield/internal/engine/arena"

const (
	diffNth              arena.Block = 1 << 0
	diffAssignment       arena.Block = 1 << 1
	diffDenominatorOrder arena.Block = 1 << 2
)

// VariableSlot is where the variable of a derivative is currently edited.
// The variable is drawn twice, in the "d/dx" fraction and in the "x=a"
// assignment; the slot records which copy owns the cursor.
type VariableSlot uint8

const (
	FractionSlot VariableSlot = iota
	AssignmentSlot
)

// OrderSlot is where the order of an nth derivative is currently edited.
type OrderSlot uint8

const (
	NumeratorSlot OrderSlot = iota
	DenominatorSlot
)

// DiffState is the editing state stored in a derivative node.
type DiffState struct {
	Variable VariableSlot
	Order    OrderSlot
}

// IsNthDiff reports whether the derivative n has an explicit order.
func IsNthDiff(s *arena.Stack, n arena.Node) bool {
	return s.Payload(n, 0)&diffNth != 0
}

// SetNthDiff switches the derivative n to or from its nth form.
func SetNthDiff(s *arena.Stack, n arena.Node, nth bool) {
	flags := s.Payload(n, 0) &^ diffNth
	if nth {
		flags |= diffNth
	}
	s.SetPayload(n, 0, flags)
}

// GetDiffState reads the slot state of the derivative n.
func GetDiffState(s *arena.Stack, n arena.Node) DiffState {
	flags := s.Payload(n, 0)
	var st DiffState
	if flags&diffAssignment != 0 {
		st.Variable = AssignmentSlot
	}
	if flags&diffDenominatorOrder != 0 {
		st.Order = DenominatorSlot
	}
	return st
}

// SetDiffState stores the slot state of the derivative n.
func SetDiffState(s *arena.Stack, n arena.Node, st DiffState) {
	flags := s.Payload(n, 0) &^ (diffAssignment | diffDenominatorOrder)
	if st.Variable == AssignmentSlot {
		flags |= diffAssignment
	}
	if st.Order == DenominatorSlot {
		flags |= diffDenominatorOrder
	}
	s.SetPayload(n, 0, flags)
}

// diffHorizontal is the horizontal transition table of a derivative:
// (nth, direction, index, state) -> (index, state).
func diffHorizontal(nth bool, dir Direction, index int, st DiffState) (int, DiffState) {
	right := dir == Right
	if !nth {
		if index == DiffDerivand {
			if right {
				st.Variable = AssignmentSlot
			} else {
				st.Variable = FractionSlot
			}
			return DiffVariable, st
		}
		if index == DiffVariable && st.Variable == FractionSlot {
			if right {
				return DiffDerivand, st
			}
			return OutsideIndex, st
		}
	} else {
		if index == DiffDerivand {
			if right {
				st.Variable = AssignmentSlot
				return DiffVariable, st
			}
			st.Order = DenominatorSlot
			return DiffOrder, st
		}
		if index == DiffVariable && st.Variable == FractionSlot {
			if right {
				st.Order = DenominatorSlot
				return DiffOrder, st
			}
			return OutsideIndex, st
		}
		if index == DiffOrder {
			if st.Order == DenominatorSlot {
				if !right {
					st.Variable = FractionSlot
					return DiffVariable, st
				}
				return DiffDerivand, st
			}
			if right {
				return DiffDerivand, st
			}
			return OutsideIndex, st
		}
	}
	if index == OutsideIndex && right {
		st.Variable = FractionSlot
		return DiffVariable, st
	}
	if index == DiffAbscissa && !right {
		st.Variable = AssignmentSlot
		return DiffVariable, st
	}
	switch index {
	case OutsideIndex:
		return DiffAbscissa, st
	case DiffAbscissa:
		return OutsideIndex, st
	default:
		if right {
			return DiffAbscissa, st
		}
		return DiffDerivand, st
	}
}

// diffVertical is the vertical transition table of a derivative.
func diffVertical(nth bool, dir Direction, index int, pos PositionInLayout, st DiffState) (int, DiffState) {
	up := dir == Up
	if !nth {
		if !up && index == DiffDerivand && pos == AtLeft {
			st.Variable = FractionSlot
			return DiffVariable, st
		}
		if up && index == DiffVariable && st.Variable == FractionSlot {
			return DiffDerivand, st
		}
	} else {
		if up && index == DiffVariable && st.Variable == FractionSlot {
			if pos == AtRight {
				st.Order = DenominatorSlot
			} else {
				st.Order = NumeratorSlot
			}
			return DiffOrder, st
		}
		if up && ((index == DiffDerivand && pos == AtLeft) ||
			(index == DiffOrder && st.Order == DenominatorSlot)) {
			st.Order = NumeratorSlot
			return DiffOrder, st
		}
		if !up && ((index == DiffDerivand && pos == AtLeft) ||
			(index == DiffOrder && st.Order == NumeratorSlot)) {
			st.Order = DenominatorSlot
			return DiffOrder, st
		}
		if !up && index == DiffOrder && st.Order == DenominatorSlot && pos == AtLeft {
			st.Variable = FractionSlot
			return DiffVariable, st
		}
	}
	if up && index == DiffVariable && st.Variable == AssignmentSlot {
		return DiffDerivand, st
	}
	if !up && index == DiffDerivand && pos == AtRight {
		return DiffAbscissa, st
	}
	return CantMoveIndex, st
}
