package layout

import "github.com/dshills/mathfield/internal/engine/arena"

// DeletionMethod is the action a backspace performs.
type DeletionMethod uint8

const (
	DeleteLayout DeletionMethod = iota
	DeleteParent
	MoveLeft
	FractionDenominatorDeletion
	TwoRowsMoveFromLowerToUpper
	GridMoveToUpperRow
	GridDeleteRow
	GridDeleteColumn
	GridDeleteColumnAndRow
	BracketPairMakeTemporary
)

var deletionMethodNames = [...]string{
	DeleteLayout:                "DeleteLayout",
	DeleteParent:                "DeleteParent",
	MoveLeft:                    "MoveLeft",
	FractionDenominatorDeletion: "FractionDenominatorDeletion",
	TwoRowsMoveFromLowerToUpper: "TwoRowsMoveFromLowerToUpper",
	GridMoveToUpperRow:          "GridMoveToUpperRow",
	GridDeleteRow:               "GridDeleteRow",
	GridDeleteColumn:            "GridDeleteColumn",
	GridDeleteColumnAndRow:      "GridDeleteColumnAndRow",
	BracketPairMakeTemporary:    "BracketPairMakeTemporary",
}

func (m DeletionMethod) String() string {
	if int(m) < len(deletionMethodNames) {
		return deletionMethodNames[m]
	}
	return "DeletionMethod(?)"
}

func deleteParentAt(index, argument int) DeletionMethod {
	if index == argument {
		return DeleteParent
	}
	return MoveLeft
}

// DeletionMethodForCursorLeftOfChild picks the backspace action for a cursor
// sitting left of child index of n, or right of n when index is
// OutsideIndex.
func DeletionMethodForCursorLeftOfChild(s *arena.Stack, n arena.Node, index int) DeletionMethod {
	switch t := s.Type(n); t {
	case TypeBinomial, TypePoint2D:
		if index == TwoRowsUpper && IsEmptyRack(s, s.Child(n, TwoRowsLower)) {
			return DeleteParent
		}
		if index == TwoRowsLower {
			return TwoRowsMoveFromLowerToUpper
		}
		return MoveLeft
	case TypeFraction:
		if index == FractionDenominator {
			return FractionDenominatorDeletion
		}
		return MoveLeft
	case TypeParentheses, TypeCurlyBraces:
		if (index == OutsideIndex && IsTemporary(s, n, Right)) ||
			(index == 0 && IsTemporary(s, n, Left)) {
			return MoveLeft
		}
		return BracketPairMakeTemporary
	case TypeAbs, TypeFloor, TypeCeil, TypeVectorNorm, TypeConj:
		return deleteParentAt(index, 0)
	case TypeDiff:
		return deleteParentAt(index, DiffDerivand)
	case TypeIntegral:
		return deleteParentAt(index, IntegralIntegrand)
	case TypeListSequence:
		return deleteParentAt(index, ListSequenceFunction)
	case TypeSqrt, TypeRoot:
		return deleteParentAt(index, RootRadicand)
	case TypeSum, TypeProduct:
		return deleteParentAt(index, ParametricArgument)
	case TypeVerticalOffset:
		if index == 0 && IsEmptyRack(s, s.Child(n, 0)) {
			return DeleteLayout
		}
		return MoveLeft
	case TypeMatrix, TypePiecewise:
		return gridDeletionMethod(AsGrid(s, n), index)
	}
	if index == OutsideIndex {
		return DeleteLayout
	}
	return MoveLeft
}

func gridDeletionMethod(g GridLayout, index int) DeletionMethod {
	if index == OutsideIndex {
		return MoveLeft
	}
	row, column := g.RowAt(index), g.ColumnAt(index)
	if row == 0 && column == 0 &&
		g.Columns() == MinGridSizeWhileEditing && g.Rows() == MinGridSizeWhileEditing {
		// The only real cell: unwrap it.
		return DeleteParent
	}
	deleteRow := !g.RowsFixed() && g.IsLeft(index) && !g.IsBottom(index) && g.IsRowEmpty(row)
	deleteColumn := !g.ColumnsFixed() && g.IsTop(index) && !g.IsRight(index) && g.IsColumnEmpty(column)
	switch {
	case deleteRow && deleteColumn:
		return GridDeleteColumnAndRow
	case deleteRow:
		return GridDeleteRow
	case deleteColumn:
		return GridDeleteColumn
	case g.IsLeft(index) && row != 0:
		return GridMoveToUpperRow
	}
	return MoveLeft
}
