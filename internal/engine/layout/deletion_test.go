package layout

import "testing"

func TestDeletionMethodForCursorLeftOfChild(t *testing.T) {
	tests := []struct {
		src   string
		index int
		want  DeletionMethod
	}{
		{"x", OutsideIndex, DeleteLayout},
		{"frac{1}{2}", FractionDenominator, FractionDenominatorDeletion},
		{"frac{1}{2}", FractionNumerator, MoveLeft},
		{"frac{1}{2}", OutsideIndex, MoveLeft},
		{"binom{n}{}", TwoRowsUpper, DeleteParent},
		{"binom{n}{k}", TwoRowsUpper, MoveLeft},
		{"binom{n}{k}", TwoRowsLower, TwoRowsMoveFromLowerToUpper},
		{"(x]", OutsideIndex, MoveLeft},
		{"(x)", OutsideIndex, BracketPairMakeTemporary},
		{"[x)", 0, MoveLeft},
		{"(x)", 0, BracketPairMakeTemporary},
		{"abs{x}", 0, DeleteParent},
		{"abs{x}", OutsideIndex, MoveLeft},
		{"sqrt{x}", 0, DeleteParent},
		{"root{x}{3}", RootIndex, MoveLeft},
		{"sum{k}{1}{n}{k}", ParametricArgument, DeleteParent},
		{"sum{k}{1}{n}{k}", ParametricUpper, MoveLeft},
		{"int{x}{0}{1}{f}", IntegralIntegrand, DeleteParent},
		{"diff{x}{a}{}{f}", DiffDerivand, DeleteParent},
		{"listseq{u}{n}{9}", ListSequenceFunction, DeleteParent},
		{"sup{}", 0, DeleteLayout},
		{"sup{2}", 0, MoveLeft},
		{"matrix:2x2{1}{}{}{}", 0, DeleteParent},
		{"matrix:2x2{1}{}{}{}", OutsideIndex, MoveLeft},
		{"matrix:3x2{1}{}{}{}{}{}", 2, GridDeleteRow},
		{"matrix:3x2{1}{}{2}{}{}{}", 2, GridMoveToUpperRow},
		{"matrix:2x3{}{1}{}{}{}{}", 0, GridDeleteColumn},
		{"matrix:3x3{}{}{}{}{1}{}{}{}{}", 0, GridDeleteColumnAndRow},
		{"matrix:2x3{1}{2}{}{}{}{}", 1, MoveLeft},
		{"piecewise:3x2{x}{}{}{}{}{}", 1, MoveLeft},
	}
	for _, tt := range tests {
		s, root := load(t, tt.src)
		got := DeletionMethodForCursorLeftOfChild(s, s.Child(root, 0), tt.index)
		if got != tt.want {
			t.Errorf("%s at %d: got %s, want %s", tt.src, tt.index, got, tt.want)
		}
	}
}
