package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/mathfield/internal/engine/arena"
)

type horizontalCase struct {
	dir  Direction
	from int
	want int
}

func checkHorizontal(t *testing.T, s *arena.Stack, n arena.Node, cases []horizontalCase) {
	t.Helper()
	for _, tc := range cases {
		if got := IndexAfterHorizontalCursorMove(s, n, tc.dir, tc.from); got != tc.want {
			t.Errorf("%s: move %s from %d = %d, want %d", s.Type(n), tc.dir, tc.from, got, tc.want)
		}
	}
}

func TestHorizontalMoveTables(t *testing.T) {
	s, root := load(t, "frac{1}{2}root{8}{3}int{x}{0}{1}{f}sum{k}{1}{n}{k}ptbinom{n}{k}listseq{u}{n}{9}sqrt{2}x")
	frac, nroot, integral, sum, pt, seq, sqrt, x := s.Child(root, 0), s.Child(root, 1), s.Child(root, 2),
		s.Child(root, 3), s.Child(root, 4), s.Child(root, 5), s.Child(root, 6), s.Child(root, 7)

	checkHorizontal(t, s, frac, []horizontalCase{
		{Right, OutsideIndex, FractionNumerator},
		{Left, OutsideIndex, FractionDenominator},
		{Right, FractionNumerator, OutsideIndex},
		{Left, FractionDenominator, OutsideIndex},
	})
	checkHorizontal(t, s, nroot, []horizontalCase{
		{Right, OutsideIndex, RootIndex},
		{Right, RootIndex, RootRadicand},
		{Right, RootRadicand, OutsideIndex},
		{Left, OutsideIndex, RootRadicand},
		{Left, RootRadicand, RootIndex},
		{Left, RootIndex, OutsideIndex},
	})
	checkHorizontal(t, s, integral, []horizontalCase{
		{Right, OutsideIndex, IntegralUpper},
		{Right, IntegralUpper, IntegralIntegrand},
		{Right, IntegralLower, IntegralIntegrand},
		{Right, IntegralIntegrand, IntegralDifferential},
		{Right, IntegralDifferential, OutsideIndex},
		{Left, OutsideIndex, IntegralDifferential},
		{Left, IntegralDifferential, IntegralIntegrand},
		{Left, IntegralIntegrand, IntegralLower},
		{Left, IntegralLower, OutsideIndex},
	})
	checkHorizontal(t, s, sum, []horizontalCase{
		{Right, OutsideIndex, ParametricUpper},
		{Right, ParametricUpper, ParametricArgument},
		{Right, ParametricVariable, ParametricLower},
		{Right, ParametricLower, ParametricArgument},
		{Right, ParametricArgument, OutsideIndex},
		{Left, OutsideIndex, ParametricArgument},
		{Left, ParametricArgument, ParametricLower},
		{Left, ParametricLower, ParametricVariable},
		{Left, ParametricVariable, OutsideIndex},
	})
	checkHorizontal(t, s, pt, []horizontalCase{
		{Right, OutsideIndex, PtN},
		{Right, PtN, PtK},
		{Right, PtK, OutsideIndex},
		{Left, PtK, PtN},
	})
	checkHorizontal(t, s, seq, []horizontalCase{
		{Right, OutsideIndex, ListSequenceFunction},
		{Right, ListSequenceFunction, ListSequenceVariable},
		{Right, ListSequenceVariable, ListSequenceUpper},
		{Left, OutsideIndex, ListSequenceUpper},
	})
	checkHorizontal(t, s, sqrt, []horizontalCase{
		{Right, OutsideIndex, 0},
		{Right, 0, OutsideIndex},
		{Left, OutsideIndex, 0},
	})
	checkHorizontal(t, s, x, []horizontalCase{
		{Right, OutsideIndex, OutsideIndex},
	})
}

func TestGridHorizontalMove(t *testing.T) {
	s, root := load(t, "matrix:3x3{1}{2}{}{3}{4}{}{}{}{}")
	g := s.Child(root, 0)

	checkHorizontal(t, s, g, []horizontalCase{
		{Left, OutsideIndex, 4},
		{Right, OutsideIndex, 0},
		{Right, 0, 1},
		{Right, 2, OutsideIndex},
		{Left, 3, OutsideIndex},
		{Left, 4, 3},
	})

	assert.Equal(t, 1, IndexAfterVerticalCursorMove(s, g, Up, 4, AtMiddle))
	assert.Equal(t, 7, IndexAfterVerticalCursorMove(s, g, Down, 4, AtMiddle))
	assert.Equal(t, CantMoveIndex, IndexAfterVerticalCursorMove(s, g, Down, 6, AtLeft))
	assert.Equal(t, CantMoveIndex, IndexAfterVerticalCursorMove(s, g, Up, 1, AtLeft))
	assert.Equal(t, CantMoveIndex, IndexAfterVerticalCursorMove(s, g, Up, OutsideIndex, AtLeft))
}

func TestDerivativeSlots(t *testing.T) {
	s, root := load(t, "diff{x}{a}{}{f}")
	d := s.Child(root, 0)

	steps := []struct {
		dir      Direction
		from     int
		want     int
		variable VariableSlot
	}{
		{Right, OutsideIndex, DiffVariable, FractionSlot},
		{Right, DiffVariable, DiffDerivand, FractionSlot},
		{Right, DiffDerivand, DiffVariable, AssignmentSlot},
		{Right, DiffVariable, DiffAbscissa, AssignmentSlot},
		{Right, DiffAbscissa, OutsideIndex, AssignmentSlot},
		{Left, OutsideIndex, DiffAbscissa, AssignmentSlot},
		{Left, DiffAbscissa, DiffVariable, AssignmentSlot},
		{Left, DiffVariable, DiffDerivand, AssignmentSlot},
		{Left, DiffDerivand, DiffVariable, FractionSlot},
		{Left, DiffVariable, OutsideIndex, FractionSlot},
	}
	for i, st := range steps {
		got := IndexAfterHorizontalCursorMove(s, d, st.dir, st.from)
		if got != st.want {
			t.Fatalf("step %d: got %d, want %d", i, got, st.want)
		}
		if v := GetDiffState(s, d).Variable; v != st.variable {
			t.Fatalf("step %d: variable slot %d, want %d", i, v, st.variable)
		}
	}
	assert.False(t, IsNthDiff(s, d))
}

func TestNthDerivativeSlots(t *testing.T) {
	s, root := load(t, "diffn{x}{a}{2}{f}")
	d := s.Child(root, 0)

	assert.Equal(t, DiffVariable, IndexAfterHorizontalCursorMove(s, d, Right, OutsideIndex))
	assert.Equal(t, DiffOrder, IndexAfterHorizontalCursorMove(s, d, Right, DiffVariable))
	assert.Equal(t, DenominatorSlot, GetDiffState(s, d).Order)
	assert.Equal(t, DiffDerivand, IndexAfterHorizontalCursorMove(s, d, Right, DiffOrder))

	// Up from the derivand reaches the order in the numerator.
	assert.Equal(t, DiffOrder, IndexAfterVerticalCursorMove(s, d, Up, DiffDerivand, AtLeft))
	assert.Equal(t, NumeratorSlot, GetDiffState(s, d).Order)
	assert.Equal(t, OutsideIndex, IndexAfterHorizontalCursorMove(s, d, Left, DiffOrder))

	assert.Equal(t, DiffOrder, IndexAfterVerticalCursorMove(s, d, Down, DiffOrder, AtMiddle))
	assert.Equal(t, DenominatorSlot, GetDiffState(s, d).Order)
	assert.Equal(t, DiffVariable, IndexAfterVerticalCursorMove(s, d, Down, DiffOrder, AtLeft))
	assert.Equal(t, FractionSlot, GetDiffState(s, d).Variable)
	assert.Equal(t, DiffAbscissa, IndexAfterVerticalCursorMove(s, d, Down, DiffDerivand, AtRight))
}

func TestVerticalMoveTables(t *testing.T) {
	s, root := load(t, "frac{1}{2}sup{3}sub{4}root{8}{3}sum{k}{1}{n}{k}int{x}{0}{1}{f}binom{n}{k}ptpermute{n}{k}")
	frac, sup, sub, nroot, sum, integral, binom, pt := s.Child(root, 0), s.Child(root, 1), s.Child(root, 2),
		s.Child(root, 3), s.Child(root, 4), s.Child(root, 5), s.Child(root, 6), s.Child(root, 7)

	tests := []struct {
		name  string
		n     arena.Node
		dir   Direction
		index int
		pos   PositionInLayout
		want  int
	}{
		{"fraction enter up", frac, Up, OutsideIndex, AtLeft, FractionNumerator},
		{"fraction enter down", frac, Down, OutsideIndex, AtRight, FractionDenominator},
		{"fraction down", frac, Down, FractionNumerator, AtMiddle, FractionDenominator},
		{"fraction down bottom", frac, Down, FractionDenominator, AtMiddle, CantMoveIndex},
		{"superscript enter", sup, Up, OutsideIndex, AtRight, 0},
		{"superscript no enter", sup, Down, OutsideIndex, AtRight, CantMoveIndex},
		{"superscript leave", sup, Down, 0, AtLeft, OutsideIndex},
		{"superscript stay", sup, Down, 0, AtMiddle, CantMoveIndex},
		{"subscript enter", sub, Down, OutsideIndex, AtRight, 0},
		{"subscript leave", sub, Up, 0, AtRight, OutsideIndex},
		{"root index", nroot, Up, OutsideIndex, AtLeft, RootIndex},
		{"root radicand", nroot, Down, RootIndex, AtRight, RootRadicand},
		{"root leave", nroot, Down, RootIndex, AtLeft, OutsideIndex},
		{"root middle", nroot, Down, RootIndex, AtMiddle, CantMoveIndex},
		{"sum upper", sum, Up, ParametricVariable, AtMiddle, ParametricUpper},
		{"sum lower", sum, Down, ParametricArgument, AtLeft, ParametricLower},
		{"sum argument middle", sum, Down, ParametricArgument, AtMiddle, CantMoveIndex},
		{"integral upper", integral, Up, IntegralIntegrand, AtLeft, IntegralUpper},
		{"integral lower", integral, Up, IntegralLower, AtMiddle, IntegralUpper},
		{"binomial up", binom, Up, TwoRowsLower, AtMiddle, TwoRowsUpper},
		{"binomial enter", binom, Up, OutsideIndex, AtLeft, CantMoveIndex},
		{"pt enter up", pt, Up, OutsideIndex, AtLeft, PtN},
		{"pt enter down", pt, Down, OutsideIndex, AtRight, PtK},
		{"pt down", pt, Down, PtN, AtMiddle, PtK},
	}
	for _, tt := range tests {
		if got := IndexAfterVerticalCursorMove(s, tt.n, tt.dir, tt.index, tt.pos); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestIndexToPointToWhenInserting(t *testing.T) {
	s, root := load(t, "frac{}{}frac{1}{}sum{}{}{}{}int{}{}{}{}diff{}{}{}{}listseq{}{}{}sqrt{}x")

	want := []int{
		FractionNumerator, FractionDenominator, ParametricLower, IntegralLower,
		DiffDerivand, ListSequenceFunction, 0, OutsideIndex,
	}
	for i, w := range want {
		assert.Equal(t, w, IndexToPointToWhenInserting(s, s.Child(root, i)), "child %d", i)
	}
}

func TestDeepChildToPointToWhenInserting(t *testing.T) {
	s, root := load(t, "frac{1}{}")
	frac := s.Child(root, 0)
	assert.Equal(t, s.Child(frac, FractionDenominator), DeepChildToPointToWhenInserting(s, root))

	s, root = load(t, "(x]")
	assert.Equal(t, s.Child(root, 0), DeepChildToPointToWhenInserting(s, root))

	s, root = load(t, "[x)")
	assert.Equal(t, root, DeepChildToPointToWhenInserting(s, root))

	s, root = load(t, "12")
	assert.Equal(t, root, DeepChildToPointToWhenInserting(s, root))
}
