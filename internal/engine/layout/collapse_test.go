package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCollapsable(t *testing.T) {
	tests := []struct {
		src   string
		index int
		dir   Direction
		want  bool
	}{
		{"12", 0, Right, true},
		{"1+2", 1, Right, false},
		{"1=2", 1, Left, false},
		{"1,2", 1, Left, false},
		{"3ᴇ-2", 2, Right, true},
		{"3-2", 1, Right, false},
		{"2×frac{1}{}", 1, Right, false},
		{"2×3", 1, Right, true},
		{"frac{1}{}×3", 1, Left, false},
		{"frac{1}{}frac{}{}", 0, Left, true},
		{"frac{1}{}frac{5}{}", 0, Left, false},
		{"sqrt{x}", 0, Left, true},
	}
	for _, tt := range tests {
		s, root := load(t, tt.src)
		if got := IsCollapsable(s, root, tt.index, tt.dir); got != tt.want {
			t.Errorf("IsCollapsable(%q, %d, %s) = %v, want %v", tt.src, tt.index, tt.dir, got, tt.want)
		}
	}
}

func TestCollapsingRules(t *testing.T) {
	assert.True(t, ShouldCollapseSiblingsOnDirection(TypeFraction, Left))
	assert.True(t, ShouldCollapseSiblingsOnDirection(TypeFraction, Right))
	assert.True(t, ShouldCollapseSiblingsOnDirection(TypeSqrt, Right))
	assert.False(t, ShouldCollapseSiblingsOnDirection(TypeSqrt, Left))
	assert.False(t, ShouldCollapseSiblingsOnDirection(TypeAbs, Right))

	assert.Equal(t, FractionDenominator, CollapsingAbsorbingChildIndex(TypeFraction, Right))
	assert.Equal(t, FractionNumerator, CollapsingAbsorbingChildIndex(TypeFraction, Left))
	assert.Equal(t, 0, CollapsingAbsorbingChildIndex(TypeRoot, Right))
}
