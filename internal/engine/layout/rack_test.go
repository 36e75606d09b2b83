package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindBase(t *testing.T) {
	s, root := load(t, "2sup{3}sub{i}")
	assert.Equal(t, 0, FindBase(s, root, 1))
	assert.Equal(t, 0, FindBase(s, root, 2))

	s, root = load(t, "sup{3}")
	assert.Equal(t, -1, FindBase(s, root, 0))

	s, root = load(t, "presup{3}x")
	assert.Equal(t, 1, FindBase(s, root, 0))
}

func TestRackPredicates(t *testing.T) {
	s, root := load(t, "frac{x}{}")
	frac := s.Child(root, 0)

	assert.True(t, IsTrivialRack(s, root))
	assert.True(t, IsEmptyRack(s, s.Child(frac, 1)))
	assert.False(t, IsEmptyRack(s, s.Child(frac, 0)))
	assert.False(t, IsEmptyRack(s, frac))

	s, root = load(t, "sup{2}")
	assert.False(t, IsTrivialRack(s, root))
}

func TestMakeChildrenPermanent(t *testing.T) {
	s, root := load(t, "(((1]]]")
	outer := s.Child(root, 0)

	MakeChildrenPermanent(s, outer, Right, false)
	assert.Equal(t, "(((1))]", Format(s, root))

	MakeChildrenPermanent(s, outer, Right, true)
	assert.Equal(t, "(((1)))", Format(s, root))
}

func TestTemporaryFlags(t *testing.T) {
	s, root := load(t, "(x)")
	p := s.Child(root, 0)

	SetTemporary(s, p, Left, true)
	assert.True(t, IsTemporary(s, p, Left))
	assert.False(t, IsTemporary(s, p, Right))
	assert.True(t, IsTemporaryPair(s, p, Left))
	assert.Equal(t, "[x)", Format(s, root))

	assert.Equal(t, s.Child(s.Child(p, 0), 0), ChildOnSide(s, p, Right))

	typ, side, ok := BracketCodePoint('}')
	assert.True(t, ok)
	assert.Equal(t, TypeCurlyBraces, typ)
	assert.Equal(t, Right, side)
	_, _, ok = BracketCodePoint('x')
	assert.False(t, ok)
}

func TestVerticalOffsetFlags(t *testing.T) {
	s, root := load(t, "sup{a}sub{b}presup{c}presub{d}")
	sup, sub, presup, presub := s.Child(root, 0), s.Child(root, 1), s.Child(root, 2), s.Child(root, 3)

	assert.True(t, IsSuffixSuperscript(s, sup))
	assert.True(t, IsSubscript(s, sub))
	assert.True(t, IsSuffix(s, sub))
	assert.True(t, IsPrefix(s, presup))
	assert.True(t, IsSuperscript(s, presup))
	assert.False(t, IsSuffixSuperscript(s, presup))
	assert.True(t, IsPrefix(s, presub) && IsSubscript(s, presub))
}
