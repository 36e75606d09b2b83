package nary

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathfield/internal/engine/arena"
)

const (
	list arena.Type = 240
	leaf arena.Type = 241
)

func init() {
	arena.Register(list, arena.Kind{Name: "List", Payload: 2, Arity: arena.NAry})
	arena.Register(leaf, arena.Kind{Name: "Leaf", Payload: 1})
}

// build pushes a list whose children are leaves with the given values, or
// nested lists when a value is a []int.
func build(s *arena.Stack, items ...any) arena.Node {
	n := s.Push(list)
	for _, it := range items {
		switch v := it.(type) {
		case int:
			AddChild(s, n, s.Push(leaf, arena.Block(v)))
		case []any:
			AddChild(s, n, build(s, v...))
		}
	}
	return n
}

// values flattens the tree of n into leaf values and list markers.
func values(s *arena.Stack, n arena.Node) []int {
	var out []int
	s.Walk(n, func(m arena.Node) bool {
		if s.Type(m) == leaf {
			out = append(out, int(s.Payload(m, 0)))
		} else {
			out = append(out, -s.NumberOfChildren(m))
		}
		return true
	})
	return out
}

func TestAddChildAtIndex(t *testing.T) {
	s := arena.NewStack()
	n := build(s, 1, 3)

	AddChildAtIndex(s, n, s.Push(leaf, 2), 1)
	AddChildAtIndex(s, n, s.Push(leaf, 0), 0)

	assert.Equal(t, []int{-4, 0, 1, 2, 3}, values(s, n))
	assert.Equal(t, s.End(), s.NextTree(n))
}

func TestAddOrMergeChildAtIndex(t *testing.T) {
	s := arena.NewStack()
	n := build(s, 1, 4)
	other := build(s, 2, 3)

	added := AddOrMergeChildAtIndex(s, n, other, 1)

	require.Equal(t, 2, added)
	if diff := cmp.Diff([]int{-4, 1, 2, 3, 4}, values(s, n)); diff != "" {
		t.Errorf("merged list mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, s.End(), s.NextTree(n))
}

func TestAddOrMergeLeaf(t *testing.T) {
	s := arena.NewStack()
	n := build(s)

	added := AddOrMergeChild(s, n, s.Push(leaf, 7))

	assert.Equal(t, 1, added)
	assert.Equal(t, []int{-1, 7}, values(s, n))
}

func TestAddOrMergeEmptyList(t *testing.T) {
	s := arena.NewStack()
	n := build(s, 1)

	added := AddOrMergeChildAtIndex(s, n, build(s), 0)

	assert.Equal(t, 0, added)
	assert.Equal(t, []int{-1, 1}, values(s, n))
	assert.Equal(t, s.End(), s.NextTree(n))
}

func TestRemoveChildAtIndex(t *testing.T) {
	s := arena.NewStack()
	n := build(s, 1, []any{2, 3}, 4)

	RemoveChildAtIndex(s, n, 1)

	assert.Equal(t, []int{-2, 1, 4}, values(s, n))
}

func TestRemoveChildren(t *testing.T) {
	s := arena.NewStack()
	n := build(s, 1, 2, 3, 4)

	RemoveChildren(s, n, 1, 3)
	assert.Equal(t, []int{-2, 1, 4}, values(s, n))

	RemoveChildren(s, n, 1, 2)
	assert.Equal(t, []int{-1, 1}, values(s, n))
}

func TestDetachChildAtIndex(t *testing.T) {
	s := arena.NewStack()
	n := build(s, 1, 2, 3)

	c := DetachChildAtIndex(s, n, 1)

	assert.Equal(t, []int{-2, 1, 3}, values(s, n))
	assert.Equal(t, s.NextTree(n), c)
	assert.Equal(t, arena.Block(2), s.Payload(c, 0))
}

func TestFlatten(t *testing.T) {
	s := arena.NewStack()
	n := build(s, 1, []any{2, []any{3, 4}, []any{}}, 5)

	changed := Flatten(s, n)

	assert.True(t, changed)
	assert.Equal(t, []int{-5, 1, 2, 3, 4, 5}, values(s, n))
	assert.False(t, Flatten(s, n))
}

func TestCloneSubRange(t *testing.T) {
	s := arena.NewStack()
	n := build(s, 1, 2, 3, 4)
	before := values(s, n)

	c := CloneSubRange(s, n, 1, 3)

	assert.Equal(t, []int{-2, 2, 3}, values(s, c))
	assert.Equal(t, before, values(s, n))
	assert.Equal(t, []int{-0}, values(s, CloneSubRange(s, n, 4, 4)))
}

func TestMoveChildren(t *testing.T) {
	s := arena.NewStack()
	root := build(s, []any{1, 2, 3}, []any{4})
	a := s.Child(root, 0)
	b := s.Child(root, 1)

	moved := MoveChildren(s, b, a, 1, 3, 0)

	assert.Equal(t, 2, moved)
	assert.Equal(t, []int{-2, -1, 1, -3, 2, 3, 4}, values(s, root))
}
