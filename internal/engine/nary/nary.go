// Package nary maintains the child count of variable-arity nodes while
// children are added, merged, detached and removed.
//
// All functions take the stack and the offset of the n-ary node. Offsets
// passed in are consumed; use the returned offsets or arena.Ref handles
// afterwards.
package nary

import (
	"github.com/dshills/mathfield/internal/engine/arena"
)

// MaxChildren is the largest child count an n-ary node can store.
const MaxChildren = 1<<16 - 1

// SetNumberOfChildren rewrites the child count of n.
func SetNumberOfChildren(s *arena.Stack, n arena.Node, count int) {
	if count < 0 || count > MaxChildren {
		panic("nary: child count out of range")
	}
	s.SetNumberOfChildren(n, count)
}

// insertionPoint returns the offset before which a child at index goes.
func insertionPoint(s *arena.Stack, n arena.Node, index int) arena.Node {
	if index >= s.NumberOfChildren(n) {
		return s.NextTree(n)
	}
	return s.Child(n, index)
}

// AddChildAtIndex moves the tree of child so that it becomes the index-th
// child of n. child must not belong to n. It returns the new offset of child.
func AddChildAtIndex(s *arena.Stack, n, child arena.Node, index int) arena.Node {
	parent := s.Ref(n)
	defer s.Release(parent)
	moved := s.MoveTreeBefore(insertionPoint(s, n, index), child)
	p := parent.Node()
	SetNumberOfChildren(s, p, s.NumberOfChildren(p)+1)
	return moved
}

// AddChild appends child as the last child of n.
func AddChild(s *arena.Stack, n, child arena.Node) arena.Node {
	return AddChildAtIndex(s, n, child, s.NumberOfChildren(n))
}

// AddOrMergeChildAtIndex inserts child at index. When child has the same type
// as n its children are spliced in instead, so that same-type nodes never
// nest. It returns the number of children added to n.
func AddOrMergeChildAtIndex(s *arena.Stack, n, child arena.Node, index int) int {
	parent := s.Ref(n)
	defer s.Release(parent)
	merge := s.Type(n) == s.Type(child)
	added := 1
	if merge {
		added = s.NumberOfChildren(child)
	}
	c := AddChildAtIndex(s, n, child, index)
	if merge {
		p := parent.Node()
		count := s.NumberOfChildren(p)
		s.RemoveNode(c)
		SetNumberOfChildren(s, parent.Node(), count-1+added)
	}
	return added
}

// AddOrMergeChild appends child to n, merging it when it has n's type.
func AddOrMergeChild(s *arena.Stack, n, child arena.Node) int {
	return AddOrMergeChildAtIndex(s, n, child, s.NumberOfChildren(n))
}

// RemoveChildAtIndex deletes the index-th child of n.
func RemoveChildAtIndex(s *arena.Stack, n arena.Node, index int) {
	count := s.NumberOfChildren(n)
	s.RemoveTree(s.Child(n, index))
	SetNumberOfChildren(s, n, count-1)
}

// RemoveChildren deletes the children of n in [from, to).
func RemoveChildren(s *arena.Stack, n arena.Node, from, to int) {
	if from >= to {
		return
	}
	count := s.NumberOfChildren(n)
	s.RemoveRange(s.Child(n, from), insertionPoint(s, n, to))
	SetNumberOfChildren(s, n, count-(to-from))
}

// DetachChildAtIndex moves the index-th child of n to the write head and
// returns its new offset.
func DetachChildAtIndex(s *arena.Stack, n arena.Node, index int) arena.Node {
	parent := s.Ref(n)
	defer s.Release(parent)
	count := s.NumberOfChildren(n)
	c := s.DetachTree(s.Child(n, index))
	SetNumberOfChildren(s, parent.Node(), count-1)
	return c
}

// Flatten splices every child of n that has n's type into n, recursively.
// It reports whether n changed.
func Flatten(s *arena.Stack, n arena.Node) bool {
	t := s.Type(n)
	count := s.NumberOfChildren(n)
	modified := false
	child := s.NextNode(n)
	for i := 0; i < count; {
		if s.Type(child) == t {
			modified = true
			count += s.NumberOfChildren(child) - 1
			s.RemoveNode(child)
			continue
		}
		child = s.NextTree(child)
		i++
	}
	if modified {
		SetNumberOfChildren(s, n, count)
	}
	return modified
}

// CloneSubRange pushes at the write head a node of n's type holding copies of
// its children in [from, to) and returns it.
func CloneSubRange(s *arena.Stack, n arena.Node, from, to int) arena.Node {
	start := s.Child(n, from)
	end := insertionPoint(s, n, to)
	data := make([]arena.Block, 0, s.NodeSize(n)+int(end-start))
	data = append(data, s.Blocks(n, s.NextNode(n))...)
	data = append(data, s.Blocks(start, end)...)
	out := s.PushTree(data)
	SetNumberOfChildren(s, out, to-from)
	return out
}

// MoveChildren moves the children of src in [from, to) into n at index. src
// and n must be distinct n-ary nodes and n must not lie inside the moved
// range. It returns the number of children moved.
func MoveChildren(s *arena.Stack, n, src arena.Node, from, to, index int) int {
	if from >= to {
		return 0
	}
	dst := s.Ref(n)
	source := s.Ref(src)
	defer s.Release(dst)
	defer s.Release(source)
	srcCount := s.NumberOfChildren(src)
	start := s.Child(src, from)
	end := insertionPoint(s, src, to)
	s.MoveRangeBefore(insertionPoint(s, n, index), start, end)
	moved := to - from
	SetNumberOfChildren(s, source.Node(), srcCount-moved)
	SetNumberOfChildren(s, dst.Node(), s.NumberOfChildren(dst.Node())+moved)
	return moved
}
