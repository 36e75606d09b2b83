// Package arena provides the block arena that stores layout trees.
//
// Every tree lives in a single contiguous run of fixed-size blocks: a node's
// tag block, its payload blocks, then the blocks of each child tree from left
// to right. For any node N, all descendants of N occupy the half-open range
// [N, NextTree(N)). Navigation is pure offset arithmetic over the block slice
// and all editing is expressed as insertion, removal and relocation of whole
// ranges.
//
// # Handles
//
// A Node is an offset and is only meaningful until the next mutation of its
// Stack. Code that must hold on to a node across mutations takes a Ref: the
// stack patches every live Ref when blocks are inserted, removed or moved, and
// invalidates it when its node is destroyed.
//
//	s := arena.NewStack(arena.WithMaxBlocks(1024))
//	root := s.PushTree(tree)
//	ref := s.Ref(s.Child(root, 0))
//	s.RemoveTree(s.Child(root, 1)) // ref.Node() is still correct
//
// # Capacity
//
// A Stack never grows past its configured capacity. An insertion that would
// exceed it unwinds the call stack; Guard turns the unwinding back into
// ErrArenaExhausted at the edit boundary:
//
//	err := arena.Guard(func() {
//	    s.Clone(root)
//	})
//	if errors.Is(err, arena.ErrArenaExhausted) {
//	    // discard the scratch stack
//	}
package arena
