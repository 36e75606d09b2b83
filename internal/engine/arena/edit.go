package arena

// Push appends a node of type t with the given payload at the write head.
// Missing payload blocks are zeroed. It returns the new node.
func (s *Stack) Push(t Type, payload ...Block) Node {
	k := mustKind(t)
	data := make([]Block, k.Size())
	data[0] = Block(t)
	copy(data[1:], payload)
	return s.PushTree(data)
}

// PushTree appends raw tree blocks at the write head and returns the root.
func (s *Stack) PushTree(data []Block) Node {
	at := len(s.blocks)
	s.insertBlocks(at, data, true)
	return Node(at)
}

// Clone appends a copy of the tree rooted at n at the write head.
func (s *Stack) Clone(n Node) Node {
	return s.PushTree(s.TreeBlocks(n))
}

// CloneNode appends a copy of n without its descendants.
func (s *Stack) CloneNode(n Node) Node {
	return s.PushTree(s.Blocks(n, s.NextNode(n)))
}

// InsertTreeBefore inserts raw tree blocks before dst and returns the
// inserted root, which now sits at dst's old offset. Refs on dst follow the
// node that was there.
func (s *Stack) InsertTreeBefore(dst Node, data []Block) Node {
	s.insertBlocks(int(dst), data, false)
	return dst
}

// CloneTreeBefore inserts a copy of the tree of src before dst.
func (s *Stack) CloneTreeBefore(dst, src Node) Node {
	return s.InsertTreeBefore(dst, s.TreeBlocks(src))
}

// MoveTreeBefore relocates the tree of src so that it sits just before dst.
// dst may be End(). It returns the new offset of the moved tree.
func (s *Stack) MoveTreeBefore(dst, src Node) Node {
	return Node(s.moveBlocks(int(dst), int(src), s.TreeSize(src)))
}

// MoveRangeBefore relocates the blocks in [from, to), a run of whole sibling
// trees, so that they sit just before dst. It returns the new offset of from.
func (s *Stack) MoveRangeBefore(dst, from, to Node) Node {
	return Node(s.moveBlocks(int(dst), int(from), int(to-from)))
}

// RemoveRange deletes the blocks in [from, to).
func (s *Stack) RemoveRange(from, to Node) {
	s.removeBlocks(int(from), int(to-from))
}

// MoveTreeAfter relocates the tree of src so that it follows the tree of dst.
func (s *Stack) MoveTreeAfter(dst, src Node) Node {
	return s.MoveTreeBefore(s.NextTree(dst), src)
}

// MoveTreeOverTree replaces the tree of dst with the tree of src. src is
// either outside dst or one of its descendants. It returns the offset of the
// moved tree.
func (s *Stack) MoveTreeOverTree(dst, src Node) Node {
	return Node(s.replaceBlocks(int(dst), s.TreeSize(dst), int(src), s.TreeSize(src)))
}

// CloneTreeOverTree replaces the tree of dst with a copy of the tree of src.
func (s *Stack) CloneTreeOverTree(dst, src Node) Node {
	ref := s.Ref(dst)
	defer s.Release(ref)
	c := s.Clone(src)
	return s.MoveTreeOverTree(ref.Node(), c)
}

// MoveNodeOverNode replaces the tag and payload of dst with those of src,
// keeping dst's descendants. Both nodes must have the same number of
// children. src is removed from the stack.
func (s *Stack) MoveNodeOverNode(dst, src Node) Node {
	return Node(s.replaceBlocks(int(dst), s.NodeSize(dst), int(src), s.NodeSize(src)))
}

// RemoveTree deletes n and its descendants.
func (s *Stack) RemoveTree(n Node) {
	s.removeBlocks(int(n), s.TreeSize(n))
}

// RemoveNode deletes the tag and payload of n, leaving its descendants in
// place. The caller is responsible for re-parenting them.
func (s *Stack) RemoveNode(n Node) {
	s.removeBlocks(int(n), s.NodeSize(n))
}

// DetachTree moves the tree of n to the write head and returns its new
// offset.
func (s *Stack) DetachTree(n Node) Node {
	return s.MoveTreeBefore(s.End(), n)
}

// DropFrom truncates the stack at n, removing every tree that starts at or
// after it.
func (s *Stack) DropFrom(n Node) {
	s.removeBlocks(int(n), len(s.blocks)-int(n))
}
