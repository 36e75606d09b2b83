package arena

// Block returns the block at offset n.
func (s *Stack) Block(n Node) Block {
	return s.blocks[n]
}

// SetBlock overwrites the block at offset n.
func (s *Stack) SetBlock(n Node, b Block) {
	s.blocks[n] = b
}

// Type returns the type tag of n.
func (s *Stack) Type(n Node) Type {
	return Type(s.blocks[n])
}

// Kind returns the registered kind of n.
func (s *Stack) Kind(n Node) *Kind {
	return mustKind(s.Type(n))
}

// Payload returns the i-th payload block of n.
func (s *Stack) Payload(n Node, i int) Block {
	return s.blocks[int(n)+1+i]
}

// SetPayload overwrites the i-th payload block of n.
func (s *Stack) SetPayload(n Node, i int, b Block) {
	s.blocks[int(n)+1+i] = b
}

// Value16 reads a little-endian 16-bit value from payload blocks i and i+1.
func (s *Stack) Value16(n Node, i int) int {
	return int(s.Payload(n, i)) | int(s.Payload(n, i+1))<<8
}

// SetValue16 writes a little-endian 16-bit value to payload blocks i and i+1.
func (s *Stack) SetValue16(n Node, i int, v int) {
	s.SetPayload(n, i, Block(v))
	s.SetPayload(n, i+1, Block(v>>8))
}

// NodeSize returns the number of blocks of n itself, without descendants.
func (s *Stack) NodeSize(n Node) int {
	return s.Kind(n).Size()
}

// NumberOfChildren returns the child count of n.
func (s *Stack) NumberOfChildren(n Node) int {
	k := s.Kind(n)
	switch {
	case k.Children != nil:
		return k.Children(s.blocks[int(n)+1 : int(n)+k.Size()])
	case k.Arity == NAry:
		return s.Value16(n, 0)
	default:
		return k.Arity
	}
}

// SetNumberOfChildren rewrites the child count of an n-ary node. The caller
// is responsible for keeping the blocks that follow consistent.
func (s *Stack) SetNumberOfChildren(n Node, c int) {
	if s.Kind(n).Arity != NAry {
		panic("arena: SetNumberOfChildren on fixed-arity node " + s.Type(n).String())
	}
	s.SetValue16(n, 0, c)
}

// NextNode returns the offset following the blocks of n.
func (s *Stack) NextNode(n Node) Node {
	return n + Node(s.NodeSize(n))
}

// NextTree returns the offset following n and all its descendants.
func (s *Stack) NextTree(n Node) Node {
	pending := 1
	for pending > 0 {
		pending += s.NumberOfChildren(n) - 1
		n = s.NextNode(n)
	}
	return n
}

// TreeSize returns the number of blocks of n and its descendants.
func (s *Stack) TreeSize(n Node) int {
	return int(s.NextTree(n) - n)
}

// TreeBlocks returns a copy of the blocks of the tree rooted at n.
func (s *Stack) TreeBlocks(n Node) []Block {
	return s.Blocks(n, s.NextTree(n))
}

// Child returns the i-th child of n.
func (s *Stack) Child(n Node, i int) Node {
	c := s.NextNode(n)
	for ; i > 0; i-- {
		c = s.NextTree(c)
	}
	return c
}

// LastChild returns the last child of n, or NoNode.
func (s *Stack) LastChild(n Node) Node {
	c := s.NumberOfChildren(n)
	if c == 0 {
		return NoNode
	}
	return s.Child(n, c-1)
}

// Children returns the children of n from left to right.
func (s *Stack) Children(n Node) []Node {
	count := s.NumberOfChildren(n)
	out := make([]Node, 0, count)
	c := s.NextNode(n)
	for i := 0; i < count; i++ {
		out = append(out, c)
		c = s.NextTree(c)
	}
	return out
}

// IndexOfChild returns the index of child in n, or -1.
func (s *Stack) IndexOfChild(n, child Node) int {
	c := s.NextNode(n)
	count := s.NumberOfChildren(n)
	for i := 0; i < count; i++ {
		if c == child {
			return i
		}
		if c > child {
			break
		}
		c = s.NextTree(c)
	}
	return -1
}

// HasAncestor reports whether a lies in the tree of n. A node is its own
// ancestor when includeSelf is set.
func (s *Stack) HasAncestor(n, a Node, includeSelf bool) bool {
	if n == a {
		return includeSelf
	}
	return a < n && n < s.NextTree(a)
}

// ParentOfDescendant returns the parent of d inside the tree rooted at root
// and the index of d in it. It returns NoNode, -1 when d is root or lies
// outside the tree.
func (s *Stack) ParentOfDescendant(root, d Node) (Node, int) {
	if d <= root || d >= s.NextTree(root) {
		return NoNode, -1
	}
	n := root
	for {
		c := s.NextNode(n)
		count := s.NumberOfChildren(n)
		descended := false
		for i := 0; i < count; i++ {
			if c == d {
				return n, i
			}
			next := s.NextTree(c)
			if d < next {
				n = c
				descended = true
				break
			}
			c = next
		}
		if !descended {
			return NoNode, -1
		}
	}
}

// Parent returns the parent of d inside root, or NoNode.
func (s *Stack) Parent(root, d Node) Node {
	p, _ := s.ParentOfDescendant(root, d)
	return p
}

// Ancestors returns the strict ancestors of d inside root, root first.
func (s *Stack) Ancestors(root, d Node) []Node {
	if d <= root || d >= s.NextTree(root) {
		return nil
	}
	var out []Node
	n := root
	for n != d {
		out = append(out, n)
		c := s.NextNode(n)
		for i, count := 0, s.NumberOfChildren(n); i < count; i++ {
			next := s.NextTree(c)
			if d < next {
				break
			}
			c = next
		}
		n = c
	}
	return out
}

// CommonAncestor returns the deepest node of root whose tree contains both a
// and b.
func (s *Stack) CommonAncestor(root, a, b Node) Node {
	if a == b {
		return a
	}
	pa := append(s.Ancestors(root, a), a)
	pb := append(s.Ancestors(root, b), b)
	common := NoNode
	for i := 0; i < len(pa) && i < len(pb) && pa[i] == pb[i]; i++ {
		common = pa[i]
	}
	return common
}

// Descendants returns n and every node of its tree in pre-order.
func (s *Stack) Descendants(n Node) []Node {
	end := s.NextTree(n)
	var out []Node
	for m := n; m < end; m = s.NextNode(m) {
		out = append(out, m)
	}
	return out
}

// Walk calls fn for every node of the tree of n in pre-order until fn
// returns false.
func (s *Stack) Walk(n Node, fn func(Node) bool) {
	end := s.NextTree(n)
	for m := n; m < end; m = s.NextNode(m) {
		if !fn(m) {
			return
		}
	}
}

// IsIdentical reports whether the trees rooted at a and b hold the same
// blocks.
func (s *Stack) IsIdentical(a, b Node) bool {
	ea, eb := s.NextTree(a), s.NextTree(b)
	if ea-a != eb-b {
		return false
	}
	for i := Node(0); i < ea-a; i++ {
		if s.blocks[a+i] != s.blocks[b+i] {
			return false
		}
	}
	return true
}

// SameNode reports whether a and b have identical tag and payload blocks.
func (s *Stack) SameNode(a, b Node) bool {
	if s.Type(a) != s.Type(b) {
		return false
	}
	size := s.NodeSize(a)
	for i := 0; i < size; i++ {
		if s.blocks[int(a)+i] != s.blocks[int(b)+i] {
			return false
		}
	}
	return true
}
