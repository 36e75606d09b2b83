package arena

// Ref is a stable handle on a node. The owning Stack keeps it up to date
// across insertions, removals and moves. When its node is destroyed the Ref
// becomes invalid.
type Ref struct {
	s   *Stack
	off int
}

// Ref returns a tracked handle on n. NoNode yields an invalid handle.
func (s *Stack) Ref(n Node) *Ref {
	r := &Ref{s: s, off: int(n)}
	s.refs = append(s.refs, r)
	return r
}

// Release stops tracking r. It is optional; handles are dropped on Flush.
func (s *Stack) Release(r *Ref) {
	for i, x := range s.refs {
		if x == r {
			last := len(s.refs) - 1
			s.refs[i] = s.refs[last]
			s.refs[last] = nil
			s.refs = s.refs[:last]
			return
		}
	}
}

// Node returns the current offset of the handle, or NoNode.
func (r *Ref) Node() Node {
	if r == nil {
		return NoNode
	}
	return Node(r.off)
}

// Valid reports whether the handle still designates a node.
func (r *Ref) Valid() bool {
	return r != nil && r.off != int(NoNode)
}

// Set repoints the handle at n.
func (r *Ref) Set(n Node) {
	r.off = int(n)
}
