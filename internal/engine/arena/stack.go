package arena

// DefaultMaxBlocks is the default capacity of a Stack.
const DefaultMaxBlocks = 4096

// Node is the offset of a node's tag block in its Stack.
// A Node is only valid until the next mutation of the Stack.
type Node int

// NoNode is returned by lookups that find nothing.
const NoNode Node = -1

// Stack is a bounded, growable run of blocks holding one or more trees laid
// out back to back. New trees are pushed at the write head (the end).
//
// A Stack is not safe for concurrent use.
type Stack struct {
	blocks []Block
	max    int
	refs   []*Ref
}

// Option configures a Stack during creation.
type Option func(*Stack)

// WithMaxBlocks sets the capacity of the stack.
func WithMaxBlocks(n int) Option {
	return func(s *Stack) {
		if n > 0 {
			s.max = n
		}
	}
}

// NewStack creates an empty stack.
func NewStack(opts ...Option) *Stack {
	s := &Stack{max: DefaultMaxBlocks}
	for _, opt := range opts {
		opt(s)
	}
	s.blocks = make([]Block, 0, min(s.max, 256))
	return s
}

// Len returns the number of blocks in use.
func (s *Stack) Len() int {
	return len(s.blocks)
}

// Max returns the capacity of the stack in blocks.
func (s *Stack) Max() int {
	return s.max
}

// End returns the write head, the offset just past the last tree.
func (s *Stack) End() Node {
	return Node(len(s.blocks))
}

// Blocks returns a copy of the blocks in [from, to).
func (s *Stack) Blocks(from, to Node) []Block {
	out := make([]Block, int(to-from))
	copy(out, s.blocks[from:to])
	return out
}

// Snapshot returns a copy of every block in the stack.
func (s *Stack) Snapshot() []Block {
	return s.Blocks(0, s.End())
}

// Flush empties the stack and invalidates every live Ref.
func (s *Stack) Flush() {
	s.blocks = s.blocks[:0]
	for _, r := range s.refs {
		r.off = int(NoNode)
		r.s = nil
	}
	s.refs = s.refs[:0]
}

// Load replaces the content of the stack with blocks.
func (s *Stack) Load(blocks []Block) {
	s.Flush()
	s.grow(len(blocks))
	s.blocks = append(s.blocks, blocks...)
}

// grow panics with an exhausted value if n more blocks do not fit.
func (s *Stack) grow(n int) {
	if len(s.blocks)+n > s.max {
		panic(exhausted{need: len(s.blocks) + n, max: s.max})
	}
}

// insertBlocks inserts data before offset at. Refs pointing at `at` keep
// pointing at the node that was there unless claim is set, in which case
// they point at the inserted data.
func (s *Stack) insertBlocks(at int, data []Block, claim bool) {
	n := len(data)
	if n == 0 {
		return
	}
	s.grow(n)
	s.blocks = append(s.blocks, data...)
	copy(s.blocks[at+n:], s.blocks[at:len(s.blocks)-n])
	copy(s.blocks[at:], data)
	s.patchRefs(func(r int) int {
		if r < at || (r == at && claim) {
			return r
		}
		return r + n
	})
}

// removeBlocks deletes the range [at, at+n).
func (s *Stack) removeBlocks(at, n int) {
	if n == 0 {
		return
	}
	copy(s.blocks[at:], s.blocks[at+n:])
	s.blocks = s.blocks[:len(s.blocks)-n]
	s.patchRefs(func(r int) int {
		switch {
		case r < at:
			return r
		case r < at+n:
			return int(NoNode)
		default:
			return r - n
		}
	})
}

// moveBlocks relocates [src, src+n) so that it sits just before dst.
// It returns the new offset of the moved range.
func (s *Stack) moveBlocks(dst, src, n int) int {
	if n == 0 || (dst >= src && dst <= src+n) {
		return src
	}
	moved := make([]Block, n)
	copy(moved, s.blocks[src:src+n])
	var final int
	if dst > src {
		copy(s.blocks[src:], s.blocks[src+n:dst])
		final = dst - n
	} else {
		copy(s.blocks[dst+n:], s.blocks[dst:src])
		final = dst
	}
	copy(s.blocks[final:], moved)
	s.patchRefs(func(r int) int {
		switch {
		case r >= src && r < src+n:
			return final + r - src
		case dst > src && r >= src+n && r < dst:
			return r - n
		case dst < src && r >= dst && r < src:
			return r + n
		default:
			return r
		}
	})
	return final
}

// replaceBlocks overwrites the range [dst, dst+dstLen) with the range
// [src, src+srcLen). The source range is either disjoint from the
// destination or contained in it. Refs into the source follow it, refs to the
// destination start point at the new content and other refs into the
// destination are invalidated. It returns the offset of the new content.
func (s *Stack) replaceBlocks(dst, dstLen, src, srcLen int) int {
	moved := make([]Block, srcLen)
	copy(moved, s.blocks[src:src+srcLen])
	var out []Block
	var mapRef func(int) int
	var final int
	switch {
	case src >= dst && src+srcLen <= dst+dstLen:
		final = dst
		out = make([]Block, 0, len(s.blocks)-dstLen+srcLen)
		out = append(out, s.blocks[:dst]...)
		out = append(out, moved...)
		out = append(out, s.blocks[dst+dstLen:]...)
		mapRef = func(r int) int {
			switch {
			case r < dst:
				return r
			case r >= src && r < src+srcLen:
				return dst + r - src
			case r == dst:
				return dst
			case r < dst+dstLen:
				return int(NoNode)
			default:
				return r - dstLen + srcLen
			}
		}
	case src > dst:
		final = dst
		out = make([]Block, 0, len(s.blocks)-dstLen)
		out = append(out, s.blocks[:dst]...)
		out = append(out, moved...)
		out = append(out, s.blocks[dst+dstLen:src]...)
		out = append(out, s.blocks[src+srcLen:]...)
		mapRef = func(r int) int {
			switch {
			case r <= dst:
				return r
			case r < dst+dstLen:
				return int(NoNode)
			case r >= src && r < src+srcLen:
				return dst + r - src
			case r < src:
				return r - dstLen + srcLen
			default:
				return r - dstLen
			}
		}
	default:
		final = dst - srcLen
		out = make([]Block, 0, len(s.blocks)-dstLen)
		out = append(out, s.blocks[:src]...)
		out = append(out, s.blocks[src+srcLen:dst]...)
		out = append(out, moved...)
		out = append(out, s.blocks[dst+dstLen:]...)
		mapRef = func(r int) int {
			switch {
			case r < src:
				return r
			case r < src+srcLen:
				return final + r - src
			case r < dst:
				return r - srcLen
			case r == dst:
				return final
			case r < dst+dstLen:
				return int(NoNode)
			default:
				return r - dstLen
			}
		}
	}
	s.blocks = append(s.blocks[:0], out...)
	s.patchRefs(mapRef)
	return final
}

func (s *Stack) patchRefs(f func(int) int) {
	for _, r := range s.refs {
		if r.off != int(NoNode) {
			r.off = f(r.off)
		}
	}
}
