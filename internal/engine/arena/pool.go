package arena

import "sync"

// StackPool recycles scratch stacks between edits.
// It uses sync.Pool for thread-safe pooling with per-P caches.
type StackPool struct {
	pool sync.Pool
}

// DefaultPool is the pool used for scratch stacks.
var DefaultPool = NewStackPool()

// NewStackPool creates a new stack pool.
func NewStackPool() *StackPool {
	return &StackPool{
		pool: sync.Pool{
			New: func() interface{} {
				return NewStack()
			},
		},
	}
}

// Get returns an empty stack with the given capacity.
func (p *StackPool) Get(maxBlocks int) *Stack {
	s := p.pool.Get().(*Stack)
	s.Flush()
	s.max = maxBlocks
	if s.max <= 0 {
		s.max = DefaultMaxBlocks
	}
	return s
}

// Put flushes s and returns it to the pool.
// The stack should not be used after calling this method.
func (p *StackPool) Put(s *Stack) {
	if s == nil {
		return
	}
	s.Flush()
	p.pool.Put(s)
}
