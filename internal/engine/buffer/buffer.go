package buffer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/beautify"
	"github.com/dshills/mathfield/internal/engine/cursor"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/render"
)

// root is the offset of the layout tree in the buffer stack.
const root arena.Node = 0

// ScratchFactor is the size of an edit's scratch stack relative to the
// buffer capacity.
const ScratchFactor = 2

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// Buffer holds a layout tree and the cursor editing it.
// The tree is a rack stored at offset 0 of a bounded stack.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	stack      *arena.Stack
	rack       arena.Node
	position   int
	anchor     int
	revisionID RevisionID

	capacity   int
	metrics    render.Metrics
	beautifier beautify.Beautifier
	collapse   bool
}

// NewBuffer creates a buffer holding an empty rack.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		rack:       root,
		anchor:     -1,
		revisionID: NewRevisionID(),
		capacity:   arena.DefaultMaxBlocks,
		metrics:    render.NewCells(),
		beautifier: beautify.Nop{},
		collapse:   true,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.stack = arena.NewStack(arena.WithMaxBlocks(b.capacity))
	layout.Rack().Push(b.stack)
	return b
}

// NewBufferFromString creates a buffer from the layout notation. A '|' in
// src places the cursor, which otherwise ends up at the end of the tree.
func NewBufferFromString(src string, opts ...Option) (*Buffer, error) {
	t, mark, err := layout.Parse(src)
	if err != nil {
		return nil, err
	}
	b := NewBuffer(opts...)
	if err := b.load(t, mark); err != nil {
		return nil, err
	}
	return b, nil
}

// Load replaces the content of the buffer with t. A tree that is not a rack
// is wrapped in one. The cursor is put at the end of the tree.
func (b *Buffer) Load(t layout.Tree) error {
	if len(t) > 0 && !t.IsRack() {
		t = layout.Rack(t)
	}
	return b.load(t, layout.Mark{})
}

func (b *Buffer) load(t layout.Tree, mark layout.Mark) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := arena.NewStack(arena.WithMaxBlocks(b.stack.Max()))
	if err := arena.Guard(func() {
		if len(t) == 0 {
			t = layout.Rack()
		}
		t.Push(s)
	}); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := layout.Validate(s, root); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	rack, position := root, s.NumberOfChildren(root)
	if mark.Found {
		rack, position = mark.Resolve(s, root)
	}
	b.stack = s
	b.rack, b.position, b.anchor = rack, position, -1
	b.revisionID = NewRevisionID()
	return nil
}

// Read Operations

// Tree returns a copy of the layout tree.
func (b *Buffer) Tree() layout.Tree {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return layout.FromStack(b.stack, root)
}

// String returns the tree in the layout notation with the cursor marked.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return layout.FormatWithCursor(b.stack, root, b.rack, b.position)
}

// IsEmpty returns true if the tree has no layout.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stack.NumberOfChildren(root) == 0
}

// Len returns the number of blocks used by the tree.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stack.Len()
}

// Capacity returns the maximum number of blocks of the tree.
func (b *Buffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stack.Max()
}

// Selection returns the selected children of the cursor rack.
func (b *Buffer) Selection() cursor.Selection {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selection()
}

func (b *Buffer) selection() cursor.Selection {
	if b.anchor < 0 {
		return cursor.NewCursorSelection(b.rack, b.position)
	}
	return cursor.NewSelection(b.rack, b.anchor, b.position)
}

// SelectionTree returns a copy of the selected layouts as a rack. The rack is
// empty when nothing is selected.
func (b *Buffer) SelectionTree() layout.Tree {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sel := b.selection()
	items := make([]layout.Tree, 0, sel.Len())
	for i := sel.Start(); i < sel.End(); i++ {
		items = append(items, layout.FromStack(b.stack, b.stack.Child(b.rack, i)))
	}
	return layout.Rack(items...)
}

// IsSelecting reports whether a selection is being made.
func (b *Buffer) IsSelecting() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.anchor >= 0
}

// CursorHeight returns the height of the cursor in cells.
func (b *Buffer) CursorHeight() int {
	var h int
	b.inspect(func(c *cursor.Cursor) { h = c.CursorHeight() })
	return h
}

// CursorOrigin returns the top of the cursor relative to the tree origin.
func (b *Buffer) CursorOrigin() render.Point {
	var p render.Point
	b.inspect(func(c *cursor.Cursor) { p = c.CursorOrigin() })
	return p
}

// IsAtNumeratorOfEmptyFraction reports whether the cursor is alone in an
// empty fraction, where a second division sign is meaningless.
func (b *Buffer) IsAtNumeratorOfEmptyFraction() bool {
	var ok bool
	b.inspect(func(c *cursor.Cursor) { ok = c.IsAtNumeratorOfEmptyFraction() })
	return ok
}

// View calls fn with the tree and the frame to draw it with. fn must not
// modify the stack nor keep it past its return.
func (b *Buffer) View(fn func(s *arena.Stack, root arena.Node, f render.Frame)) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	fn(b.stack, root, render.Frame{Cursor: b.rack, Selection: b.selection().Span()})
}

// scratchCapacity is the size of the stacks edits run on. The balancer
// writes a full copy of the root next to it, so the scratch stack holds
// twice the committed capacity.
func (b *Buffer) scratchCapacity() int {
	return ScratchFactor * b.stack.Max()
}

// inspect runs fn on a cursor over a private copy of the tree.
func (b *Buffer) inspect(fn func(c *cursor.Cursor)) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	scratch := arena.DefaultPool.Get(b.scratchCapacity())
	defer arena.DefaultPool.Put(scratch)
	scratch.Load(b.stack.Snapshot())
	c := cursor.NewCursor(scratch, root, b.rack, b.position, b.metrics, b.beautifier)
	defer c.Release()
	c.Select(b.anchor)
	fn(c)
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		state:      b.state(),
		revisionID: b.revisionID,
	}
}

// State returns a copy of the tree and the cursor.
func (b *Buffer) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state()
}

func (b *Buffer) state() State {
	return State{
		Blocks:   b.stack.TreeBlocks(root),
		Rack:     b.rack,
		Position: b.position,
		Anchor:   b.anchor,
	}
}

// Restore replaces the tree and the cursor with st.
func (b *Buffer) Restore(st State) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := arena.NewStack(arena.WithMaxBlocks(b.stack.Max()))
	if err := arena.Guard(func() { s.Load(st.Blocks) }); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if err := st.check(s); err != nil {
		Log.WithField("error", err).Debug("restore rejected")
		return fmt.Errorf("restore: %w", err)
	}
	b.stack = s
	b.rack, b.position, b.anchor = st.Rack, st.Position, st.Anchor
	if b.anchor == b.position {
		b.anchor = -1
	}
	b.revisionID = NewRevisionID()
	return nil
}

// Settings

// SetBeautifier replaces the identifier rules. A nil bt disables them.
func (b *Buffer) SetBeautifier(bt beautify.Beautifier) {
	if bt == nil {
		bt = beautify.Nop{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.beautifier = bt
}

// SetSiblingCollapsing enables or disables sibling collapsing for later
// insertions.
func (b *Buffer) SetSiblingCollapsing(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.collapse = on
}
