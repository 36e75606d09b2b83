package buffer

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/cursor"
	"github.com/dshills/mathfield/internal/engine/layout"
)

// Write Operations

// Move moves the cursor one step in dir, extending the selection when
// selecting. It reports whether the cursor moved and whether the tree must
// be redrawn.
func (b *Buffer) Move(dir layout.Direction, selecting bool) (moved, redraw bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	err = b.execute("move", func(c *cursor.Cursor) {
		moved, redraw = c.Move(dir, selecting)
	})
	return moved, redraw, err
}

// MoveMultipleSteps moves the cursor steps times in dir.
func (b *Buffer) MoveMultipleSteps(dir layout.Direction, steps int, selecting bool) (moved, redraw bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	err = b.execute("move", func(c *cursor.Cursor) {
		moved, redraw = c.MoveMultipleSteps(dir, steps, selecting)
	})
	return moved, redraw, err
}

// InsertLayout inserts a copy of t at the cursor, replacing the selection.
// collapse is ignored when sibling collapsing is disabled.
func (b *Buffer) InsertLayout(t layout.Tree, forceRight, forceLeft, collapse bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.execute("insert layout", func(c *cursor.Cursor) {
		c.InsertLayout(t, forceRight, forceLeft, collapse && b.collapse)
	})
}

// InsertText inserts text at the cursor, replacing the selection.
// In linear mode brackets stay code points and the cursor stops at the first
// U+0011 of text.
func (b *Buffer) InsertText(text string, forceRight, forceLeft, linear bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.execute("insert text", func(c *cursor.Cursor) {
		c.InsertText(text, forceRight, forceLeft, linear)
	})
}

// InsertTemplate inserts tpl at the cursor.
func (b *Buffer) InsertTemplate(tpl Template) error {
	return b.InsertLayout(tpl.Tree, tpl.ForceRight, tpl.ForceLeft, tpl.Collapse)
}

// PerformBackspace deletes the selection or the layout left of the cursor.
func (b *Buffer) PerformBackspace() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.execute("backspace", func(c *cursor.Cursor) {
		c.PerformBackspace()
	})
}

// ResetSelection drops the selection, leaving the cursor where it is.
func (b *Buffer) ResetSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.anchor = -1
}

// PrepareForExitingPosition moves the cursor out of a gray grid cell before
// the field loses focus.
func (b *Buffer) PrepareForExitingPosition() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.execute("exit", func(c *cursor.Cursor) {
		c.PrepareForExitingPosition()
	})
}

// BeautifyLeft beautifies the identifiers left of the cursor. It reports
// whether the tree changed.
func (b *Buffer) BeautifyLeft() (changed bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	err = b.execute("beautify", func(c *cursor.Cursor) {
		changed = c.BeautifyLeft()
	})
	return changed, err
}

// execute runs action on a cursor over a scratch copy of the tree and
// commits the result. When the result does not fit the capacity, or the
// scratch stack runs out of blocks, the buffer is left untouched and the
// error wraps ErrArenaExhausted.
// The caller must hold the write lock.
func (b *Buffer) execute(op string, action func(c *cursor.Cursor)) error {
	scratch := arena.DefaultPool.Get(b.scratchCapacity())
	defer arena.DefaultPool.Put(scratch)

	var result State
	err := arena.Guard(func() {
		scratch.Load(b.stack.Snapshot())
		c := cursor.NewCursor(scratch, root, b.rack, b.position, b.metrics, b.beautifier)
		defer c.Release()
		c.Select(b.anchor)

		action(c)

		sel := c.Selection()
		arena.EnsureFits(scratch.TreeSize(root), b.stack.Max())
		result = State{
			Blocks:   scratch.TreeBlocks(root),
			Rack:     c.Rack(),
			Position: c.Position(),
			Anchor:   -1,
		}
		if c.IsSelecting() {
			result.Anchor = sel.Anchor
		}
	})
	if err != nil {
		Log.WithFields(logrus.Fields{
			"op":       op,
			"capacity": b.stack.Max(),
			"error":    err,
		}).Debug("edit aborted")
		return fmt.Errorf("%s: %w", op, err)
	}

	if !slices.Equal(result.Blocks, b.stack.Blocks(root, b.stack.End())) {
		b.stack.Load(result.Blocks)
		b.revisionID = NewRevisionID()
	}
	b.rack, b.position, b.anchor = result.Rack, result.Position, result.Anchor
	return nil
}
