package engine

import (
	"github.com/google/uuid"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/beautify"
	"github.com/dshills/mathfield/internal/engine/render"
)

// Default configuration values.
const (
	DefaultCapacity       = arena.DefaultMaxBlocks
	DefaultMaxUndoEntries = 1000
)

// Option configures a Field during creation.
type Option func(*Field)

// WithContent sets the initial content of the field in the layout notation.
func WithContent(content string) Option {
	return func(f *Field) {
		f.initContent = content
	}
}

// WithCapacity sets the number of blocks the layout tree may use.
func WithCapacity(blocks int) Option {
	return func(f *Field) {
		if blocks > 0 {
			f.capacity = blocks
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(f *Field) {
		if max > 0 {
			f.maxUndoEntries = max
		}
	}
}

// WithSiblingCollapsing enables or disables the absorption of neighbours by
// inserted fractions and roots.
func WithSiblingCollapsing(on bool) Option {
	return func(f *Field) {
		f.collapse = on
	}
}

// WithBeautifier sets the identifier rewriting rules.
func WithBeautifier(bt beautify.Beautifier) Option {
	return func(f *Field) {
		f.beautifier = bt
	}
}

// WithMetrics sets the metrics used for vertical moves and cursor geometry.
func WithMetrics(m render.Metrics) Option {
	return func(f *Field) {
		f.metrics = m
	}
}

// WithSessionID sets the session ID instead of a random one.
func WithSessionID(id uuid.UUID) Option {
	return func(f *Field) {
		f.sessionID = id
	}
}

// WithReadOnly creates a read-only field.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(f *Field) {
		f.readOnly = true
	}
}
