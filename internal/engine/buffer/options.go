package buffer

import (
	"github.com/dshills/mathfield/internal/engine/beautify"
	"github.com/dshills/mathfield/internal/engine/render"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithCapacity sets the number of blocks the layout tree may use.
func WithCapacity(blocks int) Option {
	return func(b *Buffer) {
		if blocks > 0 {
			b.capacity = blocks
		}
	}
}

// WithMetrics sets the metrics used for vertical moves and cursor geometry.
func WithMetrics(m render.Metrics) Option {
	return func(b *Buffer) {
		if m != nil {
			b.metrics = m
		}
	}
}

// WithBeautifier sets the rules rewriting identifiers as the user types.
func WithBeautifier(bt beautify.Beautifier) Option {
	return func(b *Buffer) {
		if bt != nil {
			b.beautifier = bt
		}
	}
}

// WithSiblingCollapsing enables or disables the absorption of neighbours
// by inserted fractions, roots and conjugates.
func WithSiblingCollapsing(on bool) Option {
	return func(b *Buffer) {
		b.collapse = on
	}
}
