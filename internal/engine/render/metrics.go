package render

import "github.com/dshills/mathfield/internal/engine/arena"

// Point is a cell position. Y grows downwards.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// SquareDistanceTo returns the squared euclidean distance between p and q.
func (p Point) SquareDistanceTo(q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// Metrics measures layouts. cursor is the rack holding the cursor, or
// arena.NoNode; grids containing it show their gray cells.
type Metrics interface {
	// Size returns the size of the tree rooted at n.
	Size(s *arena.Stack, n, cursor arena.Node) Size
	// Baseline returns the row of n aligned with its siblings.
	Baseline(s *arena.Stack, n, cursor arena.Node) int
	// SizeBetween returns the size of the children of rack in [from, to).
	SizeBetween(s *arena.Stack, rack arena.Node, from, to int, cursor arena.Node) Size
	// BaselineBetween returns the baseline of the children of rack in
	// [from, to).
	BaselineBetween(s *arena.Stack, rack arena.Node, from, to int, cursor arena.Node) int
	// AbsoluteOrigin returns the origin of n relative to root.
	AbsoluteOrigin(s *arena.Stack, root, n, cursor arena.Node) Point
}
