package layout

import (
	"fmt"

	"github.com/dshills/mathfield/internal/engine/arena"
)

// Validate checks the structural rules of the layout tree rooted at root:
// registered types, racks holding only non-rack layouts, non-rack layouts
// holding only racks, grid dimensions and the extent of the tree.
func Validate(s *arena.Stack, root arena.Node) error {
	if int(root) < 0 || int(root) >= s.Len() {
		return fmt.Errorf("%w: root %d outside the stack", ErrInvalidLayout, root)
	}
	if s.Type(root) != TypeRack {
		return fmt.Errorf("%w: root is a %s", ErrInvalidLayout, s.Type(root))
	}
	end, err := validate(s, root, s.End())
	if err != nil {
		return err
	}
	if end > s.End() {
		return fmt.Errorf("%w: tree overruns the stack", ErrInvalidLayout)
	}
	return nil
}

func validate(s *arena.Stack, n, limit arena.Node) (arena.Node, error) {
	if n >= limit {
		return n, fmt.Errorf("%w: node at %d past the end of the stack", ErrInvalidLayout, n)
	}
	t := s.Type(n)
	if arena.KindOf(t) == nil {
		return n, fmt.Errorf("%w: unknown type %d at %d", ErrInvalidLayout, t, n)
	}
	if s.NextNode(n) > limit {
		return n, fmt.Errorf("%w: %s at %d is truncated", ErrInvalidLayout, t, n)
	}
	if IsGrid(t) {
		g := AsGrid(s, n)
		if g.Rows() < 1 || g.Columns() < 1 {
			return n, fmt.Errorf("%w: %s at %d is %dx%d", ErrInvalidLayout, t, n, g.Rows(), g.Columns())
		}
	}
	count := s.NumberOfChildren(n)
	c := s.NextNode(n)
	for i := 0; i < count; i++ {
		if c >= limit {
			return c, fmt.Errorf("%w: %s at %d misses child %d", ErrInvalidLayout, t, n, i)
		}
		childIsRack := s.Type(c) == TypeRack
		if t == TypeRack && childIsRack {
			return c, fmt.Errorf("%w: rack at %d nested in rack at %d", ErrInvalidLayout, c, n)
		}
		if t != TypeRack && !childIsRack {
			return c, fmt.Errorf("%w: %s at %d has non-rack child %s", ErrInvalidLayout, t, n, s.Type(c))
		}
		next, err := validate(s, c, limit)
		if err != nil {
			return next, err
		}
		c = next
	}
	return c, nil
}
