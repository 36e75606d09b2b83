// Package layout defines the node types of a math layout tree and the
// structural rules attached to each of them.
//
// Every layout tree is stored in an arena.Stack. The package registers one
// arena kind per node type, then describes how each type behaves under
// editing:
//
//   - Rack: the n-ary horizontal sequence. Racks never contain racks and
//     every child of a non-rack node is a rack.
//   - Code points: leaves holding an ASCII, Unicode or combined code point.
//   - Autocompleted pairs (parentheses and curly braces): one child rack and
//     two "temporary" side flags.
//   - Grids (matrix, piecewise): rows x columns of racks with a trailing gray
//     row and column for resizable dimensions.
//   - Fixed-arity constructs: fraction, roots, vertical offsets, sums,
//     integrals, derivatives and the others listed in types.go.
//
// The per-type tables live in motion.go (cursor moves), deletion.go
// (backspace) and collapse.go (sibling absorption). Tree builds standalone
// templates that callers push or insert into a stack:
//
//	t := layout.Rack(layout.Text("1+"), layout.Frac(layout.Text("2"), layout.Rack()))
//	root := s.PushTree(t.Blocks())
//
// # Notation
//
// Parse and Format convert between trees and a compact text notation used
// in tests and logs:
//
//	(   opening parenthesis, permanent on the left
//	[   opening parenthesis, temporary on the left
//	)   closing parenthesis, permanent on the right
//	]   closing parenthesis, temporary on the right
//	\{  \}  curly braces (\~{ and \~} for temporary sides)
//	|   the cursor
//	frac{1}{2}, sqrt{x}, sup{2}, matrix:2x2{a}{b}{c}{d} ...
//
// Any other character is a code point. A backtick escapes the next
// character.
package layout
