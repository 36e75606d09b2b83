// Package cursor moves a cursor through a layout tree and edits the tree
// around it.
//
// A cursor is a rack and a position between two of its children:
//
//	1+frac{|2}{3}
//
// is the cursor at position 0 of the numerator rack. The cursor never sits
// inside a non-rack layout. Selections use an anchor/head model restricted
// to the rack holding the cursor:
//   - Anchor: the position where the selection started
//   - Head: the cursor position
//
// Moving into another rack while selecting widens the selection to the
// whole layouts of the rack the two positions share.
//
// Editing:
//
//   - InsertLayout inserts a tree, entering its first empty rack unless a
//     side is forced, and may let a fraction absorb its neighbours
//   - InsertText inserts code points, turning brackets into pairs left to
//     the balancer
//   - PerformBackspace deletes the selection or applies the deletion method
//     of the layout left of the cursor
//
// Every edit ends with balance.Balance so that bracket pairs stay
// reconciled, and calls the beautifier around insertions and moves.
//
// Thread Safety:
//
// A Cursor works directly on its stack and is not safe for concurrent use.
// The buffer package runs each edit on a private scratch stack.
package cursor
