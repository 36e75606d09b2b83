// Package buffer holds a layout tree and its cursor behind a thread-safe
// editing interface.
//
// The tree lives in a bounded arena stack. Every edit runs as a
// transaction:
//
//  1. the tree is copied into a scratch stack taken from arena.DefaultPool
//  2. a cursor.Cursor performs the edit on the copy
//  3. the edited tree and the cursor are copied back
//
// When the scratch stack runs out of blocks the edit is abandoned and the
// buffer keeps its previous tree and cursor; the returned error wraps
// ErrArenaExhausted.
//
// Basic usage:
//
//	buf, _ := buffer.NewBufferFromString("1+|2")
//
//	// Insert a fraction absorbing the 2
//	buf.InsertTemplate(buffer.Fraction)  // 1+frac{|}{2}
//
//	// Save and restore the tree and the cursor
//	st := buf.State()
//	buf.PerformBackspace()
//	buf.Restore(st)
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while edits acquire an exclusive write lock. Snapshot returns a read-only
// copy that stays valid across later edits.
package buffer
