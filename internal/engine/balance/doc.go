// Package balance reconciles the temporary sides of autocompleted bracket
// pairs.
//
// Typing "(" inserts a pair whose right side is temporary; typing ")" inserts
// one whose left side is temporary. Editing only sets and clears these flags.
// Balance then rewrites the rack holding the cursor so that every pair of a
// given type is either closed on both sides or provably minimal, and moves
// the cursor to the equivalent spot in the rewritten tree.
//
// In the notation of the layout package, where "[" and "]" are temporary
// sides:
//
//	(A]+((B)+[C))   becomes   (A+((B)+C))
//	|12[34)         becomes   |[1234)
//
// Parentheses are balanced first, then curly braces. Each pass is linear in
// the size of the tree.
package balance
