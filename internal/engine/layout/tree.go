package layout

import (
	"unicode/utf8"

	"github.com/dshills/mathfield/internal/engine/arena"
)

// Tree is a standalone layout tree in block form, ready to be pushed into a
// stack.
type Tree []arena.Block

// Blocks returns the raw blocks of t.
func (t Tree) Blocks() []arena.Block { return t }

// Type returns the type of the root of t.
func (t Tree) Type() arena.Type {
	if len(t) == 0 {
		return 0
	}
	return arena.Type(t[0])
}

// IsRack reports whether the root of t is a rack.
func (t Tree) IsRack() bool { return t.Type() == TypeRack }

// Push appends t at the write head of s and returns its root.
func (t Tree) Push(s *arena.Stack) arena.Node {
	return s.PushTree(t)
}

// FromStack copies the tree rooted at n out of s.
func FromStack(s *arena.Stack, n arena.Node) Tree {
	return Tree(s.TreeBlocks(n))
}

func node(t arena.Type, payload ...arena.Block) Tree {
	k := arena.KindOf(t)
	out := make(Tree, k.Size())
	out[0] = arena.Block(t)
	copy(out[1:], payload)
	return out
}

func rackHeader(count int) Tree {
	return Tree{arena.Block(TypeRack), arena.Block(count), arena.Block(count >> 8)}
}

// Rack builds a rack from its items. Items that are racks are spliced in.
func Rack(items ...Tree) Tree {
	count := 0
	size := 3
	for _, it := range items {
		if it.IsRack() {
			count += int(it[1]) | int(it[2])<<8
			size += len(it) - 3
		} else {
			count++
			size += len(it)
		}
	}
	out := make(Tree, 0, size)
	out = append(out, rackHeader(count)...)
	for _, it := range items {
		if it.IsRack() {
			out = append(out, it[3:]...)
		} else {
			out = append(out, it...)
		}
	}
	return out
}

// asRack wraps t in a rack unless it already is one.
func asRack(t Tree) Tree {
	if t.IsRack() {
		return t
	}
	return Rack(t)
}

// CodePoint builds a code point leaf.
func CodePoint(r rune) Tree {
	if r < 0x80 {
		return node(TypeASCIICodePoint, arena.Block(r))
	}
	out := node(TypeUnicodeCodePoint)
	putRune(out[1:], r)
	return out
}

// Combined builds a code point followed by a combining mark.
func Combined(base, mark rune) Tree {
	out := node(TypeCombinedCodePoints)
	putRune(out[1:], base)
	putRune(out[5:], mark)
	return out
}

// Text builds a rack holding one code point per rune of s.
func Text(s string) Tree {
	items := make([]Tree, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		items = append(items, CodePoint(r))
	}
	return Rack(items...)
}

func withChildren(head Tree, children ...Tree) Tree {
	out := append(Tree{}, head...)
	for _, c := range children {
		out = append(out, asRack(c)...)
	}
	return out
}

// Pair builds an autocompleted pair of type t around content.
func Pair(t arena.Type, leftTemporary, rightTemporary bool, content Tree) Tree {
	var flags arena.Block
	if leftTemporary {
		flags |= pairLeftTemporary
	}
	if rightTemporary {
		flags |= pairRightTemporary
	}
	return withChildren(node(t, flags), content)
}

// Parens builds permanent parentheses around content.
func Parens(content Tree) Tree {
	return Pair(TypeParentheses, false, false, content)
}

// Unary builds a single-child node such as Abs or Sqrt.
func Unary(t arena.Type, child Tree) Tree {
	return withChildren(node(t), child)
}

// Sqrt builds a square root.
func Sqrt(radicand Tree) Tree { return Unary(TypeSqrt, radicand) }

// Root builds an nth root.
func Root(radicand, index Tree) Tree {
	return withChildren(node(TypeRoot), radicand, index)
}

// Frac builds a fraction.
func Frac(numerator, denominator Tree) Tree {
	return withChildren(node(TypeFraction), numerator, denominator)
}

// Binary builds a two-child node of type t.
func Binary(t arena.Type, first, second Tree) Tree {
	return withChildren(node(t), first, second)
}

func offset(flags arena.Block, child Tree) Tree {
	return withChildren(node(TypeVerticalOffset, flags), child)
}

// Superscript builds a suffix superscript.
func Superscript(child Tree) Tree { return offset(0, child) }

// Subscript builds a suffix subscript.
func Subscript(child Tree) Tree { return offset(offsetSubscript, child) }

// PrefixSuperscript builds a superscript placed left of its base.
func PrefixSuperscript(child Tree) Tree { return offset(offsetPrefix, child) }

// PrefixSubscript builds a subscript placed left of its base.
func PrefixSubscript(child Tree) Tree { return offset(offsetPrefix|offsetSubscript, child) }

// Parametric builds a sum or a product.
func Parametric(t arena.Type, variable, lower, upper, argument Tree) Tree {
	return withChildren(node(t), variable, lower, upper, argument)
}

// Integral builds an integral.
func Integral(differential, lower, upper, integrand Tree) Tree {
	return withChildren(node(TypeIntegral), differential, lower, upper, integrand)
}

// Diff builds a derivative. nth selects the higher order form.
func Diff(variable, abscissa, order, derivand Tree, nth bool) Tree {
	var flags arena.Block
	if nth {
		flags |= diffNth
	}
	return withChildren(node(TypeDiff, flags), variable, abscissa, order, derivand)
}

// ListSequence builds a list sequence.
func ListSequence(function, variable, upper Tree) Tree {
	return withChildren(node(TypeListSequence), function, variable, upper)
}

// Grid builds a grid of type t with the given stored dimensions. cells are
// laid out row by row; missing cells are empty racks.
func Grid(t arena.Type, rows, cols int, cells ...Tree) Tree {
	out := node(t, arena.Block(rows), arena.Block(cols))
	for i := 0; i < rows*cols; i++ {
		if i < len(cells) {
			out = append(out, asRack(cells[i])...)
		} else {
			out = append(out, Rack()...)
		}
	}
	return out
}

// EmptyMatrix builds a 1x1 matrix with its gray row and column.
func EmptyMatrix() Tree { return Grid(TypeMatrix, 2, 2) }

// EmptyPiecewise builds a one-row piecewise with its gray row.
func EmptyPiecewise() Tree { return Grid(TypePiecewise, 2, 2) }
