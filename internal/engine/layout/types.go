package layout

import "github.com/dshills/mathfield/internal/engine/arena"

// Node types. Zero is never a valid tag.
const (
	TypeRack arena.Type = iota + 1
	TypeASCIICodePoint
	TypeUnicodeCodePoint
	TypeCombinedCodePoints
	TypeParentheses
	TypeCurlyBraces
	TypeAbs
	TypeFloor
	TypeCeil
	TypeVectorNorm
	TypeConj
	TypeSqrt
	TypeRoot
	TypeFraction
	TypeVerticalOffset
	TypeBinomial
	TypePoint2D
	TypePtBinomial
	TypePtPermute
	TypeSum
	TypeProduct
	TypeIntegral
	TypeDiff
	TypeListSequence
	TypeMatrix
	TypePiecewise
)

func gridChildren(payload []arena.Block) int {
	return int(payload[0]) * int(payload[1])
}

func init() {
	arena.Register(TypeRack, arena.Kind{Name: "Rack", Payload: 2, Arity: arena.NAry})
	arena.Register(TypeASCIICodePoint, arena.Kind{Name: "AsciiCodePoint", Payload: 1})
	arena.Register(TypeUnicodeCodePoint, arena.Kind{Name: "UnicodeCodePoint", Payload: 4})
	arena.Register(TypeCombinedCodePoints, arena.Kind{Name: "CombinedCodePoints", Payload: 8})
	arena.Register(TypeParentheses, arena.Kind{Name: "Parentheses", Payload: 1, Arity: 1})
	arena.Register(TypeCurlyBraces, arena.Kind{Name: "CurlyBraces", Payload: 1, Arity: 1})
	arena.Register(TypeAbs, arena.Kind{Name: "Abs", Arity: 1})
	arena.Register(TypeFloor, arena.Kind{Name: "Floor", Arity: 1})
	arena.Register(TypeCeil, arena.Kind{Name: "Ceil", Arity: 1})
	arena.Register(TypeVectorNorm, arena.Kind{Name: "VectorNorm", Arity: 1})
	arena.Register(TypeConj, arena.Kind{Name: "Conj", Arity: 1})
	arena.Register(TypeSqrt, arena.Kind{Name: "Sqrt", Arity: 1})
	arena.Register(TypeRoot, arena.Kind{Name: "Root", Arity: 2})
	arena.Register(TypeFraction, arena.Kind{Name: "Fraction", Arity: 2})
	arena.Register(TypeVerticalOffset, arena.Kind{Name: "VerticalOffset", Payload: 1, Arity: 1})
	arena.Register(TypeBinomial, arena.Kind{Name: "Binomial", Arity: 2})
	arena.Register(TypePoint2D, arena.Kind{Name: "Point2D", Arity: 2})
	arena.Register(TypePtBinomial, arena.Kind{Name: "PtBinomial", Arity: 2})
	arena.Register(TypePtPermute, arena.Kind{Name: "PtPermute", Arity: 2})
	arena.Register(TypeSum, arena.Kind{Name: "Sum", Arity: 4})
	arena.Register(TypeProduct, arena.Kind{Name: "Product", Arity: 4})
	arena.Register(TypeIntegral, arena.Kind{Name: "Integral", Arity: 4})
	arena.Register(TypeDiff, arena.Kind{Name: "Diff", Payload: 1, Arity: 4})
	arena.Register(TypeListSequence, arena.Kind{Name: "ListSequence", Arity: 3})
	arena.Register(TypeMatrix, arena.Kind{Name: "Matrix", Payload: 2, Children: gridChildren})
	arena.Register(TypePiecewise, arena.Kind{Name: "Piecewise", Payload: 2, Children: gridChildren})
}

// IsRack reports whether t is the rack type.
func IsRack(t arena.Type) bool { return t == TypeRack }

// IsCodePoint reports whether t is one of the code point leaf types.
func IsCodePoint(t arena.Type) bool {
	return t == TypeASCIICodePoint || t == TypeUnicodeCodePoint || t == TypeCombinedCodePoints
}

// IsPair reports whether t is an autocompleted bracket pair.
func IsPair(t arena.Type) bool {
	return t == TypeParentheses || t == TypeCurlyBraces
}

// IsGrid reports whether t is a grid.
func IsGrid(t arena.Type) bool {
	return t == TypeMatrix || t == TypePiecewise
}

// IsTwoRows reports whether t stacks two racks vertically.
func IsTwoRows(t arena.Type) bool {
	return t == TypeBinomial || t == TypePoint2D
}

// IsParametric reports whether t is a big operator with a bound variable.
func IsParametric(t arena.Type) bool {
	return t == TypeSum || t == TypeProduct
}
