package layout

import (
	"github.com/dshills/mathfield/internal/engine/arena"
)

// Code points with a structural meaning.
const (
	// EmptyCodePoint marks where the cursor goes in linear-mode text.
	EmptyCodePoint = '\u0011'

	SmallCapitalE      = 'ᴇ'
	MultiplicationSign = '×'
	MiddleDot          = '·'
	RightwardsArrow    = '→'
	LessOrEqual        = '≤'
	GreaterOrEqual     = '≥'
	NotEqual           = '≠'
)

func putRune(b []arena.Block, r rune) {
	v := uint32(r)
	b[0] = arena.Block(v)
	b[1] = arena.Block(v >> 8)
	b[2] = arena.Block(v >> 16)
	b[3] = arena.Block(v >> 24)
}

func getRune(s *arena.Stack, n arena.Node, at int) rune {
	return rune(uint32(s.Payload(n, at)) | uint32(s.Payload(n, at+1))<<8 |
		uint32(s.Payload(n, at+2))<<16 | uint32(s.Payload(n, at+3))<<24)
}

// CodePointOf returns the code point of a code point node. Combined code
// points return their base.
func CodePointOf(s *arena.Stack, n arena.Node) rune {
	switch s.Type(n) {
	case TypeASCIICodePoint:
		return rune(s.Payload(n, 0))
	case TypeUnicodeCodePoint, TypeCombinedCodePoints:
		return getRune(s, n, 0)
	}
	return 0
}

// CombiningOf returns the combining mark of a combined code point node.
func CombiningOf(s *arena.Stack, n arena.Node) rune {
	if s.Type(n) != TypeCombinedCodePoints {
		return 0
	}
	return getRune(s, n, 4)
}

// IsCodePointNode reports whether n is a code point node holding r.
func IsCodePointNode(s *arena.Stack, n arena.Node, r rune) bool {
	return IsCodePoint(s.Type(n)) && s.Type(n) != TypeCombinedCodePoints && CodePointOf(s, n) == r
}

// IsIdentifierMaterial reports whether r may be part of an identifier.
func IsIdentifierMaterial(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '\'' || r == '"':
		return true
	case r >= 0x391 && r <= 0x3C9 && r != 0x3A2:
		// Greek letters
		return true
	}
	return false
}

// IsEquationOperator reports whether r is a comparison sign.
func IsEquationOperator(r rune) bool {
	switch r {
	case '=', '<', '>', LessOrEqual, GreaterOrEqual, NotEqual:
		return true
	}
	return false
}

// IsIdentifierNode reports whether n is a code point that may be part of an
// identifier.
func IsIdentifierNode(s *arena.Stack, n arena.Node) bool {
	t := s.Type(n)
	return (t == TypeASCIICodePoint || t == TypeUnicodeCodePoint) && IsIdentifierMaterial(CodePointOf(s, n))
}
