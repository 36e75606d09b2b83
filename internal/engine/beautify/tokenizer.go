package beautify

import (
	"sort"
	"unicode"
)

// TokenKind classifies a token of an identifier string.
type TokenKind uint8

const (
	// Identifier is a single letter or an unknown name character.
	Identifier TokenKind = iota
	// Name is a known function or constant name.
	Name
	// Number is a run of digits.
	Number
)

// Token is a slice of an identifier string. Start and Length count runes,
// which is also the number of code point layouts they span.
type Token struct {
	Kind   TokenKind
	Start  int
	Length int
	Text   string
}

// ReservedNames are the function names recognized even when no rule
// rewrites them, so that "asin" is read as one name and not as "a" "sin".
var ReservedNames = []string{
	"acos", "acosh", "arccos", "arcsin", "arctan", "asin", "asinh", "atan",
	"atanh", "cos", "cosh", "cot", "csc", "det", "dim", "gcd", "lcm", "ln",
	"log", "max", "mean", "min", "sec", "sin", "sinh", "sum", "tan", "tanh",
}

// Tokenizer splits runs of identifier material into names, numbers and
// single-letter identifiers. Names are matched greedily, longest first.
type Tokenizer struct {
	names []string
}

// NewTokenizer returns a tokenizer recognizing names.
func NewTokenizer(names ...string) *Tokenizer {
	seen := make(map[string]bool, len(names))
	t := &Tokenizer{}
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		t.names = append(t.names, n)
	}
	sort.Slice(t.names, func(i, j int) bool {
		if len(t.names[i]) != len(t.names[j]) {
			return len(t.names[i]) > len(t.names[j])
		}
		return t.names[i] < t.names[j]
	})
	return t
}

// Tokenize splits text.
func (t *Tokenizer) Tokenize(text []rune) []Token {
	var out []Token
	for i := 0; i < len(text); {
		if unicode.IsDigit(text[i]) {
			j := i
			for j < len(text) && unicode.IsDigit(text[j]) {
				j++
			}
			out = append(out, Token{Kind: Number, Start: i, Length: j - i, Text: string(text[i:j])})
			i = j
			continue
		}
		if name := t.match(text[i:]); name != nil {
			out = append(out, Token{Kind: Name, Start: i, Length: len(name), Text: string(name)})
			i += len(name)
			continue
		}
		out = append(out, Token{Kind: Identifier, Start: i, Length: 1, Text: string(text[i])})
		i++
	}
	return out
}

func (t *Tokenizer) match(text []rune) []rune {
	for _, n := range t.names {
		name := []rune(n)
		if len(name) > len(text) {
			continue
		}
		if string(text[:len(name)]) == n {
			return name
		}
	}
	return nil
}
