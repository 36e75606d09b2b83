package beautify

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
)

// run parses src, applies fn at its cursor and formats the result.
func run(t *testing.T, src string, fn func(Cursor) bool) (string, bool) {
	t.Helper()
	tree, mark, err := layout.Parse(src)
	require.NoError(t, err)
	require.True(t, mark.Found, "no cursor in %q", src)
	s := arena.NewStack()
	root := tree.Push(s)
	rack, pos := mark.Resolve(s, root)
	ref := s.Ref(rack)
	changed := fn(Cursor{Stack: s, Root: root, Rack: ref, Position: &pos})
	require.NoError(t, layout.Validate(s, root))
	require.Equal(t, s.TreeSize(root), s.Len(), "scratch blocks left behind")
	require.True(t, ref.Valid())
	return layout.FormatWithCursor(s, root, ref.Node(), pos), changed
}

func TestAfterInsertion(t *testing.T) {
	r := New()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"less or equal", "1<=|", "1≤|"},
		{"times", "2*|", "2×|"},
		{"not equal", "a!=|", "a=\u0338|"},
		{"arrow", "x->|", "x→|"},
		{"pipe", "x`||", "`xabs{|}"},
		{"square root", "sqrt(|]", "sqrt{|}"},
		{"root keeps arguments", "2root(|x,3]", "2root{|x}{3}"},
		{"logarithm base", "log2(|]", "lo`gsub{2}(|)"},
		{"fraction into derivative", "frac{d}{dx}(|]", "diff{x}{}{}{|}"},
		{"nth derivative", "diff{xsup{|}}{a}{}{f}", "diffn{x}{a}{|}{f}"},
		{"sum on comma", "sum(ksup{2},|]", "sum{k}{|}{}{`ksup{2}}"},
		{"exponential", "exp(|]", "`esup{|}"},
		{"integral", "int(|f]", "int{x}{}{}{|f}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := run(t, tt.in, r.AfterInsertion)
			assert.True(t, changed)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AfterInsertion(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestAfterInsertionLeavesOthers(t *testing.T) {
	r := New()
	for _, src := range []string{"1+|", "abc|", "(|]", "foo(|]", "sum(k|]", "sqrt(|1,2]", "int(f,|]"} {
		got, changed := run(t, src, r.AfterInsertion)
		assert.False(t, changed, src)
		assert.Equal(t, src, got)
	}
}

func TestBeforeCursorMove(t *testing.T) {
	r := New()
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"2pi|", "2π|", true},
		{"xpitheta|", "xπθ|", true},
		{"asin|", "asin|", false},
		{"|pi", "|pi", false},
		{"sqrt|", "sqrt|", false},
	}
	for _, tt := range tests {
		got, changed := run(t, tt.in, r.BeforeCursorMove)
		assert.Equal(t, tt.changed, changed, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMethodWhenInserting(t *testing.T) {
	r := New()
	tests := []struct {
		in   string
		want Method
	}{
		{"x", Method{}},
		{"+", Method{BeforeInserting: true, AfterInserting: true}},
		{"+2", Method{BeforeInserting: true}},
		{"(]", Method{AfterInserting: true}},
		{"[)", Method{BeforeInserting: true, AfterInserting: true}},
		{"'", Method{BeforeInserting: true, AfterInserting: true}},
	}
	for _, tt := range tests {
		s := arena.NewStack()
		n := layout.MustParse(tt.in).Push(s)
		assert.Equal(t, tt.want, r.MethodWhenInserting(s, n), tt.in)
	}
}

func TestExtraSymbols(t *testing.T) {
	symbols, err := LoadSymbols(strings.NewReader("symbols:\n  - alias: \"=>\"\n    replacement: \"⇒\"\n"))
	require.NoError(t, err)
	require.Equal(t, []Symbol{{Alias: "=>", Replacement: "⇒"}}, symbols)

	got, changed := run(t, "a=>|", New(WithSymbols(symbols...)).AfterInsertion)
	assert.True(t, changed)
	assert.Equal(t, "a⇒|", got)

	got, changed = run(t, "1<=|", New(WithoutSymbols()).AfterInsertion)
	assert.False(t, changed)
	assert.Equal(t, "1<=|", got)
}

func TestLoadSymbolsRejectsEmpty(t *testing.T) {
	_, err := LoadSymbols(strings.NewReader("symbols:\n  - alias: \"\"\n    replacement: x\n"))
	assert.ErrorIs(t, err, ErrInvalidSymbol)

	_, err = LoadSymbols(strings.NewReader("rules: []\n"))
	assert.Error(t, err)

	symbols, err := LoadSymbols(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestCombinedReplacement(t *testing.T) {
	s := arena.NewStack()
	n := textTree("=\u0338").Push(s)
	require.Equal(t, 1, s.NumberOfChildren(n))
	c := s.Child(n, 0)
	assert.Equal(t, layout.TypeCombinedCodePoints, s.Type(c))
	assert.Equal(t, '=', layout.CodePointOf(s, c))
	assert.Equal(t, '\u0338', layout.CombiningOf(s, c))
}

func TestTokenize(t *testing.T) {
	tok := NewTokenizer("pi", "sqrt", "asin", "sin", "pi")
	got := tok.Tokenize([]rune("xpi12asin"))
	want := []Token{
		{Kind: Identifier, Start: 0, Length: 1, Text: "x"},
		{Kind: Name, Start: 1, Length: 2, Text: "pi"},
		{Kind: Number, Start: 3, Length: 2, Text: "12"},
		{Kind: Name, Start: 5, Length: 4, Text: "asin"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestNop(t *testing.T) {
	var b Beautifier = Nop{}
	got, changed := run(t, "1<=|", b.AfterInsertion)
	assert.False(t, changed)
	assert.Equal(t, "1<=|", got)
	s := arena.NewStack()
	assert.Equal(t, Method{}, b.MethodWhenInserting(s, layout.Text("+").Push(s)))
}
