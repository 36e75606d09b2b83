package layout

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/mathfield/internal/engine/arena"
)

type namedKind struct {
	t     arena.Type
	arity int
	flags arena.Block
}

var namedKinds = map[string]namedKind{
	"frac":      {t: TypeFraction, arity: 2},
	"sqrt":      {t: TypeSqrt, arity: 1},
	"root":      {t: TypeRoot, arity: 2},
	"sup":       {t: TypeVerticalOffset, arity: 1},
	"sub":       {t: TypeVerticalOffset, arity: 1, flags: offsetSubscript},
	"presup":    {t: TypeVerticalOffset, arity: 1, flags: offsetPrefix},
	"presub":    {t: TypeVerticalOffset, arity: 1, flags: offsetPrefix | offsetSubscript},
	"abs":       {t: TypeAbs, arity: 1},
	"floor":     {t: TypeFloor, arity: 1},
	"ceil":      {t: TypeCeil, arity: 1},
	"norm":      {t: TypeVectorNorm, arity: 1},
	"conj":      {t: TypeConj, arity: 1},
	"binom":     {t: TypeBinomial, arity: 2},
	"point":     {t: TypePoint2D, arity: 2},
	"ptbinom":   {t: TypePtBinomial, arity: 2},
	"ptpermute": {t: TypePtPermute, arity: 2},
	"sum":       {t: TypeSum, arity: 4},
	"prod":      {t: TypeProduct, arity: 4},
	"int":       {t: TypeIntegral, arity: 4},
	"diff":      {t: TypeDiff, arity: 4},
	"diffn":     {t: TypeDiff, arity: 4, flags: diffNth},
	"listseq":   {t: TypeListSequence, arity: 3},
	"matrix":    {t: TypeMatrix},
	"piecewise": {t: TypePiecewise},
}

// Mark locates the cursor found while parsing. Path alternates the index of
// a node in its rack and the index of the child rack entered in that node.
type Mark struct {
	Path     []int
	Position int
	Found    bool
}

// Resolve returns the rack designated by m inside the tree rooted at root.
func (m Mark) Resolve(s *arena.Stack, root arena.Node) (arena.Node, int) {
	rack := root
	for i := 0; i+1 < len(m.Path); i += 2 {
		rack = s.Child(s.Child(rack, m.Path[i]), m.Path[i+1])
	}
	return rack, m.Position
}

type parser struct {
	src  []rune
	pos  int
	path []int
	mark Mark
}

// Parse reads a rack written in the layout notation. The returned mark is
// set when the text holds a cursor.
func Parse(src string) (Tree, Mark, error) {
	p := &parser{src: []rune(src)}
	items, err := p.rack()
	if err != nil {
		return nil, Mark{}, err
	}
	if p.pos < len(p.src) {
		return nil, Mark{}, p.errorf("unexpected %q", p.src[p.pos])
	}
	return Rack(items...), p.mark, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) Tree {
	t, _, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrParse, fmt.Sprintf(format, args...), p.pos)
}

func (p *parser) peek(offset int) rune {
	if p.pos+offset < len(p.src) {
		return p.src[p.pos+offset]
	}
	return 0
}

func (p *parser) hasPrefix(s string) bool {
	for i, r := range []rune(s) {
		if p.peek(i) != r {
			return false
		}
	}
	return true
}

// closer reports whether the input at the current offset ends a rack and
// returns the length of the closing token.
func (p *parser) closer() (int, bool) {
	switch {
	case p.peek(0) == ')' || p.peek(0) == ']' || p.peek(0) == '}':
		return 1, true
	case p.hasPrefix(`\}`):
		return 2, true
	case p.hasPrefix(`\~}`):
		return 3, true
	}
	return 0, false
}

func (p *parser) rack() ([]Tree, error) {
	var items []Tree
	for p.pos < len(p.src) {
		if _, ok := p.closer(); ok {
			break
		}
		r := p.src[p.pos]
		switch {
		case r == '|':
			if p.mark.Found {
				return nil, p.errorf("second cursor")
			}
			p.mark = Mark{Path: append([]int(nil), p.path...), Position: len(items), Found: true}
			p.pos++
		case r == '(' || r == '[':
			p.pos++
			item, err := p.pair(TypeParentheses, r == '[', len(items))
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case p.hasPrefix(`\{`) || p.hasPrefix(`\~{`):
			temporary := p.hasPrefix(`\~{`)
			p.pos += 2
			if temporary {
				p.pos++
			}
			item, err := p.pair(TypeCurlyBraces, temporary, len(items))
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case r == '`':
			if p.pos+1 >= len(p.src) {
				return nil, p.errorf("dangling escape")
			}
			p.pos++
			items = append(items, p.codePoint())
		case isNameRune(r):
			more, err := p.word(len(items))
			if err != nil {
				return nil, err
			}
			items = append(items, more...)
		default:
			items = append(items, p.codePoint())
		}
	}
	return items, nil
}

func (p *parser) codePoint() Tree {
	r := p.src[p.pos]
	p.pos++
	if p.pos < len(p.src) && unicode.Is(unicode.Mn, p.src[p.pos]) {
		mark := p.src[p.pos]
		p.pos++
		return Combined(r, mark)
	}
	return CodePoint(r)
}

func isNameRune(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// word reads a run of lowercase letters. When it is followed by a child
// list, its longest suffix naming a node type starts that node and the
// letters before it are code points.
func (p *parser) word(index int) ([]Tree, error) {
	start := p.pos
	end := start
	for end < len(p.src) && isNameRune(p.src[end]) {
		end++
	}
	word := string(p.src[start:end])
	next := rune(0)
	if end < len(p.src) {
		next = p.src[end]
	}
	name := ""
	if next == '{' || next == ':' {
		for i := 0; i < len(word); i++ {
			if _, ok := namedKinds[word[i:]]; ok {
				name = word[i:]
				break
			}
		}
	}
	var items []Tree
	for p.pos < end-len(name) {
		items = append(items, p.codePoint())
	}
	if name == "" {
		return items, nil
	}
	p.pos = end
	node, err := p.named(name, index+len(items))
	if err != nil {
		return nil, err
	}
	return append(items, node), nil
}

func (p *parser) named(name string, index int) (Tree, error) {
	k := namedKinds[name]
	var head Tree
	arity := k.arity
	if IsGrid(k.t) {
		rows, cols, err := p.dimensions()
		if err != nil {
			return nil, err
		}
		head = node(k.t, arena.Block(rows), arena.Block(cols))
		arity = rows * cols
	} else {
		head = node(k.t, k.flags)
	}
	out := append(Tree{}, head...)
	for i := 0; i < arity; i++ {
		if p.peek(0) != '{' {
			return nil, p.errorf("%s expects %d children", name, arity)
		}
		p.pos++
		child, err := p.child(index, i)
		if err != nil {
			return nil, err
		}
		if p.peek(0) != '}' {
			return nil, p.errorf("unterminated child of %s", name)
		}
		p.pos++
		out = append(out, child...)
	}
	return out, nil
}

func (p *parser) dimensions() (int, int, error) {
	if p.peek(0) != ':' {
		return 0, 0, p.errorf("grid expects dimensions")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '{' {
		p.pos++
	}
	dims := string(p.src[start:p.pos])
	rs, cs, ok := strings.Cut(dims, "x")
	if !ok {
		return 0, 0, p.errorf("bad grid dimensions %q", dims)
	}
	rows, err1 := strconv.Atoi(rs)
	cols, err2 := strconv.Atoi(cs)
	if err1 != nil || err2 != nil || rows < 1 || cols < 1 || rows > 255 || cols > 255 {
		return 0, 0, p.errorf("bad grid dimensions %q", dims)
	}
	return rows, cols, nil
}

func (p *parser) child(index, childIndex int) (Tree, error) {
	p.path = append(p.path, index, childIndex)
	items, err := p.rack()
	p.path = p.path[:len(p.path)-2]
	if err != nil {
		return nil, err
	}
	return Rack(items...), nil
}

func (p *parser) pair(t arena.Type, leftTemporary bool, index int) (Tree, error) {
	content, err := p.child(index, 0)
	if err != nil {
		return nil, err
	}
	var rightTemporary bool
	switch {
	case t == TypeParentheses && (p.peek(0) == ')' || p.peek(0) == ']'):
		rightTemporary = p.peek(0) == ']'
		p.pos++
	case t == TypeCurlyBraces && p.hasPrefix(`\}`):
		p.pos += 2
	case t == TypeCurlyBraces && p.hasPrefix(`\~}`):
		rightTemporary = true
		p.pos += 3
	default:
		return nil, p.errorf("unbalanced %s", t)
	}
	return Pair(t, leftTemporary, rightTemporary, content), nil
}

// Format writes the tree rooted at n in the layout notation.
func Format(s *arena.Stack, n arena.Node) string {
	return FormatWithCursor(s, n, arena.NoNode, 0)
}

// FormatWithCursor is like Format and marks the cursor with '|' at position
// of rack.
func FormatWithCursor(s *arena.Stack, n, rack arena.Node, position int) string {
	f := formatter{s: s, cursor: rack, position: position}
	f.tree(n)
	return f.b.String()
}

type formatter struct {
	s        *arena.Stack
	b        strings.Builder
	cursor   arena.Node
	position int
}

var formatNames = func() map[arena.Type]string {
	m := make(map[arena.Type]string)
	for name, k := range namedKinds {
		if k.flags == 0 {
			m[k.t] = name
		}
	}
	return m
}()

func (f *formatter) nodeName(n arena.Node) string {
	s := f.s
	switch t := s.Type(n); t {
	case TypeVerticalOffset:
		name := "sup"
		if IsSubscript(s, n) {
			name = "sub"
		}
		if IsPrefix(s, n) {
			name = "pre" + name
		}
		return name
	case TypeDiff:
		if IsNthDiff(s, n) {
			return "diffn"
		}
		return "diff"
	case TypeMatrix, TypePiecewise:
		g := AsGrid(s, n)
		return fmt.Sprintf("%s:%dx%d", formatNames[t], g.Rows(), g.Columns())
	default:
		return formatNames[t]
	}
}

func (f *formatter) tree(n arena.Node) {
	s := f.s
	switch t := s.Type(n); {
	case t == TypeRack:
		f.rack(n)
	case IsCodePoint(t):
		r := CodePointOf(s, n)
		if strings.ContainsRune("()[]{}|\\`:", r) {
			f.b.WriteByte('`')
		}
		f.b.WriteRune(r)
		if t == TypeCombinedCodePoints {
			f.b.WriteRune(CombiningOf(s, n))
		}
	case t == TypeParentheses:
		f.b.WriteString(choose(IsTemporary(s, n, Left), "[", "("))
		f.tree(s.Child(n, 0))
		f.b.WriteString(choose(IsTemporary(s, n, Right), "]", ")"))
	case t == TypeCurlyBraces:
		f.b.WriteString(choose(IsTemporary(s, n, Left), `\~{`, `\{`))
		f.tree(s.Child(n, 0))
		f.b.WriteString(choose(IsTemporary(s, n, Right), `\~}`, `\}`))
	default:
		f.b.WriteString(f.nodeName(n))
		for _, c := range s.Children(n) {
			f.b.WriteByte('{')
			f.tree(c)
			f.b.WriteByte('}')
		}
	}
}

func (f *formatter) rack(n arena.Node) {
	s := f.s
	children := s.Children(n)
	for i, c := range children {
		if n == f.cursor && i == f.position {
			f.b.WriteByte('|')
		}
		if IsCodePoint(s.Type(c)) && isNameRune(CodePointOf(s, c)) && i+1 < len(children) && f.isNamed(children[i+1]) {
			// Keep the letter out of the next node's name.
			f.b.WriteByte('`')
		}
		f.tree(c)
	}
	if n == f.cursor && f.position == len(children) {
		f.b.WriteByte('|')
	}
}

func (f *formatter) isNamed(n arena.Node) bool {
	t := f.s.Type(n)
	return !IsCodePoint(t) && !IsPair(t) && t != TypeRack
}

func choose(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
