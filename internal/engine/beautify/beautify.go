package beautify

import (
	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
)

// Cursor is the cursor state a beautifier reads and repoints. Rack tracks
// the cursor rack inside the tree rooted at Root.
type Cursor struct {
	Stack    *arena.Stack
	Root     arena.Node
	Rack     *arena.Ref
	Position *int
}

func (c Cursor) set(rack arena.Node, position int) {
	c.Rack.Set(rack)
	*c.Position = position
}

// Method tells an insertion when to beautify.
type Method struct {
	// BeforeInserting beautifies left of the cursor before the insertion.
	BeforeInserting bool
	// AfterInserting beautifies around the inserted layout afterwards.
	AfterInserting bool
}

// Beautifier rewrites typed text into structured layouts, such as "<=" into
// "≤" or "sqrt(" into a square root.
type Beautifier interface {
	// MethodWhenInserting decides when an insertion of the rack inserted is
	// beautified.
	MethodWhenInserting(s *arena.Stack, inserted arena.Node) Method
	// BeforeCursorMove beautifies the simple identifiers left of the cursor.
	BeforeCursorMove(c Cursor) bool
	// AfterInsertion beautifies around the layout that was just inserted
	// left of the cursor.
	AfterInsertion(c Cursor) bool
}

// Nop never beautifies.
type Nop struct{}

func (Nop) MethodWhenInserting(*arena.Stack, arena.Node) Method { return Method{} }
func (Nop) BeforeCursorMove(Cursor) bool                         { return false }
func (Nop) AfterInsertion(Cursor) bool                           { return false }

// Rules is the default Beautifier.
type Rules struct {
	symbols     []Rule
	simple      map[string]Rule
	identifiers map[string]Rule
	tokenizer   *Tokenizer
}

// Option configures Rules.
type Option func(*Rules)

// WithSymbols adds symbol rules after the built-in ones.
func WithSymbols(symbols ...Symbol) Option {
	return func(r *Rules) {
		for _, sym := range symbols {
			r.symbols = append(r.symbols, sym.rule())
		}
	}
}

// WithoutSymbols drops the built-in symbol rules.
func WithoutSymbols() Option {
	return func(r *Rules) {
		r.symbols = nil
	}
}

// New returns the default rules.
func New(opts ...Option) *Rules {
	r := &Rules{
		symbols:     append([]Rule(nil), symbolRules...),
		simple:      make(map[string]Rule),
		identifiers: make(map[string]Rule),
	}
	for _, rule := range simpleIdentifierRules {
		r.simple[rule.Alias] = rule
		r.identifiers[rule.Alias] = rule
	}
	for _, rule := range functionRules {
		r.identifiers[rule.Alias] = rule
	}
	for _, opt := range opts {
		opt(r)
	}
	names := append([]string(nil), ReservedNames...)
	for alias := range r.identifiers {
		names = append(names, alias)
	}
	r.tokenizer = NewTokenizer(names...)
	return r
}

// MethodWhenInserting skips beautification while an identifier is being
// typed, and only beautifies afterwards when a lone "(" is inserted:
// identifiers left of it are tokenized once, after the insertion.
func (r *Rules) MethodWhenInserting(s *arena.Stack, inserted arena.Node) Method {
	leftMost := inserted
	if s.NumberOfChildren(inserted) > 0 {
		leftMost = s.Child(inserted, 0)
	}
	if layout.IsIdentifierNode(s, leftMost) && layout.CodePointOf(s, leftMost) != '\'' {
		return Method{}
	}
	one := s.NumberOfChildren(inserted) == 1
	leftParenthesis := one && s.Type(leftMost) == layout.TypeParentheses &&
		!layout.IsTemporary(s, leftMost, layout.Left)
	return Method{BeforeInserting: !leftParenthesis, AfterInserting: one}
}

// BeforeCursorMove implements Beautifier.
func (r *Rules) BeforeCursorMove(c Cursor) bool {
	if *c.Position == 0 {
		return false
	}
	return r.identifiersLeftOf(c, c.Rack.Node(), *c.Position-1, r.simple, false)
}

// AfterInsertion implements Beautifier.
func (r *Rules) AfterInsertion(c Cursor) bool {
	s := c.Stack
	var rack arena.Node
	var index int
	if *c.Position == 0 {
		// The cursor was put inside the inserted layout: beautify left of it.
		inserted := s.Parent(c.Root, c.Rack.Node())
		if inserted == arena.NoNode {
			return false
		}
		parent, i := s.ParentOfDescendant(c.Root, inserted)
		if parent == arena.NoNode || s.Type(parent) != layout.TypeRack {
			return false
		}
		rack, index = parent, i
	} else {
		rack, index = c.Rack.Node(), *c.Position-1
	}

	if s.Type(s.Child(rack, index)) == layout.TypeParentheses {
		if index == 0 {
			return false
		}
		return r.identifiersLeftOf(c, rack, index-1, r.identifiers, true) ||
			r.fractionIntoDerivative(c, rack, index-1)
	}
	return r.nthOrderDerivative(c, rack, index) ||
		r.pipeKey(c, rack, index) ||
		r.symbolsLeftOf(c, rack, index) ||
		r.sum(c, rack, index)
}
