package beautify

import (
	"unicode"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/nary"
)

// Rule rewrites an alias typed as code points into a layout. A rule with
// parameters applies to a name followed by parentheses and receives the
// comma separated arguments as racks pushed on the stack.
type Rule struct {
	Alias      string
	Parameters int
	Build      func(s *arena.Stack, params []*arena.Ref) arena.Node
}

// Symbol is a parameterless rule given as text, as found in settings files.
type Symbol struct {
	Alias       string `yaml:"alias" toml:"alias"`
	Replacement string `yaml:"replacement" toml:"replacement"`
}

func (sym Symbol) rule() Rule {
	return textRule(sym.Alias, sym.Replacement)
}

func textRule(alias, replacement string) Rule {
	t := textTree(replacement)
	return Rule{
		Alias: alias,
		Build: func(s *arena.Stack, _ []*arena.Ref) arena.Node { return t.Push(s) },
	}
}

// textTree builds a rack of code points, attaching combining marks to the
// rune before them.
func textTree(text string) layout.Tree {
	runes := []rune(text)
	items := make([]layout.Tree, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) && unicode.Is(unicode.Mn, runes[i+1]) {
			items = append(items, layout.Combined(runes[i], runes[i+1]))
			i++
			continue
		}
		items = append(items, layout.CodePoint(runes[i]))
	}
	return layout.Rack(items...)
}

var symbolRules = []Rule{
	textRule("<=", "≤"),
	textRule(">=", "≥"),
	textRule("!=", "=\u0338"),
	textRule("->", "→"),
	textRule("*", "×"),
	textRule("''", `"`),
}

var simpleIdentifierRules = []Rule{
	textRule("inf", "∞"),
	textRule("pi", "π"),
	textRule("theta", "θ"),
}

// fill pushes t and moves params[i] over the child slots[i] of its root.
func fill(s *arena.Stack, t layout.Tree, params []*arena.Ref, slots ...int) arena.Node {
	root := s.Ref(t.Push(s))
	defer s.Release(root)
	for i, slot := range slots {
		s.MoveTreeOverTree(s.Child(root.Node(), slot), params[i].Node())
	}
	return root.Node()
}

func unaryRule(alias string, t arena.Type) Rule {
	return Rule{
		Alias:      alias,
		Parameters: 1,
		Build: func(s *arena.Stack, params []*arena.Ref) arena.Node {
			return fill(s, layout.Unary(t, layout.Rack()), params, 0)
		},
	}
}

// defaultVariable writes r into the empty rack p.
func defaultVariable(s *arena.Stack, p *arena.Ref, r rune) {
	if layout.IsEmptyRack(s, p.Node()) {
		nary.AddChildAtIndex(s, p.Node(), layout.CodePoint(r).Push(s), 0)
	}
}

var diffRule = Rule{
	Alias:      "diff",
	Parameters: 3,
	Build: func(s *arena.Stack, params []*arena.Ref) arena.Node {
		defaultVariable(s, params[1], 'x')
		e := layout.Rack()
		return fill(s, layout.Diff(e, e, e, e, false), params,
			layout.DiffDerivand, layout.DiffVariable, layout.DiffAbscissa)
	},
}

func parametricRule(alias string, t arena.Type) Rule {
	return Rule{
		Alias:      alias,
		Parameters: 4,
		Build: func(s *arena.Stack, params []*arena.Ref) arena.Node {
			defaultVariable(s, params[1], 'k')
			e := layout.Rack()
			return fill(s, layout.Parametric(t, e, e, e, e), params,
				layout.ParametricArgument, layout.ParametricVariable,
				layout.ParametricLower, layout.ParametricUpper)
		},
	}
}

var sumRule = parametricRule("sum", layout.TypeSum)

// logBaseIndex is the parameter holding the base of a logarithm.
const logBaseIndex = 1

var logRule = Rule{
	Alias:      "log",
	Parameters: 2,
	Build: func(s *arena.Stack, params []*arena.Ref) arena.Node {
		t := layout.Rack(layout.Text("log"),
			layout.Subscript(layout.Rack()),
			layout.Parens(layout.Rack()))
		root := s.Ref(t.Push(s))
		defer s.Release(root)
		s.MoveTreeOverTree(s.Child(s.Child(root.Node(), 3), 0), params[logBaseIndex].Node())
		s.MoveTreeOverTree(s.Child(s.Child(root.Node(), 4), 0), params[0].Node())
		return root.Node()
	},
}

var functionRules = []Rule{
	unaryRule("abs", layout.TypeAbs),
	{
		Alias:      "binomial",
		Parameters: 2,
		Build: func(s *arena.Stack, params []*arena.Ref) arena.Node {
			e := layout.Rack()
			return fill(s, layout.Binary(layout.TypeBinomial, e, e), params,
				layout.TwoRowsUpper, layout.TwoRowsLower)
		},
	},
	unaryRule("ceil", layout.TypeCeil),
	unaryRule("conj", layout.TypeConj),
	diffRule,
	{
		Alias:      "exp",
		Parameters: 1,
		Build: func(s *arena.Stack, params []*arena.Ref) arena.Node {
			root := s.Ref(layout.Rack(layout.CodePoint('e'), layout.Superscript(layout.Rack())).Push(s))
			defer s.Release(root)
			s.MoveTreeOverTree(s.Child(s.Child(root.Node(), 1), 0), params[0].Node())
			return root.Node()
		},
	},
	unaryRule("floor", layout.TypeFloor),
	{
		Alias:      "int",
		Parameters: 4,
		Build: func(s *arena.Stack, params []*arena.Ref) arena.Node {
			defaultVariable(s, params[1], 'x')
			e := layout.Rack()
			return fill(s, layout.Integral(e, e, e, e), params,
				layout.IntegralIntegrand, layout.IntegralDifferential,
				layout.IntegralLower, layout.IntegralUpper)
		},
	},
	unaryRule("norm", layout.TypeVectorNorm),
	{
		Alias:      "piecewise",
		Parameters: 2,
		Build: func(s *arena.Stack, params []*arena.Ref) arena.Node {
			return fill(s, layout.EmptyPiecewise(), params, 0, 1)
		},
	},
	parametricRule("product", layout.TypeProduct),
	{
		Alias:      "root",
		Parameters: 2,
		Build: func(s *arena.Stack, params []*arena.Ref) arena.Node {
			e := layout.Rack()
			return fill(s, layout.Root(e, e), params, layout.RootRadicand, layout.RootIndex)
		},
	},
	unaryRule("sqrt", layout.TypeSqrt),
}
