package buffer

import (
	"sort"

	"github.com/dshills/mathfield/internal/engine/layout"
)

// Template is a layout inserted as a whole, such as the tree behind a
// toolbox key.
type Template struct {
	Tree       layout.Tree
	ForceRight bool
	ForceLeft  bool
	Collapse   bool
}

// Templates of the toolbox keys.
var (
	// Exponential is e^□.
	Exponential = Template{
		Tree:     layout.Rack(layout.CodePoint('e'), layout.Superscript(layout.Rack())),
		Collapse: true,
	}

	// Logarithm10 is log₁₀(□).
	Logarithm10 = Template{
		Tree: layout.Rack(
			layout.Text("log"),
			layout.Subscript(layout.Text("10")),
			layout.Pair(layout.TypeParentheses, false, true, layout.Rack()),
		),
		Collapse: true,
	}

	// TenPower is ×10^□, the exponent of a scientific notation.
	TenPower = Template{
		Tree: layout.Rack(
			layout.CodePoint(layout.MultiplicationSign),
			layout.Text("10"),
			layout.Superscript(layout.Rack()),
		),
		Collapse: true,
	}

	Matrix = Template{Tree: layout.EmptyMatrix(), Collapse: true}

	Piecewise = Template{Tree: layout.EmptyPiecewise(), Collapse: true}

	SquareRoot = Template{Tree: layout.Sqrt(layout.Rack()), Collapse: true}

	Power = Template{Tree: layout.Superscript(layout.Rack()), Collapse: true}

	// SquarePower leaves the cursor after the exponent.
	SquarePower = Template{Tree: layout.Superscript(layout.Text("2")), ForceRight: true, Collapse: true}

	Fraction = Template{Tree: layout.Frac(layout.Rack(), layout.Rack()), Collapse: true}

	// MixedFraction leaves the cursor after the integer part, left of the
	// fraction, and absorbs nothing.
	MixedFraction = Template{Tree: layout.Frac(layout.Rack(), layout.Rack()), ForceLeft: true}
)

var templates = map[string]Template{
	"exponential":    Exponential,
	"log10":          Logarithm10,
	"ten_power":      TenPower,
	"matrix":         Matrix,
	"piecewise":      Piecewise,
	"square_root":    SquareRoot,
	"power":          Power,
	"square_power":   SquarePower,
	"fraction":       Fraction,
	"mixed_fraction": MixedFraction,
}

// TemplateByName returns the template registered under name.
func TemplateByName(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

// TemplateNames returns the names of the templates in sorted order.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
