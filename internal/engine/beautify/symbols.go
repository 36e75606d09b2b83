package beautify

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type symbolFile struct {
	Symbols []Symbol `yaml:"symbols"`
}

// LoadSymbols reads symbol rules from YAML:
//
//	symbols:
//	  - alias: "=>"
//	    replacement: "⇒"
func LoadSymbols(r io.Reader) ([]Symbol, error) {
	var f symbolFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode symbols: %w", err)
	}
	for i, sym := range f.Symbols {
		if err := sym.Validate(); err != nil {
			return nil, fmt.Errorf("symbol %d: %w", i, err)
		}
	}
	return f.Symbols, nil
}

// Validate checks that the rule has an alias and a replacement.
func (sym Symbol) Validate() error {
	if sym.Alias == "" {
		return fmt.Errorf("%w: empty alias", ErrInvalidSymbol)
	}
	if sym.Replacement == "" {
		return fmt.Errorf("%w: empty replacement for %q", ErrInvalidSymbol, sym.Alias)
	}
	return nil
}
