package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format struct {
	Name       string
	Extensions []string

	unmarshal func([]byte, any) error
	position  func(error) (line, column int)
}

// TOML is the default format.
var TOML = Format{
	Name:       "toml",
	Extensions: []string{".toml"},
	unmarshal:  toml.Unmarshal,
	position: func(err error) (int, int) {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			return de.Position()
		}
		return 0, 0
	},
}

// YAML is used for files ending in .yaml or .yml.
var YAML = Format{
	Name:       "yaml",
	Extensions: []string{".yaml", ".yml"},
	unmarshal:  yaml.Unmarshal,
	position:   yamlPosition,
}

// FormatFor picks the format from the extension of path. Unknown
// extensions are read as TOML.
func FormatFor(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range YAML.Extensions {
		if ext == e {
			return YAML
		}
	}
	return TOML
}

// Parse decodes data into a nested map. An empty document gives an empty
// map. source names the data in a ParseError.
func (f Format) Parse(source string, data []byte) (map[string]any, error) {
	var out map[string]any
	if err := f.unmarshal(data, &out); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		pe.Line, pe.Column = f.position(err)
		return nil, pe
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// Decode reads r to the end and parses it.
func (f Format) Decode(source string, r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s config: %w", f.Name, err)
	}
	return f.Parse(source, data)
}

// yamlPosition extracts N from the "yaml: line N: ..." messages of yaml.v3.
func yamlPosition(err error) (int, int) {
	_, rest, ok := strings.Cut(err.Error(), "line ")
	if !ok {
		return 0, 0
	}
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(rest)
	}
	line, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, 0
	}
	return line, 0
}
