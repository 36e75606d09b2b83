package config

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/dshills/mathfield/internal/engine"
	"github.com/dshills/mathfield/internal/engine/beautify"
)

// MinCapacity is the smallest arena capacity accepted: an empty root rack.
const MinCapacity = 3

// Settings holds every configurable value.
type Settings struct {
	Editor   EditorSettings   `yaml:"editor" toml:"editor"`
	Beautify BeautifySettings `yaml:"beautify" toml:"beautify"`
	Logging  LoggingSettings  `yaml:"logging" toml:"logging"`
}

// EditorSettings configures the field.
type EditorSettings struct {
	// Capacity is the number of arena blocks a formula may use.
	Capacity int `yaml:"capacity" toml:"capacity"`
	// SiblingCollapsing lets fractions and roots absorb their neighbours.
	SiblingCollapsing bool `yaml:"siblingCollapsing" toml:"siblingCollapsing"`
	// UndoDepth is the number of undo entries kept.
	UndoDepth int `yaml:"undoDepth" toml:"undoDepth"`
}

// BeautifySettings configures identifier rewriting.
type BeautifySettings struct {
	Enabled bool              `yaml:"enabled" toml:"enabled"`
	Symbols []beautify.Symbol `yaml:"symbols,omitempty" toml:"symbols,omitempty"`
}

// LoggingSettings configures the logrus level.
type LoggingSettings struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the built-in settings.
func Default() Settings {
	s, err := decodeSettings(defaultConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks ranges, symbols and the log level.
func (s Settings) Validate() error {
	if s.Editor.Capacity < MinCapacity {
		return fmt.Errorf("%w: editor.capacity %d is below %d", ErrInvalidSetting, s.Editor.Capacity, MinCapacity)
	}
	if s.Editor.UndoDepth < 1 {
		return fmt.Errorf("%w: editor.undoDepth must be positive", ErrInvalidSetting)
	}
	for i, sym := range s.Beautify.Symbols {
		if err := sym.Validate(); err != nil {
			return fmt.Errorf("%w: beautify.symbols[%d]: %v", ErrInvalidSetting, i, err)
		}
	}
	if _, err := s.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Logging.Level.
func (s Settings) LogLevel() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(s.Logging.Level)
	if err != nil {
		return logrus.WarnLevel, fmt.Errorf("%w: logging.level: %v", ErrInvalidSetting, err)
	}
	return lvl, nil
}

// Beautifier returns the rewriting rules, or beautify.Nop when disabled.
func (s Settings) Beautifier() beautify.Beautifier {
	if !s.Beautify.Enabled {
		return beautify.Nop{}
	}
	return beautify.New(beautify.WithSymbols(s.Beautify.Symbols...))
}

// FieldOptions returns the engine options these settings describe.
func (s Settings) FieldOptions() []engine.Option {
	return []engine.Option{
		engine.WithCapacity(s.Editor.Capacity),
		engine.WithMaxUndoEntries(s.Editor.UndoDepth),
		engine.WithSiblingCollapsing(s.Editor.SiblingCollapsing),
		engine.WithBeautifier(s.Beautifier()),
	}
}

// clone returns a copy that shares no slices with s.
func (s Settings) clone() Settings {
	if s.Beautify.Symbols != nil {
		s.Beautify.Symbols = append([]beautify.Symbol(nil), s.Beautify.Symbols...)
	}
	return s
}

// decodeSettings converts a merged configuration map into Settings,
// rejecting unknown keys.
func decodeSettings(m map[string]any) (Settings, error) {
	var s Settings
	data, err := yaml.Marshal(m)
	if err != nil {
		return s, fmt.Errorf("encoding settings: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	return s, nil
}
