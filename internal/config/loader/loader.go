// Package loader reads mathfield configuration sources into nested maps.
//
// Files are parsed as TOML or YAML depending on their extension, and
// MATHFIELD_* environment variables are folded into the same shape so the
// sources can be layered with Merge.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Loader reads one configuration source.
type Loader interface {
	// Load returns the source as a nested map, or nil, nil when the source
	// does not exist.
	Load() (map[string]any, error)
}

// FileSystem is the part of the file system the loaders read from.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) { return os.Open(name) }

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Stat implements FileSystem.
func (OSFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// DefaultFS returns the operating system file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// File loads a configuration file in a given format.
type File struct {
	fs     FileSystem
	path   string
	format Format
}

var _ Loader = (*File)(nil)

// NewFile creates a loader for path. A nil fsys reads from the OS.
func NewFile(fsys FileSystem, path string, format Format) *File {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &File{fs: fsys, path: path, format: format}
}

// ForPath creates a loader for path with the format FormatFor picks.
func ForPath(fsys FileSystem, path string) *File {
	return NewFile(fsys, path, FormatFor(path))
}

// Path returns the file path.
func (l *File) Path() string { return l.path }

// Format returns the file format.
func (l *File) Format() Format { return l.format }

// Load reads and parses the file. A missing file is not an error.
func (l *File) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return l.format.Parse(l.path, data)
}

// ParseError reports a syntax error in a configuration source. Line and
// Column are zero when the parser does not report them.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
