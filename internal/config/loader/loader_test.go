package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapFS adapts fstest.MapFS to FileSystem.
type mapFS struct {
	fstest.MapFS
}

func (m mapFS) ReadFile(path string) ([]byte, error) { return m.MapFS.ReadFile(path) }
func (m mapFS) Stat(path string) (fs.FileInfo, error) { return m.MapFS.Stat(path) }

func newFS(files map[string]string) mapFS {
	m := fstest.MapFS{}
	for name, data := range files {
		m[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return mapFS{m}
}

func TestTOMLFile(t *testing.T) {
	fsys := newFS(map[string]string{
		"mathfield.toml": `
[editor]
capacity = 512
siblingCollapsing = false

[[beautify.symbols]]
alias = "inf"
replacement = "∞"
`,
	})

	got, err := ForPath(fsys, "mathfield.toml").Load()
	require.NoError(t, err)

	want := map[string]any{
		"editor": map[string]any{
			"capacity":          int64(512),
			"siblingCollapsing": false,
		},
		"beautify": map[string]any{
			"symbols": []any{
				map[string]any{"alias": "inf", "replacement": "∞"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("toml mismatch (-want +got):\n%s", diff)
	}
}

func TestTOMLFileMissingFile(t *testing.T) {
	got, err := ForPath(newFS(nil), "missing.toml").Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTOMLFileParseError(t *testing.T) {
	_, err := TOML.Decode("<reader>", strings.NewReader("[editor\ncapacity = 1"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "<reader>", pe.Path)
	assert.Positive(t, pe.Line)
}

func TestYAMLFile(t *testing.T) {
	fsys := newFS(map[string]string{
		"mathfield.yaml": `
editor:
  undoDepth: 20
logging:
  level: debug
`,
	})

	got, err := ForPath(fsys, "mathfield.yaml").Load()
	require.NoError(t, err)

	want := map[string]any{
		"editor":  map[string]any{"undoDepth": 20},
		"logging": map[string]any{"level": "debug"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLFileEmptyDocument(t *testing.T) {
	got, err := YAML.Parse("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestYAMLFileParseError(t *testing.T) {
	_, err := YAML.Parse("bad.yaml", []byte("editor:\n  capacity: [1, 2\n"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad.yaml", pe.Path)
	assert.Contains(t, pe.Error(), "bad.yaml")
}

func TestForPath(t *testing.T) {
	tests := map[string]string{
		"a/mathfield.yaml": "yaml",
		"a/mathfield.YML":  "yaml",
		"a/mathfield.toml": "toml",
		"a/mathfield":      "toml",
	}
	for path, want := range tests {
		l := ForPath(nil, path)
		assert.Equal(t, want, l.Format().Name, path)
		assert.Equal(t, path, l.Path())
	}
}

func TestYAMLPosition(t *testing.T) {
	line, col := yamlPosition(errors.New("yaml: line 12: did not find expected key"))
	assert.Equal(t, 12, line)
	assert.Zero(t, col)

	line, _ = yamlPosition(errors.New("yaml: unmarshal errors"))
	assert.Zero(t, line)
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string {
		return []string{
			"HOME=/root",
			"MATHFIELD_LOG_LEVEL=debug",
			"MATHFIELD_CAPACITY=1",
			"MATHFIELD_BEAUTIFY=off",
			"MATHFIELD_EDITOR_UNDO_DEPTH=50",
			"MATHFIELD_CONFIG=/etc/mathfield.toml",
			"MATHFIELD_RENDER_SCALE=1.5",
		}
	}

	got, err := l.Load()
	require.NoError(t, err)

	want := map[string]any{
		"logging":  map[string]any{"level": "debug"},
		"editor":   map[string]any{"capacity": int64(1), "undoDepth": int64(50)},
		"beautify": map[string]any{"enabled": false},
		"render":   map[string]any{"scale": 1.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvLoaderMapping(t *testing.T) {
	l := NewEnvLoaderWithMapping("X_", nil)
	l.environ = func() []string { return []string{"X_DEPTH=3", "X_NAME="} }
	l.AddMapping("X_DEPTH", "editor.undoDepth")

	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"editor": map[string]any{"undoDepth": int64(3)},
		"name":   "",
	}, got)

	l.RemoveMapping("X_DEPTH")
	got, err = l.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(3), got["depth"])
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Yes", true},
		{"OFF", false},
		{"1", int64(1)},
		{"0", int64(0)},
		{"-12", int64(-12)},
		{"2.5", 2.5},
		{"v1.2", "v1.2"},
		{"warn", "warn"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseValue(tt.in), "input %q", tt.in)
	}
}

func TestMerge(t *testing.T) {
	dst := map[string]any{
		"editor":  map[string]any{"capacity": 4096, "undoDepth": 1000},
		"logging": map[string]any{"level": "warn"},
	}
	src := map[string]any{
		"editor":  map[string]any{"capacity": 64},
		"logging": "debug",
	}

	got := Merge(dst, src)
	want := map[string]any{
		"editor":  map[string]any{"capacity": 64, "undoDepth": 1000},
		"logging": "debug",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 4096, dst["editor"].(map[string]any)["capacity"], "layers are not modified")
	assert.Equal(t, map[string]any{}, Merge())
	assert.Equal(t, map[string]any{}, Merge(nil, nil))
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"beautify": map[string]any{
			"symbols": []any{map[string]any{"alias": "inf"}},
		},
	}
	dst := Clone(src)
	require.Equal(t, src, dst)

	dst["beautify"].(map[string]any)["symbols"].([]any)[0].(map[string]any)["alias"] = "nabla"
	assert.Equal(t, "inf", src["beautify"].(map[string]any)["symbols"].([]any)[0].(map[string]any)["alias"])
	assert.Nil(t, Clone(nil))
}
