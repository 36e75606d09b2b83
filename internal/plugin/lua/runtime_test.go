package lua

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mathfield/internal/engine"
	"github.com/dshills/mathfield/internal/engine/beautify"
	"github.com/dshills/mathfield/internal/engine/buffer"
)

func newRuntime(t *testing.T, content string) (*Runtime, *engine.Field) {
	t.Helper()
	var opts []engine.Option
	if content != "" {
		opts = append(opts, engine.WithContent(content))
	}
	f, err := engine.New(opts...)
	require.NoError(t, err)

	r := NewRuntime(f)
	t.Cleanup(func() { r.Close() })
	return r, f
}

func TestRuntimeTyping(t *testing.T) {
	r, f := newRuntime(t, "")

	err := r.DoString(context.Background(), `
		mf.insert("1+")
		mf.template("fraction")
		mf.insert("2")
		mf.move("down")
		mf.insert("3")
		result = mf.string()
	`)
	require.NoError(t, err)

	assert.Equal(t, "1+frac{2}{3|}", f.String())
	assert.Equal(t, lua.LString("1+frac{2}{3|}"), r.State().GetGlobal("result"))
}

func TestRuntimeQueries(t *testing.T) {
	r, _ := newRuntime(t, "12|")

	err := r.DoString(context.Background(), `
		empty = mf.is_empty()
		n = mf.len()
		sel = mf.selecting()
		ntemplates = #mf.templates()
	`)
	require.NoError(t, err)

	s := r.State()
	assert.Equal(t, lua.LFalse, s.GetGlobal("empty"))
	assert.Equal(t, lua.LNumber(7), s.GetGlobal("n"))
	assert.Equal(t, lua.LFalse, s.GetGlobal("sel"))
	assert.Equal(t, lua.LNumber(len(buffer.TemplateNames())), s.GetGlobal("ntemplates"))
}

func TestRuntimeMove(t *testing.T) {
	r, f := newRuntime(t, "12|")
	ctx := context.Background()

	require.NoError(t, r.DoString(ctx, `moved = mf.move("left", 2)`))
	assert.Equal(t, "|12", f.String())
	assert.Equal(t, lua.LTrue, r.State().GetGlobal("moved"))

	require.NoError(t, r.DoString(ctx, `moved = mf.move("LEFT")`))
	assert.Equal(t, lua.LFalse, r.State().GetGlobal("moved"))

	err := r.DoString(ctx, `mf.move("sideways")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")
}

func TestRuntimeEditing(t *testing.T) {
	r, f := newRuntime(t, "123|")
	ctx := context.Background()

	require.NoError(t, r.DoString(ctx, `mf.backspace(2)`))
	assert.Equal(t, "1|", f.String())

	require.NoError(t, r.DoString(ctx, `mf.set("sqrt{x|}")`))
	assert.Equal(t, "sqrt{x|}", f.String())

	require.NoError(t, r.DoString(ctx, `mf.clear()`))
	assert.Equal(t, "|", f.String())

	require.NoError(t, r.DoString(ctx, `mf.insert_text("(")`))
	assert.Equal(t, "`(|", f.String())
}

func TestRuntimeUndoRedo(t *testing.T) {
	r, f := newRuntime(t, "")
	ctx := context.Background()

	require.NoError(t, r.DoString(ctx, `mf.insert("1")`))
	require.NoError(t, r.DoString(ctx, `undone = mf.undo()`))
	assert.Equal(t, "|", f.String())
	assert.Equal(t, lua.LTrue, r.State().GetGlobal("undone"))

	require.NoError(t, r.DoString(ctx, `redone = mf.redo(); again = mf.redo()`))
	assert.Equal(t, "1|", f.String())
	assert.Equal(t, lua.LTrue, r.State().GetGlobal("redone"))
	assert.Equal(t, lua.LFalse, r.State().GetGlobal("again"))
}

func TestRuntimeBeautify(t *testing.T) {
	r, f := newRuntime(t, "2pi|")
	ctx := context.Background()

	require.NoError(t, r.DoString(ctx, `changed = mf.beautify()`))
	assert.Equal(t, lua.LFalse, r.State().GetGlobal("changed"))

	f.SetBeautifier(beautify.New())
	require.NoError(t, r.DoString(ctx, `changed = mf.beautify()`))
	assert.Equal(t, lua.LTrue, r.State().GetGlobal("changed"))
	assert.Equal(t, "2π|", f.String())
}

func TestRuntimeGroup(t *testing.T) {
	r, f := newRuntime(t, "")

	err := r.DoString(context.Background(), `
		mf.group("digits", function()
			mf.insert("1")
			mf.insert("2")
		end)
	`)
	require.NoError(t, err)
	assert.Equal(t, "12|", f.String())
	assert.Equal(t, 1, f.UndoCount())

	require.NoError(t, f.Undo())
	assert.Equal(t, "|", f.String())
}

func TestRuntimeErrors(t *testing.T) {
	r, f := newRuntime(t, "1|")

	err := r.DoString(context.Background(), `mf.template("nope")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
	assert.Equal(t, "1|", f.String())

	err = r.DoString(context.Background(), `mf.set("frac{")`)
	assert.Error(t, err)
}

func TestMacros(t *testing.T) {
	r, f := newRuntime(t, "")
	ctx := context.Background()

	err := r.DoString(ctx, `
		mf.macro("half", function()
			mf.template("fraction")
			mf.insert("1")
			mf.move("down")
			mf.insert("2")
		end)
		mf.macro("nested", function()
			mf.group("inner", function() mf.insert("x") end)
			mf.insert("y")
		end)
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"half", "nested"}, r.Macros().Names())
	assert.True(t, r.Macros().Has("half"))

	require.NoError(t, r.Run(ctx, "half"))
	assert.Equal(t, "frac{1}{2|}", f.String())
	assert.Equal(t, 1, f.UndoCount())

	require.NoError(t, f.Undo())
	assert.Equal(t, "|", f.String())

	require.NoError(t, r.Run(ctx, "nested"))
	assert.Equal(t, "xy|", f.String())
	assert.Equal(t, 1, f.UndoCount())

	assert.ErrorIs(t, r.Run(ctx, "missing"), ErrUnknownMacro)
}

func TestMacroError(t *testing.T) {
	r, f := newRuntime(t, "")
	ctx := context.Background()

	require.NoError(t, r.DoString(ctx, `mf.macro("bad", function() mf.insert("1"); error("stop") end)`))
	err := r.Run(ctx, "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop")
	assert.Equal(t, "1|", f.String())

	err = r.DoString(ctx, `mf.macro("", function() end)`)
	assert.Error(t, err)
}

func TestDoFile(t *testing.T) {
	r, _ := newRuntime(t, "")
	path := filepath.Join(t.TempDir(), "macros.lua")
	require.NoError(t, os.WriteFile(path, []byte(`mf.macro("one", function() mf.insert("1") end)`), 0o644))

	require.NoError(t, r.DoFile(context.Background(), path))
	assert.Equal(t, []string{"one"}, r.Macros().Names())

	assert.Error(t, r.DoFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")))
}

func TestSandbox(t *testing.T) {
	s := NewState()
	defer s.Close()

	err := s.DoString(context.Background(), `
		assert(os == nil)
		assert(io == nil)
		assert(debug == nil)
		assert(require == nil)
		assert(dofile == nil)
		assert(loadfile == nil)
		assert(load == nil)
		assert(string.upper("x") == "X")
		assert(math.max(1, 2) == 2)
		assert(table.concat({"a", "b"}) == "ab")
	`)
	assert.NoError(t, err)
}

func TestExecutionTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	start := time.Now()
	err := s.DoString(context.Background(), `while true do end`)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	// The state stays usable.
	require.NoError(t, s.DoString(context.Background(), `x = 1`))
	assert.Equal(t, lua.LNumber(1), s.GetGlobal("x"))
}

func TestCall(t *testing.T) {
	s := NewState()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.DoString(ctx, `function add(a, b) return a + b, "done" end`))
	results, err := s.Call(ctx, "add", lua.LNumber(2), lua.LNumber(3))
	require.NoError(t, err)
	assert.Equal(t, []lua.LValue{lua.LNumber(5), lua.LString("done")}, results)

	_, err = s.Call(ctx, "missing")
	assert.Error(t, err)
}

func TestClosedState(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, s.DoString(context.Background(), `x = 1`), ErrStateClosed)
	assert.Equal(t, lua.LNil, s.GetGlobal("x"))
	assert.Nil(t, s.RegisterModule("m", nil))
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want engine.Direction
	}{
		{"left", engine.Left},
		{"Right", engine.Right},
		{"UP", engine.Up},
		{"down", engine.Down},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseDirection("back")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}
