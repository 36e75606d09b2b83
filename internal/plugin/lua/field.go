package lua

import (
	"fmt"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mathfield/internal/engine"
	"github.com/dshills/mathfield/internal/engine/buffer"
)

// ModuleName is the global under which the field API is registered.
const ModuleName = "mf"

// Field is the part of engine.Field that scripts can drive.
type Field interface {
	String() string
	IsEmpty() bool
	Len() int
	IsSelecting() bool

	Move(dir engine.Direction, selecting bool) (bool, error)
	InsertText(text string) error
	InsertLinearText(text string) error
	InsertTemplate(name string) error
	PerformBackspace() error
	BeautifyLeft() (bool, error)
	Clear() error
	SetContent(src string) error

	Undo() error
	Redo() error
	BeginUndoGroup(name string)
	EndUndoGroup()
}

var _ Field = (*engine.Field)(nil)

// fieldModule exposes a Field to Lua as the mf table.
type fieldModule struct {
	field  Field
	macros *Macros

	groupMu sync.Mutex
	depth   int
}

// beginGroup opens an undo group unless one is already open. Groups nest,
// and only the outermost one is recorded.
func (m *fieldModule) beginGroup(name string) {
	m.groupMu.Lock()
	defer m.groupMu.Unlock()
	if m.depth == 0 {
		m.field.BeginUndoGroup(name)
	}
	m.depth++
}

func (m *fieldModule) endGroup() {
	m.groupMu.Lock()
	defer m.groupMu.Unlock()
	m.depth--
	if m.depth == 0 {
		m.field.EndUndoGroup()
	}
}

func (m *fieldModule) funcs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"string":      m.str,
		"is_empty":    m.isEmpty,
		"len":         m.length,
		"selecting":   m.selecting,
		"move":        m.move,
		"insert":      m.insert,
		"insert_text": m.insertLinear,
		"template":    m.template,
		"templates":   m.templates,
		"backspace":   m.backspace,
		"beautify":    m.beautify,
		"clear":       m.clear,
		"set":         m.set,
		"undo":        m.undo,
		"redo":        m.redo,
		"group":       m.group,
		"macro":       m.macro,
	}
}

// raise converts a Go error into a Lua error.
func raise(L *lua.LState, fn string, err error) int {
	L.RaiseError("%s: %v", fn, err)
	return 0
}

// string() -> notation with '|' at the cursor
func (m *fieldModule) str(L *lua.LState) int {
	L.Push(lua.LString(m.field.String()))
	return 1
}

func (m *fieldModule) isEmpty(L *lua.LState) int {
	L.Push(lua.LBool(m.field.IsEmpty()))
	return 1
}

func (m *fieldModule) length(L *lua.LState) int {
	L.Push(lua.LNumber(m.field.Len()))
	return 1
}

func (m *fieldModule) selecting(L *lua.LState) int {
	L.Push(lua.LBool(m.field.IsSelecting()))
	return 1
}

// move(dir [, count [, selecting]]) -> moved
func (m *fieldModule) move(L *lua.LState) int {
	dir, err := ParseDirection(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	count := L.OptInt(2, 1)
	if count < 0 {
		L.ArgError(2, "count must be non-negative")
		return 0
	}
	selecting := L.OptBool(3, false)

	moved := false
	for i := 0; i < count; i++ {
		ok, err := m.field.Move(dir, selecting)
		if err != nil {
			return raise(L, "move", err)
		}
		if !ok {
			break
		}
		moved = true
	}
	L.Push(lua.LBool(moved))
	return 1
}

// insert(text) types text, letting templates and beautification apply.
func (m *fieldModule) insert(L *lua.LState) int {
	if err := m.field.InsertText(L.CheckString(1)); err != nil {
		return raise(L, "insert", err)
	}
	return 0
}

// insert_text(text) inserts text as plain code points.
func (m *fieldModule) insertLinear(L *lua.LState) int {
	if err := m.field.InsertLinearText(L.CheckString(1)); err != nil {
		return raise(L, "insert_text", err)
	}
	return 0
}

func (m *fieldModule) template(L *lua.LState) int {
	if err := m.field.InsertTemplate(L.CheckString(1)); err != nil {
		return raise(L, "template", err)
	}
	return 0
}

func (m *fieldModule) templates(L *lua.LState) int {
	tbl := L.NewTable()
	for i, name := range buffer.TemplateNames() {
		tbl.RawSetInt(i+1, lua.LString(name))
	}
	L.Push(tbl)
	return 1
}

// backspace([count])
func (m *fieldModule) backspace(L *lua.LState) int {
	count := L.OptInt(1, 1)
	for i := 0; i < count; i++ {
		if err := m.field.PerformBackspace(); err != nil {
			return raise(L, "backspace", err)
		}
	}
	return 0
}

func (m *fieldModule) beautify(L *lua.LState) int {
	changed, err := m.field.BeautifyLeft()
	if err != nil {
		return raise(L, "beautify", err)
	}
	L.Push(lua.LBool(changed))
	return 1
}

func (m *fieldModule) clear(L *lua.LState) int {
	if err := m.field.Clear(); err != nil {
		return raise(L, "clear", err)
	}
	return 0
}

// set(notation) replaces the content.
func (m *fieldModule) set(L *lua.LState) int {
	if err := m.field.SetContent(L.CheckString(1)); err != nil {
		return raise(L, "set", err)
	}
	return 0
}

// undo() -> done
func (m *fieldModule) undo(L *lua.LState) int {
	L.Push(lua.LBool(m.field.Undo() == nil))
	return 1
}

// redo() -> done
func (m *fieldModule) redo(L *lua.LState) int {
	L.Push(lua.LBool(m.field.Redo() == nil))
	return 1
}

// group(name, fn) runs fn so that its edits undo as one step.
func (m *fieldModule) group(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	m.beginGroup(name)
	defer m.endGroup()

	L.Push(fn)
	L.Call(0, 0)
	return 0
}

// macro(name, fn) defines a macro that Go code can run by name.
func (m *fieldModule) macro(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if name == "" {
		L.ArgError(1, "macro name must not be empty")
		return 0
	}
	m.macros.define(name, fn)
	return 0
}

// ParseDirection parses "left", "right", "up" or "down", ignoring case.
func ParseDirection(s string) (engine.Direction, error) {
	switch strings.ToLower(s) {
	case "left":
		return engine.Left, nil
	case "right":
		return engine.Right, nil
	case "up":
		return engine.Up, nil
	case "down":
		return engine.Down, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}
