package lua

import (
	"context"
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Macros holds the Lua functions scripts registered with mf.macro.
type Macros struct {
	mu    sync.RWMutex
	funcs map[string]*lua.LFunction
}

func newMacros() *Macros {
	return &Macros{funcs: make(map[string]*lua.LFunction)}
}

func (m *Macros) define(name string, fn *lua.LFunction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs[name] = fn
}

func (m *Macros) lookup(name string) (*lua.LFunction, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn, ok := m.funcs[name]
	return fn, ok
}

// Names returns the defined macro names in sorted order.
func (m *Macros) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.funcs))
	for name := range m.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a macro is defined.
func (m *Macros) Has(name string) bool {
	_, ok := m.lookup(name)
	return ok
}

// Runtime binds a sandboxed Lua state to a field.
type Runtime struct {
	state  *State
	module *fieldModule
	macros *Macros
}

// NewRuntime creates a Lua state with the mf module bound to field.
func NewRuntime(field Field, opts ...StateOption) *Runtime {
	r := &Runtime{
		state:  NewState(opts...),
		macros: newMacros(),
	}
	r.module = &fieldModule{field: field, macros: r.macros}
	r.state.RegisterModule(ModuleName, r.module.funcs())
	return r
}

// DoString runs a chunk of Lua.
func (r *Runtime) DoString(ctx context.Context, code string) error {
	return r.state.DoString(ctx, code)
}

// DoFile runs a Lua file, typically one defining macros.
func (r *Runtime) DoFile(ctx context.Context, path string) error {
	if err := r.state.DoFile(ctx, path); err != nil {
		return err
	}
	Log.WithField("path", path).WithField("macros", r.macros.Names()).Debug("script loaded")
	return nil
}

// Run runs the named macro. Its edits undo as one step.
func (r *Runtime) Run(ctx context.Context, name string) error {
	fn, ok := r.macros.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMacro, name)
	}

	r.module.beginGroup(name)
	defer r.module.endGroup()

	if _, err := r.state.CallFunction(ctx, fn); err != nil {
		return fmt.Errorf("macro %q: %w", name, err)
	}
	return nil
}

// Macros returns the macro registry.
func (r *Runtime) Macros() *Macros {
	return r.macros
}

// State returns the underlying Lua state.
func (r *Runtime) State() *State {
	return r.state
}

// Close releases the Lua state.
func (r *Runtime) Close() error {
	return r.state.Close()
}
