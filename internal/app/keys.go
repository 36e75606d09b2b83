package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mathfield/internal/engine"
)

// ActionKind identifies what a key does.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionInsert
	ActionMove
	ActionBackspace
	ActionTemplate
	ActionExitPosition
	ActionBeautify
	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste
	ActionClear
	ActionSnapshot
	ActionRestore
	ActionMacro
	ActionQuit
)

// Action is a decoded key press.
type Action struct {
	Kind ActionKind

	// Rune is the typed character for ActionInsert.
	Rune rune

	// Dir and Selecting describe ActionMove.
	Dir       engine.Direction
	Selecting bool

	// Name is the template or macro name.
	Name string
}

// ctrlBindings maps Ctrl+letter to actions.
var ctrlBindings = map[rune]Action{
	'b': {Kind: ActionBeautify},
	'c': {Kind: ActionCopy},
	'e': {Kind: ActionTemplate, Name: "exponential"},
	'f': {Kind: ActionTemplate, Name: "fraction"},
	'g': {Kind: ActionTemplate, Name: "matrix"},
	'k': {Kind: ActionTemplate, Name: "mixed_fraction"},
	'l': {Kind: ActionTemplate, Name: "log10"},
	'n': {Kind: ActionTemplate, Name: "ten_power"},
	'o': {Kind: ActionRestore},
	'p': {Kind: ActionTemplate, Name: "power"},
	'q': {Kind: ActionQuit},
	'r': {Kind: ActionTemplate, Name: "square_root"},
	's': {Kind: ActionSnapshot},
	't': {Kind: ActionTemplate, Name: "square_power"},
	'u': {Kind: ActionClear},
	'v': {Kind: ActionPaste},
	'w': {Kind: ActionTemplate, Name: "piecewise"},
	'x': {Kind: ActionCut},
	'y': {Kind: ActionRedo},
	'z': {Kind: ActionUndo},
}

var arrows = map[tcell.Key]engine.Direction{
	tcell.KeyLeft:  engine.Left,
	tcell.KeyRight: engine.Right,
	tcell.KeyUp:    engine.Up,
	tcell.KeyDown:  engine.Down,
}

// Translate decodes a key event.
func Translate(ev *tcell.EventKey) Action {
	key, mod := ev.Key(), ev.Modifiers()

	if dir, ok := arrows[key]; ok {
		return Action{Kind: ActionMove, Dir: dir, Selecting: mod&tcell.ModShift != 0}
	}
	if key >= tcell.KeyF1 && key <= tcell.KeyF12 {
		return Action{Kind: ActionMacro, Name: fmt.Sprintf("f%d", key-tcell.KeyF1+1)}
	}

	// Tab, Backspace and Enter share codes with Ctrl+I, Ctrl+H and Ctrl+M.
	switch key {
	case tcell.KeyTab:
		return Action{Kind: ActionExitPosition}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Action{Kind: ActionBackspace}
	case tcell.KeyEnter, tcell.KeyEscape:
		return Action{Kind: ActionQuit}
	}

	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return ctrlBindings[rune('a'+key-tcell.KeyCtrlA)]
	}

	if key == tcell.KeyRune {
		r := ev.Rune()
		if mod&tcell.ModCtrl != 0 {
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
			return ctrlBindings[r]
		}
		if mod&tcell.ModAlt != 0 {
			return Action{}
		}
		return Action{Kind: ActionInsert, Rune: r}
	}

	return Action{}
}
