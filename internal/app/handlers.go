package app

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/engine"
)

// snapshotName names the snapshot taken with Ctrl+S.
const snapshotName = "saved"

// HandleEvent processes one terminal event. It returns ErrQuit when the
// user asks to leave.
func (app *Application) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if app.pasting {
			if ev.Key() == tcell.KeyRune {
				app.pasted = append(app.pasted, ev.Rune())
			}
			return nil
		}
		return app.Handle(Translate(ev))

	case *tcell.EventPaste:
		if ev.Start() {
			app.pasting = true
			app.pasted = app.pasted[:0]
			return nil
		}
		app.pasting = false
		return app.report("paste", app.field.InsertText(string(app.pasted)))

	case *tcell.EventResize:
		app.mu.Lock()
		screen := app.screen
		app.mu.Unlock()
		if screen != nil {
			screen.Sync()
		}
	}
	return nil
}

// Handle performs an action on the field. Edit failures are shown in the
// status line; only ErrQuit is returned.
func (app *Application) Handle(a Action) error {
	f := app.field

	switch a.Kind {
	case ActionNone:
		return nil

	case ActionQuit:
		return ErrQuit

	case ActionInsert:
		return app.report("insert", f.InsertText(string(a.Rune)))

	case ActionMove:
		_, err := f.Move(a.Dir, a.Selecting)
		return app.report("move", err)

	case ActionBackspace:
		return app.report("backspace", f.PerformBackspace())

	case ActionTemplate:
		return app.report(a.Name, f.InsertTemplate(a.Name))

	case ActionExitPosition:
		if err := f.PrepareForExitingPosition(); err != nil {
			return app.report("tab", err)
		}
		_, err := f.Move(engine.Right, false)
		return app.report("tab", err)

	case ActionBeautify:
		changed, err := f.BeautifyLeft()
		if err == nil && !changed {
			app.setStatus("nothing to beautify")
			return nil
		}
		return app.report("beautify", err)

	case ActionUndo:
		return app.report("undo", f.Undo())

	case ActionRedo:
		return app.report("redo", f.Redo())

	case ActionCopy:
		data, err := f.Copy()
		if err == nil {
			app.clipboard = data
		}
		return app.report("copy", err)

	case ActionCut:
		data, err := f.Cut()
		if err == nil {
			app.clipboard = data
		}
		return app.report("cut", err)

	case ActionPaste:
		if app.clipboard == nil {
			return app.report("paste", ErrEmptyClipboard)
		}
		return app.report("paste", f.Paste(app.clipboard))

	case ActionClear:
		return app.report("clear", f.Clear())

	case ActionSnapshot:
		f.CreateSnapshot(snapshotName)
		app.setStatus("snapshot saved")
		return nil

	case ActionRestore:
		return app.report("restore", app.restoreSnapshot(snapshotName))

	case ActionMacro:
		if !app.scripts.Macros().Has(a.Name) {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.report(a.Name, app.scripts.Run(ctx, a.Name))
	}
	return nil
}

// restoreSnapshot restores the newest snapshot called name.
func (app *Application) restoreSnapshot(name string) error {
	snaps := app.field.ListSnapshots()
	for i := len(snaps) - 1; i >= 0; i-- {
		if snaps[i].Name == name {
			return app.field.RestoreSnapshot(snaps[i].ID)
		}
	}
	return engine.ErrSnapshotNotFound
}

// report shows err in the status line, or clears the status on success.
func (app *Application) report(what string, err error) error {
	if err == nil {
		app.setStatus("")
		return nil
	}

	switch {
	case errors.Is(err, engine.ErrArenaExhausted):
		app.setStatus("%s: formula is full", what)
	case errors.Is(err, engine.ErrNothingToUndo), errors.Is(err, engine.ErrNothingToRedo):
		app.setStatus("%s: nothing to do", what)
	default:
		app.setStatus("%s: %v", what, err)
	}

	Log.WithFields(logrus.Fields{"action": what}).WithError(err).Debug("edit refused")
	app.beep()
	return nil
}

func (app *Application) beep() {
	app.mu.Lock()
	screen := app.screen
	app.mu.Unlock()
	if screen != nil && app.running.Load() {
		_ = screen.Beep()
	}
}
