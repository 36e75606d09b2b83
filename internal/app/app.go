package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/config"
	"github.com/dshills/mathfield/internal/engine"
	"github.com/dshills/mathfield/internal/engine/render"
	"github.com/dshills/mathfield/internal/plugin/lua"
)

// Application edits one formula in a terminal.
type Application struct {
	mu sync.Mutex

	opts Options

	config  *config.Config
	field   *engine.Field
	cells   *render.Cells
	scripts *lua.Runtime
	screen  tcell.Screen

	clipboard []byte
	status    string

	pasting bool
	pasted  []rune

	logFile io.Closer

	running atomic.Bool
	done    chan struct{}
	ready   chan struct{}

	readyOnce sync.Once
	stop      sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses config.DefaultPath.
	ConfigPath string

	// ScriptPath is a Lua file defining macros.
	ScriptPath string

	// Content is the initial formula in layout notation.
	Content string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// LogFile receives log output. Empty discards logs while the screen
	// is active.
	LogFile string

	// Watch reloads the configuration file when it changes.
	Watch bool

	// ReadOnly refuses edits.
	ReadOnly bool
}

// New creates an Application: it loads the configuration, creates the
// field and runs the macro script.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:  opts,
		cells: render.NewCells(),
		done:  make(chan struct{}),
		ready: make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	cfgOpts := []config.Option{config.WithWatcher(app.opts.Watch)}
	if app.opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithPath(app.opts.ConfigPath))
	}
	app.config = config.New(cfgOpts...)
	if err := app.config.Load(context.Background()); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	if app.opts.LogFile != "" {
		f, err := os.OpenFile(app.opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return &InitError{Component: "log", Err: err}
		}
		app.logFile = f
		SetLogOutput(f)
	}

	settings := app.config.Settings()
	if err := app.applyLogLevel(settings); err != nil {
		return &InitError{Component: "log", Err: err}
	}

	fieldOpts := settings.FieldOptions()
	if app.opts.Content != "" {
		fieldOpts = append(fieldOpts, engine.WithContent(app.opts.Content))
	}
	if app.opts.ReadOnly {
		fieldOpts = append(fieldOpts, engine.WithReadOnly())
	}
	field, err := engine.New(fieldOpts...)
	if err != nil {
		return &InitError{Component: "field", Err: err}
	}
	app.field = field

	app.scripts = lua.NewRuntime(field)
	if app.opts.ScriptPath != "" {
		if err := app.scripts.DoFile(context.Background(), app.opts.ScriptPath); err != nil {
			return &InitError{Component: "script", Err: err}
		}
	}

	app.config.Subscribe(app.applySettings)

	Log.WithFields(logrus.Fields{
		"session": field.SessionID(),
		"config":  app.config.Path(),
		"macros":  app.scripts.Macros().Names(),
	}).Info("application started")
	return nil
}

func (app *Application) applyLogLevel(s config.Settings) error {
	level := s.Logging.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	SetLogLevel(lvl)
	return nil
}

// applySettings applies reloaded settings to the running field.
func (app *Application) applySettings(s config.Settings) {
	if err := app.applyLogLevel(s); err != nil {
		Log.WithError(err).Warn("ignoring log level")
	}
	app.field.SetBeautifier(s.Beautifier())
	app.field.SetSiblingCollapsing(s.Editor.SiblingCollapsing)
	app.field.SetMaxUndoEntries(s.Editor.UndoDepth)

	app.mu.Lock()
	app.status = "configuration reloaded"
	screen := app.screen
	app.mu.Unlock()

	if screen != nil && app.running.Load() {
		// Wakes the event loop so the status is redrawn.
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// SetScreen sets the terminal screen. Must be called before Run.
func (app *Application) SetScreen(s tcell.Screen) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	app.screen = s
	return nil
}

// Run initializes the screen and processes events until the user quits or
// Shutdown is called.
func (app *Application) Run() error {
	app.mu.Lock()
	screen := app.screen
	app.mu.Unlock()
	if screen == nil {
		return ErrNoScreen
	}

	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer screen.Fini()
	screen.EnablePaste()

	if app.logFile == nil {
		SetLogOutput(io.Discard)
		defer SetLogOutput(os.Stderr)
	}

	events := make(chan tcell.Event)
	stop := make(chan struct{})
	defer close(stop)
	go pollEvents(screen, events, stop)

	app.Draw()
	app.readyOnce.Do(func() { close(app.ready) })

	for {
		select {
		case <-app.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			app.Draw()
		}
	}
}

func pollEvents(screen tcell.Screen, events chan<- tcell.Event, stop <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

// Ready is closed once Run has drawn the first frame.
func (app *Application) Ready() <-chan struct{} {
	return app.ready
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown asks Run to return.
func (app *Application) Shutdown() {
	app.stop.Do(func() { close(app.done) })
}

// Close releases the configuration watcher, the Lua state and the log file.
func (app *Application) Close() error {
	var errs []error
	if app.config != nil {
		errs = append(errs, app.config.Close())
	}
	if app.scripts != nil {
		errs = append(errs, app.scripts.Close())
	}
	if app.logFile != nil {
		SetLogOutput(os.Stderr)
		errs = append(errs, app.logFile.Close())
	}
	return errors.Join(errs...)
}

// Field returns the edited field.
func (app *Application) Field() *engine.Field {
	return app.field
}

// Scripts returns the Lua runtime.
func (app *Application) Scripts() *lua.Runtime {
	return app.scripts
}

// Config returns the configuration manager.
func (app *Application) Config() *config.Config {
	return app.config
}

// Status returns the message shown in the status line.
func (app *Application) Status() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.status
}

func (app *Application) setStatus(format string, args ...any) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.status = fmt.Sprintf(format, args...)
}
