package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/config/loader"
	"github.com/dshills/mathfield/internal/config/watcher"
	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/history"
)

// Config is the central configuration manager.
// It is safe for concurrent use.
type Config struct {
	mu sync.RWMutex

	path      string
	fs        loader.FileSystem
	envPrefix string

	settings Settings
	loaded   bool

	enableWatcher bool
	watcher       *watcher.Watcher

	subscribers map[int]func(Settings)
	nextSubID   int
}

// Option configures a Config.
type Option func(*Config)

// WithPath sets the configuration file. The extension selects the format.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFS sets the file system the configuration file is read from.
func WithFS(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithWatcher enables or disables reloading the file when it changes.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// New creates a new Config with the given options.
// Call Load to read the configuration sources.
func New(opts ...Option) *Config {
	c := &Config{
		path:        DefaultPath(),
		fs:          loader.DefaultFS(),
		envPrefix:   loader.DefaultEnvPrefix,
		settings:    Default(),
		subscribers: make(map[int]func(Settings)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load reads all configuration sources and, if enabled, starts watching
// the configuration file.
func (c *Config) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s, err := c.read()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings = s
	c.loaded = true

	if c.enableWatcher && c.watcher == nil {
		w := watcher.New()
		if err := w.Watch(c.path); err != nil {
			return err
		}
		w.OnChange(c.handleFileChange)
		if err := w.Start(); err != nil {
			return err
		}
		c.watcher = w
	}

	Log.WithField("path", c.path).Debug("configuration loaded")
	return nil
}

// Reload re-reads the configuration sources and notifies subscribers.
// On error the previous settings stay in effect.
func (c *Config) Reload() error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		return ErrNotLoaded
	}

	s, err := c.read()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.settings = s
	subs := c.subscribersLocked()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s.clone())
	}
	return nil
}

// Close stops watching the configuration file.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Stop()
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}

// Settings returns a copy of the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.clone()
}

// Subscribe registers fn to receive the settings after each reload.
// The returned function removes the subscription.
func (c *Config) Subscribe(fn func(Settings)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// subscribersLocked returns the subscribers in registration order.
func (c *Config) subscribersLocked() []func(Settings) {
	ids := make([]int, 0, len(c.subscribers))
	for id := range c.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	subs := make([]func(Settings), len(ids))
	for i, id := range ids {
		subs[i] = c.subscribers[id]
	}
	return subs
}

// read merges defaults, the file and the environment into validated Settings.
func (c *Config) read() (Settings, error) {
	file, err := loader.ForPath(c.fs, c.path).Load()
	if err != nil {
		return Settings{}, err
	}
	env, err := loader.NewEnvLoader(c.envPrefix).Load()
	if err != nil {
		return Settings{}, err
	}

	s, err := decodeSettings(loader.Merge(defaultConfig(), file, env))
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// handleFileChange reloads after any change to the file. A removed file
// falls back to defaults and environment.
func (c *Config) handleFileChange(event watcher.Event) {
	entry := Log.WithFields(logrus.Fields{
		"path": event.Path,
		"op":   event.Op.String(),
	})
	if err := c.Reload(); err != nil {
		entry.WithError(err).Warn("configuration reload failed")
		return
	}
	entry.Info("configuration reloaded")
}

// DefaultPath returns $MATHFIELD_CONFIG, or config.toml in the user
// configuration directory.
func DefaultPath() string {
	if p := os.Getenv(loader.DefaultEnvPrefix + "CONFIG"); p != "" {
		return p
	}
	return filepath.Join(defaultUserConfigDir(), "config.toml")
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mathfield")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mathfield")
}

func defaultConfig() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"capacity":          arena.DefaultMaxBlocks,
			"siblingCollapsing": true,
			"undoDepth":         history.DefaultMaxEntries,
		},
		"beautify": map[string]any{
			"enabled": true,
		},
		"logging": map[string]any{
			"level": "warn",
		},
	}
}
