package app

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/config"
	"github.com/dshills/mathfield/internal/config/watcher"
	"github.com/dshills/mathfield/internal/engine"
	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/balance"
	"github.com/dshills/mathfield/internal/engine/beautify"
	"github.com/dshills/mathfield/internal/engine/buffer"
	"github.com/dshills/mathfield/internal/engine/cursor"
	"github.com/dshills/mathfield/internal/engine/history"
	"github.com/dshills/mathfield/internal/plugin/lua"
)

// loggers returns the package loggers of every component.
func loggers() []*logrus.Logger {
	return []*logrus.Logger{
		Log,
		config.Log,
		watcher.Log,
		engine.Log,
		arena.Log,
		balance.Log,
		beautify.Log,
		buffer.Log,
		cursor.Log,
		history.Log,
		lua.Log,
	}
}

// SetLogLevel sets the level of every package logger.
func SetLogLevel(lvl logrus.Level) {
	for _, l := range loggers() {
		l.SetLevel(lvl)
	}
}

// SetLogOutput redirects every package logger.
func SetLogOutput(w io.Writer) {
	for _, l := range loggers() {
		l.SetOutput(w)
	}
}
