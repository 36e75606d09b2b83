package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationString(t *testing.T) {
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "remove", OpRemove.String())
	assert.Equal(t, "rename", OpRename.String())
	assert.Equal(t, "unknown", Operation(42).String())
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in.String())
		assert.Equal(t, tt.want, got, tt.in.String())
	}
}

func TestQueueEventCoalescing(t *testing.T) {
	w := New()
	base := time.Now()
	at := func(d time.Duration) time.Time { return base.Add(d) }

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: at(0)})
	w.queueEvent(Event{Path: "/a", Op: OpWrite, Time: at(1)})
	assert.Equal(t, pendingEvent{Op: OpCreate, Time: at(1)}, w.pendingFiles["/a"])

	w.queueEvent(Event{Path: "/a", Op: OpRemove, Time: at(2)})
	assert.Equal(t, pendingEvent{Op: OpRemove, Time: at(2)}, w.pendingFiles["/a"])

	w.queueEvent(Event{Path: "/b", Op: OpWrite, Time: at(0)})
	w.queueEvent(Event{Path: "/b", Op: OpWrite, Time: at(3)})
	assert.Equal(t, pendingEvent{Op: OpWrite, Time: at(3)}, w.pendingFiles["/b"])
}

func TestProcessPendingEvents(t *testing.T) {
	w := New(WithDebounce(50 * time.Millisecond))
	var got []Event
	w.OnChange(func(e Event) { got = append(got, e) })

	now := time.Now()
	w.queueEvent(Event{Path: "/stable", Op: OpWrite, Time: now.Add(-time.Second)})
	w.queueEvent(Event{Path: "/fresh", Op: OpWrite, Time: now})

	w.processPendingEvents(now)
	require.Len(t, got, 1)
	assert.Equal(t, "/stable", got[0].Path)
	assert.Contains(t, w.pendingFiles, "/fresh")
}

func TestHandlerPanicRecovered(t *testing.T) {
	w := New(WithDebounce(0))
	called := false
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(func(Event) { called = true })

	assert.NotPanics(t, func() { w.emitEvent(Event{Path: "/x"}) })
	assert.True(t, called)
}

func TestWatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	w := New()

	require.NoError(t, w.Watch(filepath.Join(dir, "b.toml")))
	require.NoError(t, w.Watch(filepath.Join(dir, "a.toml")))
	assert.Equal(t, []string{
		filepath.Join(dir, "a.toml"),
		filepath.Join(dir, "b.toml"),
	}, w.WatchedFiles())

	require.NoError(t, w.Unwatch(filepath.Join(dir, "b.toml")))
	assert.Equal(t, []string{filepath.Join(dir, "a.toml")}, w.WatchedFiles())
}

func TestStartStop(t *testing.T) {
	w := New()
	assert.ErrorIs(t, w.Stop(), ErrNotRunning)

	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())
	require.NoError(t, w.Start())

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
}

func TestWatcherDeliversWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mathfield.toml")
	other := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\n"), 0o644))

	w := New(WithDebounce(20 * time.Millisecond))
	events := make(chan Event, 16)
	w.OnChange(func(e Event) { events <- e })
	require.NoError(t, w.Watch(path))
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[editor]\ncapacity = 64\n"), 0o644))

	select {
	case e := <-events:
		assert.Equal(t, path, e.Path)
		assert.Equal(t, OpWrite, e.Op)
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestWatcherReportsCreation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mathfield.yaml")

	w := New(WithDebounce(0))
	events := make(chan Event, 16)
	w.OnChange(func(e Event) { events <- e })
	require.NoError(t, w.Start())
	defer w.Stop()
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(path, []byte("editor: {}\n"), 0o644))

	select {
	case e := <-events:
		assert.Equal(t, path, e.Path)
		assert.Equal(t, OpCreate, e.Op)
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
	}
}
