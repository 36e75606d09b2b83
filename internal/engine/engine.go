package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/beautify"
	"github.com/dshills/mathfield/internal/engine/buffer"
	"github.com/dshills/mathfield/internal/engine/codec"
	"github.com/dshills/mathfield/internal/engine/cursor"
	"github.com/dshills/mathfield/internal/engine/history"
	"github.com/dshills/mathfield/internal/engine/layout"
	"github.com/dshills/mathfield/internal/engine/render"
)

// Re-export commonly used types for convenience.
type (
	// Tree is a standalone layout tree.
	Tree = layout.Tree

	// Direction is a cursor move direction.
	Direction = layout.Direction

	// Selection represents the selected siblings of the cursor rack.
	Selection = cursor.Selection

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// State is a serializable copy of the tree and the cursor.
	State = buffer.State

	// Template is a layout inserted as a whole.
	Template = buffer.Template

	// Command is an undoable edit command.
	Command = history.Command

	// OperationInfo describes an undo or redo entry.
	OperationInfo = history.OperationInfo

	// Point is a position in cells.
	Point = render.Point

	// Frame tells how to draw the cursor and the selection.
	Frame = render.Frame

	// SnapshotID uniquely identifies a named snapshot.
	SnapshotID = uuid.UUID
)

// Re-export constants.
const (
	Left  = layout.Left
	Right = layout.Right
	Up    = layout.Up
	Down  = layout.Down
)

// editCommand runs a buffer edit as a history command.
type editCommand struct {
	name string
	fn   func(buf *buffer.Buffer) error
}

func (c *editCommand) Execute(buf *buffer.Buffer) error { return c.fn(buf) }

func (c *editCommand) Description() string { return c.name }

type namedSnapshot struct {
	id      SnapshotID
	name    string
	created time.Time
	snap    *buffer.Snapshot
}

// SnapshotInfo describes a named snapshot.
type SnapshotInfo struct {
	ID         SnapshotID
	Name       string
	Created    time.Time
	RevisionID RevisionID
}

// Field is the main facade of the math input engine.
// It combines the formula buffer, undo/redo, serialization and named
// snapshots into a unified, thread-safe API.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Field struct {
	mu sync.RWMutex

	// Core components
	buf       *buffer.Buffer
	history   *history.History
	codec     *codec.Codec
	snapshots map[SnapshotID]*namedSnapshot
	sessionID uuid.UUID

	// Configuration
	capacity       int
	maxUndoEntries int
	collapse       bool
	beautifier     beautify.Beautifier
	metrics        render.Metrics
	readOnly       bool

	// Initialization
	initContent string
}

// New creates a new Field with the given options. It fails when the content
// given by WithContent cannot be parsed.
func New(opts ...Option) (*Field, error) {
	f := &Field{
		capacity:       DefaultCapacity,
		maxUndoEntries: DefaultMaxUndoEntries,
		collapse:       true,
		snapshots:      make(map[SnapshotID]*namedSnapshot),
	}

	// Apply options to get configuration
	for _, opt := range opts {
		opt(f)
	}
	if f.sessionID == uuid.Nil {
		f.sessionID = uuid.New()
	}

	// Create buffer with configured options
	bufOpts := []buffer.Option{
		buffer.WithCapacity(f.capacity),
		buffer.WithSiblingCollapsing(f.collapse),
		buffer.WithBeautifier(f.beautifier),
		buffer.WithMetrics(f.metrics),
	}
	if f.initContent != "" {
		buf, err := buffer.NewBufferFromString(f.initContent, bufOpts...)
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		f.buf = buf
	} else {
		f.buf = buffer.NewBuffer(bufOpts...)
	}

	c, err := codec.NewCodec(codec.WithMaxBlocks(f.capacity))
	if err != nil {
		return nil, err
	}
	f.codec = c

	// Create history manager
	f.history = history.NewHistory(f.maxUndoEntries)

	Log.WithFields(logrus.Fields{
		"session":  f.sessionID,
		"capacity": f.capacity,
	}).Debug("field created")
	return f, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// String returns the tree in the layout notation with the cursor marked.
func (f *Field) String() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.String()
}

// Tree returns a copy of the layout tree.
func (f *Field) Tree() Tree {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.Tree()
}

// IsEmpty returns true if the field holds no layout.
func (f *Field) IsEmpty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.IsEmpty()
}

// Len returns the number of blocks used by the tree.
func (f *Field) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.Len()
}

// Capacity returns the maximum number of blocks of the tree.
func (f *Field) Capacity() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.Capacity()
}

// Selection returns the selected siblings of the cursor rack.
func (f *Field) Selection() Selection {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.Selection()
}

// IsSelecting reports whether a selection is being made.
func (f *Field) IsSelecting() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.IsSelecting()
}

// CursorHeight returns the height of the cursor in cells.
func (f *Field) CursorHeight() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.CursorHeight()
}

// CursorOrigin returns the top of the cursor relative to the tree origin.
func (f *Field) CursorOrigin() Point {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.CursorOrigin()
}

// IsAtNumeratorOfEmptyFraction reports whether the cursor is alone in an
// empty fraction.
func (f *Field) IsAtNumeratorOfEmptyFraction() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.IsAtNumeratorOfEmptyFraction()
}

// View calls fn with the tree and the frame to draw it with.
func (f *Field) View(fn func(s *arena.Stack, root arena.Node, fr Frame)) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	f.buf.View(fn)
}

// ============================================================================
// Write Operations
// ============================================================================

// Move moves the cursor one step in dir. A move that rewrites the tree, such
// as one closing a temporary bracket, is recorded in the undo history.
func (f *Field) Move(dir Direction, selecting bool) (moved bool, err error) {
	err = f.execute(&editCommand{name: "Move", fn: func(buf *buffer.Buffer) error {
		var err error
		moved, _, err = buf.Move(dir, selecting)
		return err
	}})
	return moved, err
}

// MoveMultipleSteps moves the cursor steps times in dir.
func (f *Field) MoveMultipleSteps(dir Direction, steps int, selecting bool) (moved bool, err error) {
	err = f.execute(&editCommand{name: "Move", fn: func(buf *buffer.Buffer) error {
		var err error
		moved, _, err = buf.MoveMultipleSteps(dir, steps, selecting)
		return err
	}})
	return moved, err
}

// InsertLayout inserts a copy of t at the cursor, replacing the selection.
func (f *Field) InsertLayout(t Tree, forceRight, forceLeft, collapse bool) error {
	return f.execute(&editCommand{name: "Insert layout", fn: func(buf *buffer.Buffer) error {
		return buf.InsertLayout(t, forceRight, forceLeft, collapse)
	}})
}

// InsertText types text at the cursor, replacing the selection.
func (f *Field) InsertText(text string) error {
	return f.execute(history.NewInsertTextCommand(text))
}

// InsertLinearText inserts text keeping brackets as code points. The cursor
// stops at the first U+0011 of text.
func (f *Field) InsertLinearText(text string) error {
	return f.execute(&history.InsertTextCommand{Text: text, Linear: true})
}

// InsertTemplate inserts the template registered under name.
func (f *Field) InsertTemplate(name string) error {
	cmd, err := history.NewInsertTemplateCommand(name)
	if err != nil {
		return err
	}
	return f.execute(cmd)
}

// PerformBackspace deletes the selection or the layout left of the cursor.
func (f *Field) PerformBackspace() error {
	return f.execute(history.NewBackspaceCommand())
}

// ResetSelection drops the selection, leaving the cursor where it is.
func (f *Field) ResetSelection() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buf.ResetSelection()
}

// PrepareForExitingPosition moves the cursor out of a gray grid cell.
func (f *Field) PrepareForExitingPosition() error {
	return f.execute(&editCommand{name: "Exit", fn: func(buf *buffer.Buffer) error {
		return buf.PrepareForExitingPosition()
	}})
}

// BeautifyLeft beautifies the identifiers left of the cursor and reports
// whether the tree changed.
func (f *Field) BeautifyLeft() (changed bool, err error) {
	err = f.execute(&editCommand{name: "Beautify", fn: func(buf *buffer.Buffer) error {
		var err error
		changed, err = buf.BeautifyLeft()
		return err
	}})
	return changed, err
}

// Clear removes all layouts.
func (f *Field) Clear() error {
	return f.execute(&editCommand{name: "Clear", fn: func(buf *buffer.Buffer) error {
		return buf.Load(nil)
	}})
}

// SetContent replaces the tree with src in the layout notation. A '|' in src
// places the cursor.
func (f *Field) SetContent(src string) error {
	return f.execute(&editCommand{name: "Set content", fn: func(buf *buffer.Buffer) error {
		parsed, err := buffer.NewBufferFromString(src, buffer.WithCapacity(buf.Capacity()))
		if err != nil {
			return err
		}
		return buf.Restore(parsed.State())
	}})
}

// Execute runs a command and adds it to undo history.
func (f *Field) Execute(cmd Command) error {
	return f.execute(cmd)
}

// ExecuteGrouped runs cmds and records them as one undo step named name.
func (f *Field) ExecuteGrouped(name string, cmds ...Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readOnly {
		return ErrReadOnly
	}
	return f.history.ExecuteGrouped(name, f.buf, cmds...)
}

func (f *Field) execute(cmd Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readOnly {
		return ErrReadOnly
	}
	return f.history.Execute(cmd, f.buf)
}

// ============================================================================
// Clipboard
// ============================================================================

// Copy encodes the selected layouts.
func (f *Field) Copy() ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.codec.EncodeTree(f.buf.SelectionTree())
}

// Cut encodes the selected layouts and deletes them.
func (f *Field) Cut() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readOnly {
		return nil, ErrReadOnly
	}
	data, err := f.codec.EncodeTree(f.buf.SelectionTree())
	if err != nil {
		return nil, err
	}
	if f.buf.IsSelecting() {
		cmd := &editCommand{name: "Cut", fn: func(buf *buffer.Buffer) error { return buf.PerformBackspace() }}
		if err := f.history.Execute(cmd, f.buf); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Paste inserts layouts encoded by Copy or Cut. The cursor ends up after
// them.
func (f *Field) Paste(data []byte) error {
	t, err := f.codec.DecodeTree(data)
	if err != nil {
		return err
	}
	return f.execute(&editCommand{name: "Paste", fn: func(buf *buffer.Buffer) error {
		return buf.InsertLayout(t, true, false, false)
	}})
}

// ============================================================================
// Serialization
// ============================================================================

// State returns a copy of the tree and the cursor.
func (f *Field) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.State()
}

// MarshalBinary encodes the tree and the cursor.
func (f *Field) MarshalBinary() ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.codec.EncodeState(f.buf.State())
}

// UnmarshalBinary replaces the tree and the cursor with data encoded by
// MarshalBinary. The replacement can be undone.
func (f *Field) UnmarshalBinary(data []byte) error {
	st, err := f.codec.DecodeState(data)
	if err != nil {
		return err
	}
	return f.execute(&editCommand{name: "Load", fn: func(buf *buffer.Buffer) error {
		return buf.Restore(st)
	}})
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the last operation.
func (f *Field) Undo() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readOnly {
		return ErrReadOnly
	}

	return f.history.Undo(f.buf)
}

// Redo redoes the last undone operation.
func (f *Field) Redo() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readOnly {
		return ErrReadOnly
	}

	return f.history.Redo(f.buf)
}

// CanUndo returns true if undo is available.
func (f *Field) CanUndo() bool {
	return f.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (f *Field) CanRedo() bool {
	return f.history.CanRedo()
}

// UndoCount returns the number of available undo operations.
func (f *Field) UndoCount() int {
	return f.history.UndoCount()
}

// RedoCount returns the number of available redo operations.
func (f *Field) RedoCount() int {
	return f.history.RedoCount()
}

// UndoInfo describes the available undo operations, oldest first.
func (f *Field) UndoInfo() []OperationInfo {
	return f.history.UndoInfo()
}

// BeginUndoGroup starts a new undo group.
// All operations until EndUndoGroup will be undone as a single unit.
func (f *Field) BeginUndoGroup(name string) {
	f.history.BeginGroup(name)
}

// EndUndoGroup ends the current undo group.
func (f *Field) EndUndoGroup() {
	f.history.EndGroup()
}

// CancelUndoGroup cancels the current undo group without recording.
func (f *Field) CancelUndoGroup() {
	f.history.CancelGroup()
}

// ClearHistory removes all undo/redo history.
func (f *Field) ClearHistory() {
	f.history.Clear()
}

// ============================================================================
// Snapshot Operations
// ============================================================================

// CreateSnapshot records the current state under name.
func (f *Field) CreateSnapshot(name string) SnapshotID {
	f.mu.Lock()
	defer f.mu.Unlock()

	ns := &namedSnapshot{
		id:      uuid.New(),
		name:    name,
		created: time.Now(),
		snap:    f.buf.Snapshot(),
	}
	f.snapshots[ns.id] = ns
	return ns.id
}

// GetSnapshot returns the snapshot with the given ID.
func (f *Field) GetSnapshot(id SnapshotID) (*buffer.Snapshot, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ns, ok := f.snapshots[id]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return ns.snap, nil
}

// GetSnapshotByName returns the most recent snapshot with the given name.
func (f *Field) GetSnapshotByName(name string) (*buffer.Snapshot, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var found *namedSnapshot
	for _, ns := range f.snapshots {
		if ns.name == name && (found == nil || ns.created.After(found.created)) {
			found = ns
		}
	}
	if found == nil {
		return nil, ErrSnapshotNotFound
	}
	return found.snap, nil
}

// RestoreSnapshot puts the field back in the state of a snapshot. The
// restoration can be undone.
func (f *Field) RestoreSnapshot(id SnapshotID) error {
	snap, err := f.GetSnapshot(id)
	if err != nil {
		return err
	}
	return f.execute(&editCommand{name: "Restore snapshot", fn: func(buf *buffer.Buffer) error {
		return buf.Restore(snap.State())
	}})
}

// DeleteSnapshot removes a snapshot.
func (f *Field) DeleteSnapshot(id SnapshotID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.snapshots, id)
}

// ListSnapshots describes the snapshots, oldest first.
func (f *Field) ListSnapshots() []SnapshotInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()

	infos := make([]SnapshotInfo, 0, len(f.snapshots))
	for _, ns := range f.snapshots {
		infos = append(infos, SnapshotInfo{
			ID:         ns.id,
			Name:       ns.name,
			Created:    ns.created,
			RevisionID: ns.snap.RevisionID(),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Created.Equal(infos[j].Created) {
			return infos[i].RevisionID < infos[j].RevisionID
		}
		return infos[i].Created.Before(infos[j].Created)
	})
	return infos
}

// SnapshotCount returns the number of snapshots.
func (f *Field) SnapshotCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.snapshots)
}

// ============================================================================
// Configuration
// ============================================================================

// SessionID returns the ID of the editing session.
func (f *Field) SessionID() uuid.UUID {
	return f.sessionID
}

// RevisionID returns the current revision ID.
func (f *Field) RevisionID() RevisionID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.RevisionID()
}

// SetBeautifier replaces the identifier rules. A nil bt disables them.
func (f *Field) SetBeautifier(bt beautify.Beautifier) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.beautifier = bt
	f.buf.SetBeautifier(bt)
}

// SetSiblingCollapsing enables or disables sibling collapsing.
func (f *Field) SetSiblingCollapsing(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collapse = on
	f.buf.SetSiblingCollapsing(on)
}

// SetMaxUndoEntries changes the undo depth.
func (f *Field) SetMaxUndoEntries(max int) {
	f.history.SetMaxEntries(max)
}

// IsReadOnly returns true if the field is read-only.
func (f *Field) IsReadOnly() bool {
	return f.readOnly
}

// Snapshot returns a read-only snapshot of the current state.
func (f *Field) Snapshot() *buffer.Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.buf.Snapshot()
}
