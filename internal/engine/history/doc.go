// Package history provides undo/redo for a formula buffer.
//
// History records whole buffer states rather than inverse edits. Every
// structural edit of a layout tree can move blocks anywhere in the arena, so
// an Operation keeps the buffer.State before and after the edit and undoing
// it restores the first one.
//
// # Commands
//
// Commands implement the Command interface and run against a buffer:
//   - InsertTextCommand: type text at the cursor
//   - InsertTemplateCommand: insert a toolbox template
//   - BackspaceCommand: delete left of the cursor
//   - CompoundCommand: run several commands as one undo unit
//
// Only commands that change the tree are recorded. Cursor moves are not.
//
// # History Stack
//
//	h := NewHistory(100)
//	h.Execute(NewInsertTextCommand("1+2"), buf)
//	h.Undo(buf)
//	h.Redo(buf)
//
// # Command Grouping
//
//	h.BeginGroup("Paste")
//	// ... multiple edits ...
//	h.EndGroup()
//
// A group undoes to the state before its first edit.
package history
