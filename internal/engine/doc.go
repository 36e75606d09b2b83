// Package engine provides the structural math input engine of mathfield.
//
// The engine package serves as the main facade: a Field combines the formula
// buffer, undo/redo, serialization and named snapshots into a unified,
// thread-safe API suitable for building math input fields.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - arena: bounded block stack holding layout trees contiguously
//   - layout: node types, notation and the per-type navigation tables
//   - nary: child insertion and removal helpers
//   - balance: bracket balancing of racks
//   - beautify: identifier rewriting rules
//   - render: sizes, baselines and drawing in terminal cells
//   - cursor: navigation and the insertion and deletion protocols
//   - buffer: transactional edits on a scratch copy of the tree
//   - history: snapshot based undo/redo
//   - codec: CBOR documents for states and clipboard clips
//
// # Thread Safety
//
// All Field operations are thread-safe. The field uses a read-write mutex
// to allow concurrent reads while serializing writes.
//
// # Basic Usage
//
//	f, _ := engine.New()
//
//	f.InsertText("1+")
//	f.InsertTemplate("fraction") // 1+frac{|}{}
//	f.InsertText("2")
//	f.Move(engine.Down, false)
//	f.InsertText("3")
//
//	f.String() // "1+frac{2}{3|}"
//	f.Undo()   // "1+frac{2}{|}"
//
// # Loading Content
//
// Content is given in the layout notation, where '|' marks the cursor:
//
//	f, err := engine.New(engine.WithContent("sqrt{x|}"))
//
// # Arena Exhaustion
//
// A field holds at most its capacity in blocks. An edit that needs more fails
// with an error wrapping ErrArenaExhausted and leaves the field untouched:
//
//	if errors.Is(f.InsertText(s), engine.ErrArenaExhausted) {
//	    // refuse the keystroke
//	}
//
// # Clipboard
//
// Copy and Cut encode the selection as a CBOR clip, which Paste validates
// before inserting it.
package engine
