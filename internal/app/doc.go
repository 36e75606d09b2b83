// Package app runs a math field in a terminal.
//
// The Application loads settings through the config package, creates an
// engine.Field from them, loads Lua macros and then translates tcell key
// events into field operations:
//
//	typing          InsertText, so '/' makes a fraction and '^' a power
//	arrows          move, Shift+arrow selects
//	Tab             leave the current position to the right
//	Backspace       PerformBackspace
//	Ctrl+F, Ctrl+R  fraction and square root templates (see keys.go)
//	Ctrl+Z, Ctrl+Y  undo and redo
//	Ctrl+C/X/V      copy, cut and paste
//	Ctrl+B          beautify identifiers left of the cursor
//	F1..F12         run the Lua macro named f1..f12
//	Enter, Esc      quit
//
// Edit failures, such as a full arena, are reported in the status line and
// never end the event loop.
package app
