// Package lua drives a math field from Lua.
//
// A Runtime owns a gopher-lua state with only the base, table, string and
// math libraries, and a global mf table bound to the field:
//
//	mf.insert("1+")          -- type text
//	mf.template("fraction")  -- insert a named template
//	mf.move("down")          -- move the cursor, optionally n times and selecting
//	mf.backspace()
//	mf.string()              -- "1+frac{|}{}"
//
// Scripts define macros that the host runs by name:
//
//	mf.macro("half", function()
//	  mf.template("fraction")
//	  mf.insert("1")
//	  mf.move("down")
//	  mf.insert("2")
//	end)
//
// Every chunk and macro runs under an execution timeout. A macro's edits
// form one undo group.
package lua
