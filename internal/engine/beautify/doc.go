// Package beautify rewrites text typed into a rack into the layouts it
// stands for.
//
// Rules come in three families:
//
//   - Symbols, applied as soon as their last character is typed:
//     "<=" becomes "≤", "->" becomes "→", "*" becomes "×".
//   - Simple identifiers, applied when the cursor leaves them or a non
//     identifier character follows: "pi" becomes "π".
//   - Functions, applied when "(" is typed after their name: "sqrt(" becomes
//     a square root with the cursor inside, "log2(" a logarithm in base 2.
//
// Identifier runs are split by a Tokenizer so that "xpi" reads as "x" "pi"
// and "asin" as a single name. A few rewrites depend on context: a typed "|"
// becomes an absolute value, d/dx followed by parentheses becomes a
// derivative, a superscript on its variable makes it an nth derivative, and
// "sum(" becomes a sum once a comma is typed inside it.
//
// Extra symbol rules can be loaded from YAML with LoadSymbols and passed to
// New with WithSymbols.
package beautify
