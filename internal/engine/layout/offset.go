package layout

import "github.com/dshills/mathfield/internal/engine/arena"

const (
	offsetSubscript arena.Block = 1 << 0
	offsetPrefix    arena.Block = 1 << 1
)

// IsSuperscript reports whether the vertical offset n is raised.
func IsSuperscript(s *arena.Stack, n arena.Node) bool {
	return s.Payload(n, 0)&offsetSubscript == 0
}

// IsSubscript reports whether the vertical offset n is lowered.
func IsSubscript(s *arena.Stack, n arena.Node) bool {
	return !IsSuperscript(s, n)
}

// IsPrefix reports whether the vertical offset n precedes its base.
func IsPrefix(s *arena.Stack, n arena.Node) bool {
	return s.Payload(n, 0)&offsetPrefix != 0
}

// IsSuffix reports whether the vertical offset n follows its base.
func IsSuffix(s *arena.Stack, n arena.Node) bool {
	return !IsPrefix(s, n)
}

// IsSuffixSuperscript reports whether n is a vertical offset written as a
// power.
func IsSuffixSuperscript(s *arena.Stack, n arena.Node) bool {
	return s.Type(n) == TypeVerticalOffset && IsSuffix(s, n) && IsSuperscript(s, n)
}
