package layout

import "errors"

var (
	// ErrParse is returned when the layout notation is malformed.
	ErrParse = errors.New("malformed layout notation")

	// ErrInvalidLayout is returned by Validate when a tree breaks a
	// structural rule.
	ErrInvalidLayout = errors.New("invalid layout tree")
)
