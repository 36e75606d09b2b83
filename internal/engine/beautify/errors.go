package beautify

import "errors"

// ErrInvalidSymbol is returned when a symbol rule can not be used.
var ErrInvalidSymbol = errors.New("invalid symbol rule")
