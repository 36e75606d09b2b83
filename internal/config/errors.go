package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidSetting indicates a setting has an unknown key or a bad value.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrNotLoaded indicates Reload was called before Load.
	ErrNotLoaded = errors.New("configuration not loaded")
)
