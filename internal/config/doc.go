// Package config loads mathfield settings.
//
// Settings are assembled from three sources, later ones overriding earlier:
//
//  1. Built-in defaults
//  2. A TOML or YAML file (~/.config/mathfield/config.toml by default)
//  3. MATHFIELD_* environment variables
//
// # Configuration Files
//
//	# ~/.config/mathfield/config.toml
//	[editor]
//	capacity = 4096
//	siblingCollapsing = true
//	undoDepth = 1000
//
//	[beautify]
//	enabled = true
//
//	[[beautify.symbols]]
//	alias = "inf"
//	replacement = "∞"
//
//	[logging]
//	level = "warn"
//
// The same keys are accepted in YAML when the file ends in .yaml or .yml.
//
// # Environment
//
// MATHFIELD_LOG_LEVEL, MATHFIELD_CAPACITY, MATHFIELD_UNDO_DEPTH,
// MATHFIELD_SIBLING_COLLAPSING and MATHFIELD_BEAUTIFY are shorthands.
// Any other MATHFIELD_SECTION_SETTING_NAME variable sets section.settingName.
// MATHFIELD_CONFIG names the file to load.
//
// # Live Reload
//
// With WithWatcher(true) the file is watched and reloaded on change.
// Subscribers receive the new Settings after each successful reload; a file
// that fails to parse leaves the previous Settings in place.
package config
