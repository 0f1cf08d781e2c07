// Package config loads editor settings from TOML or YAML files and watches
// them for live reload.
//
// A settings file has two sections:
//
//	[editor]
//	log_level = "debug"
//	history_max_entries = 500
//	grid = "square"
//	default_grid = "square"
//
//	[keymap]
//	undo = ["Ctrl+Z", "Meta+Z"]
//	redo = ["Ctrl+Y", "Ctrl+Shift+Z"]
//
// The format is chosen by file extension (.toml, .yaml, .yml). Keys absent
// from the file keep their defaults.
package config
