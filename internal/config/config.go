package config

import (
	"errors"
	"fmt"

	"github.com/dshills/encounter/internal/input/key"
	"github.com/dshills/encounter/internal/layers"
	"github.com/dshills/encounter/internal/logging"
	"github.com/dshills/encounter/internal/shortcut"
)

// Config is the complete editor configuration.
type Config struct {
	Editor Editor `toml:"editor" yaml:"editor"`
	Keymap shortcut.Bindings `toml:"keymap" yaml:"keymap"`
}

// Editor holds general editor settings.
type Editor struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// HistoryMaxEntries bounds the global undo stack.
	HistoryMaxEntries int `toml:"history_max_entries" yaml:"history_max_entries"`

	// Grid is the grid mode at startup.
	Grid string `toml:"grid" yaml:"grid"`

	// DefaultGrid is the mode restored when layers are shown again after
	// the grid was turned off.
	DefaultGrid string `toml:"default_grid" yaml:"default_grid"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: Editor{
			LogLevel:          "info",
			HistoryMaxEntries: 1000,
			Grid:              "square",
			DefaultGrid:       "square",
		},
		Keymap: shortcut.DefaultBindings(),
	}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Editor.LogLevel)
}

// Grid returns the parsed startup grid mode.
func (c *Config) Grid() layers.GridType {
	g, _ := layers.ParseGridType(c.Editor.Grid)
	return g
}

// DefaultGrid returns the parsed restore grid mode.
func (c *Config) DefaultGrid() layers.GridType {
	g, err := layers.ParseGridType(c.Editor.DefaultGrid)
	if err != nil || g == layers.GridNone {
		return layers.GridSquare
	}
	return g
}

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	switch c.Editor.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{"editor.log_level", fmt.Sprintf("unknown level %q", c.Editor.LogLevel)})
	}
	if c.Editor.HistoryMaxEntries < 0 {
		errs = append(errs, &ValidationError{"editor.history_max_entries", "must not be negative"})
	}
	if _, err := layers.ParseGridType(c.Editor.Grid); err != nil {
		errs = append(errs, &ValidationError{"editor.grid", err.Error()})
	}
	if _, err := layers.ParseGridType(c.Editor.DefaultGrid); err != nil {
		errs = append(errs, &ValidationError{"editor.default_grid", err.Error()})
	}
	if _, err := key.ParseAll(c.Keymap.Undo); err != nil {
		errs = append(errs, &ValidationError{"keymap.undo", err.Error()})
	}
	if _, err := key.ParseAll(c.Keymap.Redo); err != nil {
		errs = append(errs, &ValidationError{"keymap.redo", err.Error()})
	}

	return errors.Join(errs...)
}
