package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/encounter/internal/layers"
	"github.com/dshills/encounter/internal/logging"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel())
	assert.Equal(t, layers.GridSquare, cfg.Grid())
	assert.Equal(t, layers.GridSquare, cfg.DefaultGrid())
	assert.Equal(t, 1000, cfg.Editor.HistoryMaxEntries)
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "editor.toml"))
	require.NoError(t, err)

	assert.Equal(t, logging.LevelDebug, cfg.LogLevel())
	assert.Equal(t, 250, cfg.Editor.HistoryMaxEntries)
	assert.Equal(t, layers.GridHexRows, cfg.Grid())
	assert.Equal(t, []string{"Ctrl+Z"}, cfg.Keymap.Undo)
	assert.Equal(t, []string{"Ctrl+Shift+Z"}, cfg.Keymap.Redo)
}

func TestLoadYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "editor.yaml"))
	require.NoError(t, err)

	assert.Equal(t, logging.LevelWarn, cfg.LogLevel())
	assert.Equal(t, layers.GridNone, cfg.Grid())
	// absent keys keep defaults
	assert.Equal(t, 1000, cfg.Editor.HistoryMaxEntries)
	assert.Equal(t, layers.GridSquare, cfg.DefaultGrid())
	assert.Equal(t, Default().Keymap.Undo, cfg.Keymap.Undo)
	assert.Equal(t, []string{"Meta+Shift+Z"}, cfg.Keymap.Redo)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("bad.toml", FormatTOML, []byte("[editor]\nlog_level = \n"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad.toml", pe.Path)
	assert.Positive(t, pe.Line)
	assert.Contains(t, pe.Error(), "parse error in bad.toml at line")
}

func TestParseErrorYAML(t *testing.T) {
	_, err := Parse("bad.yaml", FormatYAML, []byte("editor:\n  grid: [\n"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad.yaml", pe.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		setting string
	}{
		{"log level", func(c *Config) { c.Editor.LogLevel = "chatty" }, "editor.log_level"},
		{"history", func(c *Config) { c.Editor.HistoryMaxEntries = -1 }, "editor.history_max_entries"},
		{"grid", func(c *Config) { c.Editor.Grid = "triangles" }, "editor.grid"},
		{"default grid", func(c *Config) { c.Editor.DefaultGrid = "triangles" }, "editor.default_grid"},
		{"undo", func(c *Config) { c.Keymap.Undo = []string{"Ctrl+"} }, "keymap.undo"},
		{"redo", func(c *Config) { c.Keymap.Redo = []string{""} }, "keymap.redo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.setting, ve.Setting)
		})
	}
}

func TestDefaultGridNeverNone(t *testing.T) {
	cfg := Default()
	cfg.Editor.DefaultGrid = "none"
	assert.Equal(t, layers.GridSquare, cfg.DefaultGrid())
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editor.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\nlog_level = \"info\"\n"), 0o644))

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { reloaded <- c }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("[editor]\nlog_level = \"error\"\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, logging.LevelError, cfg.LogLevel())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReportsBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editor.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	errs := make(chan error, 4)
	w, err := NewWatcher(path, func(*Config) {},
		WithDebounce(10*time.Millisecond),
		WithErrorHandler(func(err error) { errs <- err }),
	)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("[editor\n"), 0o644))

	select {
	case err := <-errs:
		var pe *ParseError
		assert.True(t, errors.As(err, &pe))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatcherRejectsUnknownExtension(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "editor.ini"), func(*Config) {})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRunAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	w, err := NewWatcher(path, func(*Config) {})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Run(context.Background()), ErrWatcherClosed)
}
