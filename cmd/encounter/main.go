// Package main is the entry point for the encounter editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/encounter/internal/app"
	"github.com/dshills/encounter/internal/backend"
	"github.com/dshills/encounter/internal/config"
	"github.com/dshills/encounter/internal/encounter"
	"github.com/dshills/encounter/internal/logging"
	"github.com/dshills/encounter/internal/scope"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	tool       string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Editor.LogLevel = opts.logLevel
	}

	// The terminal belongs to the editor; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: logOut,
		Prefix: "encounter",
	})

	data := encounter.Data{Name: "untitled"}
	if opts.file != "" {
		data, err = encounter.Load(opts.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	initial, ok := scope.Parse(opts.tool)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown tool %q\n", opts.tool)
		return 1
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	editor := app.New(encounter.NewDocument(data),
		app.WithConfig(cfg),
		app.WithLogger(logger),
		app.WithContext(ctx),
		app.WithInitialScope(initial),
	)

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	g, gctx := errgroup.WithContext(ctx)

	if opts.configPath != "" {
		watcher, err := config.NewWatcher(opts.configPath,
			func(c *config.Config) {
				if err := editor.ApplyConfig(c); err != nil {
					logger.Warn("config reload: %v", err)
					return
				}
				logger.Info("config reloaded from %s", opts.configPath)
			},
			config.WithErrorHandler(func(err error) {
				logger.Warn("config reload: %v", err)
			}),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: watching config: %v\n", err)
			return 1
		}
		defer watcher.Close()

		g.Go(func() error {
			err := watcher.Run(gctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		// Quitting the editor stops the watcher too.
		defer cancel()
		return editor.Run(gctx, term)
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := editor.Wait(); err != nil {
		logger.Warn("pending undo: %v", err)
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.tool, "tool", "", "Tool active at startup (walls, regions, lights, sounds, objects, monsters, characters)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "encounter - encounter map editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: encounter [options] [encounter.yaml]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("encounter %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		opts.file = flag.Arg(0)
	}
	return opts
}
