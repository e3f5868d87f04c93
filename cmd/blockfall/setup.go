package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// app bundles what every subcommand needs. Close releases it.
type app struct {
	logger  *log.Logger
	store   *storage.Store
	env     registry.Env
	logFile *os.File
}

// newApp builds the logger, loads the rules and opens the score store.
// fallback receives logs when --log-file is not set; terminal UIs pass
// io.Discard so log lines cannot corrupt the alt screen.
func newApp(fallback io.Writer) (*app, error) {
	a := &app{}

	out := fallback
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		a.logFile = f
		out = f
	}

	logger, err := newLogger(out, flagLogLevel)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.logger = logger

	rules, err := loadRules(flagConfig, flagDifficulty)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.env = registry.Env{Config: rules, Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, high score kept in memory", "path", flagDBPath, "error", err)
	} else {
		a.store = store
		a.env.Scores = store
	}

	return a, nil
}

// Close closes the store and the log file.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// newLogger creates the process logger.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
		Level:           lvl,
	}), nil
}

// loadRules loads the rules YAML and applies a difficulty preset on top.
func loadRules(path, preset string) (config.BlockfallConfig, error) {
	cfg, err := config.LoadBlockfall(path)
	if err != nil {
		return config.BlockfallConfig{}, err
	}

	p, err := config.ParsePreset(preset)
	if err != nil {
		return config.BlockfallConfig{}, err
	}
	config.ApplyBlockfallPreset(&cfg, p)

	if err := cfg.Validate(); err != nil {
		return config.BlockfallConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// runtimeConfig sizes the screen from the terminal, defaulting to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}
}

// variantArg returns the variant named on the command line, or the default.
func variantArg(args []string) (string, error) {
	if len(args) == 0 {
		return blockfall.GameID, nil
	}
	if !registry.Exists(args[0]) {
		return "", fmt.Errorf("unknown variant %q (run 'blockfall list')", args[0])
	}
	return args[0], nil
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
