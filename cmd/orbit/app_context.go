package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/orbitlab/orbit/internal/config"
	"github.com/orbitlab/orbit/internal/logger"
	"github.com/orbitlab/orbit/internal/store"
)

// AppContext bundles the services a command needs for one invocation.
type AppContext struct {
	Config  config.Config
	Logger  *logger.Logger
	Backend *store.Backend
	Designs *store.Store
	Handoff *store.Handoff

	closers []io.Closer
}

type logTarget int

const (
	// logToStderr is used by plain commands.
	logToStderr logTarget = iota
	// logToFile is used while a full-screen view owns the terminal.
	logToFile
)

func openApp(cmd *cobra.Command, flags *rootFlags, target logTarget) (*AppContext, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, newCommandError(cmd.Name(), "loading configuration", err, "Fix the config file or the ORBIT_* environment variables, then retry.")
	}

	app := &AppContext{Config: cfg}

	log, err := app.newLogger(cmd, flags, target)
	if err != nil {
		return nil, newCommandError(cmd.Name(), "creating logger", err, "Check log.level and log.file in your configuration.")
	}
	app.Logger = log.With("command", cmd.Name())

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		_ = app.Close()
		return nil, newCommandError(cmd.Name(), "creating data directory", err, "Check permissions on "+cfg.DataDir+".")
	}

	backend, err := store.OpenBackend(commandContext(cmd), cfg.Storage.Backend, cfg.DataDir)
	if err != nil {
		_ = app.Close()
		return nil, newCommandError(cmd.Name(), "opening design storage", err, "Check storage.backend and data_dir in your configuration.")
	}
	app.Backend = backend
	app.closers = append(app.closers, closerFunc(backend.Close))

	app.Designs = store.New(backend.Designs, store.WithLogger(app.Logger))
	app.Handoff = store.NewHandoff(backend.Handoff, cfg.HandoffTTL, app.Logger)

	app.Logger.Debug("application ready", "backend", backend.Kind, "data_dir", cfg.DataDir)
	return app, nil
}

func (a *AppContext) newLogger(cmd *cobra.Command, flags *rootFlags, target logTarget) (*logger.Logger, error) {
	level := a.Config.Log.Level
	if flags.verbose {
		level = "debug"
	}

	switch target {
	case logToFile:
		if !flags.verbose {
			return logger.Nop(), nil
		}
		path := a.Config.Log.File
		if path == "" {
			path = filepath.Join(a.Config.DataDir, "orbit.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.closers = append(a.closers, file)
		return logger.New(logger.Options{Level: level, Writer: file, Component: "orbit"})
	default:
		return logger.New(logger.Options{
			Level:         level,
			HumanReadable: a.Config.Log.Human,
			Writer:        cmd.ErrOrStderr(),
			Component:     "orbit",
		})
	}
}

// Close releases storage and log files in reverse order of acquisition.
func (a *AppContext) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
