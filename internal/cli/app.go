// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/demo"
	"github.com/jeranaias/devconsole/internal/journal"
	"github.com/jeranaias/devconsole/internal/telemetry"
	"github.com/jeranaias/devconsole/internal/timescale"
)

// =============================================================================
// APP
// =============================================================================

// AppOptions configures NewApp.
type AppOptions struct {
	// Config is the effective configuration
	Config *config.Config

	// ConfigPath is the file Config came from; empty when running on
	// defaults. Watching and config_reload need it.
	ConfigPath string

	// LogOutput receives log records when no log file is configured
	LogOutput io.Writer

	// Watch reloads the config file when it changes
	Watch bool
}

// App is one wired console session: the demo player and time scale
// controller as command sources, plus the journal, metrics and config
// plumbing around them.
type App struct {
	Store   *config.Store
	Console *console.Console
	Player  *demo.Player
	Clock   *timescale.Controller
	Metrics *telemetry.Metrics
	Tracker *telemetry.Tracker
	Logger  *slog.Logger

	// Optional parts; nil when disabled
	Journal *journal.Journal
	Server  *telemetry.Server
	Watcher *config.Watcher

	logCloser io.Closer
}

// NewApp wires every component. Close releases them.
func NewApp(opts AppOptions) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	policy, err := commands.ParseDuplicatePolicy(cfg.Console.DuplicatePolicy)
	if err != nil {
		return nil, &ConfigError{Path: opts.ConfigPath, Err: err}
	}

	session := uuid.NewString()
	buf := console.NewLogBuffer(cfg.Console.LogCapacity)

	logger, logCloser, err := NewLogger(cfg.Log, opts.LogOutput, buf)
	if err != nil {
		return nil, &ConfigError{Path: opts.ConfigPath, Err: err}
	}

	a := &App{
		Store:     config.NewStore(cfg, opts.ConfigPath),
		Player:    demo.NewPlayer("player"),
		Metrics:   telemetry.NewMetrics(),
		Tracker:   telemetry.NewTracker(session),
		Logger:    logger,
		logCloser: logCloser,
	}
	a.Clock = timescale.New(
		timescale.WithOnChange(a.Metrics.SetTimeScale),
		timescale.WithLogger(logger),
	)

	sources := []commands.Source{
		commands.Named("demo", a.Player),
		commands.Named("timescale", a.Clock),
		commands.Named("config", a.Store),
		commands.Named("telemetry", a.Tracker),
	}
	observers := []commands.Observer{a.Metrics, a.Tracker}

	if cfg.Journal.Enabled {
		path := cfg.Journal.Path
		if path == "" {
			if path, err = config.DefaultJournalPath(); err != nil {
				a.Close()
				return nil, err
			}
		}
		j, err := journal.Open(path, session, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Journal = j
		sources = append(sources, commands.Named("journal", j))
		observers = append(observers, j)
	}

	a.Console = console.New(sources, console.Options{
		ID:              session,
		Buffer:          buf,
		LogCapacity:     cfg.Console.LogCapacity,
		DuplicatePolicy: policy,
		Logger:          logger,
		Observers:       observers,
		MarkdownStyle:   cfg.UI.MarkdownStyle,
		StartVisible:    cfg.Console.StartVisible,
	})

	// Keep the registered gauge current across rescans.
	a.Metrics.SetRegistered(a.Console.Registry().Len())
	a.Console.Dispatcher().AddObserver(commands.ObserverFunc(func(commands.Execution) {
		a.Metrics.SetRegistered(a.Console.Registry().Len())
	}))

	a.Store.Subscribe(func(c *config.Config) {
		a.Console.SetLogCapacity(c.Console.LogCapacity)
		a.Console.SetMarkdownStyle(c.UI.MarkdownStyle)
		logger.Info("Config applied", "log_capacity", c.Console.LogCapacity, "markdown_style", c.UI.MarkdownStyle)
	})

	if cfg.Metrics.Enabled {
		srv, err := telemetry.Serve(cfg.Metrics.Addr, a.Metrics, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Server = srv
	}

	if opts.Watch && opts.ConfigPath != "" {
		w, err := config.NewWatcher(a.Store, config.DefaultDebounce, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := w.Watch(); err != nil {
			_ = w.Close()
			a.Close()
			return nil, fmt.Errorf("watch config: %w", err)
		}
		a.Watcher = w
	}

	logger.Debug("Console ready", "session", session, "commands", a.Console.Registry().Len())
	return a, nil
}

// Close stops background work and releases files. It is safe to call on
// a partially built App.
func (a *App) Close() error {
	var errs []error
	if a.Watcher != nil {
		errs = append(errs, a.Watcher.Close())
	}
	if a.Server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		errs = append(errs, a.Server.Shutdown(ctx))
		cancel()
	}
	if a.Clock != nil {
		a.Clock.Close()
	}
	if a.Journal != nil {
		errs = append(errs, a.Journal.Close())
	}

	// Report while the log file is still open.
	err := errors.Join(errs...)
	if err != nil && a.Logger != nil {
		a.Logger.Error("Shutdown incomplete", "error", err)
	}
	if a.logCloser != nil {
		err = errors.Join(err, a.logCloser.Close())
	}
	return err
}
