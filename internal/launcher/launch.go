// Package launcher wires the store, live updates and the board TUI together
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/logging"
	"github.com/thenoetrevino/pipeboard/internal/services/pipeline"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/watcher"
)

// Options tweak a launch
type Options struct {
	LogLevel slog.Level
	// NoDaemon skips the daemon and relies on the store watcher
	NoDaemon bool
}

// Launch starts the TUI application
func Launch(parent context.Context, cfg *config.Config, opts Options) error {
	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}

	// Initialize logging to file before anything else
	logFile, err := logging.Init(dataDir, opts.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logFile.Close()

	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dbPath, err := cfg.Board.DatabasePath()
	if err != nil {
		return err
	}
	db, err := database.InitDB(ctx, dbPath, cfg.Columns()...)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	var (
		publisher events.EventPublisher
		modelOpts = []tui.Option{tui.WithLogger(slog.Default())}
	)

	// Live updates: the daemon when it is running, the store watcher otherwise
	client := connectDaemon(ctx, opts.NoDaemon)
	if client != nil {
		defer func() {
			if err := client.Close(); err != nil {
				slog.Error("error closing event client", "error", err)
			}
		}()
		eventChan, err := client.Listen(ctx)
		if err != nil {
			return fmt.Errorf("failed to listen for events: %w", err)
		}
		publisher = client
		modelOpts = append(modelOpts, tui.WithEvents(eventChan, client.ID()))
	} else if w := startWatcher(dbPath); w != nil {
		defer func() {
			if err := w.Stop(); err != nil {
				slog.Error("error stopping store watcher", "error", err)
			}
		}()
		modelOpts = append(modelOpts, tui.WithWatcher(w.Changes()))
	}

	svc := pipeline.NewService(database.NewRepository(db), publisher)
	model := tui.New(ctx, svc, cfg, modelOpts...)

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// connectDaemon returns a connected client, or nil when no daemon answers
func connectDaemon(ctx context.Context, skip bool) *events.Client {
	if skip {
		return nil
	}
	socketPath, err := config.SocketPath()
	if err != nil {
		return nil
	}

	client, err := events.NewClient(socketPath)
	if err != nil {
		slog.Warn("failed to create daemon client", "error", err)
		return nil
	}
	if err := client.Connect(ctx); err != nil {
		daemonErr := events.ClassifyDaemonError(err)
		slog.Warn("failed to connect to daemon", "message", daemonErr.Message, "hint", daemonErr.Hint)
		slog.Info("continuing with the store watcher")
		_ = client.Close()
		return nil
	}
	return client
}

// startWatcher watches the store file, or returns nil if that fails
func startWatcher(dbPath string) *watcher.Watcher {
	w, err := watcher.New(watcher.DefaultConfig(dbPath))
	if err != nil {
		slog.Warn("failed to create store watcher", "error", err)
		return nil
	}
	if err := w.Start(); err != nil {
		slog.Warn("failed to start store watcher", "error", err)
		return nil
	}
	return w
}
