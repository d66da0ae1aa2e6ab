// Package daemoncmd implements the "pipeboard daemon" commands
package daemoncmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/daemon"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/watcher"
	"golang.org/x/sync/errgroup"
)

// WatcherSource is the event Source used for store changes seen on disk
const WatcherSource = "store-watcher"

// DaemonCmd returns the daemon command. Without a subcommand it runs the
// event daemon in the foreground.
func DaemonCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the live update daemon",
		Long: `Run the daemon that relays board changes between pipeboard processes.

With --watch-store the daemon also watches the store file and tells every
board to refresh when another program writes to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch-store")
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Set up signal handling for graceful shutdown
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()

			return Run(ctx, cfg, watch)
		},
	}
	cmd.Flags().Bool("watch-store", false, "Broadcast a refresh when the store file changes on disk")

	cmd.AddCommand(statusCmd())
	return cmd
}

// Run starts the daemon on the configured socket and blocks until ctx is
// done. The server and the optional store watcher run in one errgroup.
func Run(ctx context.Context, cfg *config.Config, watch bool) error {
	socketPath, err := config.SocketPath()
	if err != nil {
		return err
	}

	server, err := daemon.NewServer(socketPath)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}
	slog.Info("pipeboard daemon starting", "socket_path", socketPath, "pid", os.Getpid())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Start(gctx) })

	if watch {
		dbPath, err := cfg.Board.DatabasePath()
		if err != nil {
			return err
		}
		w, err := watcher.New(watcher.DefaultConfig(dbPath))
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to watch store: %w", err)
		}
		defer func() {
			if err := w.Stop(); err != nil {
				slog.Error("error stopping store watcher", "error", err)
			}
		}()

		g.Go(func() error {
			relayChanges(gctx, w.Changes(), server)
			return nil
		})
	}

	err = g.Wait()
	slog.Info("pipeboard daemon shutting down gracefully")
	return err
}

// broadcaster is the part of the daemon server relayChanges needs
type broadcaster interface {
	Broadcast(events.Event) error
}

// relayChanges turns store change signals into board_changed broadcasts
func relayChanges(ctx context.Context, changes <-chan struct{}, b broadcaster) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			ev := events.Event{Type: events.EventBoardChanged, Source: WatcherSource, Timestamp: time.Now()}
			if err := b.Broadcast(ev); err != nil {
				slog.Warn("failed to broadcast store change", "error", err)
			}
		}
	}
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")

			socketPath, err := config.SocketPath()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			defer cancel()

			stats, err := events.QueryStats(ctx, socketPath)
			if err != nil {
				return err
			}
			return printStats(cmd, stats, jsonOutput)
		},
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func printStats(cmd *cobra.Command, stats *events.Stats, jsonOutput bool) error {
	w := cmd.OutOrStdout()
	if jsonOutput {
		return json.NewEncoder(w).Encode(stats)
	}
	_, err := fmt.Fprintf(w, `Daemon running since %s (up %s)
  clients:    %d
  received:   %d
  sent:       %d
  broadcasts: %d
  dropped:    %d
`,
		stats.StartTime.Format(time.RFC3339), stats.Uptime,
		stats.ConnectedClients,
		stats.EventsReceived,
		stats.EventsSent,
		stats.Broadcasts,
		stats.EventsDropped,
	)
	return err
}
