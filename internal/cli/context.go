// Package cli holds the shared plumbing of pipeboard's scripting commands:
// the store and daemon connection, output formatting and exit codes.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/services/pipeline"
)

// ErrNoCLI is returned when a command runs without a CLI in its context
var ErrNoCLI = errors.New("cli not initialized")

// CLI represents the CLI application context
type CLI struct {
	Service pipeline.Service
	Config  *config.Config

	db          *sql.DB
	eventClient *events.Client
}

// New wraps an already opened service, mainly for tests
func New(svc pipeline.Service, cfg *config.Config) *CLI {
	return &CLI{Service: svc, Config: cfg}
}

// NewCLI opens the store and, when a daemon is running, connects to it so
// writes refresh open boards
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	dbPath, err := cfg.Board.DatabasePath()
	if err != nil {
		return nil, err
	}
	db, err := database.InitDB(ctx, dbPath, cfg.Columns()...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Try to connect to daemon (optional - silent fallback)
	var eventClient *events.Client
	var publisher events.EventPublisher
	if socketPath, err := config.SocketPath(); err == nil {
		client, err := events.NewClient(socketPath)
		if err == nil {
			if err := client.Connect(ctx); err == nil {
				eventClient = client
				publisher = client
			} else {
				slog.Debug("daemon not reachable", "error", err)
			}
		}
	}

	return &CLI{
		Service:     pipeline.NewService(database.NewRepository(db), publisher),
		Config:      cfg,
		db:          db,
		eventClient: eventClient,
	}, nil
}

// Close flushes queued events and closes the store
func (c *CLI) Close() error {
	var errs []error
	if c.eventClient != nil {
		errs = append(errs, c.eventClient.Close())
	}
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	return errors.Join(errs...)
}

type contextKey struct{}

// WithCLI stores c in ctx for the subcommands
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the CLI stored by WithCLI
func FromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		return nil, ErrNoCLI
	}
	c, ok := ctx.Value(contextKey{}).(*CLI)
	if !ok || c == nil {
		return nil, ErrNoCLI
	}
	return c, nil
}
