// Package database is the SQLite-backed pipeline store
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/pipeboard/internal/models"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory store
const MemoryPath = ":memory:"

// InitDB opens the store at path, applies pragmas and migrations and seeds
// the given stages into an empty stage table.
func InitDB(ctx context.Context, path string, seed ...models.Column) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite benefits from a single writer connection. It also keeps an
	// in-memory database alive and shared for the lifetime of the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	closeOnErr := func(err error) (*sql.DB, error) {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, err
	}

	pragmas := []string{
		// Enable foreign key constraints (required for CASCADE deletions)
		"PRAGMA foreign_keys = ON",
		// WAL lets the board read while the CLI or another board writes
		"PRAGMA journal_mode = WAL",
		// SQLite will retry for this duration on a locked database
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			slog.Error("Failed to apply pragma", "pragma", p, "error", err)
			return closeOnErr(err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		return closeOnErr(fmt.Errorf("database ping failed: %w", err))
	}

	if err := runMigrations(ctx, db); err != nil {
		return closeOnErr(fmt.Errorf("failed to run migrations: %w", err))
	}

	if err := seedStages(ctx, db, seed); err != nil {
		return closeOnErr(fmt.Errorf("failed to seed stages: %w", err))
	}

	return db, nil
}
