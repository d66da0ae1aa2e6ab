package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/pipeboard/internal/models"
)

// runMigrations creates the database schema if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS stages (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			stage_id TEXT NOT NULL,
			title TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			fields TEXT NOT NULL DEFAULT '{}',
			position INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (stage_id) REFERENCES stages(id) ON DELETE CASCADE
		)`,
		// Create index for efficient per-stage ordering
		`CREATE INDEX IF NOT EXISTS idx_items_stage ON items(stage_id, position)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedStages inserts stages if the stages table is empty
func seedStages(ctx context.Context, db *sql.DB, stages []models.Column) error {
	if len(stages) == 0 {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stages").Scan(&count); err != nil {
		return err
	}

	// If stages exist, don't seed
	if count > 0 {
		return nil
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		for i, s := range stages {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO stages (id, title, position) VALUES (?, ?, ?)",
				s.ID, s.Title, i,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
