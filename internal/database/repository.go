package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// Repository handles all stage and item database operations.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const itemColumns = `id, stage_id, title, notes, fields, position, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var fields string
	if err := row.Scan(
		&item.ID, &item.StageID, &item.Title, &item.Notes, &fields,
		&item.Position, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	decoded, err := decodeFields(fields)
	if err != nil {
		return nil, err
	}
	item.Fields = decoded
	return item, nil
}

// ListStages returns all stages in display order
func (r *Repository) ListStages(ctx context.Context) ([]models.Column, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title FROM stages ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("querying stages: %w", err)
	}
	defer rows.Close()

	var stages []models.Column
	for rows.Next() {
		var s models.Column
		if err := rows.Scan(&s.ID, &s.Title); err != nil {
			return nil, fmt.Errorf("scanning stage row: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

// Snapshot returns every item ordered by stage position, then item position
func (r *Repository) Snapshot(ctx context.Context) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.id, i.stage_id, i.title, i.notes, i.fields, i.position, i.created_at, i.updated_at
		 FROM items i
		 JOIN stages s ON s.id = i.stage_id
		 ORDER BY s.position, i.position, i.created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetItem retrieves a single item
func (r *Repository) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}
	return item, nil
}

// CreateItem appends a new item to the end of stageID
func (r *Repository) CreateItem(ctx context.Context, stageID, title, notes string, fields map[string]string) (*models.Item, error) {
	encoded, err := encodeFields(fields)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()

	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		position, err := nextPosition(ctx, tx, stageID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO items (id, stage_id, title, notes, fields, position) VALUES (?, ?, ?, ?, ?, ?)`,
			id, stageID, title, notes, encoded, position,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return r.GetItem(ctx, id)
}

// MoveItem moves an item to the end of stageID. Moving an item to the stage
// it is already in leaves it where it is.
func (r *Repository) MoveItem(ctx context.Context, id, stageID string) (*models.Item, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT stage_id FROM items WHERE id = ?`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", models.ErrItemNotFound, id)
		}
		if err != nil {
			return err
		}
		if current == stageID {
			return nil
		}

		position, err := nextPosition(ctx, tx, stageID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE items
			 SET stage_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			stageID, position, id,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("moving item %s: %w", id, err)
	}

	return r.GetItem(ctx, id)
}

// ReorderStage rewrites positions inside a stage. orderedIDs come first in
// the given order; stage items not listed keep their relative order after them.
func (r *Repository) ReorderStage(ctx context.Context, stageID string, orderedIDs []string) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := requireStage(ctx, tx, stageID); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT id FROM items WHERE stage_id = ? ORDER BY position, created_at`, stageID)
		if err != nil {
			return err
		}
		var existing []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			existing = append(existing, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		inStage := make(map[string]bool, len(existing))
		for _, id := range existing {
			inStage[id] = true
		}

		order := make([]string, 0, len(existing))
		listed := make(map[string]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if !inStage[id] {
				return fmt.Errorf("%w: %s not in stage %s", models.ErrItemNotFound, id, stageID)
			}
			if listed[id] {
				continue
			}
			listed[id] = true
			order = append(order, id)
		}
		for _, id := range existing {
			if !listed[id] {
				order = append(order, id)
			}
		}

		for position, id := range order {
			if _, err := tx.ExecContext(ctx,
				`UPDATE items SET position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				position, id,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reordering stage %s: %w", stageID, err)
	}
	return nil
}

// DeleteItem removes an item
func (r *Repository) DeleteItem(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrItemNotFound, id)
	}
	return nil
}

// requireStage returns ErrStageNotFound when stageID does not exist
func requireStage(ctx context.Context, tx *sql.Tx, stageID string) error {
	var exists int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM stages WHERE id = ?`, stageID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", models.ErrStageNotFound, stageID)
	}
	return err
}

// nextPosition returns the append position for stageID, checking it exists
func nextPosition(ctx context.Context, tx *sql.Tx, stageID string) (int, error) {
	if err := requireStage(ctx, tx, stageID); err != nil {
		return 0, err
	}
	var position int
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM items WHERE stage_id = ?`, stageID,
	).Scan(&position)
	return position, err
}
