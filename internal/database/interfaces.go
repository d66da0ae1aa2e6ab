package database

import (
	"context"

	"github.com/thenoetrevino/pipeboard/internal/models"
)

// StageReader reads the stage list
type StageReader interface {
	ListStages(ctx context.Context) ([]models.Column, error)
}

// ItemStore reads and writes pipeline items
type ItemStore interface {
	Snapshot(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (*models.Item, error)
	CreateItem(ctx context.Context, stageID, title, notes string, fields map[string]string) (*models.Item, error)
	MoveItem(ctx context.Context, id, stageID string) (*models.Item, error)
	ReorderStage(ctx context.Context, stageID string, orderedIDs []string) error
	DeleteItem(ctx context.Context, id string) error
}

// DataStore defines the unified interface for all data operations.
// Consumers can depend on the smaller interfaces for better testability.
type DataStore interface {
	StageReader
	ItemStore
}

var _ DataStore = (*Repository)(nil)
