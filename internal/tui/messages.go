package tui

import (
	"time"

	"github.com/thenoetrevino/pipeboard/internal/models"
)

// SnapshotMsg carries a fresh copy of the stages and items from the store
type SnapshotMsg struct {
	Stages []models.Column
	Items  []models.Item
	Err    error
}

// MoveResultMsg reports the outcome of persisting a stage change
type MoveResultMsg struct {
	ItemID  string
	StageID string
	Err     error
}

// ReorderResultMsg reports the outcome of persisting an intra-stage order
type ReorderResultMsg struct {
	StageID string
	Err     error
}

// BoardChangedMsg is raised when the daemon reports a store change
type BoardChangedMsg struct {
	Source string // client ID of the writer
}

// StoreChangedMsg is raised when the file watcher sees the store change
type StoreChangedMsg struct{}

// LiveUpdatesLostMsg is raised when the daemon event stream ends
type LiveUpdatesLostMsg struct{}

type tickMsg time.Time

type dismissNotificationMsg struct {
	id int
}
