package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thenoetrevino/pipeboard/internal/board/reconcile"
	"github.com/thenoetrevino/pipeboard/internal/board/sensor"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

var (
	ErrEmptyStageID   = errors.New("stage id cannot be empty")
	ErrDuplicateStage = errors.New("duplicate stage id")
	ErrNegativeValue  = errors.New("value cannot be negative")
)

// BoardConfig tunes the drag-and-drop engine and data refresh
type BoardConfig struct {
	// Pointer travel (cells) before a press becomes a drag
	ActivationDistance int `yaml:"activation_distance"`
	// Max centre distance for a drop target; 0 means unlimited
	DetectionRange int `yaml:"detection_range"`
	// Report intra-stage reorders to the store
	PersistOrder bool `yaml:"persist_order"`
	// How snapshots are merged with unconfirmed local moves
	SyncPolicy string `yaml:"sync_policy"`
	// preserve_pending only: drop unconfirmed moves older than this; 0 keeps them
	PendingMaxAge time.Duration `yaml:"pending_max_age,omitempty"`
	// Periodic snapshot refetch; 0 disables polling
	RefreshInterval time.Duration `yaml:"refresh_interval,omitempty"`
	// SQLite store location; defaults to ~/.pipeboard/pipeboard.db
	Database string `yaml:"database,omitempty"`
}

// StageConfig is a stage seeded into a new store
type StageConfig struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// DefaultStages returns the stages seeded when none are configured
func DefaultStages() []StageConfig {
	return []StageConfig{
		{ID: "lead", Title: "Lead"},
		{ID: "qualified", Title: "Qualified"},
		{ID: "proposal", Title: "Proposal"},
		{ID: "won", Title: "Won"},
	}
}

// Policy builds the reconciliation policy named by SyncPolicy
func (b BoardConfig) Policy() (reconcile.Policy, error) {
	p, err := reconcile.ParsePolicy(b.SyncPolicy)
	if err != nil {
		return nil, err
	}
	if pp, ok := p.(reconcile.PreservePending); ok {
		pp.MaxAge = b.PendingMaxAge
		return pp, nil
	}
	return p, nil
}

// Validate checks the board section
func (b BoardConfig) Validate() error {
	if b.ActivationDistance < 0 {
		return fmt.Errorf("activation_distance: %w", ErrNegativeValue)
	}
	if b.DetectionRange < 0 {
		return fmt.Errorf("detection_range: %w", ErrNegativeValue)
	}
	if b.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval: %w", ErrNegativeValue)
	}
	if _, err := reconcile.ParsePolicy(b.SyncPolicy); err != nil {
		return fmt.Errorf("sync_policy: %w", err)
	}
	return nil
}

func (b *BoardConfig) applyDefaults() {
	if b.ActivationDistance == 0 {
		b.ActivationDistance = sensor.DefaultActivationDistance
	}
	if b.SyncPolicy == "" {
		b.SyncPolicy = reconcile.PolicyLastSnapshotWins
	}
}

// DataDir returns ~/.pipeboard, where the store, socket and logs live
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".pipeboard"), nil
}

// DatabasePath resolves the store location
func (b BoardConfig) DatabasePath() (string, error) {
	if b.Database != "" {
		return b.Database, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pipeboard.db"), nil
}

// SocketPath is the daemon's unix socket, ~/.pipeboard/pipeboard.sock
func SocketPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pipeboard.sock"), nil
}

// Columns converts the configured stages into board columns
func (c *Config) Columns() []models.Column {
	out := make([]models.Column, len(c.Stages))
	for i, s := range c.Stages {
		out[i] = models.Column{ID: s.ID, Title: s.Title}
	}
	return out
}
