package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// DefaultStages are seeded by SetupTestDB: lead, won, lost
func DefaultStages() []models.Column {
	return []models.Column{
		{ID: "lead", Title: "Lead"},
		{ID: "won", Title: "Won"},
		{ID: "lost", Title: "Lost"},
	}
}

// SetupTestDB creates an in-memory store with full schema and the given
// stages (DefaultStages when none are passed). It is closed on cleanup.
func SetupTestDB(t *testing.T, stages ...models.Column) *sql.DB {
	t.Helper()
	if len(stages) == 0 {
		stages = DefaultStages()
	}

	db, err := database.InitDB(context.Background(), database.MemoryPath, stages...)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: db close error during cleanup: %v", err)
		}
	})
	return db
}

// SetupTestRepo is SetupTestDB wrapped in a Repository
func SetupTestRepo(t *testing.T, stages ...models.Column) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t, stages...))
}

// CreateTestItem inserts an item and fails the test on error
func CreateTestItem(t *testing.T, repo *database.Repository, stageID, title string) *models.Item {
	t.Helper()
	item, err := repo.CreateItem(context.Background(), stageID, title, "", nil)
	if err != nil {
		t.Fatalf("Failed to create item %q: %v", title, err)
	}
	return item
}
