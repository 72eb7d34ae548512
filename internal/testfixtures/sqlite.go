package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/campus-registry/internal/persistence/sqlite"
)

// NewStore opens a migrated SQLite store backed by a temporary database file.
// The store is closed when the test finishes.
func NewStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(sqlite.TestPoolConfig(filepath.Join(t.TempDir(), "registry.db")))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	return store
}
