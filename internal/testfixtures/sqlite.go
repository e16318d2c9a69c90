package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/realestate-crm/internal/logging"
	"github.com/example/realestate-crm/internal/persistence"
	"github.com/example/realestate-crm/internal/persistence/sqlite"
)

// SQLiteHarness provides a migrated store backed by a temporary SQLite file
// for integration-style persistence tests.
type SQLiteHarness struct {
	Store *sqlite.Store
	Path  string

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// Import replaces the stored snapshot, failing the test on error.
func (h *SQLiteHarness) Import(tb testing.TB, snapshot persistence.Snapshot) {
	tb.Helper()
	if err := h.Store.ImportSnapshot(context.Background(), snapshot); err != nil {
		tb.Fatalf("failed to import snapshot: %v", err)
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. The store is left empty. Callers may optionally
// invoke Close, but the helper also registers a cleanup callback with tb.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "crm.db")
	store, err := sqlite.Open(context.Background(), sqlite.DefaultConfig(path), logging.Discard())
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Store: store,
		Path:  path,
		cleanup: func() {
			_ = store.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
