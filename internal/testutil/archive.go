// Package testutil provides shared test helpers: an in-memory run archive and
// spreadsheet fixtures built with the ledger package.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/waybill-match/internal/service"
	"github.com/Veraticus/waybill-match/internal/storage"
)

// SetupTestArchive creates a migrated in-memory archive closed at test end.
func SetupTestArchive(t *testing.T) service.Archive {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test archive: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
