package testsupport

import (
	"context"
	"testing"

	"sortd/internal/config"
	"sortd/internal/journal"
)

// MustOpenJournal opens a journal.Store for tests and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewBatch begins a batch for tests using the provided store.
func NewBatch(t testing.TB, store *journal.Store, sourceDir string) *journal.Batch {
	t.Helper()

	batch, err := store.Begin(context.Background(), sourceDir)
	if err != nil {
		t.Fatalf("store.Begin: %v", err)
	}
	return batch
}
