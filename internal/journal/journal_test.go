package journal_test

import (
	"context"
	"errors"
	"testing"

	"sortd/internal/journal"
	"sortd/internal/ops"
	"sortd/internal/testsupport"
)

func TestBeginCreatesExecutingBatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)

	batch := testsupport.NewBatch(t, store, cfg.Paths.SourceDir)
	if batch.ID == "" {
		t.Fatal("expected non-empty batch ID")
	}
	if batch.Status != journal.StatusExecuting {
		t.Fatalf("Status = %q, want %q", batch.Status, journal.StatusExecuting)
	}
	if batch.SourceDir != cfg.Paths.SourceDir {
		t.Errorf("SourceDir = %q, want %q", batch.SourceDir, cfg.Paths.SourceDir)
	}
	if batch.CreatedAt.IsZero() {
		t.Error("CreatedAt not recorded")
	}
	if batch.FinishedAt != nil {
		t.Error("FinishedAt set on a fresh batch")
	}
}

func TestFinishTransitionsAndStoresCounters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	batch := testsupport.NewBatch(t, store, cfg.Paths.SourceDir)
	if err := store.Finish(ctx, batch.ID, 3, 1, 0); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	got, err := store.Batch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if got.Status != journal.StatusExecuted {
		t.Fatalf("Status = %q, want executed", got.Status)
	}
	if got.Moved != 3 || got.Skipped != 1 || got.Failed != 0 {
		t.Errorf("counters = %d/%d/%d, want 3/1/0", got.Moved, got.Skipped, got.Failed)
	}
	if got.FinishedAt == nil {
		t.Error("FinishedAt not recorded")
	}

	// Finishing twice must fail: the batch already left executing.
	if err := store.Finish(ctx, batch.ID, 3, 1, 0); !errors.Is(err, ops.ErrRejected) {
		t.Fatalf("second Finish error = %v, want ErrRejected", err)
	}
}

func TestMovesForUndoReversesOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	batch := testsupport.NewBatch(t, store, cfg.Paths.SourceDir)
	recorded := [][2]string{
		{"/src/a.pdf", "/src/Documents/a.pdf"},
		{"/src/b.jpg", "/src/Images/b.jpg"},
		{"/src/c.pdf", "/src/Documents/c.pdf"},
	}
	for _, pair := range recorded {
		if err := store.RecordMove(ctx, batch.ID, pair[0], pair[1]); err != nil {
			t.Fatalf("RecordMove: %v", err)
		}
	}

	moves, err := store.MovesForUndo(ctx, batch.ID)
	if err != nil {
		t.Fatalf("MovesForUndo: %v", err)
	}
	if len(moves) != len(recorded) {
		t.Fatalf("len(moves) = %d, want %d", len(moves), len(recorded))
	}
	for i, move := range moves {
		want := recorded[len(recorded)-1-i]
		if move.Source != want[0] || move.Destination != want[1] {
			t.Errorf("moves[%d] = %s -> %s, want %s -> %s", i, move.Source, move.Destination, want[0], want[1])
		}
	}
}

func TestMarkReversedLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	batch := testsupport.NewBatch(t, store, cfg.Paths.SourceDir)

	// Reversing an executing batch is rejected.
	if err := store.MarkReversed(ctx, batch.ID); !errors.Is(err, ops.ErrRejected) {
		t.Fatalf("MarkReversed(executing) error = %v, want ErrRejected", err)
	}

	if err := store.Finish(ctx, batch.ID, 1, 0, 0); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if err := store.MarkReversed(ctx, batch.ID); err != nil {
		t.Fatalf("MarkReversed: %v", err)
	}

	got, err := store.Batch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if got.Status != journal.StatusReversed {
		t.Fatalf("Status = %q, want reversed", got.Status)
	}

	// Second reversal is rejected; unknown batches surface not-found.
	if err := store.MarkReversed(ctx, batch.ID); !errors.Is(err, ops.ErrRejected) {
		t.Fatalf("second MarkReversed error = %v, want ErrRejected", err)
	}
	if err := store.MarkReversed(ctx, "no-such-batch"); !errors.Is(err, ops.ErrNotFound) {
		t.Fatalf("MarkReversed(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestLatestExecutedSkipsReversed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	if batch, err := store.LatestExecuted(ctx); err != nil || batch != nil {
		t.Fatalf("LatestExecuted(empty) = %v, %v; want nil, nil", batch, err)
	}

	first := testsupport.NewBatch(t, store, cfg.Paths.SourceDir)
	if err := store.Finish(ctx, first.ID, 1, 0, 0); err != nil {
		t.Fatalf("Finish first: %v", err)
	}
	second := testsupport.NewBatch(t, store, cfg.Paths.SourceDir)
	if err := store.Finish(ctx, second.ID, 2, 0, 0); err != nil {
		t.Fatalf("Finish second: %v", err)
	}

	latest, err := store.LatestExecuted(ctx)
	if err != nil {
		t.Fatalf("LatestExecuted: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Fatalf("LatestExecuted = %+v, want batch %s", latest, second.ID)
	}

	if err := store.MarkReversed(ctx, second.ID); err != nil {
		t.Fatalf("MarkReversed: %v", err)
	}
	latest, err = store.LatestExecuted(ctx)
	if err != nil {
		t.Fatalf("LatestExecuted after reversal: %v", err)
	}
	if latest == nil || latest.ID != first.ID {
		t.Fatalf("LatestExecuted after reversal = %+v, want batch %s", latest, first.ID)
	}
}

func TestBatchesNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		batch := testsupport.NewBatch(t, store, cfg.Paths.SourceDir)
		ids = append(ids, batch.ID)
	}

	batches, err := store.Batches(ctx, 0)
	if err != nil {
		t.Fatalf("Batches: %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("len(batches) = %d, want 3", len(batches))
	}
	if batches[len(batches)-1].ID != ids[0] {
		t.Errorf("oldest batch last: got %s, want %s", batches[len(batches)-1].ID, ids[0])
	}

	limited, err := store.Batches(ctx, 1)
	if err != nil {
		t.Fatalf("Batches(1): %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("len(limited) = %d, want 1", len(limited))
	}
}

func TestBatchUnknownReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)

	batch, err := store.Batch(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if batch != nil {
		t.Fatalf("Batch = %+v, want nil", batch)
	}
}
