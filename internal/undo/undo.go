package undo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"sortd/internal/config"
	"sortd/internal/fileutil"
	"sortd/internal/journal"
	"sortd/internal/logging"
	"sortd/internal/ops"
)

// Failure describes one move that could not be restored.
type Failure struct {
	Name    string
	Message string
}

// Result summarizes one undo run.
type Result struct {
	BatchID  string
	Restored int
	Skipped  int
	Failures []Failure
}

// Undoer reverses executed batches using the journal.
type Undoer struct {
	cfg    *config.Config
	store  *journal.Store
	logger *slog.Logger
}

// New constructs an undoer.
func New(cfg *config.Config, store *journal.Store, logger *slog.Logger) *Undoer {
	return &Undoer{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "undo"),
	}
}

// Latest reverses the most recent executed batch. ops.ErrNotFound when no
// batch is eligible.
func (u *Undoer) Latest(ctx context.Context) (*Result, error) {
	batch, err := u.store.LatestExecuted(ctx)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, ops.Wrap(ops.ErrNotFound, "undo", "resolve", "no executed batch to undo", nil)
	}
	return u.Undo(ctx, batch.ID)
}

// Undo reverses one batch by identifier. Only executed batches qualify: an
// unknown identifier yields ops.ErrNotFound and any other state, including a
// batch already reversed, yields ops.ErrRejected.
func (u *Undoer) Undo(ctx context.Context, batchID string) (*Result, error) {
	batch, err := u.store.Batch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, ops.Wrap(ops.ErrNotFound, "undo", "resolve", fmt.Sprintf("batch %s not found", batchID), nil)
	}
	if batch.Status != journal.StatusExecuted {
		return nil, ops.Wrap(ops.ErrRejected, "undo", "resolve",
			fmt.Sprintf("batch %s is %s, only executed batches can be undone", batchID, batch.Status), nil)
	}

	release, err := journal.AcquireLock(u.cfg)
	if err != nil {
		return nil, err
	}
	defer release()

	moves, err := u.store.MovesForUndo(ctx, batchID)
	if err != nil {
		return nil, err
	}

	ctx = ops.WithOperation(ops.WithBatchID(ctx, batchID), "undo")
	logger := logging.WithContext(ctx, u.logger)
	result := &Result{BatchID: batchID}

	for _, move := range moves {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		name := filepath.Base(move.Destination)

		if _, statErr := os.Lstat(move.Destination); statErr != nil {
			if errors.Is(statErr, fs.ErrNotExist) {
				result.Skipped++
				logger.Warn("journaled file gone, skipping",
					logging.String("file", name),
					logging.String("destination", move.Destination))
				continue
			}
			result.Failures = append(result.Failures, Failure{Name: name, Message: statErr.Error()})
			continue
		}

		if _, statErr := os.Lstat(move.Source); statErr == nil {
			result.Failures = append(result.Failures, Failure{
				Name:    name,
				Message: fmt.Sprintf("source path %s is occupied", move.Source),
			})
			logger.Error("restore blocked, source occupied",
				logging.String("file", name),
				logging.String("source", move.Source))
			continue
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			result.Failures = append(result.Failures, Failure{Name: name, Message: statErr.Error()})
			continue
		}

		if err := os.MkdirAll(filepath.Dir(move.Source), 0o755); err != nil {
			result.Failures = append(result.Failures, Failure{
				Name:    name,
				Message: fmt.Sprintf("recreate source folder: %v", err),
			})
			continue
		}

		if err := fileutil.MoveFile(move.Destination, move.Source); err != nil {
			result.Failures = append(result.Failures, Failure{Name: name, Message: err.Error()})
			logger.Error("restore failed",
				logging.String("file", name),
				logging.Error(err))
			continue
		}

		result.Restored++
		logger.Debug("restored", logging.String("file", name))
	}

	// Failures leave the batch executed so a retry can finish the job;
	// already-restored moves simply skip on the next pass.
	if len(result.Failures) == 0 {
		if err := u.store.MarkReversed(ctx, batchID); err != nil {
			return result, err
		}
	}

	logger.Info("undo complete",
		logging.Int("restored", result.Restored),
		logging.Int("skipped", result.Skipped),
		logging.Int("failed", len(result.Failures)))
	return result, nil
}
