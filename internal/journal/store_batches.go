package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sortd/internal/ops"
)

const batchColumns = "id, source_dir, status, created_at, finished_at, moved, skipped, failed"

// Begin records a new batch in the executing state and returns it.
func (s *Store) Begin(ctx context.Context, sourceDir string) (*Batch, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO batches (id, source_dir, status, created_at) VALUES (?, ?, ?, ?)`,
		id,
		sourceDir,
		StatusExecuting,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert batch: %w", err)
	}

	return s.Batch(ctx, id)
}

// RecordMove appends one completed move to a batch. Called after the file
// landed at its destination, before the next move begins.
func (s *Store) RecordMove(ctx context.Context, batchID, source, destination string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO moves (batch_id, source, destination, moved_at) VALUES (?, ?, ?, ?)`,
		batchID,
		source,
		destination,
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("record move: %w", err)
	}
	return nil
}

// Finish transitions a batch from executing to executed and stores the final
// counters. Finishing a batch in any other state fails.
func (s *Store) Finish(ctx context.Context, batchID string, moved, skipped, failed int) error {
	now := time.Now().UTC()
	res, err := s.execWithRetry(
		ctx,
		`UPDATE batches SET status = ?, finished_at = ?, moved = ?, skipped = ?, failed = ?
         WHERE id = ? AND status = ?`,
		StatusExecuted,
		nullableTime(&now),
		moved,
		skipped,
		failed,
		batchID,
		StatusExecuting,
	)
	if err != nil {
		return fmt.Errorf("finish batch: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish batch rows affected: %w", err)
	}
	if affected == 0 {
		return s.transitionFailure(ctx, batchID, "finish", StatusExecuting)
	}
	return nil
}

// MarkReversed transitions a batch from executed to reversed after its moves
// have been restored. A batch that is not executed cannot be reversed.
func (s *Store) MarkReversed(ctx context.Context, batchID string) error {
	now := time.Now().UTC()
	res, err := s.execWithRetry(
		ctx,
		`UPDATE batches SET status = ?, finished_at = ? WHERE id = ? AND status = ?`,
		StatusReversed,
		nullableTime(&now),
		batchID,
		StatusExecuted,
	)
	if err != nil {
		return fmt.Errorf("mark reversed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark reversed rows affected: %w", err)
	}
	if affected == 0 {
		return s.transitionFailure(ctx, batchID, "reverse", StatusExecuted)
	}
	return nil
}

// transitionFailure explains a guarded UPDATE that matched no rows: either
// the batch does not exist or it sits in the wrong state.
func (s *Store) transitionFailure(ctx context.Context, batchID, operation string, want Status) error {
	batch, err := s.Batch(ctx, batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return ops.Wrap(ops.ErrNotFound, "journal", operation, fmt.Sprintf("batch %s not found", batchID), nil)
	}
	return ops.Wrap(ops.ErrRejected, "journal", operation,
		fmt.Sprintf("batch %s is %s, expected %s", batchID, batch.Status, want), nil)
}

// Batch fetches one batch by identifier. Returns nil when no batch matches.
func (s *Store) Batch(ctx context.Context, id string) (*Batch, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = ?`, id)
	batch, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return batch, nil
}

// Batches lists batches newest first. A limit of zero or less returns all.
func (s *Store) Batches(ctx context.Context, limit int) ([]*Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []*Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return batches, nil
}

// LatestExecuted returns the most recent batch still eligible for undo, or
// nil when none exists.
func (s *Store) LatestExecuted(ctx context.Context) (*Batch, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+batchColumns+` FROM batches WHERE status = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		StatusExecuted,
	)
	batch, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest executed batch: %w", err)
	}
	return batch, nil
}

// MovesForUndo returns a batch's moves in reverse application order, the
// order undo restores them in.
func (s *Store) MovesForUndo(ctx context.Context, batchID string) ([]*Move, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, batch_id, source, destination, moved_at FROM moves WHERE batch_id = ? ORDER BY id DESC`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()

	var moves []*Move
	for rows.Next() {
		var (
			move    Move
			movedAt sql.NullString
		)
		if err := rows.Scan(&move.ID, &move.BatchID, &move.Source, &move.Destination, &movedAt); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		if at, err := parseTimeString(movedAt.String); err == nil {
			move.MovedAt = at
		}
		moves = append(moves, &move)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moves: %w", err)
	}
	return moves, nil
}

func scanBatch(scanner interface{ Scan(dest ...any) error }) (*Batch, error) {
	var (
		id          string
		sourceDir   string
		statusStr   string
		createdRaw  sql.NullString
		finishedRaw sql.NullString
		moved       int
		skipped     int
		failed      int
	)
	if err := scanner.Scan(&id, &sourceDir, &statusStr, &createdRaw, &finishedRaw, &moved, &skipped, &failed); err != nil {
		return nil, err
	}

	status, err := ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}

	batch := &Batch{
		ID:        id,
		SourceDir: sourceDir,
		Status:    status,
		Moved:     moved,
		Skipped:   skipped,
		Failed:    failed,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		batch.CreatedAt = created
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			batch.FinishedAt = &finished
		}
	}
	return batch, nil
}
