package executor

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
	"sortd/internal/planner"
)

// Mode selects between previewing a plan and applying it.
type Mode int

const (
	// DryRun reports the plan without moving anything or writing the journal.
	DryRun Mode = iota
	// Apply performs the moves and records them.
	Apply
)

// Failure describes one move that could not be completed.
type Failure struct {
	Name    string
	Message string
}

// Result summarizes one executor run.
type Result struct {
	BatchID  string
	Moved    int
	Skipped  int
	Failures []Failure
	DryRun   bool
}

// Executor applies plans against a journal.
type Executor struct {
	cfg    *config.Config
	store  *journal.Store
	logger *slog.Logger
}

// New constructs an executor. The store may be nil only for dry runs.
func New(cfg *config.Config, store *journal.Store, logger *slog.Logger) *Executor {
	return &Executor{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "executor"),
	}
}

// Execute runs the plan in the requested mode. Journal errors abort the
// batch; individual move failures are recorded and execution continues.
func (e *Executor) Execute(ctx context.Context, plan *planner.Plan, mode Mode) (*Result, error) {
	if plan == nil {
		return nil, errors.New("plan is nil")
	}

	if mode == DryRun {
		return e.dryRun(plan), nil
	}
	return e.apply(ctx, plan)
}

func (e *Executor) dryRun(plan *planner.Plan) *Result {
	result := &Result{
		Moved:   len(plan.Moves),
		Skipped: len(plan.Skips),
		DryRun:  true,
	}
	for _, move := range plan.Moves {
		e.logger.Debug("would move",
			logging.String("file", move.File.Name),
			logging.String("folder", move.Folder))
	}
	e.logger.Info("dry run complete",
		logging.String("source_dir", plan.SourceDir),
		logging.Int("moves", result.Moved),
		logging.Int("skips", result.Skipped))
	return result
}

func (e *Executor) apply(ctx context.Context, plan *planner.Plan) (*Result, error) {
	if e.store == nil {
		return nil, errors.New("apply requires a journal store")
	}

	release, err := journal.AcquireLock(e.cfg)
	if err != nil {
		return nil, err
	}
	defer release()

	e.preflightSpace(plan)

	batch, err := e.store.Begin(ctx, plan.SourceDir)
	if err != nil {
		return nil, ops.Wrap(ops.ErrTransient, "executor", "begin", "record batch", err)
	}
	ctx = ops.WithOperation(ops.WithBatchID(ctx, batch.ID), "apply")
	logger := logging.WithContext(ctx, e.logger)

	result := &Result{BatchID: batch.ID, Skipped: len(plan.Skips)}

	for _, move := range plan.Moves {
		if err := ctx.Err(); err != nil {
			return result, e.finish(ctx, result, err)
		}

		// The plan may be stale: a file can appear at the destination
		// between planning and applying. Skip rather than overwrite.
		if _, statErr := os.Lstat(move.Destination); statErr == nil {
			result.Skipped++
			logger.Warn("destination appeared since planning, skipping",
				logging.String("file", move.File.Name),
				logging.String("destination", move.Destination))
			continue
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			result.Failures = append(result.Failures, Failure{Name: move.File.Name, Message: statErr.Error()})
			continue
		}

		if err := os.MkdirAll(filepath.Dir(move.Destination), 0o755); err != nil {
			result.Failures = append(result.Failures, Failure{
				Name:    move.File.Name,
				Message: fmt.Sprintf("create folder: %v", err),
			})
			logger.Error("create destination folder failed",
				logging.String("file", move.File.Name),
				logging.Error(err))
			continue
		}

		if err := fileutil.MoveFile(move.File.Path, move.Destination); err != nil {
			result.Failures = append(result.Failures, Failure{Name: move.File.Name, Message: err.Error()})
			logger.Error("move failed",
				logging.String("file", move.File.Name),
				logging.Error(err))
			continue
		}

		if err := e.store.RecordMove(ctx, batch.ID, move.File.Path, move.Destination); err != nil {
			// The file moved but the journal does not know. Stop here;
			// continuing would widen the gap between disk and journal.
			return result, e.finish(ctx, result,
				ops.Wrap(ops.ErrTransient, "executor", "journal", fmt.Sprintf("record move for %s", move.File.Name), err))
		}

		result.Moved++
		logger.Debug("moved",
			logging.String("file", move.File.Name),
			logging.String("folder", move.Folder))
	}

	if err := e.store.Finish(ctx, batch.ID, result.Moved, result.Skipped, len(result.Failures)); err != nil {
		return result, err
	}

	logger.Info("batch applied",
		logging.String("source_dir", plan.SourceDir),
		logging.Int("moved", result.Moved),
		logging.Int("skipped", result.Skipped),
		logging.Int("failed", len(result.Failures)))
	return result, nil
}

// finish closes out a batch that is being abandoned mid-run so the journal
// still reflects the moves that did complete.
func (e *Executor) finish(ctx context.Context, result *Result, cause error) error {
	if err := e.store.Finish(ctx, result.BatchID, result.Moved, result.Skipped, len(result.Failures)); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// preflightSpace warns when the source filesystem looks too full to absorb
// cross-device copies. Same-filesystem renames need no extra space, so this
// never blocks the run.
func (e *Executor) preflightSpace(plan *planner.Plan) {
	free, err := fileutil.FreeSpace(plan.SourceDir)
	if err != nil {
		e.logger.Debug("free space check unavailable", logging.Error(err))
		return
	}
	if needed := plan.TotalBytes(); needed > 0 && free < uint64(needed) {
		e.logger.Warn("free space below planned move volume",
			logging.Int64("planned_bytes", needed),
			logging.Int64("free_bytes", int64(free)))
	}
}
