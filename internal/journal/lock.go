package journal

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"sortd/internal/config"
	"sortd/internal/ops"
)

// AcquireLock takes the exclusive run lock that guards apply and undo. Two
// concurrent runs against one journal would race on batch state, so the
// second caller is rejected rather than queued. The returned function
// releases the lock.
func AcquireLock(cfg *config.Config) (func(), error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.JournalDir, "sortd.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ops.Wrap(ops.ErrRejected, "journal", "lock", "another sortd run is in progress", nil)
	}
	return func() { _ = lock.Unlock() }, nil
}
