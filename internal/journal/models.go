package journal

import (
	"fmt"
	"time"
)

// Status tracks a batch through its lifecycle.
type Status string

const (
	// StatusExecuting marks a batch whose moves are still being applied.
	StatusExecuting Status = "executing"
	// StatusExecuted marks a finished batch that can be undone.
	StatusExecuted Status = "executed"
	// StatusReversed marks a batch whose moves have been undone.
	StatusReversed Status = "reversed"
)

// ParseStatus converts a stored string into a known Status.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusExecuting, StatusExecuted, StatusReversed:
		return Status(value), nil
	default:
		return "", fmt.Errorf("unknown batch status %q", value)
	}
}

// Batch is one organize run recorded in the journal.
type Batch struct {
	ID         string
	SourceDir  string
	Status     Status
	CreatedAt  time.Time
	FinishedAt *time.Time
	Moved      int
	Skipped    int
	Failed     int
}

// Move is one completed file move belonging to a batch. Source and
// Destination are absolute paths captured at apply time.
type Move struct {
	ID          int64
	BatchID     string
	Source      string
	Destination string
	MovedAt     time.Time
}
