// Package undo restores the files of an executed batch to their recorded
// source paths.
//
// Moves are walked in reverse application order. A journaled destination
// that no longer exists is skipped: the file was renamed or deleted since
// the batch ran and cannot be restored. An occupied source path is a
// failure, never an overwrite. The batch is marked reversed once every move
// restored cleanly; a run with failures leaves the batch executed so it can
// be retried after the obstruction is cleared.
package undo
