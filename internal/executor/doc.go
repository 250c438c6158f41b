// Package executor applies an organize plan to the filesystem.
//
// A dry run walks the plan and reports what would happen without taking the
// run lock, writing the journal, or moving anything. An apply run records a
// batch, performs each move, and journals it before the next move starts, so
// a crash mid-batch leaves a journal that still describes every completed
// move. One file failing does not abort the batch; the failure is reported
// and the remaining moves continue.
package executor
