// Package ops classifies operation failures and carries per-operation
// identifiers through context.
//
// Errors produced by the planner, executor, and undo engine are tagged with
// one of the sentinel markers below via Wrap, so callers can decide between
// "fix your configuration", "nothing to do", and "try again later" with
// errors.Is instead of string matching. Per-file problems (collisions, move
// failures, undo skips) are result data, not errors, and never pass through
// this package.
package ops
