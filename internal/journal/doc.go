// Package journal persists organize batches and their moves in SQLite.
//
// The Store records every applied move before the next one begins, so a
// batch can always be reversed from the journal alone. Batches walk a
// one-way lifecycle: executing while moves are applied, executed once the
// batch finishes, and reversed after a successful undo. A reversed batch
// never becomes executed again.
//
// The database is an append-only history, not a cache: rows are updated to
// advance batch status but never deleted. Schema changes bump the version
// in schema.go; users delete the database to adopt the new schema.
package journal
