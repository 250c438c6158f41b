// Package planner scans a directory and computes the moves an organize run
// would perform, without touching the filesystem.
//
// A plan is built from a single directory listing: regular files only, no
// recursion. Each file is classified through the rule set and either mapped
// to a destination or recorded as a skip with a reason. Destinations are
// checked against both the files already on disk and earlier moves in the
// same plan, so a plan never contains two moves to one path.
package planner
