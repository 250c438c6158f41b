// Package rules maps file attributes to destination folder names.
//
// A Set is an ordered list of rules compiled once at load time; the first
// matching rule wins. Extension rules route by file extension, age-bucket
// rules derive the folder from the file's modification time (for example
// "2024-03" for a monthly bucket). Classification is pure: no I/O, no side
// effects, and malformed rules are rejected when the set is compiled rather
// than per file.
package rules
