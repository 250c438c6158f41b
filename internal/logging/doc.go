// Package logging builds slog loggers for the CLI and engine.
//
// Two handlers are provided: a console handler that prints aligned
// "timestamp LEVEL component: message key=value" lines, and a JSON handler
// with ts/level/msg keys for machine consumption. Attr helpers keep call
// sites terse, and WithContext augments a logger with batch_id and operation
// fields carried in context by the ops package.
package logging
