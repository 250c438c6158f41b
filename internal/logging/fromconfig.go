package logging

import (
	"log/slog"

	"sortd/internal/config"
)

// NewFromConfig creates a logger from sortd configuration. Output goes to
// stderr and the log file beside the journal so CLI table output on stdout
// stays clean.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	opts := Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr", cfg.LogPath()},
	}
	return New(opts)
}
