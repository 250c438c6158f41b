// Package testsupport provides shared helpers for package tests: temp-dir
// backed configs, journal stores with cleanup, and file seeding.
package testsupport

import (
	"path/filepath"
	"testing"

	"sortd/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "source")
	cfg.Paths.JournalDir = filepath.Join(base, "journal")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithAgeBucket sets the organize-level age bucket on the test config.
func WithAgeBucket(bucket string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.AgeBucket = bucket
	}
}

// WithUnclassifiedFolder routes unmatched files into the named folder.
func WithUnclassifiedFolder(folder string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.UnclassifiedFolder = folder
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.SourceDir)
}
