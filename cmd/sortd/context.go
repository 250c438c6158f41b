package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sortd/internal/config"
	"sortd/internal/journal"
	"sortd/internal/logging"
	"sortd/internal/planner"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the shared logger once. Log output goes to stderr and
// the journal-side log file, keeping stdout free for tables and trees.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) withJournal(fn func(*config.Config, *journal.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

// buildPlan compiles the configured rules and scans the source directory.
// A non-empty dir argument overrides the configured source directory.
func (c *commandContext) buildPlan(dir string) (*config.Config, *planner.Plan, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	sourceDir := cfg.Paths.SourceDir
	if strings.TrimSpace(dir) != "" {
		sourceDir, err = config.ExpandPath(dir)
		if err != nil {
			return nil, nil, err
		}
	}
	set, err := cfg.CompileRules()
	if err != nil {
		return nil, nil, err
	}
	plan, err := planner.Build(sourceDir, set, planner.Options{
		ExcludedNames: cfg.ExcludedNames(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, plan, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
