package config

import (
	"fmt"

	"sortd/internal/rules"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateRules(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if c.Organize.AgeBucket != "none" {
		if _, ok := rules.ParseBucket(c.Organize.AgeBucket); !ok {
			return fmt.Errorf("organize.age_bucket must be one of none, week, month, year (got %q)", c.Organize.AgeBucket)
		}
	}
	return nil
}

func (c *Config) validateRules() error {
	for i, rc := range c.Rules {
		if rc.AgeBucket != "" {
			if bucket, ok := rules.ParseBucket(rc.AgeBucket); !ok || bucket == rules.BucketNone {
				return fmt.Errorf("rules[%d].age_bucket must be one of week, month, year (got %q)", i, rc.AgeBucket)
			}
		}
	}

	// Rule-level invariants (folder shape, extension lists) live in the
	// rules package; compiling here surfaces them as config-load errors.
	if _, err := c.CompileRules(); err != nil {
		return err
	}
	return nil
}
