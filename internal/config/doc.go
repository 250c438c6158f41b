// Package config loads, normalizes, and validates sortd configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and compiles the [[rules]] blocks into the
// classifier's rule set. The Config type centralizes every knob the CLI
// needs: the organized directory, the journal location, organize options,
// and log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
