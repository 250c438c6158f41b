package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"sortd/internal/rules"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	SourceDir  string `toml:"source_dir"`
	JournalDir string `toml:"journal_dir"`
}

// Organize contains options that shape plan building and classification.
type Organize struct {
	// AgeBucket switches classification to time-derived folders:
	// none, week, month, or year.
	AgeBucket string `toml:"age_bucket"`
	// UnclassifiedFolder, when set, receives files no rule matches.
	// When empty, unmatched files are skipped and reported.
	UnclassifiedFolder string `toml:"unclassified_folder"`
	// ExcludeFiles are exact names never considered for organization,
	// merged with the built-in junk-file list.
	ExcludeFiles []string `toml:"exclude_files"`
}

// RuleConfig is one [[rules]] block. A rule routes by extensions into Folder,
// or derives the folder from the modification time when AgeBucket is set.
type RuleConfig struct {
	Name       string   `toml:"name"`
	Folder     string   `toml:"folder"`
	Extensions []string `toml:"extensions"`
	AgeBucket  string   `toml:"age_bucket"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sortd.
type Config struct {
	Paths    Paths        `toml:"paths"`
	Organize Organize     `toml:"organize"`
	Rules    []RuleConfig `toml:"rules"`
	Logging  Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sortd/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sortd.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the journal directory.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.JournalDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.JournalDir, err)
	}
	return nil
}

// JournalPath returns the location of the sqlite journal database.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.JournalDir, "journal.db")
}

// LogPath returns the location of the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.JournalDir, "sortd.log")
}

// CompileRules builds the classifier rule set from the configured [[rules]]
// blocks (or the stock defaults when none are configured), honoring the
// organize-level age bucket and unclassified fallback.
func (c *Config) CompileRules() (*rules.Set, error) {
	list := make([]rules.Rule, 0, len(c.Rules)+1)

	if bucket, _ := rules.ParseBucket(c.Organize.AgeBucket); bucket != rules.BucketNone {
		list = append(list, rules.Rule{Name: "age bucket", Bucket: bucket})
	}

	if len(c.Rules) == 0 {
		list = append(list, rules.Default()...)
	} else {
		for _, rc := range c.Rules {
			bucket, _ := rules.ParseBucket(rc.AgeBucket)
			list = append(list, rules.Rule{
				Name:       rc.Name,
				Folder:     rc.Folder,
				Extensions: rc.Extensions,
				Bucket:     bucket,
			})
		}
	}

	return rules.Compile(list, c.Organize.UnclassifiedFolder)
}

// ExcludedNames returns the merged set of file names the planner never
// considers: built-in junk names plus configured extras.
func (c *Config) ExcludedNames() map[string]struct{} {
	excluded := make(map[string]struct{}, len(defaultExcludedNames)+len(c.Organize.ExcludeFiles))
	for _, name := range defaultExcludedNames {
		excluded[name] = struct{}{}
	}
	for _, name := range c.Organize.ExcludeFiles {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		excluded[trimmed] = struct{}{}
	}
	return excluded
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
