package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config file")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Organize.AgeBucket != "none" {
		t.Errorf("Organize.AgeBucket = %q, want none", cfg.Organize.AgeBucket)
	}
	if !filepath.IsAbs(cfg.Paths.SourceDir) {
		t.Errorf("SourceDir not expanded: %q", cfg.Paths.SourceDir)
	}
	if !filepath.IsAbs(cfg.Paths.JournalDir) {
		t.Errorf("JournalDir not expanded: %q", cfg.Paths.JournalDir)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
source_dir = "` + dir + `/inbox"
journal_dir = "` + dir + `/journal"

[organize]
age_bucket = "Month"
unclassified_folder = "Unsorted"
exclude_files = ["keep.txt"]

[logging]
format = "JSON"
level = "Debug"

[[rules]]
name = "docs"
folder = "Documents"
extensions = ["PDF", ".txt"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Organize.AgeBucket != "month" {
		t.Errorf("AgeBucket = %q, want month", cfg.Organize.AgeBucket)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging not normalized: %+v", cfg.Logging)
	}
	if cfg.Paths.SourceDir != filepath.Join(dir, "inbox") {
		t.Errorf("SourceDir = %q", cfg.Paths.SourceDir)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Folder != "Documents" {
		t.Errorf("unexpected rules: %+v", cfg.Rules)
	}
}

func TestLoadRejectsBadAgeBucket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[organize]\nage_bucket = \"decade\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid age_bucket")
	}
}

func TestLoadRejectsBadRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[[rules]]
name = "broken"
folder = "a/b"
extensions = ["pdf"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for rule folder containing a separator")
	}
}

func TestCompileRulesAgeBucketTakesPriority(t *testing.T) {
	cfg := Default()
	cfg.Organize.AgeBucket = "year"
	set, err := cfg.CompileRules()
	if err != nil {
		t.Fatalf("CompileRules() error = %v", err)
	}
	mod := time.Date(2023, time.June, 2, 10, 0, 0, 0, time.UTC)
	folder, ok := set.Classify("report.pdf", mod)
	if !ok || folder != "2023" {
		t.Fatalf("Classify() = %q, %v; want 2023, true", folder, ok)
	}
}

func TestCompileRulesUnclassifiedFallback(t *testing.T) {
	cfg := Default()
	cfg.Organize.UnclassifiedFolder = "Unsorted"
	set, err := cfg.CompileRules()
	if err != nil {
		t.Fatalf("CompileRules() error = %v", err)
	}
	folder, ok := set.Classify("mystery.xyzzy", time.Now())
	if !ok || folder != "Unsorted" {
		t.Fatalf("Classify() = %q, %v; want Unsorted, true", folder, ok)
	}
}

func TestExcludedNamesMergesConfigured(t *testing.T) {
	cfg := Default()
	cfg.Organize.ExcludeFiles = []string{"keep.me", "  ", "keep.me"}
	excluded := cfg.ExcludedNames()
	for _, name := range []string{".DS_Store", "Thumbs.db", "keep.me"} {
		if _, ok := excluded[name]; !ok {
			t.Errorf("expected %q in excluded set", name)
		}
	}
	if _, ok := excluded[""]; ok {
		t.Error("blank entry should have been dropped")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/Downloads")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != filepath.Join(home, "Downloads") {
		t.Errorf("ExpandPath() = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[organize]") {
		t.Error("sample config missing [organize] section")
	}

	// The sample must round-trip through Load.
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("Load(sample) error = %v", err)
	}
}
