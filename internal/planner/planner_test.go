package planner_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sortd/internal/planner"
	"sortd/internal/rules"
	"sortd/internal/testsupport"
)

func compileDefault(t *testing.T) *rules.Set {
	t.Helper()
	set, err := rules.Compile(rules.Default(), "")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return set
}

func TestBuildClassifiesByExtension(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.pdf"), "a")
	testsupport.WriteFile(t, filepath.Join(dir, "b.jpg"), "b")
	testsupport.WriteFile(t, filepath.Join(dir, "c.pdf"), "c")

	plan, err := planner.Build(dir, compileDefault(t), planner.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(plan.Skips) != 0 {
		t.Fatalf("Skips = %+v, want none", plan.Skips)
	}
	want := map[string]string{
		"a.pdf": "Documents",
		"b.jpg": "Images",
		"c.pdf": "Documents",
	}
	if len(plan.Moves) != len(want) {
		t.Fatalf("len(Moves) = %d, want %d", len(plan.Moves), len(want))
	}
	for _, move := range plan.Moves {
		folder, ok := want[move.File.Name]
		if !ok {
			t.Errorf("unexpected move for %s", move.File.Name)
			continue
		}
		if move.Folder != folder {
			t.Errorf("%s -> %s, want %s", move.File.Name, move.Folder, folder)
		}
		if move.Destination != filepath.Join(dir, folder, move.File.Name) {
			t.Errorf("destination = %s", move.Destination)
		}
	}
}

func TestBuildSkipsUnclassified(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "mystery.xyzzy"), "x")
	testsupport.WriteFile(t, filepath.Join(dir, "README"), "no extension")

	plan, err := planner.Build(dir, compileDefault(t), planner.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Moves) != 0 {
		t.Fatalf("Moves = %+v, want none", plan.Moves)
	}
	if len(plan.Skips) != 2 {
		t.Fatalf("len(Skips) = %d, want 2", len(plan.Skips))
	}
	for _, skip := range plan.Skips {
		if skip.Reason != planner.ReasonUnclassified {
			t.Errorf("%s skipped with %q, want unclassified", skip.Name, skip.Reason)
		}
	}
}

func TestBuildRoutesUnclassifiedToFallback(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "mystery.xyzzy"), "x")

	set, err := rules.Compile(rules.Default(), "Unsorted")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	plan, err := planner.Build(dir, set, planner.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Moves) != 1 || plan.Moves[0].Folder != "Unsorted" {
		t.Fatalf("Moves = %+v, want one move into Unsorted", plan.Moves)
	}
}

func TestBuildSkipsExistingDestination(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.pdf"), "new")
	testsupport.WriteFile(t, filepath.Join(dir, "Documents", "a.pdf"), "already there")

	plan, err := planner.Build(dir, compileDefault(t), planner.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Moves) != 0 {
		t.Fatalf("Moves = %+v, want none", plan.Moves)
	}
	if len(plan.Skips) != 1 || plan.Skips[0].Reason != planner.ReasonCollision {
		t.Fatalf("Skips = %+v, want one collision", plan.Skips)
	}
}

func TestBuildCollisionLeavesOtherMovesIntact(t *testing.T) {
	dir := t.TempDir()
	set, err := rules.Compile([]rules.Rule{
		{Name: "all docs", Folder: "Stuff", Extensions: []string{"pdf", "txt"}},
	}, "")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	testsupport.WriteFile(t, filepath.Join(dir, "a.pdf"), "a")
	testsupport.WriteFile(t, filepath.Join(dir, "b.txt"), "b")
	testsupport.WriteFile(t, filepath.Join(dir, "Stuff", "b.txt"), "occupied")

	plan, err := planner.Build(dir, set, planner.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Moves) != 1 || plan.Moves[0].File.Name != "a.pdf" {
		t.Fatalf("Moves = %+v, want only a.pdf", plan.Moves)
	}
	if len(plan.Skips) != 1 || plan.Skips[0].Name != "b.txt" || plan.Skips[0].Reason != planner.ReasonCollision {
		t.Fatalf("Skips = %+v, want b.txt collision", plan.Skips)
	}
}

func TestBuildIgnoresDirectoriesAndExcluded(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.pdf"), "a")
	testsupport.WriteFile(t, filepath.Join(dir, ".DS_Store"), "junk")
	testsupport.WriteFile(t, filepath.Join(dir, "nested", "b.pdf"), "never scanned")
	if err := os.Mkdir(filepath.Join(dir, "emptydir"), 0o755); err != nil {
		t.Fatal(err)
	}

	plan, err := planner.Build(dir, compileDefault(t), planner.Options{
		ExcludedNames: map[string]struct{}{".DS_Store": {}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Moves) != 1 || plan.Moves[0].File.Name != "a.pdf" {
		t.Fatalf("Moves = %+v, want only a.pdf", plan.Moves)
	}
	if len(plan.Skips) != 1 || plan.Skips[0].Reason != planner.ReasonExcluded {
		t.Fatalf("Skips = %+v, want one excluded", plan.Skips)
	}
}

func TestBuildAgeBucketUsesModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.pdf")
	testsupport.WriteFile(t, path, "old")
	testsupport.Touch(t, path, time.Date(2023, time.June, 2, 12, 0, 0, 0, time.Local))

	set, err := rules.Compile([]rules.Rule{{Name: "by month", Bucket: rules.BucketMonth}}, "")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	plan, err := planner.Build(dir, set, planner.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Moves) != 1 || plan.Moves[0].Folder != "2023-06" {
		t.Fatalf("Moves = %+v, want one move into 2023-06", plan.Moves)
	}
}

func TestBuildDoesNotTouchFilesystem(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.pdf"), "a")

	if _, err := planner.Build(dir, compileDefault(t), planner.Options{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.pdf" {
		t.Fatalf("directory changed: %v", entries)
	}
}

func TestBuildMissingDirectory(t *testing.T) {
	if _, err := planner.Build(filepath.Join(t.TempDir(), "absent"), compileDefault(t), planner.Options{}); err == nil {
		t.Fatal("expected error for missing source directory")
	}
}

func TestTotalBytes(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.pdf"), "12345")
	testsupport.WriteFile(t, filepath.Join(dir, "b.pdf"), "123")

	plan, err := planner.Build(dir, compileDefault(t), planner.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := plan.TotalBytes(); got != 8 {
		t.Fatalf("TotalBytes() = %d, want 8", got)
	}
}
