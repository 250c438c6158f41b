package planner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"sortd/internal/ops"
	"sortd/internal/rules"
)

// SkipReason explains why a file was left in place.
type SkipReason string

const (
	// ReasonCollision marks a file whose destination is already taken, by an
	// existing file or by an earlier move in the same plan.
	ReasonCollision SkipReason = "collision"
	// ReasonUnclassified marks a file no rule matched.
	ReasonUnclassified SkipReason = "unclassified"
	// ReasonExcluded marks a file on the exclusion list.
	ReasonExcluded SkipReason = "excluded"
)

// FileRecord captures the directory-entry metadata classification needs.
type FileRecord struct {
	Path    string
	Name    string
	Ext     string
	ModTime time.Time
	Size    int64
}

// Move maps one file to its destination. Folder is the single path segment
// under the source directory the file lands in.
type Move struct {
	File        FileRecord
	Folder      string
	Destination string
}

// Skip records a file the plan leaves untouched.
type Skip struct {
	Name   string
	Reason SkipReason
	Detail string
}

// Plan is the complete outcome of scanning one directory. Moves and Skips
// partition the eligible files; building a plan mutates nothing.
type Plan struct {
	SourceDir string
	Moves     []Move
	Skips     []Skip
}

// TotalBytes sums the sizes of all planned moves.
func (p *Plan) TotalBytes() int64 {
	var total int64
	for _, move := range p.Moves {
		total += move.File.Size
	}
	return total
}

// Options adjusts how a plan is built.
type Options struct {
	// ExcludedNames are exact file names never considered for moves.
	ExcludedNames map[string]struct{}
}

// Build scans sourceDir once and classifies every regular file through the
// rule set. Files are visited in lexical name order, so collision outcomes
// are deterministic: the first file mapped to a destination wins and later
// claimants are skipped.
func Build(sourceDir string, set *rules.Set, opts Options) (*Plan, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		marker := ops.ErrTransient
		if errors.Is(err, fs.ErrNotExist) {
			marker = ops.ErrNotFound
		}
		return nil, ops.Wrap(marker, "planner", "scan", fmt.Sprintf("read directory %q", sourceDir), err)
	}

	plan := &Plan{SourceDir: sourceDir}
	claimed := make(map[string]struct{})

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()

		if _, ok := opts.ExcludedNames[name]; ok {
			plan.Skips = append(plan.Skips, Skip{Name: name, Reason: ReasonExcluded})
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Entry vanished between listing and stat; nothing to move.
			if os.IsNotExist(err) {
				continue
			}
			return nil, ops.Wrap(ops.ErrTransient, "planner", "stat", fmt.Sprintf("stat %q", name), err)
		}

		record := FileRecord{
			Path:    filepath.Join(sourceDir, name),
			Name:    name,
			Ext:     rules.NormalizeExtension(filepath.Ext(name)),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		}

		folder, ok := set.Classify(record.Name, record.ModTime)
		if !ok {
			plan.Skips = append(plan.Skips, Skip{Name: name, Reason: ReasonUnclassified})
			continue
		}

		destination := filepath.Join(sourceDir, folder, name)
		if _, taken := claimed[destination]; taken {
			plan.Skips = append(plan.Skips, Skip{
				Name:   name,
				Reason: ReasonCollision,
				Detail: fmt.Sprintf("destination %s already planned", filepath.Join(folder, name)),
			})
			continue
		}
		if occupied, err := destinationExists(destination); err != nil {
			return nil, err
		} else if occupied {
			plan.Skips = append(plan.Skips, Skip{
				Name:   name,
				Reason: ReasonCollision,
				Detail: fmt.Sprintf("destination %s already exists", filepath.Join(folder, name)),
			})
			continue
		}

		claimed[destination] = struct{}{}
		plan.Moves = append(plan.Moves, Move{File: record, Folder: folder, Destination: destination})
	}

	return plan, nil
}

func destinationExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, ops.Wrap(ops.ErrTransient, "planner", "collision-check", fmt.Sprintf("stat %q", path), err)
}
