package rules

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"sortd/internal/ops"
)

// Bucket selects how an age-bucket rule derives folder names from a file's
// modification time.
type Bucket string

const (
	BucketNone  Bucket = ""
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
	BucketYear  Bucket = "year"
)

// ParseBucket converts a string into a known Bucket.
func ParseBucket(value string) (Bucket, bool) {
	normalized := Bucket(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case BucketNone, BucketWeek, BucketMonth, BucketYear:
		return normalized, true
	default:
		return BucketNone, false
	}
}

// Rule routes files to a target folder. Exactly one of Extensions or Bucket
// must be set: extension rules name their Folder explicitly, age-bucket rules
// derive it from the modification time.
type Rule struct {
	Name       string
	Folder     string
	Extensions []string
	Bucket     Bucket
}

// Set is a compiled, ordered rule list. First match wins.
type Set struct {
	rules    []compiledRule
	fallback string
}

type compiledRule struct {
	folder     string
	extensions map[string]struct{}
	bucket     Bucket
}

// Compile validates rules and builds a Set. The optional fallback folder
// receives files no rule matches; when empty, unmatched files are reported
// as unclassified by the caller.
func Compile(list []Rule, fallback string) (*Set, error) {
	if fallback != "" {
		if err := validFolder(fallback); err != nil {
			return nil, ops.Wrap(ops.ErrConfiguration, "rules", "compile", fmt.Sprintf("fallback folder %q: %v", fallback, err), nil)
		}
	}

	compiled := make([]compiledRule, 0, len(list))
	for i, rule := range list {
		label := strings.TrimSpace(rule.Name)
		if label == "" {
			label = fmt.Sprintf("rule %d", i+1)
		}

		hasExtensions := len(rule.Extensions) > 0
		hasBucket := rule.Bucket != BucketNone
		if hasExtensions == hasBucket {
			return nil, ops.Wrap(ops.ErrConfiguration, "rules", "compile", fmt.Sprintf("%s must set exactly one of extensions or age_bucket", label), nil)
		}

		if hasBucket {
			if _, ok := ParseBucket(string(rule.Bucket)); !ok {
				return nil, ops.Wrap(ops.ErrConfiguration, "rules", "compile", fmt.Sprintf("%s: unknown age_bucket %q", label, rule.Bucket), nil)
			}
			compiled = append(compiled, compiledRule{bucket: rule.Bucket})
			continue
		}

		if err := validFolder(rule.Folder); err != nil {
			return nil, ops.Wrap(ops.ErrConfiguration, "rules", "compile", fmt.Sprintf("%s: folder %q: %v", label, rule.Folder, err), nil)
		}
		extensions := make(map[string]struct{}, len(rule.Extensions))
		for _, ext := range rule.Extensions {
			normalized := NormalizeExtension(ext)
			if normalized == "" {
				return nil, ops.Wrap(ops.ErrConfiguration, "rules", "compile", fmt.Sprintf("%s: empty extension entry", label), nil)
			}
			extensions[normalized] = struct{}{}
		}
		compiled = append(compiled, compiledRule{folder: rule.Folder, extensions: extensions})
	}

	return &Set{rules: compiled, fallback: fallback}, nil
}

// Classify returns the target folder for a file name and modification time.
// The boolean is false when no rule matches and no fallback is configured.
func (s *Set) Classify(name string, modTime time.Time) (string, bool) {
	ext := NormalizeExtension(filepath.Ext(name))
	for _, rule := range s.rules {
		if rule.bucket != BucketNone {
			return bucketFolder(rule.bucket, modTime), true
		}
		if ext == "" {
			continue
		}
		if _, ok := rule.extensions[ext]; ok {
			return rule.folder, true
		}
	}
	if s.fallback != "" {
		return s.fallback, true
	}
	return "", false
}

// Len reports the number of compiled rules.
func (s *Set) Len() int {
	return len(s.rules)
}

// NormalizeExtension lowercases an extension and strips the leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func bucketFolder(bucket Bucket, modTime time.Time) string {
	switch bucket {
	case BucketWeek:
		year, week := modTime.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case BucketYear:
		return modTime.Format("2006")
	default:
		return modTime.Format("2006-01")
	}
}

// validFolder enforces the target-folder invariant: a single, non-empty path
// segment with no separators or traversal.
func validFolder(folder string) error {
	if strings.TrimSpace(folder) == "" {
		return fmt.Errorf("must not be empty")
	}
	if folder != strings.TrimSpace(folder) {
		return fmt.Errorf("must not have surrounding whitespace")
	}
	if strings.ContainsAny(folder, `/\`) {
		return fmt.Errorf("must be a single path segment")
	}
	if folder == "." || folder == ".." {
		return fmt.Errorf("must not be a relative path element")
	}
	return nil
}
