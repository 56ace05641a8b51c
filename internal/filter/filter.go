package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bgricker/actionsmith/internal/model"
)

// Pattern represents a compiled filter condition supporting substring and
// /regex/ matching.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Compile transforms raw pattern strings into Pattern values. Patterns
// wrapped in slashes compile as regular expressions; everything else is a
// case-insensitive substring match.
func Compile(patterns []string) ([]Pattern, error) {
	result := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) >= 2 {
			expr := raw[1 : len(raw)-1]
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile regexp %q: %w", raw, err)
			}
			result = append(result, Pattern{raw: raw, regex: re})
			continue
		}
		result = append(result, Pattern{raw: raw, lower: strings.ToLower(raw)})
	}
	return result, nil
}

// Match reports whether the pattern matches the supplied string.
func (p Pattern) Match(s string) bool {
	if s == "" {
		return false
	}
	if p.regex != nil {
		return p.regex.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), p.lower)
}

// Paths keeps the paths selected by only-patterns and not rejected by
// skip-patterns, preserving input order. Empty pattern lists select
// everything.
func Paths(paths []string, only, skip []Pattern) []string {
	if len(paths) == 0 {
		return nil
	}
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		if len(only) > 0 && !matchesAny(path, only) {
			continue
		}
		if len(skip) > 0 && matchesAny(path, skip) {
			continue
		}
		result = append(result, path)
	}
	return result
}

// JobIDs keeps the workflow job ids matching any of the patterns, by id or
// display name. Empty pattern lists select everything.
func JobIDs(wf model.Workflow, patterns []Pattern) []string {
	ids := wf.JobIDs()
	if len(patterns) == 0 {
		return ids
	}
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		job := wf.Jobs[id]
		if matchesAny(id, patterns) || matchesAny(job.Name, patterns) {
			result = append(result, id)
		}
	}
	return result
}

func matchesAny(s string, patterns []Pattern) bool {
	for _, pattern := range patterns {
		if pattern.Match(s) {
			return true
		}
	}
	return false
}
