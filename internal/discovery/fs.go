package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoFiles indicates that no candidate configuration files were found.
var ErrNoFiles = errors.New("no configuration files discovered")

// conventionGlobs are the repository locations searched when no explicit
// paths are given, relative to the root.
var conventionGlobs = []string{
	".github/workflows/*.yml",
	".github/workflows/*.yaml",
	".github/FUNDING.yml",
	".github/FUNDING.yaml",
	".github/dependabot.yml",
	".github/dependabot.yaml",
	".github/actions/*/action.yml",
	".github/actions/*/action.yaml",
	"action.yml",
	"action.yaml",
}

// Files returns candidate configuration file paths. Explicit paths are
// validated and returned in the order given; otherwise the conventional
// GitHub locations are globbed and results sorted lexicographically.
func Files(root string, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return resolveExplicit(root, explicit)
	}

	matches := make(map[string]struct{})
	for _, glob := range conventionGlobs {
		pattern := filepath.Join(root, filepath.FromSlash(glob))
		found, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range found {
			matches[m] = struct{}{}
		}
	}

	if len(matches) == 0 {
		return nil, ErrNoFiles
	}

	paths := make([]string, 0, len(matches))
	for p := range matches {
		paths = append(paths, mustRelOrClean(root, p))
	}
	sort.Strings(paths)
	return paths, nil
}

func resolveExplicit(root string, explicit []string) ([]string, error) {
	seen := make(map[string]struct{})
	resolved := make([]string, 0, len(explicit))
	for _, input := range explicit {
		cleaned := input
		if !filepath.IsAbs(cleaned) {
			cleaned = filepath.Join(root, cleaned)
		}
		info, err := os.Stat(cleaned)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("file %q not found", input)
			}
			return nil, fmt.Errorf("stat %q: %w", input, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%q is a directory", input)
		}
		rel := mustRelOrClean(root, cleaned)
		if _, ok := seen[rel]; ok {
			continue
		}
		seen[rel] = struct{}{}
		resolved = append(resolved, rel)
	}
	if len(resolved) == 0 {
		return nil, ErrNoFiles
	}
	return resolved, nil
}

func mustRelOrClean(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Clean(path)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Clean(path)
	}
	return rel
}
