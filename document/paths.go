package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoMatch is returned when a glob pattern matches no files.
var ErrNoMatch = errors.New("no files match pattern")

// ResolveFiles expands glob patterns to regular files.
// Supports both single-level wildcards (*) and recursive wildcards (**).
//
// Examples:
//   - "articles/*.wiki" → ["articles/a.wiki", "articles/b.wiki"]
//   - "page.wiki" → ["page.wiki"]
//   - "**/*.wiki" → every .wiki file below the current directory
//
// Results are absolute, de-duplicated and sorted.
func ResolveFiles(patterns []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := resolvePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}

		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				resolved = append(resolved, p)
			}
		}
	}

	sort.Strings(resolved)
	return resolved, nil
}

// resolvePattern expands a single glob pattern to files.
func resolvePattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		absPath, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory: %s", absPath)
		}

		return []string{absPath}, nil
	}

	absPattern, err := makeAbsolutePattern(pattern)
	if err != nil {
		return nil, err
	}

	// Use doublestar for ** support
	matches, err := doublestar.FilepathGlob(absPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
	}

	return matches, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// makeAbsolutePattern converts a relative pattern to absolute.
// Preserves glob characters in the pattern.
func makeAbsolutePattern(pattern string) (string, error) {
	if filepath.IsAbs(pattern) {
		return filepath.Clean(pattern), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, pattern), nil
}
