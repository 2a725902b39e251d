package scanner

import (
	"path"
	"path/filepath"
	"strings"
)

// PatternMatcher handles glob pattern matching for file filtering.
type PatternMatcher struct{}

// NewPatternMatcher creates a new pattern matcher.
func NewPatternMatcher() *PatternMatcher {
	return &PatternMatcher{}
}

// ShouldIncludeFile determines if a file should be included based on patterns.
// Exclude patterns take precedence over includes. When include patterns are
// present the file must match at least one; an empty include list matches
// everything.
func (pm *PatternMatcher) ShouldIncludeFile(
	relPath string,
	includePatterns []string,
	excludePatterns []string,
) bool {
	// Normalize path separators to forward slashes for consistent pattern matching
	relPath = filepath.ToSlash(relPath)

	// Check exclude patterns first (excludes take precedence)
	for _, pattern := range excludePatterns {
		if pm.matchesPattern(relPath, pattern) {
			return false
		}
	}

	// If there are include patterns, file must match at least one
	if len(includePatterns) > 0 {
		included := false
		for _, pattern := range includePatterns {
			if pm.matchesPattern(relPath, pattern) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	return true
}

// matchesPattern checks if a path matches a glob pattern.
// It supports *, ?, character classes, and the recursive ** wildcard.
// A single * never crosses a path separator; ** matches any number of
// path segments, including none.
func (pm *PatternMatcher) matchesPattern(relPath, pattern string) bool {
	// A pattern ending with / selects the whole subtree under that directory.
	if strings.HasSuffix(pattern, "/") {
		prefix := strings.TrimSuffix(pattern, "/")
		return relPath == prefix || strings.HasPrefix(relPath, prefix+"/")
	}

	if strings.Contains(pattern, "**") {
		return matchSegments(strings.Split(pattern, "/"), strings.Split(relPath, "/"))
	}

	// Simple pattern matching using path.Match
	match, err := path.Match(pattern, relPath)
	if err != nil {
		// If pattern is invalid, don't match
		return false
	}

	return match
}

// matchSegments matches pattern segments against path segments, where a
// segment of exactly "**" may consume zero or more path segments.
func matchSegments(patSegs, pathSegs []string) bool {
	if len(patSegs) == 0 {
		return len(pathSegs) == 0
	}

	if patSegs[0] == "**" {
		if len(patSegs) == 1 {
			return true
		}
		for i := 0; i <= len(pathSegs); i++ {
			if matchSegments(patSegs[1:], pathSegs[i:]) {
				return true
			}
		}
		return false
	}

	if len(pathSegs) == 0 {
		return false
	}

	match, err := path.Match(patSegs[0], pathSegs[0])
	if err != nil || !match {
		return false
	}
	return matchSegments(patSegs[1:], pathSegs[1:])
}
