package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	errs "github.com/input-output-hk/catalyst-forge-libs/aws/s3put/errors"
)

// Scanner expands file selections against a filesystem.
type Scanner struct {
	fsys           fs.Filesystem
	patternMatcher *PatternMatcher
}

// New creates a scanner backed by the provided filesystem.
func New(fsys fs.Filesystem) *Scanner {
	return &Scanner{
		fsys:           fsys,
		patternMatcher: NewPatternMatcher(),
	}
}

// Scan walks dir and returns the relative paths of all regular files that
// pass the include/exclude patterns, in the order the walk produces them.
// An empty include list selects every file. Any failure to read the base
// directory is reported as a scan error so callers can skip the selection.
func (s *Scanner) Scan(
	ctx context.Context,
	dir string,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	var files []string

	err := s.fsys.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories (we only want files)
		if info.IsDir() {
			return nil
		}

		// Check if context is cancelled
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Get relative path from scan root
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}

		// Apply include/exclude patterns
		if !s.patternMatcher.ShouldIncludeFile(relPath, includePatterns, excludePatterns) {
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %w", errs.ErrScanFailed, dir, err)
	}

	return files, nil
}
