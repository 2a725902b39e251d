package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPatternMatcher_ShouldIncludeFile tests include and exclude semantics.
func TestPatternMatcher_ShouldIncludeFile(t *testing.T) {
	tests := []struct {
		name     string
		relPath  string
		includes []string
		excludes []string
		want     bool
	}{
		{
			name:    "no patterns admits everything",
			relPath: "deep/nested/file.bin",
			want:    true,
		},
		{
			name:     "recursive wildcard matches nested files",
			relPath:  "css/app.css",
			includes: []string{"**/*"},
			want:     true,
		},
		{
			name:     "recursive wildcard matches root files",
			relPath:  "index.html",
			includes: []string{"**/*"},
			want:     true,
		},
		{
			name:     "recursive extension glob matches at any depth",
			relPath:  "js/vendor/app.min.js",
			includes: []string{"**/*.js"},
			want:     true,
		},
		{
			name:     "recursive extension glob rejects other extensions",
			relPath:  "css/app.css",
			includes: []string{"**/*.js"},
			want:     false,
		},
		{
			name:     "single star does not cross directories",
			relPath:  "css/app.css",
			includes: []string{"*.css"},
			want:     false,
		},
		{
			name:     "single star matches within one segment",
			relPath:  "app.css",
			includes: []string{"*.css"},
			want:     true,
		},
		{
			name:     "question mark matches one character",
			relPath:  "v1.txt",
			includes: []string{"v?.txt"},
			want:     true,
		},
		{
			name:     "exclude wins over include",
			relPath:  "app.min.js",
			includes: []string{"**/*.js"},
			excludes: []string{"**/*.min.js"},
			want:     false,
		},
		{
			name:     "directory pattern excludes the whole subtree",
			relPath:  "vendor/lib/core.js",
			excludes: []string{"vendor/"},
			want:     false,
		},
		{
			name:     "directory pattern leaves siblings alone",
			relPath:  "src/core.js",
			excludes: []string{"vendor/"},
			want:     true,
		},
		{
			name:     "middle recursive segment spans directories",
			relPath:  "a/b/c/d.txt",
			includes: []string{"a/**/d.txt"},
			want:     true,
		},
		{
			name:     "recursive segment may span zero directories",
			relPath:  "a/d.txt",
			includes: []string{"a/**/d.txt"},
			want:     true,
		},
		{
			name:     "matching is case sensitive",
			relPath:  "APP.CSS",
			includes: []string{"*.css"},
			want:     false,
		},
		{
			name:     "invalid pattern matches nothing",
			relPath:  "a.txt",
			includes: []string{"["},
			want:     false,
		},
		{
			name:     "multiple includes need only one match",
			relPath:  "img/logo.png",
			includes: []string{"**/*.css", "**/*.png"},
			want:     true,
		},
	}

	pm := NewPatternMatcher()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pm.ShouldIncludeFile(tt.relPath, tt.includes, tt.excludes)
			assert.Equal(t, tt.want, got)
		})
	}
}
