// Copyright © 2025 The srcscope authors

// Package discover finds source files for analysis.  Patterns use glob
// syntax with ** support; a pattern without a path separator matches base
// names anywhere under the root.
package discover

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"

	"github.com/srcscope/srcscope/analysis"
)

// Set is the result of one discovery walk.
type Set struct {
	Root string

	// Files are matched file paths relative to Root, in walk order,
	// without duplicates.
	Files []string

	// ByPattern records which files each pattern matched.
	ByPattern map[string][]string

	// NumDirs counts the directories visited.
	NumDirs int
}

// Find walks root and collects files matching any of the patterns.  With
// recurse false only root itself is searched.
func Find(root string, patterns []string, recurse bool) (*Set, error) {
	set := &Set{Root: root, ByPattern: make(map[string][]string)}
	seen := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recurse && path != root {
				return filepath.SkipDir
			}
			set.NumDirs++
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, p := range patterns {
			ok, err := match(p, rel)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			set.ByPattern[p] = append(set.ByPattern[p], rel)
			if !seen[rel] {
				seen[rel] = true
				set.Files = append(set.Files, rel)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

func match(pattern, rel string) (bool, error) {
	if !strings.Contains(pattern, "/") {
		return doublestar.Match(pattern, filepath.Base(rel))
	}
	return doublestar.Match(pattern, rel)
}

// Patterns returns the patterns that matched at least one file, sorted.
func (s *Set) Patterns() []string {
	patterns := make([]string, 0, len(s.ByPattern))
	for p := range s.ByPattern {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

// Abs resolves a discovered file back to a full path under Root.
func (s *Set) Abs(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// Opener returns an analysis.Opener that resolves discovered files through
// the afs virtual filesystem, so Root may be a remote URL as well as a
// local directory.
func (s *Set) Opener() analysis.Opener {
	fs := afs.New()
	return func(ctx context.Context, path string) (io.ReadCloser, error) {
		content, err := fs.DownloadWithURL(ctx, s.Abs(path))
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(content)), nil
	}
}
