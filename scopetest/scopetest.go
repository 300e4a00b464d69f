// Copyright © 2025 The srcscope authors

// Package scopetest provides helpers for tests that need an analyzed tree
// without touching the filesystem.
package scopetest

import (
	"strings"
	"testing"

	"github.com/srcscope/srcscope/analysis"
)

// File is one in-memory source file.  Analysis order follows the usual
// rule regardless of the order given here: headers before definitions.
type File struct {
	Path string
	Text string
}

// Analyze runs the analyzer over in-memory sources, logging progress to
// the test and failing it on setup errors.  Degradations do not fail the
// test; callers inspect the result.
func Analyze(t testing.TB, files ...File) *analysis.Result {
	t.Helper()
	a, err := analysis.NewAnalyzer(&analysis.Config{Log: NewLogger(t)})
	if err != nil {
		t.Fatalf("analyzer: %v", err)
	}
	paths := make([]string, len(files))
	byPath := make(map[string]File, len(files))
	for i, f := range files {
		paths[i] = f.Path
		byPath[f.Path] = f
	}
	for _, path := range analysis.OrderFiles(paths) {
		if err := a.AnalyzeFile(path, strings.NewReader(byPath[path].Text)); err != nil {
			t.Fatalf("analyze %s: %v", path, err)
		}
	}
	return a.Result()
}
