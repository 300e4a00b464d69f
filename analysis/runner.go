// Copyright © 2025 The srcscope authors

package analysis

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/srcscope/srcscope/analysis/profiler"
	"github.com/srcscope/srcscope/grammar"
)

// Opener reads the content of one source file.  The discover package
// provides an implementation over the afs virtual filesystem; the default
// reads the local disk.
type Opener func(ctx context.Context, path string) (io.ReadCloser, error)

func osOpen(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Run analyzes files into one shared tree.  Files are processed headers
// first, then C++ definition files, then C# files, so that every qualified
// definition finds the type node that declares it.  A file that cannot be
// opened is logged and skipped; the run continues.
func Run(ctx context.Context, cfg *Config, files []string, open Opener, ann profiler.Annotator) (*Result, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if open == nil {
		open = osOpen
	}
	if ann == nil {
		ann = profiler.Noop{}
	}
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return nil, err
	}
	ctx, done := ann.Start(ctx, "analysis", "")
	defer done()
	for _, path := range OrderFiles(files) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := open(ctx, path)
		if err != nil {
			fmt.Fprintf(a.log, "skip %s: %v\n", path, err)
			a.degrade(path, 0, "cannot open: "+err.Error())
			continue
		}
		_, fileDone := ann.Start(ctx, "analyze-file", path)
		err = a.AnalyzeFile(path, src)
		fileDone()
		src.Close()
		if err != nil {
			return nil, err
		}
	}
	return a.Result(), nil
}

// OrderFiles sorts source files into analysis order: C++ headers, then C++
// definition files, then C# files.  The sort is stable so discovery order
// survives within each group.
func OrderFiles(files []string) []string {
	ordered := append([]string(nil), files...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return fileRank(ordered[i]) < fileRank(ordered[j])
	})
	return ordered
}

func fileRank(path string) int {
	if grammar.HeaderFile(path) {
		return 0
	}
	if d, ok := grammar.DialectForFile(path); ok && d == grammar.CSharp {
		return 2
	}
	return 1
}
