// Copyright © 2025 The srcscope authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/srcscope/srcscope/analysis"
	"github.com/srcscope/srcscope/analysis/profiler"
	"github.com/srcscope/srcscope/deps"
	"github.com/srcscope/srcscope/diagnostic"
	"github.com/srcscope/srcscope/discover"
	"github.com/srcscope/srcscope/project"
)

var defaultPatterns = []string{"*.h", "*.hpp", "*.hh", "*.cpp", "*.cc", "*.cxx", "*.cs"}

// pipeline runs discovery and analysis for one root path and holds
// everything the reporting commands need.
type pipeline struct {
	set     *discover.Set
	proj    *project.Project
	result  *analysis.Result
	graph   *deps.Graph
	verbose io.Writer
}

// runPipeline analyzes the tree rooted at path.  Patterns and recursion
// come from flags with config-file fallbacks.
func runPipeline(ctx context.Context, path string, patterns []string, recurse bool, traceMode string) (*pipeline, error) {
	if len(patterns) == 0 {
		patterns = viper.GetStringSlice("patterns")
	}
	if len(patterns) == 0 {
		patterns = defaultPatterns
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	set, err := discover.Find(abs, patterns, recurse)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", path, err)
	}

	p := &pipeline{set: set, verbose: io.Discard}
	if verbose {
		p.verbose = os.Stderr
	}

	p.proj, err = project.New().Detect(abs)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.verbose, "project %s (%s) at %s\n", p.proj.Name, p.proj.Type, p.proj.RootPath)

	cfg := &analysis.Config{Log: p.verbose}
	p.result, err = analysis.Run(ctx, cfg, set.Files, set.Opener(), annotator(traceMode))
	if err != nil {
		return nil, err
	}
	p.graph = deps.Analyze(p.result.Root)
	return p, nil
}

func annotator(mode string) profiler.Annotator {
	switch mode {
	case "otel":
		return profiler.NewOpenTelemetryAnnotator()
	case "opencensus":
		return profiler.NewOpenCensusAnnotator()
	default:
		return profiler.Noop{}
	}
}

// reportDegradations renders every degradation as an annotated warning on
// stderr and reports whether there were any.
func (p *pipeline) reportDegradations() bool {
	diags := diagnostic.FromResult(p.result)
	if len(diags) == 0 {
		return false
	}
	r := &diagnostic.Renderer{
		Color: colorMode(),
		SourceReader: func(file string) ([]byte, error) {
			return os.ReadFile(p.set.Abs(file))
		},
	}
	if err := r.RenderAll(os.Stderr, diags); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return true
}
