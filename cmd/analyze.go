// Copyright © 2025 The srcscope authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/srcscope/srcscope/report"
)

var (
	analyzePatterns []string
	analyzeRecurse  bool
	analyzeTrace    string
	analyzeFormat   string
	showMetrics     bool
	showAST         bool
	showSLOC        bool
	showPublic      bool
	showSummary     bool
	maxSize         int
	maxComplexity   int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] [path]",
	Short: "Analyze a C++ or C# source tree",
	Long: `Analyze the sources under a directory and report on their structure.

Files matching the patterns are collected, ordered headers first, and fed
through the scope analyzer.  The default report is the metric summary;
select additional sections with --metrics, --ast, --sloc and --public, or
export everything with --format json|yaml.

A file that fails to parse degrades the analysis instead of aborting it:
srcscope keeps the scopes it recognized and prints a warning for the rest.

Examples:
  srcscope analyze ./src                        # summary of ./src
  srcscope analyze --metrics --ast ./src        # tables plus scope tree
  srcscope analyze --pattern '*.cs' ./src       # C# sources only
  srcscope analyze --format json ./src > out.json
  srcscope analyze --max-complexity 5 ./src     # stricter limit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		p, err := runPipeline(cmd.Context(), path, analyzePatterns, analyzeRecurse, analyzeTrace)
		if err != nil {
			return err
		}

		if analyzeFormat != "table" {
			doc := report.NewDocument(p.result, p.graph)
			return report.Export(os.Stdout, doc, analyzeFormat)
		}

		w := os.Stdout
		if showMetrics {
			report.Metrics(w, p.result)
			fmt.Fprintln(w)
		}
		if showAST {
			report.Tree(w, p.result.Root)
			fmt.Fprintln(w)
		}
		if showPublic {
			report.PublicData(w, p.result)
			fmt.Fprintln(w)
		}
		if showSLOC {
			report.SLOC(w, p.result)
			fmt.Fprintln(w)
		}
		if showSummary || !(showMetrics || showAST || showPublic || showSLOC) {
			report.Summary(w, p.result, limits())
		}
		p.reportDegradations()
		return nil
	},
}

func limits() report.Limits {
	l := report.Limits{MaxSize: maxSize, MaxComplexity: maxComplexity}
	if l.MaxSize == 0 {
		l.MaxSize = viper.GetInt("max-size")
	}
	if l.MaxComplexity == 0 {
		l.MaxComplexity = viper.GetInt("max-complexity")
	}
	if l.MaxSize == 0 {
		l.MaxSize = report.DefaultLimits.MaxSize
	}
	if l.MaxComplexity == 0 {
		l.MaxComplexity = report.DefaultLimits.MaxComplexity
	}
	return l
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringSliceVar(&analyzePatterns, "pattern", nil,
		"file patterns to analyze (repeatable; ** globs supported)")
	analyzeCmd.Flags().BoolVar(&analyzeRecurse, "recurse", true, "descend into subdirectories")
	analyzeCmd.Flags().StringVar(&analyzeTrace, "trace", "off",
		`trace analysis spans: "otel", "opencensus", or "off"`)
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", `output format: "table", "json", or "yaml"`)
	analyzeCmd.Flags().BoolVar(&showMetrics, "metrics", false, "print the per-scope metrics table")
	analyzeCmd.Flags().BoolVar(&showAST, "ast", false, "print the scope tree")
	analyzeCmd.Flags().BoolVar(&showSLOC, "sloc", false, "print per-file line counts")
	analyzeCmd.Flags().BoolVar(&showPublic, "public", false, "print public data declarations")
	analyzeCmd.Flags().BoolVar(&showSummary, "summary", false, "print the run summary (default when no section selected)")
	analyzeCmd.Flags().IntVar(&maxSize, "max-size", 0, "scope size limit for the summary")
	analyzeCmd.Flags().IntVar(&maxComplexity, "max-complexity", 0, "scope complexity limit for the summary")
}
