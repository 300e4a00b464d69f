// Copyright © 2025 The srcscope authors

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/srcscope/srcscope/report"
)

var (
	depsPatterns []string
	depsRecurse  bool
	depsFormat   string
)

// depsCmd represents the deps command
var depsCmd = &cobra.Command{
	Use:   "deps [flags] [path]",
	Short: "Print the type dependency graph of a source tree",
	Long: `Analyze the sources under a directory and print the relationships
between the types they define.

Relationship kinds:
  inherits     the type names another in its base list
  owns         the type holds another by value
  aggregates   the type holds another by pointer or reference
  uses         a member function mentions another type

Names that do not resolve to an analyzed type are dropped rather than
guessed at.  The trailing fingerprint is stable across runs over the same
sources, so diffing it is a cheap structural change detector.

Examples:
  srcscope deps ./src
  srcscope deps --format yaml ./src`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		p, err := runPipeline(cmd.Context(), path, depsPatterns, depsRecurse, "off")
		if err != nil {
			return err
		}
		if depsFormat != "table" {
			doc := report.NewDocument(p.result, p.graph)
			return report.Export(os.Stdout, doc, depsFormat)
		}
		report.Relations(os.Stdout, p.graph)
		p.reportDegradations()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)

	depsCmd.Flags().StringSliceVar(&depsPatterns, "pattern", nil,
		"file patterns to analyze (repeatable; ** globs supported)")
	depsCmd.Flags().BoolVar(&depsRecurse, "recurse", true, "descend into subdirectories")
	depsCmd.Flags().StringVar(&depsFormat, "format", "table", `output format: "table", "json", or "yaml"`)
}
