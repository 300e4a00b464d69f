// Copyright © 2025 The srcscope authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/srcscope/srcscope/explore"
)

var (
	explorePatterns []string
	exploreRecurse  bool
)

// exploreCmd represents the explore command
var exploreCmd = &cobra.Command{
	Use:   "explore [flags] [path]",
	Short: "Query an analyzed source tree interactively",
	Long: `Analyze the sources under a directory and start an interactive shell
over the result.  Line editing and in-session command history are supported
via readline.  Use Ctrl-D or exit to leave.

Example session:
  srcscope> types
  Car
  Engine
  srcscope> deps Car
  Car inherits Engine
  Car aggregates Engine
  srcscope> show Car
  class Car [5, 12], cplx 3
    function drive [8, 9], cplx 1
  srcscope> exit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		p, err := runPipeline(cmd.Context(), path, explorePatterns, exploreRecurse, "off")
		if err != nil {
			return err
		}
		p.reportDegradations()
		shell := explore.NewShell(p.result, p.graph)
		return shell.Run(filepath.Base(os.Args[0]) + "> ")
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().StringSliceVar(&explorePatterns, "pattern", nil,
		"file patterns to analyze (repeatable; ** globs supported)")
	exploreCmd.Flags().BoolVar(&exploreRecurse, "recurse", true, "descend into subdirectories")
}
