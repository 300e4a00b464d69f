// Copyright © 2025 The srcscope authors

package cmd

import (
	"fmt"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/srcscope/srcscope/docs"
)

var docsWidth int

// docsCmd represents the docs command
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the analysis guide",
	Long:  `Print the srcscope analysis guide: processing order, complexity, relationship kinds and degradation behavior.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(indent.String(wordwrap.String(docs.Guide, docsWidth), 2))
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().IntVar(&docsWidth, "width", 76, "wrap output at this column")
}
