// Copyright © 2025 The srcscope authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/srcscope/srcscope/diagnostic"
)

var (
	cfgFile   string
	colorFlag string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "srcscope",
	Short: "srcscope — scope and dependency analysis for C++ and C# sources",
	Long: `srcscope scans C++ and C# source trees and reports on their structure:
a type-scoped syntax tree with per-scope size and complexity, and a type
dependency graph (inherits, owns, aggregates, uses).

Getting started:
  srcscope analyze ./src                Analyze a source tree
  srcscope analyze --ast ./src          Print the scope tree
  srcscope analyze --public ./src       List public data declarations
  srcscope deps ./src                   Print the type dependency graph
  srcscope explore ./src                Query the analysis interactively

C++ projects are analyzed headers first so that definitions in .cpp files
attach to the classes their headers declare.  Broken files never abort a
run; srcscope keeps what it understood and reports the rest as warnings.

More information:
  Source code:     https://github.com/srcscope/srcscope`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.srcscope.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log analysis progress to stderr")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".srcscope" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".srcscope")
	}

	viper.SetEnvPrefix("srcscope")
	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}
