// Package cli implements the treelayout command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Option
// defaults come from the TOML config file (see package config); flags set on
// the command line override them.
//
// # Commands
//
//   - layout: position a tree and write layout.json
//   - render: position a tree and write artifacts (svg, png, pdf, json, dot, txt)
//   - visualize: write artifacts from an existing layout.json
//   - show: print an outline and a coordinate table in the terminal
//   - explore: interactively cycle algorithms and directions
//   - serve: start the HTTP API
//   - completion: generate shell completion scripts
//
// Commands that take a tree read it from a JSON file, or from stdin when the
// path is "-".
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute builds the root command and runs it with args.
// This is the main entry point for the CLI application.
func Execute(ctx context.Context, args []string) error {
	var verbose bool

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
