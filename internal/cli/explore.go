package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// exploreCache bounds the layouts the explorer keeps while cycling.
const exploreCache = 64

// exploreCommand opens the interactive layout preview.
func (c *CLI) exploreCommand() *cobra.Command {
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "explore [tree.json]",
		Short: "Preview layouts interactively in the terminal",
		Long: `Preview layouts interactively in the terminal.

Cycle through algorithms and their directions, toggle radial mode and the
fixed root, and watch the text preview update. Flags set the starting point.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := c.readTree(args[0])
			if err != nil {
				return fmt.Errorf("load tree %s: %w", args[0], err)
			}
			runner := c.newRunner(exploreCache)
			defer runner.Close()

			// Layout logs would scribble over the alternate screen.
			opts := c.options(cmd.Flags(), flags)
			opts.Logger = newLogger(io.Discard, LogInfo)

			m := NewExploreModel(cmd.Context(), runner, tree, opts)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.addLayout(cmd.Flags())
	return cmd
}
