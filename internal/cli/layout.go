package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/graph"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Compute node positions for a tree",
		Long: `Compute node positions for a tree.

The layout command reads a JSON tree ({"id": ..., "children": [...]}) and
positions it with the chosen algorithm. The output is a layout.json file
(same format as 'render -f json') that can be rendered with 'visualize'.

Use "-" to read the tree from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd.Flags(), flags)
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.addLayout(cmd.Flags())

	return cmd
}

// runLayout loads the tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	tree, err := c.readTree(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	prog := newProgress(c.Logger)
	runner := c.newRunner(0)
	defer runner.Close()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Positioned %d nodes", len(l.Nodes)))

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := errors.ValidateOutputPath(outputPath); err != nil {
		return err
	}

	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input ("tree" for stdin).
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinArg {
			return "tree"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
