package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// renderCommand creates the render command: tree in, artifacts out.
func (c *CLI) renderCommand() *cobra.Command {
	var output string
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Lay out a tree and render it",
		Long: `Lay out a tree and render it.

This is a shortcut for 'layout' followed by 'visualize'. With several formats
the output flag is a base path and each artifact gets its own extension.
With a single format, -o - writes the artifact to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd.Flags(), flags)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.addLayout(cmd.Flags())
	flags.addRender(cmd.Flags())

	return cmd
}

// runRender loads the tree and runs the full pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	tree, err := c.readTree(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	runner := c.newRunner(0)
	defer runner.Close()

	spinner := c.startSpinner(ctx, opts.Formats, fmt.Sprintf("Rendering %s layout...", opts.Algorithm))
	result, err := runner.Execute(ctx, tree, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     result.Stats.NodeCount,
		edges:     result.Stats.EdgeCount,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// startSpinner shows a spinner while slow formats are produced. Fast
// formats get a no-op spinner so quick runs do not flicker.
func (c *CLI) startSpinner(ctx context.Context, formats []string, msg string) *Spinner {
	s := newSpinner(ctx, c.progress, msg)
	if slices.Contains(formats, pipeline.FormatPNG) || slices.Contains(formats, pipeline.FormatPDF) {
		s.Start()
	} else {
		s.quiet = true
	}
	return s
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodes     int
	edges     int
	cacheHit  bool
}

// writeArtifacts writes each artifact in format order. A single format goes
// to output verbatim (stdout for "-"); several formats share a base path.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output == stdinArg {
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	var written []string
	for _, format := range p.formats {
		path := artifactPath(p.output, p.input, format, len(p.formats))
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, p.artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(p.nodes, p.edges, p.cacheHit)
	return nil
}

// artifactPath picks the file for one format. JSON layouts use the same
// name as the layout command so they never replace the input tree.
func artifactPath(output, input, format string, count int) string {
	if count == 1 && output != "" {
		return output
	}
	if format == pipeline.FormatJSON {
		return basePath(output, input) + ".layout.json"
	}
	return basePath(output, input) + "." + format
}
