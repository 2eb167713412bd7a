package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/graph"
)

// showCommand prints a positioned tree in the terminal.
func (c *CLI) showCommand() *cobra.Command {
	var noOutline, noTable bool
	flags := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "show [tree.json]",
		Short: "Print a tree outline and its coordinates",
		Long: `Print a tree outline and its coordinates.

The outline shows the hierarchy with each node's position; the table lists
every node's footprint. Use "-" to read the tree from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := c.readTree(args[0])
			if err != nil {
				return fmt.Errorf("load tree %s: %w", args[0], err)
			}
			runner := c.newRunner(0)
			defer runner.Close()

			l, err := runner.ComputeLayout(cmd.Context(), tree, c.options(cmd.Flags(), flags))
			if err != nil {
				return err
			}
			writeShow(cmd.OutOrStdout(), l, !noOutline, !noTable)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noOutline, "no-outline", false, "omit the tree outline")
	cmd.Flags().BoolVar(&noTable, "no-table", false, "omit the coordinate table")
	flags.addLayout(cmd.Flags())

	return cmd
}

func writeShow(w io.Writer, l graph.Layout, outline, coords bool) {
	title := fmt.Sprintf("%s %s", l.Algorithm, l.Direction)
	if l.Radial {
		title += " radial"
	}
	fmt.Fprintln(w, StyleTitle.Render(title)+" "+StyleDim.Render(fmt.Sprintf("%s × %s",
		formatCoord(l.Bounds.Width()), formatCoord(l.Bounds.Height()))))
	if outline {
		fmt.Fprintln(w, renderOutline(l))
	}
	if coords {
		fmt.Fprintln(w, renderTable(l))
	}
}

// renderOutline draws the hierarchy with lipgloss/tree. Nodes are listed in
// layout order, which is pre-order, so children keep their sibling order.
func renderOutline(l graph.Layout) string {
	if len(l.Nodes) == 0 {
		return ""
	}
	children := make(map[string][]int, len(l.Nodes))
	for i, n := range l.Nodes[1:] {
		children[n.Parent] = append(children[n.Parent], i+1)
	}

	var build func(i int) *tree.Tree
	build = func(i int) *tree.Tree {
		t := tree.Root(outlineLabel(l.Nodes[i])).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(styleBorder)
		for _, k := range children[l.Nodes[i].ID] {
			if len(children[l.Nodes[k].ID]) == 0 {
				t.Child(outlineLabel(l.Nodes[k]))
			} else {
				t.Child(build(k))
			}
		}
		return t
	}
	return build(0).String()
}

func outlineLabel(n graph.Node) string {
	return n.DisplayLabel() + " " + StyleDim.Render(fmt.Sprintf("(%s, %s)", formatCoord(n.X), formatCoord(n.Y)))
}

// renderTable lists every node's footprint.
func renderTable(l graph.Layout) string {
	rows := make([][]string, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		side := n.Side
		if side == "" {
			side = "—"
		}
		rows = append(rows, []string{
			n.DisplayLabel(),
			strconv.Itoa(n.Depth),
			side,
			formatCoord(n.X),
			formatCoord(n.Y),
			formatCoord(n.Width),
			formatCoord(n.Height),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Node", "Depth", "Side", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col >= 3:
				return StyleNumber.Padding(0, 1).Align(lipgloss.Right)
			default:
				return StyleValue.Padding(0, 1)
			}
		}).
		String()
}

// formatCoord rounds to two decimals and drops trailing zeros.
func formatCoord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
