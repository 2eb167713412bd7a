// Package indented positions trees as indented outlines, the way file
// browsers and tables of contents draw them.
package indented

import "github.com/matzehuels/treelayout/pkg/hierarchy"

// DefaultIndent is the per-depth offset used when Config.Indent is nil.
const DefaultIndent = 20.0

// Align selects how consecutive rows are spaced.
type Align string

const (
	// AlignTop advances by the previous node's height.
	AlignTop Align = ""
	// AlignCenter advances by the mean of both heights.
	AlignCenter Align = "center"
)

// Config controls the outline.
type Config struct {
	// Indent returns the per-depth offset of a node. Nil means DefaultIndent.
	Indent func(*hierarchy.Node) float64

	// InlineFirstChild places every first child on its parent's row
	// instead of below it.
	InlineFirstChild bool

	Align Align
}

// Layout assigns X and Y to every node under root in a single pre-order pass.
//
// X grows by Indent(node) times Depth. Each row starts below the previous row
// and never above the end of its parent's row.
func Layout(root *hierarchy.Node, cfg Config) {
	indent := cfg.Indent
	if indent == nil {
		indent = func(*hierarchy.Node) float64 { return DefaultIndent }
	}
	spacing := func(prev, n *hierarchy.Node) float64 {
		if cfg.Align == AlignCenter {
			return (prev.Height + n.Height) / 2
		}
		return prev.Height
	}

	type item struct {
		n      *hierarchy.Node
		parent *hierarchy.Node
		index  int
	}

	var prev, prevParent *hierarchy.Node
	stack := []item{{n: root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := it.n

		n.X += indent(n) * float64(n.Depth)
		switch {
		case cfg.InlineFirstChild && it.parent != nil && it.index == 0:
			n.Y = prev.Y
		case prev == nil:
			n.Y = 0
		default:
			n.Y = prev.Y + spacing(prev, n)
			if prevParent != nil && it.parent != nil && prevParent != it.parent {
				n.Y = max(n.Y, prevParent.Y+spacing(prevParent, n))
			}
		}
		prev, prevParent = n, it.parent

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{n: n.Children[i], parent: n, index: i})
		}
	}
}
