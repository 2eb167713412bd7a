// Package dendrogram positions trees as dendrograms: every leaf sits on the
// deepest rank and internal nodes are pulled as close to their leaves as
// their shallowest child allows.
package dendrogram

import "github.com/matzehuels/treelayout/pkg/hierarchy"

// Default spacing.
const (
	DefaultNodeSep    = 20.0
	DefaultRankSep    = 200.0
	DefaultSubTreeSep = 10.0
)

// Config holds the spacing between ranks and leaves. A zero field always
// takes its default, so an explicit zero separation cannot be requested;
// use a small positive value to pack leaves or subtrees tightly.
type Config struct {
	// NodeSep is the gap between consecutive leaves.
	NodeSep float64
	// RankSep is the distance between drawing depths.
	RankSep float64
	// SubTreeSep is added between consecutive leaves with different parents.
	SubTreeSep float64
}

func (c Config) withDefaults() Config {
	if c.NodeSep == 0 {
		c.NodeSep = DefaultNodeSep
	}
	if c.RankSep == 0 {
		c.RankSep = DefaultRankSep
	}
	if c.SubTreeSep == 0 {
		c.SubTreeSep = DefaultSubTreeSep
	}
	return c
}

type wrapped struct {
	node   *hierarchy.Node
	parent *wrapped
	x, y   float64
	depth  int
	c      []*wrapped
}

// Layout assigns X and Y to every node under root.
//
// The layered coordinate is drawing depth times RankSep. Leaves are packed in
// pre-order by Height plus NodeSep (and SubTreeSep across parents); an
// internal node sits midway between its first and last child. Widths are
// expected to be zero already.
func Layout(root *hierarchy.Node, horizontal bool, cfg Config) {
	cfg = cfg.withDefaults()

	order, maxDepth := wrap(root)

	// Drawing depth, children before parents.
	for i := len(order) - 1; i >= 0; i-- {
		t := order[i]
		if len(t.c) == 0 {
			t.depth = maxDepth
			continue
		}
		least := t.c[0].depth
		for _, c := range t.c[1:] {
			least = min(least, c.depth)
		}
		t.depth = least - 1
	}

	var prev *wrapped
	for _, t := range order {
		t.x = float64(t.depth) * cfg.RankSep
		if len(t.c) > 0 {
			continue
		}
		if prev != nil {
			t.y = prev.y + prev.node.Height + cfg.NodeSep
			if t.parent != prev.parent {
				t.y += cfg.SubTreeSep
			}
		}
		prev = t
	}
	for i := len(order) - 1; i >= 0; i-- {
		t := order[i]
		if len(t.c) > 0 {
			t.y = (t.c[0].y + t.c[len(t.c)-1].y) / 2
		}
	}

	for _, t := range order {
		if horizontal {
			t.node.X, t.node.Y = t.x, t.y
		} else {
			t.node.X, t.node.Y = t.y, t.x
		}
	}
}

// wrap returns the wrappers in pre-order and the deepest Depth in the tree.
func wrap(root *hierarchy.Node) ([]*wrapped, int) {
	var (
		order    []*wrapped
		maxDepth int
	)
	stack := []*wrapped{{node: root}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, t)
		maxDepth = max(maxDepth, t.node.Depth)

		t.c = make([]*wrapped, len(t.node.Children))
		for i, child := range t.node.Children {
			t.c[i] = &wrapped{node: child, parent: t}
		}
		for i := len(t.c) - 1; i >= 0; i-- {
			stack = append(stack, t.c[i])
		}
	}
	return order, maxDepth
}
