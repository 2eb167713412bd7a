// Package mindmap positions one side of a mind map.
//
// Each node starts where its parent ends on the layered axis. On the packing
// axis every subtree gets an envelope as tall as the larger of the node and
// its children, and siblings are stacked envelope after envelope. A final
// pass centers parents over their children, or children within a taller
// parent.
//
// The orientation pipeline lays out the two sides separately and mirrors one
// of them.
package mindmap

import "github.com/matzehuels/treelayout/pkg/hierarchy"

// Config controls subtree spacing.
type Config struct {
	// GetSubTreeSep returns the margin reserved on both packing sides of a
	// node's envelope. Nil means no margin.
	GetSubTreeSep func(hierarchy.Data) float64
}

// axis maps the layered and packing axes onto X and Y.
type axis bool

func (horizontal axis) lay(n *hierarchy.Node) *float64 {
	if horizontal {
		return &n.X
	}
	return &n.Y
}

func (horizontal axis) layExt(n *hierarchy.Node) float64 {
	if horizontal {
		return n.Width
	}
	return n.Height
}

func (horizontal axis) pack(n *hierarchy.Node) *float64 {
	if horizontal {
		return &n.Y
	}
	return &n.X
}

func (horizontal axis) packExt(n *hierarchy.Node) float64 {
	if horizontal {
		return n.Height
	}
	return n.Width
}

func (horizontal axis) shift(n *hierarchy.Node, d float64) {
	if horizontal {
		n.Translate(0, d)
	} else {
		n.Translate(d, 0)
	}
}

// Layout assigns X and Y to every node under root. When horizontal the
// layered axis is X, otherwise Y.
func Layout(root *hierarchy.Node, horizontal bool, cfg Config) {
	ax := axis(horizontal)
	sep := func(n *hierarchy.Node) float64 {
		if cfg.GetSubTreeSep == nil {
			return 0
		}
		return cfg.GetSubTreeSep(n.Data)
	}

	// Level order, each node placed at its parent's far edge. The root's
	// parent is a virtual node at 0 with no extent.
	type queued struct {
		n      *hierarchy.Node
		origin float64
	}
	queue := []queued{{root, 0}}
	order := make([]*hierarchy.Node, 0, 64)
	for i := 0; i < len(queue); i++ {
		q := queue[i]
		*ax.lay(q.n) = q.origin
		order = append(order, q.n)
		edge := q.origin + ax.layExt(q.n)
		for _, c := range q.n.Children {
			queue = append(queue, queued{c, edge})
		}
	}

	// Envelopes, children before parents.
	total := make(map[*hierarchy.Node]float64, len(order))
	childSum := make(map[*hierarchy.Node]float64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		var sum float64
		for _, c := range n.Children {
			sum += total[c]
		}
		childSum[n] = sum
		total[n] = max(ax.packExt(n), sum) + 2*sep(n)
	}

	// Stack the envelopes top-down.
	start := make(map[*hierarchy.Node]float64, len(order))
	start[root] = 0
	*ax.pack(root) = total[root]/2 - ax.packExt(root)/2
	for _, n := range order {
		switch len(n.Children) {
		case 0:
			continue
		case 1:
			c := n.Children[0]
			start[c] = start[n] + (total[n]-total[c])/2
			*ax.pack(c) = start[n] + total[n]/2 - ax.packExt(c)/2
			continue
		}
		next := start[n] + sep(n)
		for _, c := range n.Children {
			start[c] = next
			*ax.pack(c) = next + total[c]/2 - ax.packExt(c)/2
			next += total[c]
		}
	}

	// Center parents and children against each other, bottom-up.
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if len(n.Children) == 0 {
			continue
		}
		first, last := n.Children[0], n.Children[len(n.Children)-1]
		firstPack := *ax.pack(first)
		span := *ax.pack(last) + ax.packExt(last) - firstPack
		ext := ax.packExt(n)

		switch {
		case span > ext:
			*ax.pack(n) = firstPack + span/2 - ext/2
		case len(n.Children) > 1 || ext > childSum[n]:
			d := *ax.pack(n) + (ext-span)/2 - firstPack
			for _, c := range n.Children {
				ax.shift(c, d)
			}
		}
	}
}
