package hierarchy

import "math"

// Node is a raw input node augmented with layout geometry.
//
// X and Y locate the top-left corner of the node's footprint. Width and Height
// are the footprint itself: intrinsic size plus twice the gap plus the
// pre-offset on each axis. Width and Height are fixed once the node is built;
// layout algorithms only move X and Y.
type Node struct {
	Data Data
	ID   string

	X, Y          float64
	Width, Height float64
	HGap, VGap    float64
	PreH, PreV    float64

	Depth    int
	Children []*Node
	Parent   *Node
	Side     Side
}

// Box is the result of [Node.BoundingBox].
//
// Width and Height are the maximum right and bottom edges, not extents.
// Subtract Left and Top to get the size of the box.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// Right is the maximum right edge. It is the same value as Width.
func (b Box) Right() float64 { return b.Width }

// Bottom is the maximum bottom edge. It is the same value as Height.
func (b Box) Bottom() float64 { return b.Height }

// IsRoot reports whether n sits at depth zero. The halves produced by
// [Separate] are roots too.
func (n *Node) IsRoot() bool { return n.Depth == 0 }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// AddGap reserves hgap and vgap on every side of the node and grows the
// footprint to match. Calls compose additively.
func (n *Node) AddGap(hgap, vgap float64) {
	n.HGap += hgap
	n.VGap += vgap
	n.Width += 2 * hgap
	n.Height += 2 * vgap
}

// EachNode visits n and its descendants in pre-order.
func (n *Node) EachNode(fn func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// DFTraverse is EachNode.
func (n *Node) DFTraverse(fn func(*Node)) { n.EachNode(fn) }

// BFTraverse visits n and its descendants in level order.
func (n *Node) BFTraverse(fn func(*Node)) {
	queue := []*Node{n}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		fn(cur)
		queue = append(queue, cur.Children...)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.EachNode(func(*Node) { count++ })
	return count
}

// BoundingBox scans the subtree and returns its extremes. See [Box] for the
// meaning of Width and Height.
func (n *Node) BoundingBox() Box {
	bb := Box{Left: math.MaxFloat64, Top: math.MaxFloat64}
	n.EachNode(func(c *Node) {
		bb.Left = math.Min(bb.Left, c.X)
		bb.Top = math.Min(bb.Top, c.Y)
		bb.Width = math.Max(bb.Width, c.X+c.Width)
		bb.Height = math.Max(bb.Height, c.Y+c.Height)
	})
	return bb
}

// Translate moves every node of the subtree by (tx, ty) and also adds each
// node's own PreH/PreV.
//
// Pre-offsets are applied on every call, so translating the same subtree
// twice for one logical move shifts pre-offset nodes twice. All layout code
// moves subtrees through this method only.
func (n *Node) Translate(tx, ty float64) {
	n.EachNode(func(c *Node) {
		c.X += tx + c.PreH
		c.Y += ty + c.PreV
	})
}

// RightToLeft mirrors the subtree horizontally about its bounding box's left
// edge, then shifts it right by the box's right edge.
func (n *Node) RightToLeft() {
	bb := n.BoundingBox()
	n.EachNode(func(c *Node) {
		c.X = c.X - (c.X-bb.Left)*2 - c.Width
	})
	n.Translate(bb.Width, 0)
}

// BottomToTop is the vertical counterpart of RightToLeft.
func (n *Node) BottomToTop() {
	bb := n.BoundingBox()
	n.EachNode(func(c *Node) {
		c.Y = c.Y - (c.Y-bb.Top)*2 - c.Height
	})
	n.Translate(0, bb.Height)
}

// resetPosition zeroes X and Y across the subtree.
func (n *Node) resetPosition() {
	n.EachNode(func(c *Node) {
		c.X, c.Y = 0, 0
	})
}
