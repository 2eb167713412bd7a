package hierarchy

import "math"

// Side names one half of a split layout.
type Side string

const (
	SideNone  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// SideFunc decides which half a direct child of the root belongs to. index
// is the child's position among the root's children. Only [SideLeft] selects
// the left half; [SideRight], [SideNone] and any other value select the right.
type SideFunc func(child *Node, index int) Side

// Separate splits root's direct children into two new roots for bidirectional
// layouts.
//
// Both halves are fresh copies of root's geometry at depth zero. The children
// are shared with root and keep their Parent and Depth; root.Children is left
// untouched, so root still reaches every node once the halves are recombined.
// Every non-root node of a half gets its Side set.
//
// With a nil side, a child's own side hint ("left" or "right") wins.
// Unhinted children fill the right half with the first round(n/2) children and
// the left half with the rest, keeping input order.
func Separate(root *Node, side SideFunc) (left, right *Node) {
	left, right = root.isolated(), root.isolated()
	if side == nil {
		side = defaultSide(len(root.Children))
	}

	for i, child := range root.Children {
		if side(child, i) == SideLeft {
			left.Children = append(left.Children, child)
		} else {
			right.Children = append(right.Children, child)
		}
	}

	tag := func(half *Node, s Side) {
		half.EachNode(func(n *Node) {
			if n != half {
				n.Side = s
			}
		})
	}
	tag(left, SideLeft)
	tag(right, SideRight)
	return left, right
}

func defaultSide(n int) SideFunc {
	rightCount := int(math.Round(float64(n) / 2))
	return func(child *Node, index int) Side {
		switch Side(stringValue(child.Data, "side")) {
		case SideLeft:
			return SideLeft
		case SideRight:
			return SideRight
		}
		if index < rightCount {
			return SideRight
		}
		return SideLeft
	}
}

// isolated copies n's own geometry into a childless root.
func (n *Node) isolated() *Node {
	return &Node{
		Data:     n.Data,
		ID:       n.ID,
		Width:    n.Width,
		Height:   n.Height,
		HGap:     n.HGap,
		VGap:     n.VGap,
		PreH:     n.PreH,
		PreV:     n.PreV,
		Children: []*Node{},
	}
}

func stringValue(d Data, key string) string {
	s, _ := d[key].(string)
	return s
}
