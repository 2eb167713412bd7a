package hierarchy

// Build turns tree into a layout tree.
//
// Raw [Data] is expanded breadth-first with a work queue, so very deep inputs
// never grow the goroutine stack. A collapsed node is built without children.
//
// A [*Node] is treated as already built: it is returned as is after its
// positions are reset to zero, so laying it out again reproduces the original
// coordinates. Its geometry is not recomputed; only FlatWidth is applied.
func Build(tree Tree, opts Options) *Node {
	opts = opts.WithDefaults()

	if built, ok := tree.(*Node); ok {
		built.resetPosition()
		if opts.FlatWidth {
			built.EachNode(func(n *Node) { n.Width = 0 })
		}
		return built
	}

	data, _ := tree.(Data)
	root := newNode(data, opts)
	if data.Collapsed() {
		return root
	}

	queue := []*Node{root}
	for i := 0; i < len(queue); i++ {
		parent := queue[i]
		if parent.Data.Collapsed() {
			continue
		}
		raw := opts.GetChildren(parent.Data)
		if len(raw) == 0 {
			continue
		}
		parent.Children = make([]*Node, len(raw))
		for j, childData := range raw {
			child := newNode(childData, opts)
			child.Parent = parent
			child.Depth = parent.Depth + 1
			parent.Children[j] = child
			queue = append(queue, child)
		}
	}
	return root
}

// newNode computes the geometry of a single node. The footprint is the
// intrinsic size plus the pre-offset, then grown by the gaps.
func newNode(data Data, opts Options) *Node {
	n := &Node{
		Data:     data,
		ID:       opts.GetID(data),
		PreH:     opts.GetPreH(data),
		PreV:     opts.GetPreV(data),
		Children: []*Node{},
	}
	n.Width = opts.GetWidth(data) + n.PreH
	n.Height = opts.GetHeight(data) + n.PreV
	n.AddGap(opts.GetHGap(data), opts.GetVGap(data))
	if opts.FlatWidth {
		n.Width = 0
	}
	return n
}
