package pipeline

import (
	"github.com/matzehuels/treelayout/pkg/graph"
	"github.com/matzehuels/treelayout/pkg/hierarchy"
	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/layout/indented"
	"github.com/matzehuels/treelayout/pkg/layout/orient"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout validates opts, positions tree and flattens the result.
// This is the uncached entry point; [Runner.ComputeLayout] adds caching.
func GenerateLayout(tree hierarchy.Tree, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	root, err := PositionTree(tree, opts)
	if err != nil {
		return graph.Layout{}, err
	}
	return graph.FromTree(root, opts.Algorithm, opts.Direction, opts.Radial), nil
}

// PositionTree dispatches to the layout function named by opts.Algorithm.
// opts must have passed ValidateForLayout.
func PositionTree(tree hierarchy.Tree, opts Options) (*hierarchy.Node, error) {
	hopts := opts.hierarchyOptions()
	dir := orient.Direction(opts.Direction)

	switch layout.Algorithm(opts.Algorithm) {
	case layout.AlgDendrogram:
		return layout.Dendrogram(tree, layout.DendrogramOptions{
			Options:    hopts,
			Direction:  dir,
			FreeRoot:   opts.FreeRoot,
			Radial:     opts.Radial,
			NodeSep:    opts.NodeSep,
			RankSep:    opts.RankSep,
			SubTreeSep: opts.SubTreeSep,
		})
	case layout.AlgIndented:
		align := indented.Align(opts.Align)
		if opts.Align == "top" {
			align = indented.AlignTop
		}
		return layout.Indented(tree, layout.IndentedOptions{
			Options:          hopts,
			Direction:        dir,
			Indent:           opts.Indent,
			InlineFirstChild: opts.InlineFirstChild,
			Align:            align,
		})
	case layout.AlgMindmap:
		mopts := layout.MindmapOptions{
			Options:   hopts,
			Direction: dir,
			FreeRoot:  opts.FreeRoot,
			Radial:    opts.Radial,
		}
		if sep := opts.MindmapSep; sep > 0 {
			mopts.GetSubTreeSep = func(hierarchy.Data) float64 { return sep }
		}
		return layout.Mindmap(tree, mopts)
	default:
		return layout.CompactBox(tree, layout.CompactBoxOptions{
			Options:   hopts,
			Direction: dir,
			FreeRoot:  opts.FreeRoot,
			Radial:    opts.Radial,
		})
	}
}

// hierarchyOptions turns the uniform geometry fields into getters. A node's
// own key still wins over them.
func (o *Options) hierarchyOptions() hierarchy.Options {
	var h hierarchy.Options
	if o.NodeWidth > 0 {
		h.GetWidth = fallback("width", o.NodeWidth)
	}
	if o.NodeHeight > 0 {
		h.GetHeight = fallback("height", o.NodeHeight)
	}
	if o.HGap > 0 {
		h.GetHGap = fallback("hgap", o.HGap)
	}
	if o.VGap > 0 {
		h.GetVGap = fallback("vgap", o.VGap)
	}
	return h
}

func fallback(key string, v float64) func(hierarchy.Data) float64 {
	return func(d hierarchy.Data) float64 {
		if n, ok := d.Number(key); ok {
			return n
		}
		return v
	}
}

// countNodes counts the nodes a build of d will produce.
func countNodes(d hierarchy.Data) int {
	n := 0
	stack := []hierarchy.Data{d}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		if !cur.Collapsed() {
			stack = append(stack, cur.Children()...)
		}
	}
	return n
}
