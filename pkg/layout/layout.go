package layout

import (
	"github.com/matzehuels/treelayout/pkg/hierarchy"
	"github.com/matzehuels/treelayout/pkg/layout/dendrogram"
	"github.com/matzehuels/treelayout/pkg/layout/indented"
	"github.com/matzehuels/treelayout/pkg/layout/mindmap"
	"github.com/matzehuels/treelayout/pkg/layout/orient"
	"github.com/matzehuels/treelayout/pkg/layout/tidy"
)

// =============================================================================
// Options
// =============================================================================

// CompactBoxOptions configures [CompactBox].
type CompactBoxOptions struct {
	hierarchy.Options

	// Direction defaults to LR.
	Direction orient.Direction

	// FreeRoot leaves the root where the algorithm put it instead of
	// anchoring it at the origin.
	FreeRoot bool

	Radial bool
}

// DendrogramOptions configures [Dendrogram]. Zero spacing fields take the
// dendrogram package defaults.
type DendrogramOptions struct {
	hierarchy.Options

	// Direction defaults to LR.
	Direction orient.Direction
	FreeRoot  bool
	Radial    bool

	// Spacing in drawing units. Zero means the dendrogram default
	// (NodeSep 20, RankSep 200, SubTreeSep 10), never zero spacing.
	NodeSep    float64
	RankSep    float64
	SubTreeSep float64
}

// IndentedOptions configures [Indented]. Indented outlines are never
// anchored or remapped radially.
type IndentedOptions struct {
	hierarchy.Options

	// Direction defaults to LR.
	Direction orient.Direction

	// Indent is the per-depth offset. Zero means indented.DefaultIndent.
	Indent float64

	// IndentFunc, when set, wins over Indent.
	IndentFunc func(*hierarchy.Node) float64

	// InlineFirstChild puts every first child on its parent's row.
	InlineFirstChild bool

	Align indented.Align
}

// MindmapOptions configures [Mindmap].
type MindmapOptions struct {
	hierarchy.Options

	// Direction defaults to H.
	Direction orient.Direction
	FreeRoot  bool
	Radial    bool

	// GetSubTreeSep returns the margin around a node's subtree envelope.
	GetSubTreeSep func(hierarchy.Data) float64
}

// =============================================================================
// Entry points
// =============================================================================

// CompactBox lays tree out as a compact tidy tree.
func CompactBox(tree hierarchy.Tree, opts CompactBoxOptions) (*hierarchy.Node, error) {
	return run(tree, opts.Options, AlgCompactBox, orient.Config{
		Direction: opts.Direction,
		FixedRoot: !opts.FreeRoot,
		Radial:    opts.Radial,
	}, tidy.Layout)
}

// Dendrogram lays tree out with every leaf on the deepest rank. Node widths
// are zero in the result.
func Dendrogram(tree hierarchy.Tree, opts DendrogramOptions) (*hierarchy.Node, error) {
	cfg := dendrogram.Config{NodeSep: opts.NodeSep, RankSep: opts.RankSep, SubTreeSep: opts.SubTreeSep}
	hopts := opts.Options
	hopts.FlatWidth = true
	return run(tree, hopts, AlgDendrogram, orient.Config{
		Direction: opts.Direction,
		FixedRoot: !opts.FreeRoot,
		Radial:    opts.Radial,
	}, func(root *hierarchy.Node, horizontal bool) {
		dendrogram.Layout(root, horizontal, cfg)
	})
}

// Indented lays tree out as an indented outline. H places half of the
// root's children in a mirrored outline to the left.
func Indented(tree hierarchy.Tree, opts IndentedOptions) (*hierarchy.Node, error) {
	cfg := indented.Config{
		Indent:           opts.IndentFunc,
		InlineFirstChild: opts.InlineFirstChild,
		Align:            opts.Align,
	}
	if cfg.Indent == nil && opts.Indent != 0 {
		step := opts.Indent
		cfg.Indent = func(*hierarchy.Node) float64 { return step }
	}
	return run(tree, opts.Options, AlgIndented, orient.Config{
		Direction: opts.Direction,
		Combine:   orient.Abutted,
	}, func(root *hierarchy.Node, _ bool) {
		indented.Layout(root, cfg)
	})
}

// Mindmap lays tree out as a mind map with the root's children fanned out to
// both sides.
func Mindmap(tree hierarchy.Tree, opts MindmapOptions) (*hierarchy.Node, error) {
	cfg := mindmap.Config{GetSubTreeSep: opts.GetSubTreeSep}
	return run(tree, opts.Options, AlgMindmap, orient.Config{
		Direction: opts.Direction,
		FixedRoot: !opts.FreeRoot,
		Radial:    opts.Radial,
	}, func(root *hierarchy.Node, horizontal bool) {
		mindmap.Layout(root, horizontal, cfg)
	})
}

// run validates the direction before building so a bad call leaves a
// re-entered tree untouched.
func run(tree hierarchy.Tree, hopts hierarchy.Options, alg Algorithm, cfg orient.Config, algo orient.Algorithm) (*hierarchy.Node, error) {
	if cfg.Direction == "" {
		cfg.Direction = alg.DefaultDirection()
	}
	cfg.Allowed = alg.Directions()
	cfg.Side = hopts.GetSide
	if err := orient.Validate(cfg.Direction, cfg.Allowed); err != nil {
		return nil, err
	}

	root := hierarchy.Build(tree, hopts)
	if err := orient.Run(root, cfg, algo); err != nil {
		return nil, err
	}
	return root, nil
}
