package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// optionFlags binds pipeline options to command-line flags. Only flags the
// user actually set are copied over the config file values.
type optionFlags struct {
	opts    pipeline.Options
	formats string
}

func (f *optionFlags) addLayout(fs *pflag.FlagSet) {
	o := &f.opts
	fs.StringVarP(&o.Algorithm, "algorithm", "a", "", "layout algorithm: compact-box (default), dendrogram, indented, mindmap")
	fs.StringVarP(&o.Direction, "direction", "d", "", "direction: LR, RL, TB, BT, H, V (default depends on algorithm)")
	fs.BoolVar(&o.Radial, "radial", false, "map the layout onto concentric rings")
	fs.BoolVar(&o.FreeRoot, "free-root", false, "do not translate the root to the origin")
	fs.Float64Var(&o.Indent, "indent", 0, "indent per level (indented)")
	fs.BoolVar(&o.InlineFirstChild, "inline-first-child", false, "place the first child beside its parent (indented)")
	fs.StringVar(&o.Align, "align", "", "row spacing: top (default), center (indented)")
	fs.Float64Var(&o.NodeSep, "node-sep", 0, "sibling separation (dendrogram)")
	fs.Float64Var(&o.RankSep, "rank-sep", 0, "level separation (dendrogram)")
	fs.Float64Var(&o.SubTreeSep, "subtree-sep", 0, "extra separation between subtrees (dendrogram)")
	fs.Float64Var(&o.MindmapSep, "mindmap-sep", 0, "separation between sibling subtrees (mindmap)")
	fs.Float64Var(&o.NodeWidth, "node-width", 0, "width for nodes without one (default: from label)")
	fs.Float64Var(&o.NodeHeight, "node-height", 0, "height for nodes without one")
	fs.Float64Var(&o.HGap, "hgap", 0, "horizontal gap on each side of a node")
	fs.Float64Var(&o.VGap, "vgap", 0, "vertical gap on each side of a node")
}

func (f *optionFlags) addRender(fs *pflag.FlagSet) {
	o := &f.opts
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, txt (comma-separated)")
	fs.StringVar(&o.Renderer, "renderer", "", "SVG renderer: native (default), graphviz")
	fs.StringVar(&o.Engine, "engine", "", "graphviz engine: neato (default), dot")
	fs.StringVar(&o.Links, "links", "", "link style: curve, straight, elbow (default depends on layout)")
	fs.Float64Var(&o.Scale, "scale", 0, "PNG scale factor")
	fs.BoolVar(&o.Detailed, "detailed", false, "include node data in DOT labels")
}

// apply copies every flag the user set onto dst.
func (f *optionFlags) apply(fs *pflag.FlagSet, dst *pipeline.Options) {
	o := f.opts
	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "algorithm":
			dst.Algorithm = o.Algorithm
			if !fs.Changed("direction") {
				// The configured direction may not exist for this algorithm.
				dst.Direction = ""
			}
		case "direction":
			dst.Direction = o.Direction
		case "radial":
			dst.Radial = o.Radial
		case "free-root":
			dst.FreeRoot = o.FreeRoot
		case "indent":
			dst.Indent = o.Indent
		case "inline-first-child":
			dst.InlineFirstChild = o.InlineFirstChild
		case "align":
			dst.Align = o.Align
		case "node-sep":
			dst.NodeSep = o.NodeSep
		case "rank-sep":
			dst.RankSep = o.RankSep
		case "subtree-sep":
			dst.SubTreeSep = o.SubTreeSep
		case "mindmap-sep":
			dst.MindmapSep = o.MindmapSep
		case "node-width":
			dst.NodeWidth = o.NodeWidth
		case "node-height":
			dst.NodeHeight = o.NodeHeight
		case "hgap":
			dst.HGap = o.HGap
		case "vgap":
			dst.VGap = o.VGap
		case "format":
			dst.Formats = parseFormats(f.formats)
		case "renderer":
			dst.Renderer = o.Renderer
		case "engine":
			dst.Engine = o.Engine
		case "links":
			dst.Links = o.Links
		case "scale":
			dst.Scale = o.Scale
		case "detailed":
			dst.Detailed = o.Detailed
		}
	})
}

// options returns the config file defaults with the set flags applied.
func (c *CLI) options(fs *pflag.FlagSet, f *optionFlags) pipeline.Options {
	opts := c.Config.Options()
	f.apply(fs, &opts)
	opts.Logger = c.Logger
	return opts
}
