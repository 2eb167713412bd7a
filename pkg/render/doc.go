// Package render turns positioned trees into pictures.
//
// # Overview
//
// Every renderer reads a [graph.Layout], the flat wire format of a computed
// layout, so a layout can be rendered straight after computing it or later
// from a layout.json file. The subpackages are:
//
//   - [svg]: native SVG with node boxes, labels and links
//   - [nodelink]: Graphviz DOT with pinned positions, rendered by neato
//   - [textmap]: a character grid for terminal previews
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). When the tool is missing
// they fail with an UNSUPPORTED error.
//
//	out, err := svg.Render(l)
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0)  // 2x scale
//
// [graph.Layout]: github.com/matzehuels/treelayout/pkg/graph.Layout
// [svg]: github.com/matzehuels/treelayout/pkg/render/svg
// [nodelink]: github.com/matzehuels/treelayout/pkg/render/nodelink
// [textmap]: github.com/matzehuels/treelayout/pkg/render/textmap
package render
