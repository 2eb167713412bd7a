// Package nodelink renders positioned trees through Graphviz.
//
// # Overview
//
// [ToDOT] writes a layout as DOT source with every node pinned at its
// computed position. Rendering it with the neato engine reproduces the
// layout with Graphviz's own shapes and fonts; the dot engine ignores the
// positions and ranks the tree itself, which is handy for comparison.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot, "")
//	png, err := nodelink.RenderPNG(ctx, dot, "", 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include the depth and all user data
//   - Engine: "neato" (default) or "dot"
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
