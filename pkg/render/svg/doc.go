// Package svg renders a positioned tree as a standalone SVG document.
//
// Nodes are drawn as rounded boxes, inset from their footprint by the gaps,
// with the display label centered. Links are drawn beneath the boxes in one
// of three styles: curves for layered trees, straight spokes for radial ones
// and elbows for indented outlines. [WithLinks] overrides the choice.
//
//	out, err := svg.Render(l, svg.WithPadding(40))
package svg
