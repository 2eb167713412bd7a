// Package hierarchy is the node model shared by every tree layout algorithm.
//
// # Overview
//
// A layout starts from raw [Data], a nested map decoded from JSON or built by
// hand, and turns it into a tree of [Node] values with [Build]. Each node
// carries its footprint (Width, Height), the gaps reserved around it (HGap,
// VGap), optional pre-offsets (PreH, PreV) and its Depth. Layout algorithms
// then assign X and Y; nothing else on a node changes after construction.
//
// # Geometry
//
// The footprint of a node is
//
//	Width  = width  + preH + 2*hgap
//	Height = height + preV + 2*vgap
//
// where width and height come from the getters in [Options]. The defaults are
// a label-length heuristic ([PEM] per character) for width, [DefaultHeight]
// for height and [DefaultGap] for both gaps.
//
// # Traversal
//
// [Node.EachNode] (alias [Node.DFTraverse]) visits in pre-order and
// [Node.BFTraverse] in level order. Both use explicit work lists, so trees
// thousands of levels deep are safe.
//
// # Bounding boxes and mirroring
//
// [Node.BoundingBox] returns the minimum left and top edges together with the
// maximum right and bottom edges. The maxima are reported in the Width and
// Height fields of [Box]; subtract Left and Top for the size.
//
// [Node.RightToLeft] and [Node.BottomToTop] mirror a positioned subtree. The
// orientation pipeline uses them to derive RL and BT layouts from LR and TB.
//
// # Split layouts
//
// [Separate] divides the root's children into a left and a right half. Each
// half is laid out on its own and the pipeline stitches them back together
// around the original root.
//
// # Re-entry
//
// [Tree] is satisfied by both [Data] and [*Node]. Passing a built node back to
// [Build] reuses it instead of constructing a second tree.
package hierarchy
