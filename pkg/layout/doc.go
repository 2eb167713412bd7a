// Package layout is the public entry point for positioning trees.
//
// # Algorithms
//
// Four algorithms are available, each behind one function:
//
//   - [CompactBox]: a non-layered tidy tree that packs subtrees as tightly
//     as their contours allow (directions LR, RL, TB, BT)
//   - [Dendrogram]: all leaves on the deepest rank, internal nodes pulled
//     toward them (LR, RL, TB, BT)
//   - [Indented]: an indented outline (LR, RL, H)
//   - [Mindmap]: the root's children fanned out to both sides (H, V)
//
// Each function accepts raw [hierarchy.Data] or a [*hierarchy.Node] returned
// by an earlier call, and returns the positioned root. Every node's X and Y
// are the top-left corner of its footprint, gaps included.
//
// # Directions
//
// Direction tokens are defined in package orient. An unsupported direction
// fails with an INVALID_DIRECTION error before anything is built or moved.
//
// # Anchoring and radial mode
//
// Unless FreeRoot is set, the finished layout is translated so the root sits
// at the origin. Radial remaps the layout onto polar coordinates: the packing
// axis becomes the angle and the layered axis the radius. Indented outlines
// are never anchored or remapped.
//
// # Example
//
//	root, err := layout.CompactBox(hierarchy.Data{
//	    "id": "root",
//	    "children": []any{
//	        map[string]any{"id": "a"},
//	        map[string]any{"id": "b"},
//	    },
//	}, layout.CompactBoxOptions{Direction: orient.TB})
//	if err != nil {
//	    return err
//	}
//	root.EachNode(func(n *hierarchy.Node) {
//	    fmt.Println(n.ID, n.X, n.Y)
//	})
package layout
