package layout_test

import (
	"fmt"

	"github.com/matzehuels/treelayout/pkg/hierarchy"
	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/layout/orient"
)

func ExampleCompactBox() {
	tree := hierarchy.Data{
		"id": "root",
		"children": []any{
			map[string]any{"id": "a"},
			map[string]any{"id": "b"},
		},
	}

	root, err := layout.CompactBox(tree, layout.CompactBoxOptions{Direction: orient.TB})
	if err != nil {
		fmt.Println(err)
		return
	}
	root.EachNode(func(n *hierarchy.Node) {
		fmt.Println(n.ID, n.X, n.Y)
	})
	// Output:
	// root -45 -54
	// a -72 18
	// b -18 18
}

func ExampleIndented() {
	tree := hierarchy.Data{
		"id": "docs",
		"children": []any{
			map[string]any{"id": "intro"},
			map[string]any{"id": "guide", "children": []any{
				map[string]any{"id": "install"},
			}},
		},
	}

	root, _ := layout.Indented(tree, layout.IndentedOptions{Indent: 30})
	root.EachNode(func(n *hierarchy.Node) {
		fmt.Println(n.ID, n.X, n.Y)
	})
	// Output:
	// docs 0 0
	// intro 30 72
	// guide 30 144
	// install 60 216
}

func ExampleMindmap_invalidDirection() {
	_, err := layout.Mindmap(hierarchy.Data{"id": "root"}, layout.MindmapOptions{Direction: orient.TB})
	fmt.Println(err)
	// Output:
	// INVALID_DIRECTION: invalid direction: "TB" (must be one of: H, V)
}
