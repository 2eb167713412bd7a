package dendrogram

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/treelayout/pkg/hierarchy"
)

type point struct{ X, Y float64 }

func sample() hierarchy.Data {
	return hierarchy.Data{
		"id": "root",
		"children": []any{
			map[string]any{"id": "a"},
			map[string]any{"id": "b", "children": []any{
				map[string]any{"id": "b1"},
				map[string]any{"id": "b2"},
			}},
		},
	}
}

func coords(root *hierarchy.Node) map[string]point {
	out := map[string]point{}
	root.EachNode(func(n *hierarchy.Node) { out[n.ID] = point{n.X, n.Y} })
	return out
}

func TestLayout(t *testing.T) {
	// Leaves are 72 tall. a and b1 have different parents, so SubTreeSep
	// is added between them.
	horizontal := map[string]point{
		"root": {0, 74},
		"a":    {400, 0},
		"b":    {200, 148},
		"b1":   {400, 102},
		"b2":   {400, 194},
	}

	tests := []struct {
		name       string
		horizontal bool
		want       map[string]point
	}{
		{"horizontal", true, horizontal},
		{"vertical", false, swap(horizontal)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := hierarchy.Build(sample(), hierarchy.Options{FlatWidth: true})
			Layout(root, tt.horizontal, Config{})
			if diff := cmp.Diff(tt.want, coords(root)); diff != "" {
				t.Errorf("coords (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutConfig(t *testing.T) {
	root := hierarchy.Build(sample(), hierarchy.Options{FlatWidth: true})
	Layout(root, true, Config{NodeSep: 1, RankSep: 10, SubTreeSep: 100})

	want := map[string]point{
		"root": {0, (0 + (173+246)/2.0) / 2},
		"a":    {20, 0},
		"b":    {10, (173 + 246) / 2.0},
		"b1":   {20, 173},
		"b2":   {20, 246},
	}
	if diff := cmp.Diff(want, coords(root)); diff != "" {
		t.Errorf("coords (-want +got):\n%s", diff)
	}
}

func TestLayoutZeroConfigUsesDefaults(t *testing.T) {
	zero := hierarchy.Build(sample(), hierarchy.Options{FlatWidth: true})
	Layout(zero, true, Config{SubTreeSep: 0, NodeSep: 0})

	explicit := hierarchy.Build(sample(), hierarchy.Options{FlatWidth: true})
	Layout(explicit, true, Config{NodeSep: DefaultNodeSep, RankSep: DefaultRankSep, SubTreeSep: DefaultSubTreeSep})

	if diff := cmp.Diff(coords(explicit), coords(zero)); diff != "" {
		t.Errorf("zero config differs from defaults (-defaults +zero):\n%s", diff)
	}
}

func TestLayoutLeavesFlush(t *testing.T) {
	data := hierarchy.Data{
		"id": "root",
		"children": []any{
			map[string]any{"id": "shallow"},
			map[string]any{"id": "mid", "children": []any{
				map[string]any{"id": "deep", "children": []any{
					map[string]any{"id": "deepest"},
				}},
			}},
		},
	}
	root := hierarchy.Build(data, hierarchy.Options{FlatWidth: true})
	Layout(root, true, Config{})

	var leafX []float64
	root.EachNode(func(n *hierarchy.Node) {
		if n.IsLeaf() {
			leafX = append(leafX, n.X)
		}
	})
	for _, x := range leafX {
		if x != 3*DefaultRankSep {
			t.Errorf("leaf x = %v, want %v", x, 3*DefaultRankSep)
		}
	}

	// Internal nodes are pulled toward their leaves.
	mid := root.Children[1]
	if mid.X != DefaultRankSep || mid.Children[0].X != 2*DefaultRankSep {
		t.Errorf("mid at %v, deep at %v", mid.X, mid.Children[0].X)
	}
}

func TestLayoutWideSiblings(t *testing.T) {
	const n = 100
	kids := make([]any, n)
	for i := range kids {
		kids[i] = map[string]any{"id": fmt.Sprintf("c%d", i)}
	}
	root := hierarchy.Build(hierarchy.Data{"id": "root", "children": kids}, hierarchy.Options{FlatWidth: true})
	Layout(root, true, Config{})

	step := root.Children[0].Height + DefaultNodeSep
	for i, c := range root.Children {
		if want := float64(i) * step; c.Y != want {
			t.Fatalf("%s.Y = %v, want %v", c.ID, c.Y, want)
		}
	}
	if want := float64(n-1) * step / 2; root.Y != want {
		t.Errorf("root.Y = %v, want %v", root.Y, want)
	}
}

func TestLayoutDeepChain(t *testing.T) {
	const depth = 1000
	data := hierarchy.Data{"id": "n0"}
	cur := data
	for i := 1; i < depth; i++ {
		next := hierarchy.Data{"id": fmt.Sprintf("n%d", i)}
		cur["children"] = []hierarchy.Data{next}
		cur = next
	}
	root := hierarchy.Build(data, hierarchy.Options{FlatWidth: true})
	Layout(root, false, Config{RankSep: 1})

	root.EachNode(func(n *hierarchy.Node) {
		if n.Y != float64(n.Depth) || n.X != 0 {
			t.Fatalf("%s at (%v, %v), want (0, %d)", n.ID, n.X, n.Y, n.Depth)
		}
	})
}

func swap(in map[string]point) map[string]point {
	out := make(map[string]point, len(in))
	for k, p := range in {
		out[k] = point{p.Y, p.X}
	}
	return out
}
