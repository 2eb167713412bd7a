package hierarchy

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() Data {
	return Data{
		"id": "root",
		"children": []any{
			map[string]any{"id": "a"},
			map[string]any{
				"id": "b",
				"children": []any{
					map[string]any{"id": "b1"},
					map[string]any{"id": "b2"},
				},
			},
			map[string]any{"id": "c"},
		},
	}
}

func ids(root *Node, walk func(*Node, func(*Node))) []string {
	var out []string
	walk(root, func(n *Node) { out = append(out, n.ID) })
	return out
}

func TestBuildDefaults(t *testing.T) {
	root := Build(Data{"id": "root"}, Options{})

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"width", root.Width, PEM + 2*DefaultGap},
		{"height", root.Height, DefaultHeight + 2*DefaultGap},
		{"hgap", root.HGap, DefaultGap},
		{"vgap", root.VGap, DefaultGap},
		{"x", root.X, 0},
		{"y", root.Y, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if root.Children == nil || len(root.Children) != 0 {
		t.Errorf("Children = %#v, want empty non-nil slice", root.Children)
	}
	if !root.IsRoot() || !root.IsLeaf() {
		t.Error("single node should be both root and leaf")
	}
}

func TestBuildOverrides(t *testing.T) {
	tests := []struct {
		name       string
		data       Data
		opts       Options
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "label heuristic",
			data:       Data{"id": "n", "label": "four"},
			wantWidth:  4*PEM + 2*DefaultGap,
			wantHeight: DefaultHeight + 2*DefaultGap,
		},
		{
			name:       "explicit size and gaps",
			data:       Data{"id": "n", "width": 100.0, "height": 40, "hgap": 5.0, "vgap": 2.0},
			wantWidth:  110,
			wantHeight: 44,
		},
		{
			name:       "zero falls back to default",
			data:       Data{"id": "n", "width": 0.0, "hgap": 0.0},
			wantWidth:  PEM + 2*DefaultGap,
			wantHeight: DefaultHeight + 2*DefaultGap,
		},
		{
			name:       "pre-offsets widen the footprint",
			data:       Data{"id": "n", "width": 10.0, "height": 10.0, "preH": 3.0, "preV": 4.0, "hgap": 1.0, "vgap": 1.0},
			wantWidth:  15,
			wantHeight: 16,
		},
		{
			name: "getters win",
			data: Data{"id": "n", "width": 999.0},
			opts: Options{
				GetWidth:  func(Data) float64 { return 20 },
				GetHeight: func(Data) float64 { return 10 },
				GetHGap:   func(Data) float64 { return 0 },
				GetVGap:   func(Data) float64 { return 0 },
			},
			wantWidth:  20,
			wantHeight: 10,
		},
		{
			name:       "flat width",
			data:       Data{"id": "n"},
			opts:       Options{FlatWidth: true},
			wantWidth:  0,
			wantHeight: DefaultHeight + 2*DefaultGap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Build(tt.data, tt.opts)
			if n.Width != tt.wantWidth || n.Height != tt.wantHeight {
				t.Errorf("size = %vx%v, want %vx%v", n.Width, n.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestBuildIDFallback(t *testing.T) {
	tests := []struct {
		name string
		data Data
		want string
	}{
		{"id", Data{"id": "x", "name": "y"}, "x"},
		{"name", Data{"name": "y"}, "y"},
		{"numeric", Data{"id": 7}, "7"},
		{"none", Data{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.data, Options{}).ID; got != tt.want {
				t.Errorf("ID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildStructure(t *testing.T) {
	root := Build(sampleTree(), Options{})

	if got := root.Count(); got != 6 {
		t.Fatalf("Count() = %d, want 6", got)
	}

	root.EachNode(func(n *Node) {
		for _, c := range n.Children {
			if c.Parent != n {
				t.Errorf("%s.Parent = %v, want %s", c.ID, c.Parent, n.ID)
			}
			if c.Depth != n.Depth+1 {
				t.Errorf("%s.Depth = %d, want %d", c.ID, c.Depth, n.Depth+1)
			}
		}
	})

	if diff := cmp.Diff([]string{"root", "a", "b", "b1", "b2", "c"}, ids(root, (*Node).EachNode)); diff != "" {
		t.Errorf("EachNode order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"root", "a", "b", "c", "b1", "b2"}, ids(root, (*Node).BFTraverse)); diff != "" {
		t.Errorf("BFTraverse order (-want +got):\n%s", diff)
	}
}

func TestBuildCollapsed(t *testing.T) {
	data := sampleTree()
	data["children"].([]any)[1].(map[string]any)["collapsed"] = true

	root := Build(data, Options{})
	b := root.Children[1]
	if b.ID != "b" {
		t.Fatalf("second child = %s, want b", b.ID)
	}
	if len(b.Children) != 0 {
		t.Errorf("collapsed node has %d children, want 0", len(b.Children))
	}
	if got := root.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}

	collapsedRoot := Build(Data{"id": "r", "collapsed": true, "children": []any{map[string]any{"id": "x"}}}, Options{})
	if !collapsedRoot.IsLeaf() {
		t.Error("collapsed root should have no children")
	}
}

func TestBuildReentry(t *testing.T) {
	root := Build(sampleTree(), Options{})
	root.EachNode(func(n *Node) { n.X, n.Y = 12, 34 })
	width := root.Width

	again := Build(root, Options{GetWidth: func(Data) float64 { return 1 }})
	if again != root {
		t.Fatal("Build(*Node) should return the same tree")
	}
	if again.Width != width {
		t.Errorf("Width = %v, want %v (geometry must not be rebuilt)", again.Width, width)
	}
	again.EachNode(func(n *Node) {
		if n.X != 0 || n.Y != 0 {
			t.Errorf("%s at (%v, %v), want origin", n.ID, n.X, n.Y)
		}
	})
}

func TestBuildDeepTree(t *testing.T) {
	const depth = 5000
	data := Data{"id": "n0"}
	cur := data
	for i := 1; i < depth; i++ {
		child := Data{"id": fmt.Sprintf("n%d", i)}
		cur["children"] = []Data{child}
		cur = child
	}

	root := Build(data, Options{})
	if got := root.Count(); got != depth {
		t.Fatalf("Count() = %d, want %d", got, depth)
	}
	deepest := 0
	root.BFTraverse(func(n *Node) { deepest = max(deepest, n.Depth) })
	if deepest != depth-1 {
		t.Errorf("deepest = %d, want %d", deepest, depth-1)
	}
}

func TestBoundingBox(t *testing.T) {
	root := &Node{ID: "r", X: -5, Y: 2, Width: 10, Height: 4}
	child := &Node{ID: "c", X: 20, Y: -3, Width: 6, Height: 2, Parent: root, Depth: 1}
	root.Children = []*Node{child}

	want := Box{Left: -5, Top: -3, Width: 26, Height: 6}
	if diff := cmp.Diff(want, root.BoundingBox()); diff != "" {
		t.Errorf("BoundingBox() (-want +got):\n%s", diff)
	}
	if got := root.BoundingBox().Right(); got != 26 {
		t.Errorf("Right() = %v, want 26", got)
	}

	// Width and Height are floored at zero, not at the minimum edge.
	neg := &Node{X: -50, Y: -50, Width: 10, Height: 10}
	if bb := neg.BoundingBox(); bb.Width != 0 || bb.Height != 0 {
		t.Errorf("negative box = %+v, want zero maxima", bb)
	}
}

func TestTranslateAppliesPreOffsets(t *testing.T) {
	root := &Node{ID: "r", PreH: 1, PreV: 2}
	child := &Node{ID: "c", PreH: 10, Depth: 1, Parent: root}
	root.Children = []*Node{child}

	root.Translate(5, 5)
	if root.X != 6 || root.Y != 7 {
		t.Errorf("root at (%v, %v), want (6, 7)", root.X, root.Y)
	}
	if child.X != 15 || child.Y != 5 {
		t.Errorf("child at (%v, %v), want (15, 5)", child.X, child.Y)
	}

	// A second call applies the pre-offsets again.
	root.Translate(0, 0)
	if root.X != 7 || child.X != 25 {
		t.Errorf("after second translate root.X = %v child.X = %v, want 7 and 25", root.X, child.X)
	}
}

func TestMirrorInvolution(t *testing.T) {
	tests := []struct {
		name   string
		mirror func(*Node)
	}{
		{"right to left", (*Node).RightToLeft},
		{"bottom to top", (*Node).BottomToTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Build(sampleTree(), Options{})
			// Lay nodes out on a diagonal anchored at the origin.
			step := 0.0
			root.EachNode(func(n *Node) {
				n.X, n.Y = step, step
				step += 7
			})
			before := positions(root)

			tt.mirror(root)
			if diff := cmp.Diff(before, positions(root)); diff == "" {
				t.Fatal("mirror did not move anything")
			}
			tt.mirror(root)
			if diff := cmp.Diff(before, positions(root)); diff != "" {
				t.Errorf("mirror twice (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRightToLeftKeepsBox(t *testing.T) {
	root := Build(sampleTree(), Options{})
	x := 0.0
	root.EachNode(func(n *Node) {
		n.X = x
		x += 30
	})
	before := root.BoundingBox()
	root.RightToLeft()
	after := root.BoundingBox()

	if math.Abs((after.Width-after.Left)-(before.Width-before.Left)) > 1e-9 {
		t.Errorf("box width changed: %v -> %v", before.Width-before.Left, after.Width-after.Left)
	}
	// The first node in pre-order was leftmost and is now rightmost.
	if root.X+root.Width != after.Width {
		t.Errorf("root right edge = %v, want %v", root.X+root.Width, after.Width)
	}
}

func positions(root *Node) map[string][2]float64 {
	out := map[string][2]float64{}
	root.EachNode(func(n *Node) { out[n.ID] = [2]float64{n.X, n.Y} })
	return out
}

func TestUserData(t *testing.T) {
	d := Data{"id": "x", "label": "X", "width": 10, "children": []any{}, "owner": "ops", "tags": []any{"a"}}
	want := map[string]any{"owner": "ops", "tags": []any{"a"}}
	if diff := cmp.Diff(want, d.UserData()); diff != "" {
		t.Errorf("UserData (-want +got):\n%s", diff)
	}
	if got := (Data{"id": "x", "hgap": 1}).UserData(); got != nil {
		t.Errorf("UserData with only recognized keys = %v, want nil", got)
	}
}

func TestSeparateSideFunc(t *testing.T) {
	root := Build(Data{
		"id": "root",
		"children": []any{
			map[string]any{"id": "a"},
			map[string]any{"id": "b"},
			map[string]any{"id": "c"},
			map[string]any{"id": "d"},
		},
	}, Options{})

	answers := map[string]Side{"a": SideLeft, "b": SideNone, "c": SideRight, "d": Side("up")}
	left, right := Separate(root, func(n *Node, _ int) Side { return answers[n.ID] })

	ids := func(half *Node) []string {
		var out []string
		for _, c := range half.Children {
			out = append(out, c.ID)
		}
		return out
	}
	if diff := cmp.Diff([]string{"a"}, ids(left)); diff != "" {
		t.Errorf("left half (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "c", "d"}, ids(right)); diff != "" {
		t.Errorf("right half (-want +got):\n%s", diff)
	}
	if got := root.Children[1].Side; got != SideRight {
		t.Errorf("b.Side = %q, want right", got)
	}
}
