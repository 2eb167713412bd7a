package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/treelayout/pkg/hierarchy"
)

// Sentinel errors returned by [UnmarshalLayout].
var (
	ErrEmptyLayout  = errors.New("layout must contain nodes")
	ErrDanglingEdge = errors.New("edge references unknown node")
)

// =============================================================================
// Layout - Positioned Tree Wire Format
// =============================================================================

// Layout is the serialization format for a positioned tree.
//
// Nodes are listed in pre-order, root first. Every node ID is unique within
// a layout: repeated or empty input identifiers get a "#n" suffix holding the
// node's pre-order index. Edges run parent to child.
//
// ID identifies one computation. Two layouts of the same tree with the same
// options have identical nodes but different IDs.
type Layout struct {
	ID        string `json:"id"`
	Algorithm string `json:"algorithm"`
	Direction string `json:"direction"`
	Radial    bool   `json:"radial,omitempty"`

	Bounds Bounds `json:"bounds"`
	Nodes  []Node `json:"nodes"`
	Edges  []Edge `json:"edges,omitempty"`
}

// Root returns the first node, or nil for an empty layout.
func (l *Layout) Root() *Node {
	if len(l.Nodes) == 0 {
		return nil
	}
	return &l.Nodes[0]
}

// Index maps node IDs to their position in Nodes.
func (l *Layout) Index() map[string]int {
	idx := make(map[string]int, len(l.Nodes))
	for i, n := range l.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// FromTree flattens a positioned tree into a Layout.
func FromTree(root *hierarchy.Node, algorithm, direction string, radial bool) Layout {
	box := root.BoundingBox()
	l := Layout{
		ID:        uuid.NewString(),
		Algorithm: algorithm,
		Direction: direction,
		Radial:    radial,
		Bounds: Bounds{
			Left:   box.Left,
			Top:    box.Top,
			Right:  box.Right(),
			Bottom: box.Bottom(),
		},
		Nodes: make([]Node, 0, root.Count()),
	}

	keys := make(map[*hierarchy.Node]string)
	seen := make(map[string]bool)
	root.EachNode(func(n *hierarchy.Node) {
		key := n.ID
		if key == "" || seen[key] {
			key = n.ID + "#" + strconv.Itoa(len(l.Nodes))
		}
		seen[key] = true
		keys[n] = key

		node := Node{
			ID:     key,
			Label:  n.Data.Label(),
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
			HGap:   n.HGap,
			VGap:   n.VGap,
			Depth:  n.Depth,
			Side:   string(n.Side),
			Meta:   n.Data.UserData(),
		}
		if n != root && n.Parent != nil {
			node.Parent = keys[n.Parent]
			l.Edges = append(l.Edges, Edge{From: node.Parent, To: key})
		}
		l.Nodes = append(l.Nodes, node)
	})
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// The layout must hold at least one node and every edge must reference
// nodes it holds.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if len(l.Nodes) == 0 {
		return Layout{}, ErrEmptyLayout
	}
	idx := l.Index()
	for _, e := range l.Edges {
		if _, ok := idx[e.From]; !ok {
			return Layout{}, fmt.Errorf("%w: %s", ErrDanglingEdge, e.From)
		}
		if _, ok := idx[e.To]; !ok {
			return Layout{}, fmt.Errorf("%w: %s", ErrDanglingEdge, e.To)
		}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
