package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/treelayout/pkg/hierarchy"
)

type node struct {
	ID        string         `json:"id"`
	Label     string         `json:"label,omitempty"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Depth     int            `json:"depth"`
	Side      string         `json:"side,omitempty"`
	Collapsed bool           `json:"collapsed,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Children  []*node        `json:"children,omitempty"`
}

// WriteJSON encodes a positioned tree as nested JSON and writes it to w.
//
// Each node carries its position and footprint next to the user data it was
// built from. Keys the layout interprets (width, hgap, children and so on)
// are replaced by the computed geometry.
func WriteJSON(root *hierarchy.Node, w io.Writer) error {
	out := make(map[*hierarchy.Node]*node, root.Count())
	root.EachNode(func(n *hierarchy.Node) {
		nd := &node{
			ID:        n.ID,
			Label:     n.Data.Label(),
			X:         n.X,
			Y:         n.Y,
			Width:     n.Width,
			Height:    n.Height,
			Depth:     n.Depth,
			Side:      string(n.Side),
			Collapsed: n.Data.Collapsed(),
			Data:      n.Data.UserData(),
		}
		out[n] = nd
		if p, ok := out[n.Parent]; ok && n != root {
			p.Children = append(p.Children, nd)
		}
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out[root]); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a positioned tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(root *hierarchy.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(root, f)
}
