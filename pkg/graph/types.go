package graph

// =============================================================================
// Node - Positioned Tree Node
// =============================================================================

// Node is one positioned node of a [Layout].
//
// X and Y are the top-left corner of the node's footprint. Width and Height
// include the gaps, so the drawn box is the footprint inset by HGap and VGap.
type Node struct {
	ID     string         `json:"id"`
	Label  string         `json:"label,omitempty"` // Display label (defaults to ID)
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	HGap   float64        `json:"hgap,omitempty"`
	VGap   float64        `json:"vgap,omitempty"`
	Depth  int            `json:"depth"`
	Parent string         `json:"parent,omitempty"`
	Side   string         `json:"side,omitempty"` // "left" or "right" in split layouts
	Meta   map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Center returns the midpoint of the node's footprint.
func (n *Node) Center() (x, y float64) {
	return n.X + n.Width/2, n.Y + n.Height/2
}

// Inner returns the drawn box: the footprint inset by the gaps.
func (n *Node) Inner() (x, y, w, h float64) {
	return n.X + n.HGap, n.Y + n.VGap, n.Width - 2*n.HGap, n.Height - 2*n.VGap
}

// =============================================================================
// Edge - Parent to Child Link
// =============================================================================

// Edge links a parent to one of its children.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Bounds
// =============================================================================

// Bounds is the extent of every footprint in a layout.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns Right - Left.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns Bottom - Top.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }
