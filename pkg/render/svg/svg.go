package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/graph"
	"github.com/matzehuels/treelayout/pkg/layout/orient"
)

// LinkStyle selects how parent to child links are drawn.
type LinkStyle string

const (
	LinkAuto     LinkStyle = ""         // pick from the layout
	LinkCurve    LinkStyle = "curve"    // cubic curve bending along the layered axis
	LinkStraight LinkStyle = "straight" // center to center
	LinkElbow    LinkStyle = "elbow"    // down the parent's column, across to the child
)

// ValidLinkStyles lists the accepted link style names.
var ValidLinkStyles = []string{string(LinkCurve), string(LinkStraight), string(LinkElbow)}

const (
	defaultPadding  = 20.0
	defaultFontSize = 14.0
	nodeRadius      = 4.0
)

type Option func(*renderer)

type renderer struct {
	padding  float64
	fontSize float64
	links    LinkStyle
	labels   bool
	fill     string
	stroke   string
}

// WithPadding sets the margin around the drawing.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// WithFontSize sets the label size in pixels.
func WithFontSize(s float64) Option { return func(r *renderer) { r.fontSize = s } }

// WithLinks overrides the link style.
func WithLinks(s LinkStyle) Option { return func(r *renderer) { r.links = s } }

// WithoutLabels draws boxes and links only.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// WithColors sets the node fill and the stroke used for boxes and links.
func WithColors(fill, stroke string) Option {
	return func(r *renderer) { r.fill, r.stroke = fill, stroke }
}

// Render draws l as a standalone SVG document.
//
// The view box covers the layout bounds plus padding, so coordinates in the
// output are the layout's own. Boxes are drawn inset by each node's gaps.
// Labels that cannot be embedded in XML text fail with INVALID_INPUT.
func Render(l graph.Layout, opts ...Option) ([]byte, error) {
	r := renderer{
		padding:  defaultPadding,
		fontSize: defaultFontSize,
		labels:   true,
		fill:     "#ffffff",
		stroke:   "#333333",
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.links == LinkAuto {
		r.links = autoLinks(l)
	}

	for _, n := range l.Nodes {
		if err := errors.ValidateNodeLabel(n.DisplayLabel()); err != nil {
			return nil, err
		}
	}

	b := l.Bounds
	x, y := b.Left-r.padding, b.Top-r.padding
	w, h := b.Width()+2*r.padding, b.Height()+2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		x, y, w, h, w, h)
	fmt.Fprintf(&buf, `  <g class="links" fill="none" stroke="%s" stroke-width="1.5">`+"\n", r.stroke)
	horizontal := orient.Direction(l.Direction).Horizontal()
	idx := l.Index()
	for _, e := range l.Edges {
		from, to := &l.Nodes[idx[e.From]], &l.Nodes[idx[e.To]]
		fmt.Fprintf(&buf, `    <path d="%s"/>`+"\n", linkPath(r.links, from, to, horizontal))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for i := range l.Nodes {
		r.renderNode(&buf, &l.Nodes[i])
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func autoLinks(l graph.Layout) LinkStyle {
	switch {
	case l.Radial:
		return LinkStraight
	case l.Algorithm == "indented":
		return LinkElbow
	default:
		return LinkCurve
	}
}

func (r *renderer) renderNode(buf *bytes.Buffer, n *graph.Node) {
	x, y, w, h := n.Inner()
	fmt.Fprintf(buf, `    <rect id="node-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.0f" fill="%s" stroke="%s"/>`+"\n",
		escape(n.ID), x, y, max(w, 0), max(h, 0), nodeRadius, r.fill, r.stroke)
	if !r.labels {
		return
	}
	cx, cy := n.Center()
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.0f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		cx, cy, r.fontSize, escape(n.DisplayLabel()))
}

func linkPath(style LinkStyle, from, to *graph.Node, horizontal bool) string {
	px, py := from.Center()
	cx, cy := to.Center()
	switch style {
	case LinkStraight:
		return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f", px, py, cx, cy)
	case LinkElbow:
		ix, _, iw, _ := to.Inner()
		end := ix
		if cx < px {
			end = ix + iw
		}
		if horizontal {
			return fmt.Sprintf("M%.2f,%.2f V%.2f H%.2f", px, py, cy, end)
		}
		_, iy, _, ih := to.Inner()
		end = iy
		if cy < py {
			end = iy + ih
		}
		return fmt.Sprintf("M%.2f,%.2f H%.2f V%.2f", px, py, cx, end)
	default:
		if horizontal {
			mx := (px + cx) / 2
			return fmt.Sprintf("M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f", px, py, mx, py, mx, cy, cx, cy)
		}
		my := (py + cy) / 2
		return fmt.Sprintf("M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f", px, py, px, my, cx, my, cx, cy)
	}
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
