// Package orient turns a canonical tree layout into any of the six supported
// directions.
//
// Positioning algorithms only know two orientations: left-to-right when
// horizontal and top-to-bottom otherwise. [Run] derives the rest by mirroring
// (RL, BT) or by splitting the root's children into two halves that are laid
// out separately and joined back together (H, V). It then anchors the root
// and optionally remaps the result onto polar coordinates.
package orient

import (
	"math"
	"strings"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/hierarchy"
)

// Direction is a layout direction token.
type Direction string

const (
	LR Direction = "LR" // left to right
	RL Direction = "RL" // right to left
	TB Direction = "TB" // top to bottom
	BT Direction = "BT" // bottom to top
	H  Direction = "H"  // both sides, horizontally
	V  Direction = "V"  // both sides, vertically
)

// All lists every direction in canonical order.
var All = []Direction{LR, RL, TB, BT, H, V}

// Horizontal reports whether depth advances along the x axis.
func (d Direction) Horizontal() bool {
	return d == LR || d == RL || d == H
}

// Split reports whether d lays the root's children out on both sides.
func (d Direction) Split() bool {
	return d == H || d == V
}

func (d Direction) String() string { return string(d) }

// ParseDirection parses a direction token, ignoring case and surrounding
// space.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if err := Validate(d, All); err != nil {
		return "", err
	}
	return d, nil
}

// Validate returns an INVALID_DIRECTION error unless d is one of allowed.
// A nil allowed list means All.
func Validate(d Direction, allowed []Direction) error {
	if allowed == nil {
		allowed = All
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return errors.ValidateChoice(errors.ErrCodeInvalidDirection, "direction", string(d), names)
}

// Algorithm positions a tree in canonical orientation.
type Algorithm func(root *hierarchy.Node, horizontal bool)

// Combiner lays out the two halves of a split direction and joins them
// around root.
type Combiner func(root, left, right *hierarchy.Node, horizontal bool, algo Algorithm)

// Config selects the direction and post-processing for [Run].
type Config struct {
	Direction Direction

	// Allowed restricts the accepted directions. Nil accepts all six.
	Allowed []Direction

	// FixedRoot anchors the root near the origin after layout.
	FixedRoot bool

	// Radial remaps the finished layout onto polar coordinates.
	Radial bool

	// Side overrides the split rule for H and V.
	Side hierarchy.SideFunc

	// Combine joins split halves. Nil means Mirrored.
	Combine Combiner
}

// Run validates cfg.Direction and lays out root with algo.
//
// An invalid direction is reported before root is touched.
func Run(root *hierarchy.Node, cfg Config, algo Algorithm) error {
	if err := Validate(cfg.Direction, cfg.Allowed); err != nil {
		return err
	}
	horizontal := cfg.Direction.Horizontal()

	switch cfg.Direction {
	case LR, TB:
		algo(root, horizontal)
	case RL:
		algo(root, horizontal)
		root.RightToLeft()
	case BT:
		algo(root, horizontal)
		root.BottomToTop()
	case H, V:
		left, right := hierarchy.Separate(root, cfg.Side)
		combine := cfg.Combine
		if combine == nil {
			combine = Mirrored
		}
		combine(root, left, right, horizontal, algo)
	}

	if cfg.FixedRoot {
		root.Translate(-(root.X + root.Width/2 + root.HGap), -(root.Y + root.Height/2 + root.VGap))
	}
	if cfg.Radial {
		radial(root, horizontal)
	}
	return nil
}

// Mirrored lays out both halves the same way, mirrors the left half across
// the layered axis and aligns the two half roots. The original root takes
// the left half's layered coordinate and the right half's packing
// coordinate. A result that ends up above (or left of) zero on the packing
// axis is moved back.
func Mirrored(root, left, right *hierarchy.Node, horizontal bool, algo Algorithm) {
	algo(left, horizontal)
	algo(right, horizontal)
	if horizontal {
		left.RightToLeft()
	} else {
		left.BottomToTop()
	}

	right.Translate(left.X-right.X, left.Y-right.Y)
	root.X = left.X
	root.Y = right.Y

	bb := root.BoundingBox()
	if horizontal {
		if bb.Top < 0 {
			root.Translate(0, -bb.Top)
		}
	} else if bb.Left < 0 {
		root.Translate(-bb.Left, 0)
	}
}

// Abutted places the mirrored left half directly against the right half,
// with the root straddling the seam. Indented outlines use it.
func Abutted(root, left, right *hierarchy.Node, horizontal bool, algo Algorithm) {
	algo(left, horizontal)
	left.RightToLeft()
	algo(right, horizontal)
	right.Translate(left.BoundingBox().Width, 0)
	root.X = right.X - root.Width/2
}

// radial maps the packing coordinate to an angle in [2π/n, 2π] and the
// layered distance from the root to a radius. The root lands on the origin.
// A layout with no packing span is left alone.
func radial(root *hierarchy.Node, horizontal bool) {
	pack := func(n *hierarchy.Node) float64 {
		if horizontal {
			return n.Y
		}
		return n.X
	}
	lay := func(n *hierarchy.Node) float64 {
		if horizontal {
			return n.X
		}
		return n.Y
	}

	count := 0
	lo, hi := math.Inf(1), math.Inf(-1)
	root.EachNode(func(n *hierarchy.Node) {
		count++
		lo = math.Min(lo, pack(n))
		hi = math.Max(hi, pack(n))
	})
	span := hi - lo
	if span == 0 {
		return
	}

	step := 2 * math.Pi / float64(count)
	rootLay := lay(root)
	root.EachNode(func(n *hierarchy.Node) {
		if n == root {
			n.X, n.Y = 0, 0
			return
		}
		angle := (pack(n)-lo)/span*(2*math.Pi-step) + step
		r := lay(n) - rootLay
		n.X, n.Y = math.Cos(angle)*r, math.Sin(angle)*r
	})
}
