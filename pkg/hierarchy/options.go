package hierarchy

import "unicode/utf8"

// Defaults for node geometry.
const (
	// PEM is the width allotted per label character by the default width rule.
	PEM = 18.0

	// DefaultHeight is the intrinsic node height when none is given.
	DefaultHeight = 36.0

	// DefaultGap is the half gap on each axis when none is given.
	DefaultGap = 18.0
)

// Options controls how raw data turns into nodes. Every getter is optional;
// a nil getter uses the documented default.
type Options struct {
	// GetID defaults to the id key, falling back to name.
	GetID func(Data) string

	// GetChildren defaults to the children key.
	GetChildren func(Data) []Data

	// GetWidth defaults to the width key, else label length times PEM
	// (a single blank when there is no label).
	GetWidth func(Data) float64

	// GetHeight defaults to the height key, else DefaultHeight.
	GetHeight func(Data) float64

	// GetHGap and GetVGap default to the hgap/vgap keys, else DefaultGap.
	GetHGap func(Data) float64
	GetVGap func(Data) float64

	// GetPreH and GetPreV default to the preH/preV keys, else 0.
	GetPreH func(Data) float64
	GetPreV func(Data) float64

	// GetSide overrides the side split rule for H and V layouts.
	GetSide SideFunc

	// FlatWidth zeroes every node's width after construction. Dendrograms
	// draw nodes as points on the layered axis.
	FlatWidth bool
}

// WithDefaults returns a copy of o with every nil getter replaced by its
// default.
func (o Options) WithDefaults() Options {
	if o.GetID == nil {
		o.GetID = Data.ID
	}
	if o.GetChildren == nil {
		o.GetChildren = Data.Children
	}
	if o.GetWidth == nil {
		o.GetWidth = defaultWidth
	}
	if o.GetHeight == nil {
		o.GetHeight = numberOr("height", DefaultHeight)
	}
	if o.GetHGap == nil {
		o.GetHGap = numberOr("hgap", DefaultGap)
	}
	if o.GetVGap == nil {
		o.GetVGap = numberOr("vgap", DefaultGap)
	}
	if o.GetPreH == nil {
		o.GetPreH = numberOr("preH", 0)
	}
	if o.GetPreV == nil {
		o.GetPreV = numberOr("preV", 0)
	}
	return o
}

func defaultWidth(d Data) float64 {
	if w, ok := d.Number("width"); ok {
		return w
	}
	label := d.Label()
	if label == "" {
		label = " "
	}
	return float64(utf8.RuneCountInString(label)) * PEM
}

func numberOr(key string, fallback float64) func(Data) float64 {
	return func(d Data) float64 {
		if v, ok := d.Number(key); ok {
			return v
		}
		return fallback
	}
}
