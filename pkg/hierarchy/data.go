package hierarchy

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Data is a raw input node: an untyped record decoded from JSON or built by
// hand. Recognized keys are id, name, label, children, width, height, hgap,
// vgap, preH, preV, collapsed and side. Every other key is user data that the
// layout carries through untouched.
type Data map[string]any

// Tree is either raw [Data] or an already built [*Node]. Layout entry points
// accept both: raw data is built into a fresh tree, a built node is reused in
// place. The interface is sealed.
type Tree interface {
	tree()
}

func (Data) tree()  {}
func (*Node) tree() {}

// ID returns the identity of d: the id key, falling back to name.
// Non-string identifiers are formatted with fmt.
func (d Data) ID() string {
	for _, key := range []string{"id", "name"} {
		switch v := d[key].(type) {
		case nil:
		case string:
			if v != "" {
				return v
			}
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}

// Label returns the label key, or "" when absent.
func (d Data) Label() string {
	if s, ok := d["label"].(string); ok {
		return s
	}
	return ""
}

// Children returns the children key as a slice of Data. Entries that are not
// objects are skipped.
func (d Data) Children() []Data {
	switch v := d["children"].(type) {
	case []Data:
		return v
	case []map[string]any:
		out := make([]Data, len(v))
		for i, c := range v {
			out[i] = Data(c)
		}
		return out
	case []any:
		out := make([]Data, 0, len(v))
		for _, c := range v {
			switch c := c.(type) {
			case Data:
				out = append(out, c)
			case map[string]any:
				out = append(out, Data(c))
			}
		}
		return out
	}
	return nil
}

// Collapsed reports whether the node asks for its subtree to be hidden.
func (d Data) Collapsed() bool {
	b, _ := d["collapsed"].(bool)
	return b
}

// Number returns the numeric value stored under key. Zero, missing and
// non-numeric values all report false, so callers fall back to defaults the
// same way for each of them.
func (d Data) Number(key string) (float64, bool) {
	var f float64
	switch v := d[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f == 0 || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

var recognizedKeys = map[string]bool{
	"id": true, "name": true, "label": true, "children": true,
	"width": true, "height": true, "hgap": true, "vgap": true,
	"preH": true, "preV": true, "collapsed": true, "side": true,
}

// UserData returns a copy of d without the recognized keys, or nil when
// nothing is left.
func (d Data) UserData() map[string]any {
	var out map[string]any
	for k, v := range d {
		if recognizedKeys[k] {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}
