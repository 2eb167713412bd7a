package layout

import (
	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/layout/orient"
)

// Algorithm names a positioning algorithm.
type Algorithm string

const (
	AlgCompactBox Algorithm = "compact-box"
	AlgDendrogram Algorithm = "dendrogram"
	AlgIndented   Algorithm = "indented"
	AlgMindmap    Algorithm = "mindmap"
)

// Algorithms lists every algorithm in display order.
var Algorithms = []Algorithm{AlgCompactBox, AlgDendrogram, AlgIndented, AlgMindmap}

var directions = map[Algorithm][]orient.Direction{
	AlgCompactBox: {orient.LR, orient.RL, orient.TB, orient.BT},
	AlgDendrogram: {orient.LR, orient.RL, orient.TB, orient.BT},
	AlgIndented:   {orient.LR, orient.RL, orient.H},
	AlgMindmap:    {orient.H, orient.V},
}

// Directions returns the directions a supports, default first.
func (a Algorithm) Directions() []orient.Direction {
	return directions[a]
}

// DefaultDirection is the direction used when none is given.
func (a Algorithm) DefaultDirection() orient.Direction {
	if d := directions[a]; len(d) > 0 {
		return d[0]
	}
	return orient.LR
}

// SupportsRadial reports whether a honors radial mode.
func (a Algorithm) SupportsRadial() bool { return a != AlgIndented }

func (a Algorithm) String() string { return string(a) }

// ParseAlgorithm accepts an algorithm name. "compact" and "compactbox" are
// accepted for compact-box.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "compact", "compactbox", "compact-box":
		return AlgCompactBox, nil
	}
	a := Algorithm(s)
	if _, ok := directions[a]; ok {
		return a, nil
	}
	names := make([]string, len(Algorithms))
	for i, alg := range Algorithms {
		names[i] = string(alg)
	}
	return "", errors.ValidateChoice(errors.ErrCodeInvalidAlgorithm, "algorithm", s, names)
}
