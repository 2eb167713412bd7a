// Package textmap draws a positioned tree onto a character grid.
//
// The grid is a coarse preview for terminals: node labels are written at
// their scaled centers and links are traced with dots underneath. Cells are
// roughly twice as tall as they are wide, so the vertical scale is halved.
package textmap

import (
	"math"
	"strings"

	"github.com/matzehuels/treelayout/pkg/graph"
)

const (
	linkRune    = '·'
	cellAspect  = 0.5
	defaultCols = 80
)

// Options configures the grid size.
type Options struct {
	// Cols is the grid width. Zero means 80.
	Cols int

	// MaxRows caps the grid height. Zero means no cap.
	MaxRows int
}

// Render returns l drawn onto a grid of at most Cols columns. Lines carry no
// trailing spaces.
func Render(l graph.Layout, opts Options) string {
	if len(l.Nodes) == 0 {
		return ""
	}
	cols := opts.Cols
	if cols <= 0 {
		cols = defaultCols
	}

	b := l.Bounds
	scale := 1.0
	if b.Width() > 0 {
		scale = float64(cols-1) / b.Width()
	}
	rows := int(math.Ceil(b.Height()*scale*cellAspect)) + 1
	if opts.MaxRows > 0 && rows > opts.MaxRows {
		scale *= float64(opts.MaxRows-1) / float64(rows-1)
		rows = opts.MaxRows
	}

	g := newGrid(cols, rows)
	cell := func(n *graph.Node) (int, int) {
		x, y := n.Center()
		return int(math.Round((x - b.Left) * scale)), int(math.Round((y - b.Top) * scale * cellAspect))
	}

	idx := l.Index()
	for _, e := range l.Edges {
		x0, y0 := cell(&l.Nodes[idx[e.From]])
		x1, y1 := cell(&l.Nodes[idx[e.To]])
		g.line(x0, y0, x1, y1)
	}
	for i := range l.Nodes {
		x, y := cell(&l.Nodes[i])
		label := []rune(l.Nodes[i].DisplayLabel())
		g.text(x-len(label)/2, y, label)
	}
	return g.String()
}

type grid struct {
	cols, rows int
	cells      [][]rune
}

func newGrid(cols, rows int) *grid {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return &grid{cols: cols, rows: rows, cells: cells}
}

func (g *grid) set(x, y int, r rune) {
	if x >= 0 && x < g.cols && y >= 0 && y < g.rows {
		g.cells[y][x] = r
	}
}

// line traces a dotted segment with a DDA walk.
func (g *grid) line(x0, y0, x1, y1 int) {
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		return
	}
	dx := float64(x1-x0) / float64(steps)
	dy := float64(y1-y0) / float64(steps)
	for i := 0; i <= steps; i++ {
		g.set(int(math.Round(float64(x0)+dx*float64(i))), int(math.Round(float64(y0)+dy*float64(i))), linkRune)
	}
}

// text writes s starting at x, shifted left as needed to stay on the grid.
func (g *grid) text(x, y int, s []rune) {
	if len(s) > g.cols {
		s = s[:g.cols]
	}
	x = max(0, min(x, g.cols-len(s)))
	for i, r := range s {
		g.set(x+i, y, r)
	}
}

func (g *grid) String() string {
	lines := make([]string, g.rows)
	for i, row := range g.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
