package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/treelayout/pkg/graph"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		Algorithm: "mindmap",
		Direction: "H",
		Bounds:    graph.Bounds{Right: 162, Bottom: 144},
		Nodes: []graph.Node{
			{ID: "root", X: 0, Y: 36, Width: 54, Height: 72},
			{ID: "a", Parent: "root", Depth: 1, Side: "right", X: 108, Y: 0, Width: 54, Height: 72},
			{ID: "a1", Parent: "a", Depth: 2, Side: "right", X: 162, Y: 0, Width: 54, Height: 72},
			{ID: "b", Label: "Bee", Parent: "root", Depth: 1, Side: "left", X: -54, Y: 72.125, Width: 54, Height: 72},
		},
	}
}

func TestRenderOutline(t *testing.T) {
	out := renderOutline(sampleLayout())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("outline has %d lines, want 4:\n%s", len(lines), out)
	}

	wantPrefix := []string{"root", "a", "a1", "Bee"}
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " │├╰─")
		if !strings.HasPrefix(trimmed, wantPrefix[i]+" ") {
			t.Errorf("line %d = %q, want label %q", i, line, wantPrefix[i])
		}
	}
	if !strings.Contains(lines[3], "(-54, 72.13)") {
		t.Errorf("coordinates not rounded: %q", lines[3])
	}
	if renderOutline(graph.Layout{}) != "" {
		t.Error("empty layout should give an empty outline")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(sampleLayout())
	for _, want := range []string{"Node", "Side", "root", "Bee", "right", "left", "—", "72.13"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteShow(t *testing.T) {
	var buf bytes.Buffer
	writeShow(&buf, sampleLayout(), false, true)
	out := buf.String()
	if !strings.HasPrefix(out, "mindmap H") || !strings.Contains(out, "162 × 144") {
		t.Errorf("header = %q", strings.SplitN(out, "\n", 2)[0])
	}
	if strings.Contains(out, "╰") {
		t.Error("outline should be omitted")
	}
}

func TestFormatCoord(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		-0.001:   "0",
		18:       "18",
		-45.5:    "-45.5",
		12.34567: "12.35",
	}
	for in, want := range tests {
		if got := formatCoord(in); got != want {
			t.Errorf("formatCoord(%v) = %q, want %q", in, got, want)
		}
	}
}
