package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/graph"
)

func sample() graph.Layout {
	return graph.Layout{
		Algorithm: "compact-box",
		Direction: "LR",
		Bounds:    graph.Bounds{Left: 0, Top: -36, Right: 108, Bottom: 108},
		Nodes: []graph.Node{
			{ID: "root", Label: "R & D", X: 0, Y: 0, Width: 54, Height: 72, HGap: 18, VGap: 18},
			{ID: "a", X: 54, Y: -36, Width: 54, Height: 72, HGap: 18, VGap: 18, Depth: 1, Parent: "root"},
			{ID: "b", X: 54, Y: 36, Width: 54, Height: 72, HGap: 18, VGap: 18, Depth: 1, Parent: "root"},
		},
		Edges: []graph.Edge{{From: "root", To: "a"}, {From: "root", To: "b"}},
	}
}

func TestRender(t *testing.T) {
	out, err := Render(sample())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)

	for _, want := range []string{
		`viewBox="-20.0 -56.0 148.0 184.0"`,
		`<rect id="node-root" x="18.00" y="18.00" width="18.00" height="36.00"`,
		`>R &amp; D</text>`,
		`>a</text>`,
		`<path d="M27.00,36.00 C54.00,36.00 54.00,0.00 81.00,0.00"/>`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := strings.Count(s, "<path "); got != 2 {
		t.Errorf("path count = %d, want 2", got)
	}
	if !strings.HasSuffix(s, "</svg>\n") {
		t.Error("document should end with </svg>")
	}
}

func TestRenderLinkStyles(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*graph.Layout)
		opts   []Option
		want   string
	}{
		{
			name:   "RadialIsStraight",
			mutate: func(l *graph.Layout) { l.Radial = true },
			want:   `<path d="M27.00,36.00 L81.00,0.00"/>`,
		},
		{
			name:   "IndentedIsElbow",
			mutate: func(l *graph.Layout) { l.Algorithm = "indented" },
			want:   `<path d="M27.00,36.00 V0.00 H72.00"/>`,
		},
		{
			name:   "VerticalCurve",
			mutate: func(l *graph.Layout) { l.Direction = "TB" },
			want:   `<path d="M27.00,36.00 C27.00,18.00 81.00,18.00 81.00,0.00"/>`,
		},
		{
			name: "Override",
			opts: []Option{WithLinks(LinkStraight)},
			want: `<path d="M27.00,36.00 L81.00,72.00"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sample()
			if tt.mutate != nil {
				tt.mutate(&l)
			}
			out, err := Render(l, tt.opts...)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(string(out), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRenderOptions(t *testing.T) {
	out, err := Render(sample(), WithoutLabels(), WithPadding(0), WithColors("#eee", "#f00"), WithFontSize(20))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "<text") {
		t.Error("WithoutLabels should drop text elements")
	}
	if !strings.Contains(s, `viewBox="0.0 -36.0 108.0 144.0"`) {
		t.Error("WithPadding(0) should fit the view box to the bounds")
	}
	if !strings.Contains(s, `fill="#eee" stroke="#f00"`) {
		t.Error("WithColors not applied to boxes")
	}
}

func TestRenderRejectsControlCharacters(t *testing.T) {
	l := sample()
	l.Nodes[1].Label = "bad\x01label"
	if _, err := Render(l); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render() error = %v, want INVALID_INPUT", err)
	}
}
