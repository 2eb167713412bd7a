package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/graph"
	"github.com/matzehuels/treelayout/pkg/hierarchy"
	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/pipeline"
	"github.com/matzehuels/treelayout/pkg/render/textmap"
)

// Explorer styles
var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle       = lipgloss.NewStyle().Foreground(colorRed)
)

// chromeRows is the number of lines the header and footer take.
const chromeRows = 5

// =============================================================================
// ExploreModel - Interactive layout preview
// =============================================================================

// ExploreModel is the bubbletea model behind `treelayout explore`. Every key
// press recomputes the layout through the runner; the runner's cache makes
// revisiting a combination instant.
type ExploreModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	tree   hierarchy.Data
	opts   pipeline.Options

	Layout graph.Layout
	Err    error
	Width  int
	Height int
}

// NewExploreModel creates a model and computes the first layout.
func NewExploreModel(ctx context.Context, runner *pipeline.Runner, tree hierarchy.Data, opts pipeline.Options) ExploreModel {
	m := ExploreModel{
		ctx:    ctx,
		runner: runner,
		tree:   tree,
		opts:   opts,
		Width:  80,
		Height: 24,
	}
	m.recompute()
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "a", "tab":
			m.cycleAlgorithm(1)
		case "A", "shift+tab":
			m.cycleAlgorithm(-1)
		case "d", "right", "l":
			m.cycleDirection(1)
		case "D", "left", "h":
			m.cycleDirection(-1)
		case "r":
			if m.algorithm().SupportsRadial() {
				m.opts.Radial = !m.opts.Radial
			}
		case "f":
			m.opts.FreeRoot = !m.opts.FreeRoot
		default:
			return m, nil
		}
		m.recompute()
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, 20)
		m.Height = max(msg.Height, chromeRows+3)
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	for i, alg := range layout.Algorithms {
		if i > 0 {
			b.WriteString(StyleDim.Render(" │ "))
		}
		if alg == m.algorithm() {
			b.WriteString(tabActiveStyle.Render(alg.String()))
		} else {
			b.WriteString(tabInactiveStyle.Render(alg.String()))
		}
	}
	b.WriteString("\n")

	status := []string{"direction " + StyleHighlight.Render(m.opts.Direction)}
	if m.opts.Radial {
		status = append(status, StyleHighlight.Render("radial"))
	}
	if m.opts.FreeRoot {
		status = append(status, StyleHighlight.Render("free root"))
	}
	if m.Err == nil {
		status = append(status, fmt.Sprintf("%d nodes", len(m.Layout.Nodes)))
	}
	b.WriteString(StyleDim.Render(strings.Join(status, " · ")))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(errorStyle.Render(errors.UserMessage(m.Err)))
	} else {
		b.WriteString(textmap.Render(m.Layout, textmap.Options{Cols: m.Width, MaxRows: m.Height - chromeRows}))
	}
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("a/tab algorithm  d/←→ direction  r radial  f free root  q quit"))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func (m *ExploreModel) algorithm() layout.Algorithm {
	return layout.Algorithm(m.opts.Algorithm)
}

func (m *ExploreModel) cycleAlgorithm(step int) {
	i := slices.Index(layout.Algorithms, m.algorithm())
	next := layout.Algorithms[wrap(i+step, len(layout.Algorithms))]
	m.opts.Algorithm = next.String()
	m.opts.Direction = next.DefaultDirection().String()
	if !next.SupportsRadial() {
		m.opts.Radial = false
	}
}

func (m *ExploreModel) cycleDirection(step int) {
	dirs := m.algorithm().Directions()
	if len(dirs) == 0 {
		return
	}
	i := slices.Index(dirs, m.algorithm().DefaultDirection())
	for j, d := range dirs {
		if d.String() == m.opts.Direction {
			i = j
		}
	}
	m.opts.Direction = dirs[wrap(i+step, len(dirs))].String()
}

func (m *ExploreModel) recompute() {
	opts := m.opts
	l, err := m.runner.ComputeLayout(m.ctx, m.tree, opts)
	m.Layout, m.Err = l, err
	if err == nil {
		// Keep the normalized names so cycling starts from a known entry.
		m.opts.Algorithm = l.Algorithm
		m.opts.Direction = l.Direction
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
