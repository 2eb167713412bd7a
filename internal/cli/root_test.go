package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/graph"
	tlio "github.com/matzehuels/treelayout/pkg/io"
)

const sampleTree = `{"id": "root", "children": [
  {"id": "a", "children": [{"id": "a1"}, {"id": "a2"}]},
  {"id": "b"}
]}`

// runCLI executes the root command with args and a config file path that
// does not exist by default, so the user's own config never leaks in.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	c.stdin = strings.NewReader(sampleTree)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTree(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, []byte(sampleTree), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	want := []string{"completion", "explore", "layout", "render", "serve", "show", "visualize"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("subcommands (-want +got):\n%s", diff)
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeTree(t)
	if _, err := runCLI(t, "layout", input, "-a", "dendrogram", "-d", "tb"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := graph.ReadLayoutFile(strings.TrimSuffix(input, ".json") + ".layout.json")
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.Algorithm != "dendrogram" || l.Direction != "TB" || len(l.Nodes) != 5 {
		t.Errorf("layout = %s/%s with %d nodes", l.Algorithm, l.Direction, len(l.Nodes))
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	input := writeTree(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"BadAlgorithm", []string{"layout", input, "-a", "sunburst"}, errors.ErrCodeInvalidAlgorithm},
		{"BadDirection", []string{"layout", input, "-a", "mindmap", "-d", "LR"}, errors.ErrCodeInvalidDirection},
		{"RadialIndented", []string{"layout", input, "-a", "indented", "--radial"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := runCLI(t, "layout", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing input should fail")
	}
}

func TestRenderAndVisualize(t *testing.T) {
	input := writeTree(t)
	base := strings.TrimSuffix(input, ".json")

	if _, err := runCLI(t, "render", input, "-a", "mindmap", "-f", "svg,dot,txt,json"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{"svg", "dot", "txt", "layout.json"} {
		if _, err := os.Stat(base + "." + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
	if _, err := tlio.ImportJSON(input); err != nil {
		t.Errorf("input tree was clobbered: %v", err)
	}

	// visualize reads the layout back and writes next to the tree.
	layoutPath := base + ".layout.json"
	if err := os.Remove(base + ".svg"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "visualize", layoutPath, "--links", "straight"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("visualize output: %v", err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output starts with %q", svg[:min(len(svg), 20)])
	}
}

func TestRenderSingleOutputPath(t *testing.T) {
	input := writeTree(t)
	out := filepath.Join(t.TempDir(), "preview.txt")
	if _, err := runCLI(t, "render", input, "-f", "txt", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "a2") {
		t.Errorf("text preview missing a2:\n%s", data)
	}
}

func TestShowFromStdin(t *testing.T) {
	out, err := runCLI(t, "show", "-", "-d", "TB")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"compact-box TB", "root", "a1", "Depth"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigFileDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[layout]\nalgorithm = \"mindmap\"\ndirection = \"V\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	input := writeTree(t)
	layoutPath := strings.TrimSuffix(input, ".json") + ".layout.json"

	if _, err := runCLI(t, "--config", cfgPath, "layout", input); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := graph.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if l.Algorithm != "mindmap" || l.Direction != "V" {
		t.Errorf("config defaults gave %s/%s, want mindmap/V", l.Algorithm, l.Direction)
	}

	// A flag wins; the configured direction is dropped with the algorithm.
	if _, err := runCLI(t, "--config", cfgPath, "layout", input, "-a", "indented"); err != nil {
		t.Fatalf("layout with flag: %v", err)
	}
	if l, _ = graph.ReadLayoutFile(layoutPath); l.Algorithm != "indented" || l.Direction != "LR" {
		t.Errorf("flag override gave %s/%s, want indented/LR", l.Algorithm, l.Direction)
	}

	if _, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "layout", input); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v", err)
	}
}

func TestCompletion(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "treelayout") {
		t.Error("bash completion should mention the program name")
	}
}
