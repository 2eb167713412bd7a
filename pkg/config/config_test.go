package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[layout]
algorithm = "mindmap"
direction = "V"
hgap = 24
mindmap_sep = 4

[render]
formats = ["svg", "txt"]
links = "straight"

[server]
addr = ":9090"
request_timeout = "5s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantOpts := pipeline.Options{
		Algorithm:  "mindmap",
		Direction:  "V",
		HGap:       24,
		MindmapSep: 4,
		Formats:    []string{"svg", "txt"},
		Links:      "straight",
	}
	if diff := cmp.Diff(wantOpts, cfg.Options(), cmpopts.IgnoreUnexported(pipeline.Options{})); diff != "" {
		t.Errorf("Options (-want +got):\n%s", diff)
	}

	wantServer := Server{Addr: ":9090", CacheEntries: 1024, MaxBodyBytes: DefaultMaxBodyBytes, RequestTimeout: 5 * time.Second}
	if diff := cmp.Diff(wantServer, cfg.Server); diff != "" {
		t.Errorf("Server (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"Syntax", "[layout\nalgorithm = 1", errors.ErrCodeInvalidConfig},
		{"UnknownKey", "[layout]\nalgoritm = \"mindmap\"", errors.ErrCodeInvalidConfig},
		{"BadAlgorithm", "[layout]\nalgorithm = \"sunburst\"", errors.ErrCodeInvalidConfig},
		{"BadDirection", "[layout]\nalgorithm = \"mindmap\"\ndirection = \"LR\"", errors.ErrCodeInvalidConfig},
		{"BadFormat", "[render]\nformats = [\"gif\"]", errors.ErrCodeInvalidConfig},
		{"NegativeCache", "[server]\ncache_entries = -1", errors.ErrCodeInvalidConfig},
		{"WrongType", "[layout]\nhgap = \"wide\"", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// No file yet: defaults, no error.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing default file should give defaults (-want +got):\n%s", diff)
	}

	if got, want := DefaultPath(), filepath.Join(dir, "treelayout", "config.toml"); got != want {
		t.Fatalf("DefaultPath() = %q, want %q", got, want)
	}
	if err := os.MkdirAll(filepath.Dir(DefaultPath()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(DefaultPath(), []byte("[layout]\nalgorithm = \"indented\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load with file: %v", err)
	}
	if cfg.Layout.Algorithm != "indented" {
		t.Errorf("Algorithm = %q, want indented", cfg.Layout.Algorithm)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[server]\naddr = \":9090\"\ncache_entries = 10\n")
	t.Setenv("TREELAYOUT_ADDR", "127.0.0.1:7000")
	t.Setenv("TREELAYOUT_CACHE_ENTRIES", "not-a-number")
	t.Setenv("TREELAYOUT_REQUEST_TIMEOUT", "2m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Server{Addr: "127.0.0.1:7000", CacheEntries: 10, MaxBodyBytes: DefaultMaxBodyBytes, RequestTimeout: 2 * time.Minute}
	if diff := cmp.Diff(want, cfg.Server); diff != "" {
		t.Errorf("Server (-want +got):\n%s", diff)
	}
}
