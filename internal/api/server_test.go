package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/treelayout/pkg/cache"
	"github.com/matzehuels/treelayout/pkg/config"
	"github.com/matzehuels/treelayout/pkg/graph"
	"github.com/matzehuels/treelayout/pkg/observability"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

const sampleBody = `{"tree": {"id": "root", "children": [{"id": "a"}, {"id": "b"}]}, "options": %s}`

func newTestServer(t *testing.T, cfg config.Server, defaults pipeline.Options) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, logger)
	return NewServer(runner, logger, cfg, defaults)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func body(opts string) string {
	return strings.Replace(sampleBody, "%s", opts, 1)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, config.Server{}, pipeline.Options{})
	rec := do(t, s, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil || out.Status != "ok" {
		t.Errorf("health body: %+v, %v", out, err)
	}
	if _, err := uuid.Parse(rec.Header().Get("X-Request-Id")); err != nil {
		t.Errorf("X-Request-Id %q is not a UUID: %v", rec.Header().Get("X-Request-Id"), err)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer(t, config.Server{}, pipeline.Options{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "trace-42")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "trace-42" {
		t.Errorf("X-Request-Id = %q, want trace-42", got)
	}
}

func TestAlgorithms(t *testing.T) {
	s := newTestServer(t, config.Server{}, pipeline.Options{})
	rec := do(t, s, http.MethodGet, "/api/algorithms", "")

	var out struct {
		Algorithms []algorithmInfo `json:"algorithms"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	want := []algorithmInfo{
		{Name: "compact-box", Directions: []string{"LR", "RL", "TB", "BT"}, DefaultDirection: "LR", Radial: true},
		{Name: "dendrogram", Directions: []string{"LR", "RL", "TB", "BT"}, DefaultDirection: "LR", Radial: true},
		{Name: "indented", Directions: []string{"LR", "RL", "H"}, DefaultDirection: "LR"},
		{Name: "mindmap", Directions: []string{"H", "V"}, DefaultDirection: "H", Radial: true},
	}
	if diff := cmp.Diff(want, out.Algorithms); diff != "" {
		t.Errorf("algorithms (-want +got):\n%s", diff)
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer(t, config.Server{}, pipeline.Options{})

	rec := do(t, s, http.MethodPost, "/api/layout/compact", body(`{"direction": "TB"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}

	l, err := graph.UnmarshalLayout(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("response is not a layout: %v", err)
	}
	if l.Algorithm != "compact-box" || l.Direction != "TB" {
		t.Errorf("layout tagged %s/%s", l.Algorithm, l.Direction)
	}
	root := l.Root()
	if root.X != -45 || root.Y != -54 {
		t.Errorf("root at (%g, %g), want (-45, -54)", root.X, root.Y)
	}

	again := do(t, s, http.MethodPost, "/api/layout/compact-box", body(`{"direction": "tb"}`))
	if got := again.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestLayoutErrors(t *testing.T) {
	s := newTestServer(t, config.Server{}, pipeline.Options{})

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"UnknownAlgorithm", "/api/layout/sunburst", body(`{}`), http.StatusBadRequest, "INVALID_ALGORITHM"},
		{"BadDirection", "/api/layout/mindmap", body(`{"direction": "TB"}`), http.StatusBadRequest, "INVALID_DIRECTION"},
		{"RadialIndented", "/api/layout/indented", body(`{"radial": true}`), http.StatusBadRequest, "INVALID_INPUT"},
		{"MalformedJSON", "/api/layout/mindmap", `{"tree": `, http.StatusBadRequest, "INVALID_INPUT"},
		{"UnknownOption", "/api/layout/mindmap", body(`{"colour": "red"}`), http.StatusBadRequest, "INVALID_INPUT"},
		{"MissingTree", "/api/layout/mindmap", `{"options": {}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"EmptyTree", "/api/layout/mindmap", `{"tree": {}}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			out := decodeError(t, rec)
			if out["code"] != tt.code {
				t.Errorf("code = %q, want %q (%s)", out["code"], tt.code, out["error"])
			}
			if out["error"] == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	s := newTestServer(t, config.Server{MaxBodyBytes: 16}, pipeline.Options{})
	rec := do(t, s, http.MethodPost, "/api/layout/mindmap", body(`{}`))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t, config.Server{}, pipeline.Options{})

	tests := []struct {
		query       string
		contentType string
		contains    string
	}{
		{"", "image/svg+xml", "<svg"},
		{"?format=svg", "image/svg+xml", "<svg"},
		{"?format=dot", "text/vnd.graphviz; charset=utf-8", "digraph"},
		{"?format=txt", "text/plain; charset=utf-8", "root"},
		{"?format=json", "application/json", `"algorithm": "dendrogram"`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/render/dendrogram"+tt.query, body(`{}`))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if rec.Header().Get("X-Layout-Id") == "" {
				t.Error("missing X-Layout-Id")
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}

	rec := do(t, s, http.MethodPost, "/api/render/dendrogram?format=gif", body(`{}`))
	if out := decodeError(t, rec); rec.Code != http.StatusBadRequest || out["code"] != "INVALID_FORMAT" {
		t.Errorf("gif: status %d, body %v", rec.Code, out)
	}
}

func TestDefaultsFromConfig(t *testing.T) {
	s := newTestServer(t, config.Server{}, pipeline.Options{Algorithm: "mindmap", Direction: "V", HGap: 4})

	tests := []struct {
		path    string
		wantDir string
	}{
		{"/api/layout/mindmap", "V"},
		{"/api/layout/dendrogram", "LR"},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodPost, tt.path, body(`{}`))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d: %s", tt.path, rec.Code, rec.Body)
		}
		l, err := graph.UnmarshalLayout(rec.Body.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if l.Direction != tt.wantDir {
			t.Errorf("%s: direction = %q, want %q", tt.path, l.Direction, tt.wantDir)
		}
		if got := l.Root().HGap; got != 4 {
			t.Errorf("%s: root hgap = %g, want 4", tt.path, got)
		}
	}
}

type recordingHTTPHooks struct {
	mu        sync.Mutex
	requests  []string
	responses []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t, config.Server{}, pipeline.Options{})
	do(t, s, http.MethodGet, "/health", "")
	do(t, s, http.MethodPost, "/api/layout/nope", body(`{}`))

	if diff := cmp.Diff([]string{"GET /health", "POST /api/layout/nope"}, hooks.requests); diff != "" {
		t.Errorf("requests (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{200, 400}, hooks.responses); diff != "" {
		t.Errorf("responses (-want +got):\n%s", diff)
	}
}
