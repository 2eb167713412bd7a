package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/treelayout/pkg/buildinfo"
	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/graph"
	"github.com/matzehuels/treelayout/pkg/hierarchy"
	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

// layoutRequest is the body of the layout and render endpoints.
type layoutRequest struct {
	Tree    map[string]any   `json:"tree"`
	Options pipeline.Options `json:"options"`
}

type algorithmInfo struct {
	Name             string   `json:"name"`
	Directions       []string `json:"directions"`
	DefaultDirection string   `json:"default_direction"`
	Radial           bool     `json:"radial"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	out := make([]algorithmInfo, 0, len(layout.Algorithms))
	for _, alg := range layout.Algorithms {
		info := algorithmInfo{
			Name:             alg.String(),
			DefaultDirection: alg.DefaultDirection().String(),
			Radial:           alg.SupportsRadial(),
		}
		for _, d := range alg.Directions() {
			info.Directions = append(info.Directions, d.String())
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"algorithms": out})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	tree, opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), tree, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}

	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	tree, opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), tree, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit))
	w.Header().Set("X-Layout-Id", result.Layout.ID)
	w.Write(result.Artifacts[format])
}

// decodeRequest reads the body on top of the server defaults. The algorithm
// comes from the URL; a default direction meant for another algorithm is
// dropped so the algorithm's own default applies.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (hierarchy.Data, pipeline.Options, error) {
	alg, err := layout.ParseAlgorithm(chi.URLParam(r, "algorithm"))
	if err != nil {
		return nil, pipeline.Options{}, err
	}

	req := layoutRequest{Options: s.defaults}
	req.Options.Formats = append([]string(nil), s.defaults.Formats...)
	if base, err := layout.ParseAlgorithm(s.defaults.Algorithm); err != nil || base != alg {
		req.Options.Direction = ""
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if len(req.Tree) == 0 {
		return nil, pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "tree is required")
	}

	req.Options.Algorithm = alg.String()
	return hierarchy.Data(req.Tree), req.Options, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
		err = errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
