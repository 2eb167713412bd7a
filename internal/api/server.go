// Package api serves the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /health                      liveness and build info
//	GET  /api/algorithms              algorithms and their directions
//	POST /api/layout/{algorithm}      {tree, options} -> layout JSON
//	POST /api/render/{algorithm}      {tree, options} -> artifact (?format=svg)
//
// Errors are JSON objects of the form {"error": "...", "code": "INVALID_INPUT"}
// with the status taken from [errors.HTTPStatus].
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treelayout/pkg/config"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// Server is the HTTP API server for treelayout.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	log      *log.Logger
	cfg      config.Server
	defaults pipeline.Options
}

// NewServer creates and configures the HTTP server. defaults seeds every
// request's options; fields present in the request body override them.
func NewServer(runner *pipeline.Runner, logger *log.Logger, cfg config.Server, defaults pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = config.DefaultRequestTimeout
	}
	defaults.Logger = nil
	s := &Server{
		runner:   runner,
		log:      logger,
		cfg:      cfg,
		defaults: defaults,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/algorithms", s.handleAlgorithms)
		r.Post("/layout/{algorithm}", s.handleLayout)
		r.Post("/render/{algorithm}", s.handleRender)
	})

	s.router = r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting treelayout API", "addr", s.cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
