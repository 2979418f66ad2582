// Package api serves the conversion pipeline over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pagefit/pkg/archive"
	"github.com/matzehuels/pagefit/pkg/buildinfo"
	"github.com/matzehuels/pagefit/pkg/observability"
	"github.com/matzehuels/pagefit/pkg/pipeline"
)

// Server is the HTTP API server for pagefit.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	store    archive.Store
	counters *observability.Counters
	log      *log.Logger
}

// NewServer creates and configures the HTTP server. A nil store keeps
// reports in memory; nil counters disable the metrics endpoint.
func NewServer(runner *pipeline.Runner, store archive.Store, counters *observability.Counters, logger *log.Logger) *Server {
	if store == nil {
		store = archive.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		store:    store,
		counters: counters,
		log:      logger,
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
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/papers", s.handlePapers)
		r.Post("/convert", s.handleConvert)
		r.Post("/stats", s.handleStats)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.counters == nil {
		jsonError(w, "metrics disabled", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.counters.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
