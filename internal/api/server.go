// Package api exposes the edit engine over HTTP for the editor frontend.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"latex-editor/internal/generator"
)

// Server is the HTTP API server for the edit engine.
type Server struct {
	router    chi.Router
	generator generator.Service // nil when the caller supplies completions itself
}

// NewServer creates and configures the HTTP server. gen may be nil; the
// /v1/apply endpoint then requires a completion in the request body.
func NewServer(gen generator.Service) *Server {
	s := &Server{generator: gen}
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
	r.Use(RequestLogger())

	r.Get("/health", s.handleHealth)
	r.Post("/v1/scan", s.handleScan)
	r.Post("/v1/locate", s.handleLocate)
	r.Post("/v1/apply", s.handleApply)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
