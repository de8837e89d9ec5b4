package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/periodize/internal/engine"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps request bodies; programs are short lists of identifiers.
const maxBodyBytes = 1 << 20

// Server holds dependencies for HTTP handlers.
type Server struct {
	engine *engine.Engine
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
// An empty apiKey leaves the API unauthenticated.
func New(eng *engine.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		engine: eng,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))

		// Registry
		r.Get("/abilities", s.handleAbilities)
		r.Get("/blocks", s.handleBlocks)
		r.Get("/blocks/{kind}", s.handleGetBlock)

		// Simulation
		r.Post("/intervals", s.handleIntervals)
		r.Post("/simulate", s.handleSimulate)
		r.Post("/simulate/compare", s.handleCompare)
		r.Post("/schedule", s.handleSchedule)
		r.Get("/microcycle", s.handleMicrocycle)
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// MountMCP exposes an MCP handler at /mcp behind the same API key as the
// REST endpoints.
func (s *Server) MountMCP(h http.Handler) {
	s.router.With(APIKeyAuth(s.apiKey)).Handle("/mcp", h)
	s.router.With(APIKeyAuth(s.apiKey)).Handle("/mcp/*", h)
}
