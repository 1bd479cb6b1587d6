package api

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/breaktimer/timerd/internal/timer"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port    int
	Version string
}

// Server is the HTTP server for the timer service.
type Server struct {
	config    ServerConfig
	mux       *http.ServeMux
	server    *http.Server
	logger    *log.Logger
	timersAPI *TimersAPI
}

// NewServer creates a server exposing the given timer service.
func NewServer(cfg ServerConfig, service *timer.Service, logger *log.Logger) *Server {
	s := &Server{
		config:    cfg,
		mux:       http.NewServeMux(),
		logger:    logger,
		timersAPI: NewTimersAPI(service, logger),
	}

	s.registerRoutes()

	handler := corsMiddleware(requestLogMiddleware(logger, s.mux))
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	return s
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	// Timer routes. The exact /timers/actions pattern takes precedence over
	// the /timers/ prefix match.
	s.mux.HandleFunc("/timers", s.timersAPI.HandleTimers)
	s.mux.HandleFunc("/timers/actions", s.timersAPI.HandleActions)
	s.mux.HandleFunc("/timers/", s.timersAPI.HandleTimerByID)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	version := s.config.Version
	if version == "" {
		version = "dev"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version,
	})
}

// Handler returns the fully wrapped HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}
