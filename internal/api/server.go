package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dd-japan/fargate-data-api/internal/shared"
	"github.com/dd-japan/fargate-data-api/internal/store"
)

// ServerConfig carries the dependencies for a Server. The store is
// constructed by the caller and injected so tests can run against
// fresh instances.
type ServerConfig struct {
	Address string
	Store   *store.Store
	Logger  *shared.Logger
	Metrics *Metrics
	Tracer  *Tracer
}

// Server represents the HTTP API server
type Server struct {
	httpServer *http.Server
	logger     *shared.Logger
}

// NewServer creates a new API server instance
func NewServer(cfg ServerConfig) *Server {
	handler := NewHandler(cfg.Store, cfg.Logger, cfg.Metrics)
	router := NewRouter(handler, cfg.Logger, cfg.Metrics, cfg.Tracer)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
