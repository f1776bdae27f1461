package api

import (
	"net/http"

	"github.com/dd-japan/fargate-data-api/internal/shared"

	"github.com/gorilla/mux"
)

// NewRouter creates and configures the HTTP router
func NewRouter(handler *Handler, logger *shared.Logger, metrics *Metrics, tracer *Tracer) http.Handler {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(
		LoggingMiddleware(logger),
		RecoveryMiddleware(logger),
		metrics.Middleware,
	)
	if tracer != nil {
		router.Use(tracer.TracingMiddleware)
	}

	router.HandleFunc("/", handler.Root).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	router.HandleFunc("/api/data", handler.ListData).Methods(http.MethodGet)
	router.HandleFunc("/api/data", handler.CreateData).Methods(http.MethodPost)
	router.HandleFunc("/api/data", handler.ClearData).Methods(http.MethodDelete)
	router.HandleFunc("/api/data/{id}", handler.GetDataByID).Methods(http.MethodGet)
	router.HandleFunc("/api/status", handler.Status).Methods(http.MethodGet)

	// Prometheus exposition
	router.Handle("/metrics", metrics.ExportHandler()).Methods(http.MethodGet)

	// Uniform envelopes for unmatched routes
	router.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)

	return router
}
