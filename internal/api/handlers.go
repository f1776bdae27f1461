package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/dd-japan/fargate-data-api/internal/shared"
	"github.com/dd-japan/fargate-data-api/internal/store"

	"github.com/gorilla/mux"
)

const (
	// ServiceName identifies this service in responses and traces
	ServiceName = "data-api"
	// Version is reported by the health and status endpoints
	Version = "1.0.0"
)

// Handler handles HTTP requests for the record store
type Handler struct {
	store   *store.Store
	logger  *shared.Logger
	metrics *Metrics
	started time.Time
}

// NewHandler creates a new API handler
func NewHandler(recordStore *store.Store, logger *shared.Logger, metrics *Metrics) *Handler {
	return &Handler{
		store:   recordStore,
		logger:  logger,
		metrics: metrics,
		started: time.Now(),
	}
}

// Root handles GET / requests with API information
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"message": "Data API for ECS Fargate",
		"service": ServiceName,
		"version": Version,
		"endpoints": map[string]string{
			"GET /":             "API information",
			"GET /health":       "Health check",
			"GET /api/data":     "Get all data items",
			"POST /api/data":    "Create new data item",
			"GET /api/data/:id": "Get specific data item",
			"DELETE /api/data":  "Clear all data items",
			"GET /api/status":   "Service status",
		},
		"timestamp": shared.Now(),
	}
	h.writeJSON(w, response, http.StatusOK)
}

// Health handles GET /health requests. Intended for orchestrator
// liveness probes, so it never touches the store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   ServiceName,
		"timestamp": shared.Now(),
		"version":   Version,
	}
	h.writeJSON(w, response, http.StatusOK)
}

// ListData handles GET /api/data requests for all records
func (h *Handler) ListData(w http.ResponseWriter, r *http.Request) {
	records := h.store.ListAll()
	h.logger.Info("GET /api/data - retrieved %d items", len(records))

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	response := map[string]interface{}{
		"success":   true,
		"data":      records,
		"count":     len(records),
		"timestamp": shared.Now(),
	}
	h.writeJSON(w, response, http.StatusOK)
}

// CreateData handles POST /api/data requests. The body may be any JSON
// value; only emptiness (including JSON null) is rejected.
func (h *Handler) CreateData(w http.ResponseWriter, r *http.Request) {
	// The POST path surfaces failure detail in its 500 response, a
	// looser diagnostics policy than the generic boundary elsewhere.
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("error creating data: %v", rec)
			h.writeJSON(w, map[string]interface{}{
				"success": false,
				"error":   "Internal server error",
				"details": fmt.Sprintf("%v", rec),
			}, http.StatusInternalServerError)
		}
	}()

	if !isJSONRequest(r) {
		h.writeError(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Request body cannot be read")
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		h.writeError(w, http.StatusBadRequest, "Request body cannot be empty")
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}
	if payload == nil {
		h.writeError(w, http.StatusBadRequest, "Request body cannot be empty")
		return
	}

	record := h.store.Append(payload, clientAddr(r))
	total := h.store.Len()
	h.metrics.RecordCreated(total)

	h.logger.Info("POST /api/data - created new item with ID: %s", record.ID)

	w.Header().Set("Cache-Control", "no-cache")
	response := map[string]interface{}{
		"success":     true,
		"message":     "Data created successfully",
		"item":        record,
		"total_items": total,
	}
	h.writeJSON(w, response, http.StatusCreated)
}

// GetDataByID handles GET /api/data/{id} requests
func (h *Handler) GetDataByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.logger.Info("GET /api/data/%s", id)

	record, found := h.store.FindByID(id)
	if !found {
		h.writeError(w, http.StatusNotFound, fmt.Sprintf("Item with ID %s not found", id))
		return
	}

	response := map[string]interface{}{
		"success":   true,
		"item":      record,
		"timestamp": shared.Now(),
	}
	h.writeJSON(w, response, http.StatusOK)
}

// Status handles GET /api/status requests with service statistics. The
// deployment environment is read from the process environment on every
// request so orchestrator-injected values are picked up live.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"service":     ServiceName,
		"status":      "running",
		"version":     Version,
		"environment": shared.EnvOr("ENVIRONMENT", "development"),
		"statistics": map[string]interface{}{
			"total_items":   h.store.Len(),
			"uptime":        time.Since(h.started).Round(time.Second).String(),
			"last_activity": shared.Now(),
		},
		"system_info": map[string]interface{}{
			"go_version": runtime.Version(),
			"platform":   runtime.GOOS,
		},
	}
	h.writeJSON(w, response, http.StatusOK)
}

// ClearData handles DELETE /api/data requests, removing all records
func (h *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	count := h.store.ClearAll()
	h.metrics.RecordsCleared(count)

	h.logger.Info("DELETE /api/data - cleared %d items", count)

	response := map[string]interface{}{
		"success":   true,
		"message":   fmt.Sprintf("Cleared %d items", count),
		"timestamp": shared.Now(),
	}
	h.writeJSON(w, response, http.StatusOK)
}

// NotFound handles requests to unmatched paths
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("404 for: %s %s", r.Method, r.URL.Path)
	h.writeJSON(w, map[string]interface{}{
		"success":        false,
		"error":          "Endpoint not found",
		"requested_path": r.URL.Path,
	}, http.StatusNotFound)
}

// MethodNotAllowed handles matched paths hit with an unsupported method
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("405 for: %s %s", r.Method, r.URL.Path)
	h.writeJSON(w, map[string]interface{}{
		"success":        false,
		"error":          "Method not allowed",
		"requested_path": r.URL.Path,
	}, http.StatusMethodNotAllowed)
}

// writeError writes an error envelope
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, map[string]interface{}{
		"success": false,
		"error":   message,
	}, status)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response: %v", err)
	}
}

// isJSONRequest reports whether the request declares a JSON body.
func isJSONRequest(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// clientAddr extracts the client IP from the request.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
