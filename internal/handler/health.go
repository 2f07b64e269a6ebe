package handler

import (
	"context"
	"net/http"
	"time"
)

// pinger is the minimal dependency for the readiness probe.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store pinger
	now   func() time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(store pinger) *HealthHandler {
	return &HealthHandler{store: store, now: time.Now}
}

// HealthResponse is the JSON body for /health and /ready.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HandleHealth is the liveness probe. It never touches storage and always
// answers 200 {"status":"healthy","timestamp":"<RFC 3339>"}.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now(),
	})
}

// HandleReady is the readiness probe: 200 when the store answers a ping
// within three seconds, 503 otherwise.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: h.now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now(),
	})
}
