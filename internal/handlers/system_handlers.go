package handlers

import (
	"context"
	"net/http"
	"time"

	"dateTracker/internal/logger"
)

const (
	APIVersion      = "1.0.0"
	isoMillisLayout = "2006-01-02T15:04:05.000Z"
	healthTimeout   = 2 * time.Second
)

type HealthChecker interface {
	HealthCheck(context.Context) error
}

type SystemHandler struct {
	store HealthChecker
	now   func() time.Time
}

func NewSystemHandler(store HealthChecker, now func() time.Time) *SystemHandler {
	if now == nil {
		now = time.Now
	}
	return &SystemHandler{store: store, now: now}
}

// Health always answers 200 while the process runs; the database field
// reports the store separately.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.store.HealthCheck(ctx); err != nil {
			logger.Warn("HTTP: health check found the store unavailable")
			database = "unavailable"
		}
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "OK"),
		toPayload("message", "Server is running"),
		toPayload("timestamp", h.now().UTC().Format(isoMillisLayout)),
		toPayload("database", database),
	)
}

func (h *SystemHandler) Index(w http.ResponseWriter, r *http.Request) {
	responseWithJSON(w, http.StatusOK,
		toPayload("message", "Welcome to the API"),
		toPayload("version", APIVersion),
		toPayload("endpoints", map[string]string{
			"health":        "/health",
			"api":           "/api",
			"tasks":         "/api/tasks",
			"calculateDate": "/api/calculate-date",
			"metrics":       "/metrics",
		}),
	)
}

// NotFound also serves method mismatches.
func (h *SystemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	responseWithJSON(w, http.StatusNotFound,
		toPayload("error", "Route not found"),
		toPayload("path", r.URL.RequestURI()),
	)
}
