package handler

import (
	"context"
	"net/http"
	"time"
)

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

// HealthHandler handles health check requests.
type HealthHandler struct {
	checks map[string]PingFunc
	order  []string
}

// NewHealthHandler creates a new HealthHandler. Checks run in the order
// they are added.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{checks: make(map[string]PingFunc)}
}

// AddCheck registers a readiness check under name.
func (h *HealthHandler) AddCheck(name string, ping PingFunc) *HealthHandler {
	if _, ok := h.checks[name]; !ok {
		h.order = append(h.order, name)
	}
	h.checks[name] = ping
	return h
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if every dependency answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := map[string]string{"status": "ready"}
	for _, name := range h.order {
		if err := h.checks[name](ctx); err != nil {
			status["status"] = "unavailable"
			status[name] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status[name] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
