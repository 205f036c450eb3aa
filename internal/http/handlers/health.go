package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is the liveness probe surface of the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service and database liveness.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a health handler. db may be nil, in which case
// only process liveness is reported.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check returns 200 when the service (and its database, if configured) is up.
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp["database"] = "ok"
	}
	writeJSON(w, http.StatusOK, resp)
}
