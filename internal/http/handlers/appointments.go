package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bajo3/Emme-Client/internal/appointments"
	"github.com/bajo3/Emme-Client/pkg/logging"
)

// StatusChanger persists appointment status transitions.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, id string, to appointments.Status) (*appointments.Appointment, error)
}

// AppointmentsHandler serves appointment mutations.
type AppointmentsHandler struct {
	svc    StatusChanger
	logger *logging.Logger
}

// NewAppointmentsHandler creates an appointments handler.
func NewAppointmentsHandler(svc StatusChanger, logger *logging.Logger) *AppointmentsHandler {
	if svc == nil {
		panic("handlers: appointments service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentsHandler{svc: svc, logger: logger}
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeStatus transitions an appointment to a new status.
// PATCH /appointments/{id}/status
func (h *AppointmentsHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing appointment id")
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.ChangeStatus(r.Context(), id, appointments.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrUnknownStatus):
			writeError(w, http.StatusUnprocessableEntity, "unknown status: "+req.Status)
		case errors.Is(err, appointments.ErrNotFound):
			writeError(w, http.StatusNotFound, "appointment not found")
		default:
			h.logger.Error("status change failed", "appointment_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "status change failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
