package handlers

import (
	"net/http"

	"github.com/bajo3/Emme-Client/internal/agenda"
	"github.com/bajo3/Emme-Client/pkg/logging"
)

// AgendaHandler exposes the agenda view over HTTP. It owns one view
// controller, so concurrent requests behave like rapid navigation on a
// single screen: the newest request's fetch wins.
type AgendaHandler struct {
	controller *agenda.Controller
	logger     *logging.Logger
}

// NewAgendaHandler creates an agenda handler around a view controller.
func NewAgendaHandler(controller *agenda.Controller, logger *logging.Logger) *AgendaHandler {
	if controller == nil {
		panic("handlers: agenda controller required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AgendaHandler{controller: controller, logger: logger}
}

// GetView repositions the agenda and returns the rendered view model.
// A fetch failure still returns 200 with the last-known-good appointments
// and the error surfaced on the payload.
// GET /agenda/view?date=YYYY-MM-DD&granularity=day|week|month&filter=...
func (h *AgendaHandler) GetView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gran := agenda.Granularity(q.Get("granularity"))
	if !gran.Valid() {
		gran = agenda.GranularityDay
	}
	filter := agenda.ParseStatusFilter(q.Get("filter"), gran)

	if err := h.controller.SetView(r.Context(), q.Get("date"), gran, filter); err != nil {
		h.logger.Warn("agenda view fetch failed", "error", err)
	}
	writeJSON(w, http.StatusOK, h.controller.ViewModel())
}
