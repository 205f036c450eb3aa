package handlers

import (
	"context"
	"net/http"

	"github.com/bajo3/Emme-Client/internal/reports"
	"github.com/bajo3/Emme-Client/pkg/logging"
)

// ReportSource computes work reports for a range.
type ReportSource interface {
	Report(ctx context.Context, rng reports.Range) (*reports.RangedReport, error)
}

// ReportsHandler serves the hours-worked and revenue report endpoint.
type ReportsHandler struct {
	source ReportSource
	logger *logging.Logger
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(source ReportSource, logger *logging.Logger) *ReportsHandler {
	if source == nil {
		panic("handlers: report source required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportsHandler{source: source, logger: logger}
}

// GetReport returns the report for the requested range. An unrecognized
// range falls back to the 7-day default.
// GET /reports?range=7d|30d|all
func (h *ReportsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	rng := reports.ParseRange(r.URL.Query().Get("range"))
	report, err := h.source.Report(r.Context(), rng)
	if err != nil {
		h.logger.Error("report computation failed", "range", rng, "error", err)
		writeError(w, http.StatusInternalServerError, "report unavailable")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
