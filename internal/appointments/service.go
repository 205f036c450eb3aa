package appointments

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bajo3/Emme-Client/internal/observability/metrics"
	"github.com/bajo3/Emme-Client/pkg/logging"
)

var tracer = otel.Tracer("emme.internal.appointments")

// StoreAPI is the store surface the service consumes.
type StoreAPI interface {
	FetchAppointments(ctx context.Context, f Filter) ([]Appointment, error)
	UpdateStatus(ctx context.Context, id string, to Status) (*Appointment, error)
}

// Invalidator drops derived data (report caches) after a write. Wired up in
// main to avoid an import cycle with the reports package.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service fronts the store with tracing, metrics, and the write-side policy
// hooks.
type Service struct {
	store      StoreAPI
	logger     *logging.Logger
	metrics    *metrics.AgendaMetrics
	invalidate Invalidator
}

// NewService constructs an appointments service.
func NewService(store StoreAPI, logger *logging.Logger, m *metrics.AgendaMetrics, inv Invalidator) *Service {
	if store == nil {
		panic("appointments: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, logger: logger, metrics: m, invalidate: inv}
}

// Fetch loads appointments for a view. view is a metrics label only.
func (s *Service) Fetch(ctx context.Context, view string, f Filter) ([]Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("emme.view", view))

	start := time.Now()
	appts, err := s.store.FetchAppointments(ctx, f)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveFetch(view, "error", time.Since(start).Seconds())
		s.logger.Error("appointment fetch failed", "view", view, "error", err)
		return nil, err
	}
	s.metrics.ObserveFetch(view, "ok", time.Since(start).Seconds())
	return appts, nil
}

// ChangeStatus validates the target status, persists it, and drops derived
// caches on success. Local/optimistic state is the caller's concern: nothing
// is applied unless the store confirms.
func (s *Service) ChangeStatus(ctx context.Context, id string, to Status) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.change_status")
	defer span.End()
	span.SetAttributes(
		attribute.String("emme.appointment_id", id),
		attribute.String("emme.status", string(to)),
	)

	updated, err := s.store.UpdateStatus(ctx, id, to)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveStatusUpdate(string(to), "error")
		s.logger.Error("status update failed", "appointment_id", id, "status", to, "error", err)
		return nil, err
	}
	s.metrics.ObserveStatusUpdate(string(to), "ok")
	s.logger.Info("appointment status updated", "appointment_id", id, "status", to)

	if s.invalidate != nil {
		if err := s.invalidate.Invalidate(ctx); err != nil {
			// Stale cached reports expire on their own TTL; the write
			// already succeeded, so this is log-only.
			s.logger.Warn("report cache invalidation failed", "error", err)
		}
	}
	return updated, nil
}
