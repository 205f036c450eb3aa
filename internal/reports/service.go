package reports

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bajo3/Emme-Client/internal/appointments"
	"github.com/bajo3/Emme-Client/internal/observability/metrics"
	"github.com/bajo3/Emme-Client/pkg/logging"
)

var tracer = otel.Tracer("emme.internal.reports")

// Fetcher loads appointments for a report range.
type Fetcher interface {
	Fetch(ctx context.Context, view string, f appointments.Filter) ([]appointments.Appointment, error)
}

// RangedReport is a report plus the period it covers.
type RangedReport struct {
	Report
	Range       Range  `json:"range"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

// Service runs the report pipeline: resolve the range, fetch once, compute,
// and cache.
type Service struct {
	fetcher Fetcher
	cache   *Cache
	logger  *logging.Logger
	metrics *metrics.AgendaMetrics
	now     func() time.Time
}

// NewService constructs a report service. cache may be nil.
func NewService(fetcher Fetcher, cache *Cache, logger *logging.Logger, m *metrics.AgendaMetrics) *Service {
	if fetcher == nil {
		panic("reports: fetcher required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{fetcher: fetcher, cache: cache, logger: logger, metrics: m, now: time.Now}
}

// WithClock overrides "today" for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Report computes (or returns the cached) report for the range ending
// today.
func (s *Service) Report(ctx context.Context, rng Range) (*RangedReport, error) {
	ctx, span := tracer.Start(ctx, "reports.compute")
	defer span.End()
	span.SetAttributes(attribute.String("emme.range", string(rng)))

	today := s.now().Format(appointments.DateLayout)
	if cached := s.cache.Get(ctx, rng, today); cached != nil {
		s.metrics.ObserveReport(string(rng), "cache")
		return cached, nil
	}

	from, to, bounded := rng.Bounds(s.now())
	filter := appointments.Filter{Descending: true}
	if bounded {
		filter.DateFrom = from
		filter.DateTo = to
	}

	appts, err := s.fetcher.Fetch(ctx, "report", filter)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("report fetch failed", "range", rng, "error", err)
		return nil, err
	}

	report := &RangedReport{
		Report:      ComputeReport(appts),
		Range:       rng,
		PeriodStart: from,
		PeriodEnd:   to,
	}
	if !bounded {
		report.PeriodStart = "all-time"
		report.PeriodEnd = "now"
	}

	s.cache.Set(ctx, rng, today, report)
	s.metrics.ObserveReport(string(rng), "computed")
	return report, nil
}
