package metrics

import "github.com/prometheus/client_golang/prometheus"

// AgendaMetrics exposes counters/histograms for store fetches, status
// changes, and report runs.
type AgendaMetrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	statusUpdates *prometheus.CounterVec
	reportTotal   *prometheus.CounterVec
}

func NewAgendaMetrics(reg prometheus.Registerer) *AgendaMetrics {
	m := &AgendaMetrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emme",
			Subsystem: "agenda",
			Name:      "fetch_total",
			Help:      "Total appointment fetches against the store",
		}, []string{"view", "outcome"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "emme",
			Subsystem: "agenda",
			Name:      "fetch_latency_seconds",
			Help:      "Latency of appointment fetches",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
		statusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emme",
			Subsystem: "agenda",
			Name:      "status_update_total",
			Help:      "Total appointment status changes",
		}, []string{"status", "outcome"}),
		reportTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emme",
			Subsystem: "reports",
			Name:      "computed_total",
			Help:      "Total report computations by range and source",
		}, []string{"range", "source"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fetchTotal, m.fetchLatency, m.statusUpdates, m.reportTotal)
	return m
}

func (m *AgendaMetrics) ObserveFetch(view, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(view, outcome).Inc()
	m.fetchLatency.WithLabelValues(view).Observe(seconds)
}

func (m *AgendaMetrics) ObserveStatusUpdate(status, outcome string) {
	if m == nil {
		return
	}
	m.statusUpdates.WithLabelValues(status, outcome).Inc()
}

func (m *AgendaMetrics) ObserveReport(rangeKey, source string) {
	if m == nil {
		return
	}
	m.reportTotal.WithLabelValues(rangeKey, source).Inc()
}
