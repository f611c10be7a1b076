package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration module.
type Metrics struct {
	Registrations      prometheus.Counter
	DuplicatesRejected prometheus.Counter
	Deletions          prometheus.Counter
	Exports            prometheus.Counter
	RosterSize         prometheus.Gauge
	StoreErrors        *prometheus.CounterVec
	StoreCallDuration  *prometheus.HistogramVec
}

// New registers the metrics with the default Prometheus registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg; tests pass a fresh registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registrations: f.NewCounter(prometheus.CounterOpts{
			Name: "ekathra_registrations_total",
			Help: "Total number of successful registrations",
		}),
		DuplicatesRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "ekathra_registrations_duplicate_total",
			Help: "Registrations rejected because the name was already on the roster",
		}),
		Deletions: f.NewCounter(prometheus.CounterOpts{
			Name: "ekathra_registrations_deleted_total",
			Help: "Total number of registrations removed by an admin",
		}),
		Exports: f.NewCounter(prometheus.CounterOpts{
			Name: "ekathra_csv_exports_total",
			Help: "Total number of CSV exports generated",
		}),
		RosterSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "ekathra_roster_size",
			Help: "Number of attendees currently held in the roster",
		}),
		StoreErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ekathra_store_errors_total",
			Help: "Record store failures by operation",
		}, []string{"op"}),
		StoreCallDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ekathra_store_call_duration_seconds",
			Help:    "Duration of record store calls by operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"op"}),
	}
}

func (m *Metrics) IncrementRegistrations() {
	if m == nil {
		return
	}
	m.Registrations.Inc()
}

func (m *Metrics) IncrementDuplicates() {
	if m == nil {
		return
	}
	m.DuplicatesRejected.Inc()
}

func (m *Metrics) IncrementDeletions() {
	if m == nil {
		return
	}
	m.Deletions.Inc()
}

func (m *Metrics) IncrementExports() {
	if m == nil {
		return
	}
	m.Exports.Inc()
}

func (m *Metrics) SetRosterSize(n int) {
	if m == nil {
		return
	}
	m.RosterSize.Set(float64(n))
}

// ObserveStoreCall records duration for op and counts it as an error when err
// is non-nil. Call with time.Now() taken before the store call.
func (m *Metrics) ObserveStoreCall(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.StoreCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		m.StoreErrors.WithLabelValues(op).Inc()
	}
}
