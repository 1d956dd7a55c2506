package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the registry service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CountriesAdded    prometheus.Counter
	PersonsAdded      prometheus.Counter
	PersonsDeleted    prometheus.Counter
	OperationDuration *prometheus.HistogramVec
	HTTPLatency       *prometheus.HistogramVec
	CountryCache      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CountriesAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "roster_countries_added_total",
			Help: "Total number of countries added",
		}),
		PersonsAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "roster_persons_added_total",
			Help: "Total number of persons added",
		}),
		PersonsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "roster_persons_deleted_total",
			Help: "Total number of persons deleted",
		}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_operation_duration_seconds",
			Help:    "Duration of registry service operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		CountryCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_country_cache_lookups_total",
			Help: "Country cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"
	}
}

func (m *Metrics) IncrementCountriesAdded() {
	if m != nil {
		m.CountriesAdded.Inc()
	}
}

func (m *Metrics) IncrementPersonsAdded() {
	if m != nil {
		m.PersonsAdded.Inc()
	}
}

func (m *Metrics) IncrementPersonsDeleted() {
	if m != nil {
		m.PersonsDeleted.Inc()
	}
}

// ObserveOperation records the duration of a service operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m != nil {
		m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m != nil {
		m.HTTPLatency.WithLabelValues(method, route, status).Observe(d.Seconds())
	}
}

func (m *Metrics) RecordCacheLookup(result string) {
	if m != nil {
		m.CountryCache.WithLabelValues(result).Inc()
	}
}
