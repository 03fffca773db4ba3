package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shipping"

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	QuotesTotal            *prometheus.CounterVec
	OffersReturned         prometheus.Histogram
	CarrierRequestsTotal   *prometheus.CounterVec
	CarrierRequestDuration *prometheus.HistogramVec
	GeocodeLookupsTotal    *prometheus.CounterVec
	GeocodeEntriesSwept    prometheus.Counter
	BreakerState           *prometheus.GaugeVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.QuotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Calculate shipping requests by outcome",
		},
		[]string{"outcome"},
	)

	m.OffersReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "offers_returned",
			Help:      "Shipping services returned per quote",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		},
	)

	m.CarrierRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "carrier_requests_total",
			Help:      "Rate API calls by carrier and status",
		},
		[]string{"carrier", "status"},
	)

	m.CarrierRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "carrier_request_duration_seconds",
			Help:      "Rate API call duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"carrier"},
	)

	m.GeocodeLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_lookups_total",
			Help:      "Geocode resolutions by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	m.GeocodeEntriesSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_entries_swept_total",
			Help:      "Expired geocode cache entries deleted",
		},
	)

	m.BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state per carrier (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	registry.MustRegister(
		m.QuotesTotal,
		m.OffersReturned,
		m.CarrierRequestsTotal,
		m.CarrierRequestDuration,
		m.GeocodeLookupsTotal,
		m.GeocodeEntriesSwept,
		m.BreakerState,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordQuote counts a finished quote.
func (m *Metrics) RecordQuote(outcome string, offers int) {
	if m == nil {
		return
	}
	m.QuotesTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.OffersReturned.Observe(float64(offers))
	}
}

// RecordCarrierRequest counts a rate call and its latency.
func (m *Metrics) RecordCarrierRequest(carrier, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.CarrierRequestsTotal.WithLabelValues(carrier, status).Inc()
	m.CarrierRequestDuration.WithLabelValues(carrier).Observe(duration.Seconds())
}

// RecordGeocodeLookup counts a geocode resolution.
func (m *Metrics) RecordGeocodeLookup(result string) {
	if m == nil {
		return
	}
	m.GeocodeLookupsTotal.WithLabelValues(result).Inc()
}

// RecordSwept adds deleted cache entries.
func (m *Metrics) RecordSwept(n int) {
	if m == nil {
		return
	}
	m.GeocodeEntriesSwept.Add(float64(n))
}

// RecordBreakerState stores the numeric breaker state.
func (m *Metrics) RecordBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}
