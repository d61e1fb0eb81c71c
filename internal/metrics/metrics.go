// Package metrics defines the Prometheus collectors exported by the catalog
// server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stampcat"

// Metrics holds the server's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	catalogRecords  prometheus.Gauge
	coercedFields   prometheus.Gauge
	viewActions     *prometheus.CounterVec
	matchedRecords  prometheus.Histogram
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry, with Go runtime and
// process collectors included.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		catalogRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_records",
			Help:      "Number of records in the loaded catalog.",
		}),
		coercedFields: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_coerced_fields",
			Help:      "Cells replaced by a default during the last catalog load.",
		}),
		viewActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_actions_total",
			Help:      "Viewer actions handled, by action.",
		}, []string{"action"}),
		matchedRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_matched_records",
			Help:      "Records matching the active criteria per view.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}
	reg.MustRegister(
		m.catalogRecords,
		m.coercedFields,
		m.viewActions,
		m.matchedRecords,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SetCatalog records the size of the loaded catalog.
func (m *Metrics) SetCatalog(records, coerced int) {
	if m == nil {
		return
	}
	m.catalogRecords.Set(float64(records))
	m.coercedFields.Set(float64(coerced))
}

// ObserveView records a viewer action and how many records matched.
func (m *Metrics) ObserveView(action string, matched int) {
	if m == nil {
		return
	}
	m.viewActions.WithLabelValues(action).Inc()
	m.matchedRecords.Observe(float64(matched))
}

// ObserveRequest records one HTTP request's latency.
func (m *Metrics) ObserveRequest(method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, code).Observe(seconds)
}
