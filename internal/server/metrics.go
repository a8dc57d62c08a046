package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-cardioform/pkg/classify"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
	duration        *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry together with the
// Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardioform_classifications_total",
				Help: "Total number of field classifications by outcome",
			},
			[]string{"field", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cardioform_request_duration_seconds",
				Help:    "Duration of HTTP requests by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	m.registry.MustRegister(
		m.classifications,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Label values used when a request cannot be attributed to a known field or
// route. They keep the series count bounded.
const (
	otherFieldLabel = "other"
	unmatchedRoute  = "unmatched"
)

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeClassification(field string, status classify.Status) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(field, status.String()).Inc()
}

func (m *Metrics) observeRequest(route string, seconds float64) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(route).Observe(seconds)
}
