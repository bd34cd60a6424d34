// Package observability provides Prometheus metrics for the echo
// listener and the admin listener that exposes them.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the collectors recorded for echoed requests.
type Metrics struct {
	Registry *prometheus.Registry

	// RequestsTotal counts requests by method and status class.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration records request duration in seconds by method.
	RequestDuration *prometheus.HistogramVec

	// RequestsInFlight tracks the number of requests being served.
	RequestsInFlight prometheus.Gauge
}

// NewMetrics creates the collectors and registers them, together with
// the Go and process collectors, on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "echo_requests_total",
				Help: "Total requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "echo_request_duration_seconds",
				Help:    "Request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "echo_requests_in_flight",
				Help: "Requests in flight",
			},
		),
	}

	m.Registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}
