// Package metrics provides Prometheus metrics for the content generator
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Generation metrics
	GenerationsTotal     *prometheus.CounterVec
	ProviderCallsTotal   *prometheus.CounterVec
	ProviderCallDuration *prometheus.HistogramVec

	StartTime time.Time
}

// New creates the collectors on a private registry together with the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	m := &Metrics{registry: reg, StartTime: time.Now()}

	m.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgen_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	m.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentgen_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	m.HTTPRequestsInFlight = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "contentgen_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	m.GenerationsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgen_generations_total",
			Help: "Total number of completed generations",
		},
		[]string{"type", "ai_provider"},
	)
	m.ProviderCallsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgen_provider_calls_total",
			Help: "Total number of calls to external AI providers",
		},
		[]string{"provider", "status"},
	)
	m.ProviderCallDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentgen_provider_call_duration_seconds",
			Help:    "Duration of external AI provider calls in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)
	return m
}

// ObserveGeneration counts one stored generation.
func (m *Metrics) ObserveGeneration(contentType, provider string) {
	if m == nil {
		return
	}
	m.GenerationsTotal.WithLabelValues(contentType, provider).Inc()
}

// ObserveProviderCall records one provider round trip.
func (m *Metrics) ObserveProviderCall(provider string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "error"
	}
	m.ProviderCallsTotal.WithLabelValues(provider, status).Inc()
	m.ProviderCallDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) InFlightInc() {
	if m != nil {
		m.HTTPRequestsInFlight.Inc()
	}
}

func (m *Metrics) InFlightDec() {
	if m != nil {
		m.HTTPRequestsInFlight.Dec()
	}
}

// Uptime returns the time since New.
func (m *Metrics) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.StartTime)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
