// Package metrics exposes Prometheus metrics for the Callisto proxy.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stage labels for per-stage latency observations.
const (
	StageRequest  = "request"
	StageUpstream = "upstream"
	StageResponse = "response"
)

// Direction labels for body-modification counters.
const (
	DirectionRequest  = "request"
	DirectionResponse = "response"
)

// Collector registers and records all proxy metrics. All methods are safe
// for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	stageDuration   *prometheus.HistogramVec
	bodiesModified  *prometheus.CounterVec
	upstreamErrors  prometheus.Counter
}

// NewCollector creates a collector and registers its metrics. If registry is
// nil a fresh registry is used, which keeps tests isolated from each other.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callisto",
				Name:      "requests_total",
				Help:      "Total number of proxied requests by method and response status",
			},
			[]string{"method", "status"},
		),

		requestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "callisto",
				Name:      "request_duration_seconds",
				Help:      "End-to-end request duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "callisto",
				Name:      "stage_duration_seconds",
				Help:      "Duration of each pipeline stage in seconds",
				Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30, 60},
			},
			[]string{"stage"},
		),

		bodiesModified: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callisto",
				Name:      "bodies_modified_total",
				Help:      "Number of request/response bodies rewritten by the normalizer",
			},
			[]string{"direction"},
		),

		upstreamErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "callisto",
				Name:      "upstream_errors_total",
				Help:      "Number of outbound calls that failed at the transport layer",
			},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.stageDuration,
		c.bodiesModified,
		c.upstreamErrors,
	)

	return c
}

// ObserveRequest records a completed request.
func (c *Collector) ObserveRequest(method string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

// ObserveStage records the duration of one pipeline stage.
func (c *Collector) ObserveStage(stage string, duration time.Duration) {
	c.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordBodyModified counts a rewritten request or response body.
func (c *Collector) RecordBodyModified(direction string) {
	c.bodiesModified.WithLabelValues(direction).Inc()
}

// RecordUpstreamError counts a transport-level upstream failure.
func (c *Collector) RecordUpstreamError() {
	c.upstreamErrors.Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
