// Package metrics implements the outbound-request metrics collector on
// top of prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records outbound HTTP request measurements. It satisfies the
// http client's MetricsCollector interface.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

// NewCollector registers the collector's metrics with the default
// prometheus registerer.
func NewCollector() *Collector {
	return &Collector{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "planpay_outbound_requests_total",
			Help: "Total outbound HTTP requests to collaborator services",
		}, []string{"method", "path", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planpay_outbound_request_duration_seconds",
			Help:    "Outbound HTTP request latency",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),
		requestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "planpay_outbound_request_errors_total",
			Help: "Outbound HTTP requests that failed or returned non-2xx",
		}, []string{"method", "path"}),
	}
}

// RecordRequestDuration records the latency of one outbound request.
func (c *Collector) RecordRequestDuration(method, path string, statusCode int, duration time.Duration) {
	c.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRequestCount counts one outbound request by status.
func (c *Collector) RecordRequestCount(method, path string, statusCode int) {
	c.requestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
}

// RecordRequestError counts one failed outbound request.
func (c *Collector) RecordRequestError(method, path string) {
	c.requestErrors.WithLabelValues(method, path).Inc()
}
