package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records metadata for incoming HTTP requests and outbound
// calls to the remote Flowo API.
type RequestMetrics struct {
	duration         *prometheus.HistogramVec
	requests         *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamFailures *prometheus.CounterVec
}

// NewRequestMetrics registers the gateway metrics on the provided registerer.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by route, method and status.",
	}, []string{"route", "method", "status"})
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of calls to the Flowo API in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	upstreamFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_failures_total",
		Help: "Failed calls to the Flowo API, by endpoint.",
	}, []string{"endpoint"})
	reg.MustRegister(duration, requests, upstreamDuration, upstreamFailures)
	return &RequestMetrics{
		duration:         duration,
		requests:         requests,
		upstreamDuration: upstreamDuration,
		upstreamFailures: upstreamFailures,
	}
}

// ObserveRequest records one served request.
func (m *RequestMetrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	route = normalizeLabel(route)
	m.duration.WithLabelValues(route, method).Observe(duration.Seconds())
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// ObserveUpstream records the duration for one remote API call.
func (m *RequestMetrics) ObserveUpstream(endpoint string, duration time.Duration) {
	if m == nil || m.upstreamDuration == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// IncUpstreamFailure counts a failed remote API call.
func (m *RequestMetrics) IncUpstreamFailure(endpoint string) {
	if m == nil || m.upstreamFailures == nil {
		return
	}
	m.upstreamFailures.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
