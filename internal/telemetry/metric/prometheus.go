package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "foldershare"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	AuthFailures    prometheus.Counter
	FileBytesServed prometheus.Counter
	RateLimited     prometheus.Counter
}

// NewRegistry creates a registry with the FolderShare metrics and the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "Serve calls by reply status",
			},
			[]string{"status"},
		),
		RequestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_request_duration_seconds",
				Help:      "Serve call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		AuthFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_failures_total",
				Help:      "Calls rejected for a wrong password",
			},
		),
		FileBytesServed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "file_bytes_served_total",
				Help:      "File content bytes returned to peers",
			},
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Calls rejected by the peer rate limiter",
			},
		),
	}

	r.registry.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.AuthFailures,
		r.FileBytesServed,
		r.RateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Register adds an extra collector, such as a TreeCollector.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// Gatherer exposes the underlying registry for tests and handlers.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished Serve call.
func (r *Registry) ObserveRequest(status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(status).Inc()
	r.RequestDuration.Observe(elapsed.Seconds())
}

// IncAuthFailure counts a rejected password.
func (r *Registry) IncAuthFailure() {
	if r == nil {
		return
	}
	r.AuthFailures.Inc()
}

// AddFileBytes counts file content sent to a peer.
func (r *Registry) AddFileBytes(n int) {
	if r == nil {
		return
	}
	r.FileBytesServed.Add(float64(n))
}

// IncRateLimited counts a call refused by the rate limiter.
func (r *Registry) IncRateLimited() {
	if r == nil {
		return
	}
	r.RateLimited.Inc()
}
