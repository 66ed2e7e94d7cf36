// Package metrics defines the Prometheus collectors exposed on /metrics.
// It is the single source of truth for metric names, labels, and help
// strings; collectors register themselves with the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "homedash"

// HTTPRequestsTotal counts handled API requests.
// Labels:
//   - method: HTTP method
//   - route: the mux route template (e.g. "/api/tiles/{id}")
//   - status: numeric response status
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of handled HTTP requests.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration observes request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// HealthProbesTotal counts outbound URL probes by outcome (up/down).
var HealthProbesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "health_probes_total",
		Help:      "Total number of URL reachability probes, labelled by result.",
	},
	[]string{"result"},
)
