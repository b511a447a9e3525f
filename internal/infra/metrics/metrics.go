package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendRequests counts calls to the facility backend by outcome
	// (ok, api_error, transport_error, canceled).
	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fishops_backend_requests_total",
		Help: "Requests issued to the facility backend.",
	}, []string{"method", "path", "outcome"})

	// BackendLatency tracks backend round-trip time per path.
	BackendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fishops_backend_request_seconds",
		Help:    "Facility backend request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Mutations counts user-triggered mutations by kind and outcome, the
	// toast-level view of the console.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fishops_mutations_total",
		Help: "Console mutations by kind and outcome.",
	}, []string{"kind", "outcome"})
)
