// README: Prometheus counters for trip events, CAS conflicts, and HTTP traffic.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TripEvents counts successfully applied lifecycle events by kind.
	TripEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drivertaxi",
		Subsystem: "metrics",
		Name:      "trip_events_total",
		Help:      "Trip lifecycle events applied to driver metrics, by event kind.",
	}, []string{"event"})

	// SnapshotConflicts counts optimistic-concurrency write conflicts. A
	// steadily climbing rate means callers are hammering a single driver.
	SnapshotConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "drivertaxi",
		Subsystem: "metrics",
		Name:      "snapshot_conflicts_total",
		Help:      "Snapshot writes rejected by the version check.",
	})

	// IngestErrors counts Kafka events dropped after exhausting retries.
	IngestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "drivertaxi",
		Subsystem: "ingest",
		Name:      "errors_total",
		Help:      "Trip events dropped by the Kafka ingester.",
	})

	// HTTPRequests counts API requests by method, route, and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drivertaxi",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route, and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration tracks API latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "drivertaxi",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)
