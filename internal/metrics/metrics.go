// Package metrics exposes the service's Prometheus collectors. Collectors
// register themselves on the default registry at import; the API layer
// serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "breadboard_mutations_total",
		Help: "Total number of board mutation requests, labelled by operation and outcome.",
	}, []string{"op", "status"})

	MutationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "breadboard_mutation_duration_ms",
		Help:    "Latency of one board mutation including its full-graph refresh, in milliseconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
	})

	Gates = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "breadboard_gates",
		Help: "Number of gates currently on the board.",
	})

	Wires = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "breadboard_wires",
		Help: "Number of wires currently on the board.",
	})

	EventClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "breadboard_event_clients",
		Help: "Number of connected snapshot-stream clients.",
	})

	SnapshotsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "breadboard_snapshots_dropped_total",
		Help: "Total number of snapshots dropped because a client stream lagged.",
	})
)
