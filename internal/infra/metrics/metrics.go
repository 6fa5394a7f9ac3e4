// Package metrics exposes the Prometheus counters and gauges simdaemon
// publishes on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TicksProcessed counts completed simulation ticks.
var TicksProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "simdaemon",
	Name:      "ticks_processed_total",
	Help:      "Total simulation ticks processed.",
})

// TickDuration tracks wall-clock duration of a single Tick call.
var TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "simdaemon",
	Name:      "tick_duration_seconds",
	Help:      "Wall-clock duration of a single tick.",
	Buckets:   prometheus.DefBuckets,
})

// EventsEmitted counts events emitted across all ticks, by kind.
var EventsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "simdaemon",
	Name:      "events_emitted_total",
	Help:      "Total events emitted, by kind.",
}, []string{"kind"})

// CommandsAccepted counts commands accepted through POST /commands.
var CommandsAccepted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "simdaemon",
	Name:      "commands_accepted_total",
	Help:      "Total commands accepted via the HTTP API.",
})

// CommandsRejected counts commands rejected, by reason.
var CommandsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "simdaemon",
	Name:      "commands_rejected_total",
	Help:      "Total commands rejected via the HTTP API, by reason.",
}, []string{"reason"})

// Subscribers tracks the current number of event-stream subscribers.
var Subscribers = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "simdaemon",
	Name:      "subscribers",
	Help:      "Current number of live event subscribers.",
})
