package httpsupplier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// Breaker state gauge values.
const (
	breakerClosed   = 0
	breakerHalfOpen = 1
	breakerOpen     = 2
)

var (
	// supplierRequests counts supplier calls by result: delivered, failed, rejected_open.
	supplierRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supermarket",
			Subsystem: "supplier",
			Name:      "requests_total",
			Help:      "Supplier order calls by result",
		},
		[]string{"breaker", "result"},
	)

	// supplierDuration tracks round-trip latency of supplier calls.
	supplierDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "supermarket",
			Subsystem: "supplier",
			Name:      "request_duration_seconds",
			Help:      "Supplier order call latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"breaker"},
	)

	// breakerState is 0 closed, 1 half-open, 2 open.
	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "supermarket",
			Subsystem: "supplier",
			Name:      "circuit_breaker_state",
			Help:      "Supplier circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	breakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supermarket",
			Subsystem: "supplier",
			Name:      "circuit_breaker_trips_total",
			Help:      "Times the supplier circuit breaker opened",
		},
		[]string{"breaker"},
	)
)

func recordState(name string, to gobreaker.State) {
	var v float64
	switch to {
	case gobreaker.StateClosed:
		v = breakerClosed
	case gobreaker.StateHalfOpen:
		v = breakerHalfOpen
	case gobreaker.StateOpen:
		v = breakerOpen
		breakerTrips.WithLabelValues(name).Inc()
	}
	breakerState.WithLabelValues(name).Set(v)
}
