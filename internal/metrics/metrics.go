// Package metrics holds the Prometheus collectors exported by `writeit serve`.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "writeit_requests_total",
			Help: "Total number of generation requests",
		},
		[]string{"kind", "status"},
	)

	GenerationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "writeit_generation_latency_seconds",
			Help:    "Generation latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60, 120},
		},
		[]string{"kind"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "writeit_rate_limited_total",
			Help: "Requests refused by the per-slug rate limiter",
		},
		[]string{"slug"},
	)

	InFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "writeit_generations_in_flight",
			Help: "Number of generations currently running",
		},
	)
)
