// Package metrics defines the Prometheus instrumentation exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synth_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "synth_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Chat metrics
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synth_chat_requests_total",
			Help: "Chat turns handled, by outcome",
		},
		[]string{"outcome"}, // "ok", "validation", "upstream_error"
	)

	UpstreamLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "synth_upstream_latency_seconds",
			Help:    "Completion provider call latency",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	// Session metrics
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "synth_sessions_active",
			Help: "Sessions currently held in memory",
		},
	)

	SessionsReaped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "synth_sessions_reaped_total",
			Help: "Sessions evicted by the TTL reaper",
		},
	)
)
