// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package metrics provides Prometheus instrumentation for the sync layer:
// REST fetch latency and outcomes, circuit breaker state, websocket
// reconnect behaviour, and goal alert throughput.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// REST client metrics

	FetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchside_fetch_requests_total",
			Help: "Total provider API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"}, // outcome: success, client_error, server_error, network_error
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pitchside_fetch_duration_seconds",
			Help:    "Provider API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	FetchRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchside_fetch_retries_total",
			Help: "Total retry attempts by endpoint",
		},
		[]string{"endpoint"},
	)

	// Circuit breaker metrics

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pitchside_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	BreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchside_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Batch coordinator metrics

	BatchWaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pitchside_batch_waves_total",
			Help: "Total batch fetch waves executed",
		},
	)

	BatchDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pitchside_batch_dropped_total",
			Help: "Total batch requests dropped after rejection",
		},
	)

	// Realtime channel metrics

	RealtimeState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pitchside_realtime_state",
			Help: "Realtime client state (0=idle, 1=connecting, 2=open, 3=reconnecting, 4=closed)",
		},
	)

	RealtimeReconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pitchside_realtime_reconnects_total",
			Help: "Total reconnect attempts",
		},
	)

	RealtimeMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchside_realtime_messages_total",
			Help: "Inbound realtime frames by type",
		},
		[]string{"type"}, // snapshot, delta, state, pong, malformed
	)

	// Monitor metrics

	MonitorCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pitchside_monitor_cycles_total",
			Help: "Total score monitor cycles executed",
		},
	)

	AlertsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchside_alerts_emitted_total",
			Help: "Total goal alerts emitted by league",
		},
		[]string{"league"},
	)

	// Polling engine metrics

	PollTicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchside_poll_ticks_total",
			Help: "Total polling engine fetches by session key and trigger",
		},
		[]string{"key", "trigger"}, // trigger: activation, interval, manual
	)
)
