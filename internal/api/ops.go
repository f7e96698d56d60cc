// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthStatus is what /healthz reports.
type HealthStatus struct {
	Status        string `json:"status"` // ok or degraded
	Upstream      bool   `json:"upstream_reachable"`
	UpstreamError string `json:"upstream_error,omitempty"`
	Realtime      string `json:"realtime_state"`
}

// HealthSource is the connectivity state behind /healthz. Satisfied by
// *health.Prober.
type HealthSource interface {
	Reachable() bool
	LastError() string
}

// NewOpsRouter builds the local operational endpoint: /healthz for the
// connectivity banner and liveness checks, /metrics for Prometheus.
// realtimeState reports the realtime client's connection state and may
// be nil when no realtime client exists.
func NewOpsRouter(healthSrc HealthSource, realtimeState func() string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		status := HealthStatus{
			Status:        "ok",
			Upstream:      healthSrc.Reachable(),
			UpstreamError: healthSrc.LastError(),
			Realtime:      "idle",
		}
		if realtimeState != nil {
			status.Realtime = realtimeState()
		}
		code := http.StatusOK
		if !status.Upstream {
			// Degraded, not down: stale data is still being served.
			status.Status = "degraded"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
