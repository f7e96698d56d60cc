// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

type fakeHealth struct {
	reachable bool
	lastErr   string
}

func (f fakeHealth) Reachable() bool   { return f.reachable }
func (f fakeHealth) LastError() string { return f.lastErr }

func TestHealthzOK(t *testing.T) {
	t.Parallel()

	router := NewOpsRouter(fakeHealth{reachable: true}, func() string { return "open" })
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Status != "ok" || !status.Upstream || status.Realtime != "open" {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestHealthzDegraded(t *testing.T) {
	t.Parallel()

	router := NewOpsRouter(fakeHealth{lastErr: "connection refused"}, nil)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	// Degraded still answers 200: the client serves stale data.
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Status != "degraded" || status.UpstreamError == "" || status.Realtime != "idle" {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestMetricsExposed(t *testing.T) {
	t.Parallel()

	router := NewOpsRouter(fakeHealth{reachable: true}, nil)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
