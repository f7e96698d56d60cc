// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tmorland/pitchside/internal/config"
)

// testClient builds a client against a test server with fast retries.
func testClient(serverURL string) *Client {
	return NewClient(&config.APIConfig{
		BaseURL:      serverURL,
		Timeout:      2 * time.Second,
		RetryMax:     2,
		RetryBackoff: 5 * time.Millisecond,
	})
}

func TestScoreboardSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scoreboard" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("league_id") != "39" {
			t.Errorf("league_id = %q, want 39", r.URL.Query().Get("league_id"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"phase":"live_first_half","home_score":1,"away_score":0,"home_team":"Arsenal","away_team":"Chelsea","league_id":39,"league_name":"Premier League"}]`))
	}))
	defer server.Close()

	matches, err := testClient(server.URL).Scoreboard(context.Background(), 39)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].HomeTeam != "Arsenal" {
		t.Errorf("home team = %q", matches[0].HomeTeam)
	}
	if !matches[0].Phase.IsLive() {
		t.Error("expected live phase")
	}
}

func TestRetriesOnServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"live_count":4,"total_count":12}`))
	}))
	defer server.Close()

	today, err := testClient(server.URL).Today(context.Background())
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if today.LiveCount != 4 {
		t.Errorf("live count = %d, want 4", today.LiveCount)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3 (1 initial + 2 retries)", calls.Load())
	}
}

func TestExhaustedRetriesSurfaceTransient(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).ListLeagues(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTransient(err) {
		t.Errorf("expected transient error, got %T: %v", err, err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server.URL).MatchDetail(context.Background(), 999)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsClientError(err) {
		t.Errorf("expected client error, got %T: %v", err, err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", calls.Load())
	}
}

func TestNetworkErrorIsTransient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // immediate refusal

	err := testClient(server.URL).Ping(context.Background())
	if !IsTransient(err) {
		t.Errorf("expected transient error for refused connection, got %v", err)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	if err := testClient(server.URL).Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
