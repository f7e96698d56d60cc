// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package api implements the REST client for the sports data provider.
//
// Every call is bounded by a per-attempt timeout and retried up to the
// configured maximum on network errors and 5xx responses with linear
// backoff. 4xx responses fail immediately. An outbound rate limiter is
// applied before each attempt; the batch coordinator bounds concurrency
// on top of this.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tmorland/pitchside/internal/config"
	"github.com/tmorland/pitchside/internal/logging"
	"github.com/tmorland/pitchside/internal/metrics"
	"github.com/tmorland/pitchside/internal/models"
)

// Client is the provider REST client.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter

	timeout      time.Duration
	retryMax     int
	retryBackoff time.Duration
}

// NewClient creates a provider client from configuration.
func NewClient(cfg *config.APIConfig) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		http:         &http.Client{},
		limiter:      rate.NewLimiter(limit, burst),
		timeout:      cfg.Timeout,
		retryMax:     cfg.RetryMax,
		retryBackoff: cfg.RetryBackoff,
	}
}

// ListLeagues returns all known leagues.
func (c *Client) ListLeagues(ctx context.Context) ([]models.League, error) {
	var out []models.League
	if err := c.get(ctx, "leagues", "/leagues", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Scoreboard returns the current matches for one league.
func (c *Client) Scoreboard(ctx context.Context, leagueID int) ([]models.Match, error) {
	q := url.Values{"league_id": []string{strconv.Itoa(leagueID)}}
	var out []models.Match
	if err := c.get(ctx, "scoreboard", "/scoreboard", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Today returns the aggregate live-count snapshot for the current day.
func (c *Client) Today(ctx context.Context) (*models.TodaySummary, error) {
	var out models.TodaySummary
	if err := c.get(ctx, "today", "/today", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MatchDetail returns the full state of a single match.
func (c *Client) MatchDetail(ctx context.Context, matchID int) (*models.Match, error) {
	var out models.Match
	if err := c.get(ctx, "match_detail", "/matches/"+strconv.Itoa(matchID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Trending returns the trending/breaking informational feed.
func (c *Client) Trending(ctx context.Context) ([]models.Headline, error) {
	var out []models.Headline
	if err := c.get(ctx, "trending", "/trending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping probes the provider health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.get(ctx, "ping", "/health", nil, &out)
}

// get executes one GET with the retry policy and decodes the JSON body.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	timer := time.Now()
	defer func() {
		metrics.FetchDuration.WithLabelValues(endpoint).Observe(time.Since(timer).Seconds())
	}()

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			metrics.FetchRetries.WithLabelValues(endpoint).Inc()
			// Linear backoff: base * attempt_number.
			select {
			case <-time.After(c.retryBackoff * time.Duration(attempt)):
			case <-ctx.Done():
				metrics.FetchRequests.WithLabelValues(endpoint, "network_error").Inc()
				return &TransientError{Endpoint: endpoint, Err: ctx.Err()}
			}
		}

		err := c.attempt(ctx, endpoint, reqURL, out)
		if err == nil {
			metrics.FetchRequests.WithLabelValues(endpoint, "success").Inc()
			return nil
		}
		if IsClientError(err) {
			metrics.FetchRequests.WithLabelValues(endpoint, "client_error").Inc()
			return err
		}
		lastErr = err
		logging.Debug().Err(err).Str("endpoint", endpoint).Int("attempt", attempt+1).Msg("Fetch attempt failed")
	}

	metrics.FetchRequests.WithLabelValues(endpoint, outcomeOf(lastErr)).Inc()
	return &TransientError{Endpoint: endpoint, Err: lastErr}
}

// attempt executes a single request with its own timeout.
func (c *Client) attempt(ctx context.Context, endpoint, reqURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	default:
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}
}

// outcomeOf classifies the final error for metrics labels.
func outcomeOf(err error) string {
	var se *StatusError
	if errors.As(err, &se) && se.Code >= 500 {
		return "server_error"
	}
	return "network_error"
}
