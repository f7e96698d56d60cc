// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package api

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tmorland/pitchside/internal/logging"
	"github.com/tmorland/pitchside/internal/metrics"
	"github.com/tmorland/pitchside/internal/models"
)

// BreakerClient wraps Client with a circuit breaker so a dead provider
// stops consuming the outbound request budget. 4xx responses count as
// successes for the breaker: the provider is up, the request was wrong.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

// NewBreakerClient creates a provider client with circuit breaker protection.
// The circuit opens after a 60% failure rate over at least 10 requests and
// probes recovery after 1 minute.
func NewBreakerClient(client *Client) *BreakerClient {
	const cbName = "provider-api"

	metrics.BreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsClientError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateName(from)).
				Str("to", stateName(to)).
				Msg("Circuit breaker state transition")
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.BreakerTransitions.WithLabelValues(name, stateName(from), stateName(to)).Inc()
		},
	})

	return &BreakerClient{client: client, cb: cb, name: cbName}
}

// execute runs one provider call through the breaker.
func (b *BreakerClient) execute(fn func() (any, error)) (any, error) {
	return b.cb.Execute(fn)
}

// castResult type-asserts a breaker result, mirroring the generic execute
// pattern so each endpoint wrapper stays one expression.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// ListLeagues returns all known leagues with breaker protection.
func (b *BreakerClient) ListLeagues(ctx context.Context) ([]models.League, error) {
	return castResult[[]models.League](b.execute(func() (any, error) {
		return b.client.ListLeagues(ctx)
	}))
}

// Scoreboard returns one league's matches with breaker protection.
func (b *BreakerClient) Scoreboard(ctx context.Context, leagueID int) ([]models.Match, error) {
	return castResult[[]models.Match](b.execute(func() (any, error) {
		return b.client.Scoreboard(ctx, leagueID)
	}))
}

// Today returns the aggregate live-count snapshot with breaker protection.
func (b *BreakerClient) Today(ctx context.Context) (*models.TodaySummary, error) {
	return castResult[*models.TodaySummary](b.execute(func() (any, error) {
		return b.client.Today(ctx)
	}))
}

// MatchDetail returns one match with breaker protection.
func (b *BreakerClient) MatchDetail(ctx context.Context, matchID int) (*models.Match, error) {
	return castResult[*models.Match](b.execute(func() (any, error) {
		return b.client.MatchDetail(ctx, matchID)
	}))
}

// Trending returns the informational feed with breaker protection.
func (b *BreakerClient) Trending(ctx context.Context) ([]models.Headline, error) {
	return castResult[[]models.Headline](b.execute(func() (any, error) {
		return b.client.Trending(ctx)
	}))
}

// Ping probes provider health with breaker protection.
func (b *BreakerClient) Ping(ctx context.Context) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.client.Ping(ctx)
	})
	return err
}

// stateValue converts breaker state to a numeric metric value.
func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateName converts breaker state to a label string.
func stateName(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
