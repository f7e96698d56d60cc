// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package health probes upstream connectivity on a fixed cadence and
// remembers the most recent failure. The connectivity banner reads this
// state; it never hides previously displayed data, it only annotates it.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/tmorland/pitchside/internal/logging"
	"github.com/tmorland/pitchside/internal/poll"
)

// Pinger is the upstream liveness check. Satisfied by *api.Client and
// *api.BreakerClient.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober periodically pings the upstream and tracks connectivity. It
// implements suture.Service; the underlying polling session drives the
// cadence and the Serve method only pins its lifetime to the supervisor.
type Prober struct {
	interval time.Duration

	mu        sync.Mutex
	reachable bool
	probed    bool
	lastErr   string

	poller *poll.Poller[struct{}]
}

// NewProber builds a prober pinging at the given interval.
func NewProber(pinger Pinger, interval time.Duration) *Prober {
	p := &Prober{interval: interval}
	p.poller = poll.New(func(ctx context.Context) (struct{}, error) {
		return struct{}{}, pinger.Ping(ctx)
	}, nil, p.onUpdate)
	return p
}

// Serve implements suture.Service: start probing, wait for shutdown.
func (p *Prober) Serve(ctx context.Context) error {
	p.poller.Apply(poll.Options{
		Key:      "health",
		Interval: p.interval,
		Enabled:  true,
	})
	<-ctx.Done()
	p.poller.Close()
	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logs.
func (p *Prober) String() string {
	return "health-prober"
}

// Reachable reports whether the most recent probe succeeded. Before the
// first probe completes it returns false.
func (p *Prober) Reachable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reachable
}

// Probed reports whether at least one probe has completed.
func (p *Prober) Probed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.probed
}

// LastError returns the most recent probe failure, empty after a
// successful probe.
func (p *Prober) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Prober) onUpdate(view poll.View[struct{}]) {
	p.mu.Lock()
	wasReachable := p.reachable
	hadProbed := p.probed
	p.probed = true
	p.reachable = view.Err == ""
	p.lastErr = view.Err
	nowReachable := p.reachable
	p.mu.Unlock()

	if !hadProbed || wasReachable != nowReachable {
		if nowReachable {
			logging.Info().Msg("Upstream reachable")
		} else {
			logging.Warn().Str("error", view.Err).Msg("Upstream unreachable")
		}
	}
}
