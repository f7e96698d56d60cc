// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package poll implements the generic scheduled-refresh primitive behind
// every periodically updated view: fetch on activation, refetch on a
// visibility-aware cadence, and keep stale data displayed through errors.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/tmorland/pitchside/internal/metrics"
)

// FetchFunc produces a fresh value for the view.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// View is the displayed state of one polling session.
// Data survives errors: a failed refresh sets Err but never clears the
// previously fetched value (stale-while-revalidate).
type View[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     string
}

// Options identifies and paces one polling session. A change of Key or
// Enabled tears the session down and restarts it with a fresh immediate
// fetch.
type Options struct {
	// Key is the session identity, e.g. "scoreboard:39".
	Key string

	// Interval is the foreground cadence. Zero or below disables the
	// background timer; only activation and manual fetches occur.
	Interval time.Duration

	// HiddenInterval is the cadence while the host is backgrounded.
	// Zero means not configured and Interval applies regardless.
	HiddenInterval time.Duration

	// Enabled gates the whole session. While false no fetch ever runs.
	Enabled bool
}

// Poller runs one polling session at a time. All state transitions happen
// under a single mutex; in-flight fetch completions from a torn-down
// session are discarded by generation check.
//
// Overlapping fetches provide no ordering guarantee: whichever completes
// last wins the displayed value, even if it was issued earlier.
type Poller[T any] struct {
	fetch    FetchFunc[T]
	vis      Visibility
	onUpdate func(View[T])

	mu     sync.Mutex
	opts   Options
	view   View[T]
	gen    int
	timer  *time.Timer
	cancel context.CancelFunc
	ctx    context.Context
}

// New creates an idle poller. vis may be nil, which means always
// foreground. onUpdate, if non-nil, is invoked outside the poller's lock
// after every view change.
func New[T any](fetch FetchFunc[T], vis Visibility, onUpdate func(View[T])) *Poller[T] {
	if vis == nil {
		vis = Foreground{}
	}
	return &Poller[T]{fetch: fetch, vis: vis, onUpdate: onUpdate}
}

// Apply reconfigures the session. A change of Key or Enabled restarts the
// cycle: pending timers are cancelled synchronously, in-flight completions
// are invalidated, and if the session is enabled a fresh activation fetch
// begins immediately with Loading set.
func (p *Poller[T]) Apply(opts Options) {
	p.mu.Lock()

	prev := p.opts
	restart := opts.Key != prev.Key || opts.Enabled != prev.Enabled
	p.opts = opts
	if !restart {
		// Cadence-only change: re-arm the timer, keep the session.
		if opts.Enabled && (opts.Interval != prev.Interval || opts.HiddenInterval != prev.HiddenInterval) {
			p.scheduleLocked()
		}
		p.mu.Unlock()
		return
	}

	p.teardownLocked()
	if !opts.Enabled {
		p.mu.Unlock()
		return
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.view.Loading = true
	p.view.Err = ""
	p.launchLocked("activation", true)
	p.scheduleLocked()

	view := p.view
	p.mu.Unlock()
	p.notify(view)
}

// Refresh requests one extra fetch, equivalent to a background tick: the
// loading flag is untouched. No-op while the session is disabled.
func (p *Poller[T]) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opts.Enabled {
		return
	}
	p.launchLocked("manual", false)
}

// VisibilityChanged reschedules the next tick using the new effective
// interval. It never forces an immediate fetch.
func (p *Poller[T]) VisibilityChanged() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opts.Enabled {
		return
	}
	p.scheduleLocked()
}

// Snapshot returns the current view.
func (p *Poller[T]) Snapshot() View[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Close permanently disables the session. Timer cancellation is
// synchronous: once Close returns, no further fetch will be issued and no
// in-flight completion will mutate the view.
func (p *Poller[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Enabled = false
	p.teardownLocked()
}

// teardownLocked cancels the timer and invalidates the current generation.
func (p *Poller[T]) teardownLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
}

// launchLocked starts one fetch for the current generation.
func (p *Poller[T]) launchLocked(trigger string, activation bool) {
	gen := p.gen
	ctx := p.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	metrics.PollTicks.WithLabelValues(p.opts.Key, trigger).Inc()

	go func() {
		data, err := p.fetch(ctx)

		p.mu.Lock()
		if gen != p.gen {
			// Session was torn down while this fetch was in flight.
			p.mu.Unlock()
			return
		}
		if activation {
			p.view.Loading = false
		}
		if err != nil {
			p.view.Err = err.Error()
		} else {
			p.view.Data = data
			p.view.HasData = true
			p.view.Err = ""
		}
		view := p.view
		p.mu.Unlock()
		p.notify(view)
	}()
}

// scheduleLocked (re)arms the background timer at the effective interval.
func (p *Poller[T]) scheduleLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	interval := p.effectiveIntervalLocked()
	if interval <= 0 {
		return
	}

	gen := p.gen
	p.timer = time.AfterFunc(interval, func() {
		p.mu.Lock()
		if gen != p.gen || !p.opts.Enabled {
			p.mu.Unlock()
			return
		}
		p.launchLocked("interval", false)
		p.scheduleLocked()
		p.mu.Unlock()
	})
}

// effectiveIntervalLocked picks the hidden cadence when the host is
// backgrounded and one was configured.
func (p *Poller[T]) effectiveIntervalLocked() time.Duration {
	if p.opts.HiddenInterval > 0 && p.vis.Hidden() {
		return p.opts.HiddenInterval
	}
	return p.opts.Interval
}

// notify invokes the update callback outside the lock.
func (p *Poller[T]) notify(view View[T]) {
	if p.onUpdate != nil {
		p.onUpdate(view)
	}
}
