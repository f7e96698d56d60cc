// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// fakeVisibility is a settable Visibility signal.
type fakeVisibility struct {
	hidden atomic.Bool
}

func (v *fakeVisibility) Hidden() bool { return v.hidden.Load() }

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestDisabledNeverFetches(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	p := New(func(context.Context) (int, error) {
		fetches.Add(1)
		return 0, nil
	}, nil, nil)
	defer p.Close()

	p.Apply(Options{Key: "k", Interval: 5 * time.Millisecond, Enabled: false})
	p.Refresh()
	time.Sleep(30 * time.Millisecond)

	if n := fetches.Load(); n != 0 {
		t.Errorf("fetches = %d, want 0 while disabled", n)
	}
}

func TestActivationFetchAndLoading(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	p := New(func(context.Context) (string, error) {
		<-release
		return "scores", nil
	}, nil, nil)
	defer p.Close()

	p.Apply(Options{Key: "k", Enabled: true})

	if v := p.Snapshot(); !v.Loading {
		t.Error("expected Loading during activation fetch")
	}

	close(release)
	waitFor(t, time.Second, func() bool { return p.Snapshot().HasData })

	v := p.Snapshot()
	if v.Loading {
		t.Error("Loading should clear once activation fetch settles")
	}
	if v.Data != "scores" {
		t.Errorf("data = %q, want %q", v.Data, "scores")
	}
	if v.Err != "" {
		t.Errorf("unexpected error %q", v.Err)
	}
}

func TestErrorKeepsStaleData(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	p := New(func(context.Context) (string, error) {
		if fail.Load() {
			return "", errors.New("provider down")
		}
		return "fresh", nil
	}, nil, nil)
	defer p.Close()

	p.Apply(Options{Key: "k", Enabled: true})
	waitFor(t, time.Second, func() bool { return p.Snapshot().HasData })

	fail.Store(true)
	p.Refresh()
	waitFor(t, time.Second, func() bool { return p.Snapshot().Err != "" })

	v := p.Snapshot()
	if v.Data != "fresh" {
		t.Errorf("stale data cleared: %q", v.Data)
	}
	if v.Err != "provider down" {
		t.Errorf("err = %q, want provider message", v.Err)
	}
	if v.Loading {
		t.Error("manual refresh must not touch loading")
	}

	// A later success clears the error again.
	fail.Store(false)
	p.Refresh()
	waitFor(t, time.Second, func() bool { return p.Snapshot().Err == "" })
}

func TestLastCompletedWins(t *testing.T) {
	t.Parallel()

	// Two overlapping fetches resolve in sequence; whichever payload
	// completes last must be the displayed one, regardless of issue order.
	gate := make(chan string)
	p := New(func(context.Context) (string, error) {
		return <-gate, nil
	}, nil, nil)
	defer p.Close()

	p.Apply(Options{Key: "k", Enabled: true}) // fetch A in flight
	p.Refresh()                               // fetch B in flight

	gate <- "issued-second" // B completes first
	waitFor(t, time.Second, func() bool { return p.Snapshot().Data == "issued-second" })

	gate <- "issued-first" // A completes last
	waitFor(t, time.Second, func() bool { return p.Snapshot().Data == "issued-first" })

	if v := p.Snapshot(); v.Data != "issued-first" {
		t.Errorf("displayed = %q, want the last-completed payload", v.Data)
	}
}

func TestBackgroundCadence(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	p := New(func(context.Context) (int, error) {
		return int(fetches.Add(1)), nil
	}, nil, nil)
	defer p.Close()

	p.Apply(Options{Key: "k", Interval: 10 * time.Millisecond, Enabled: true})
	waitFor(t, time.Second, func() bool { return fetches.Load() >= 4 })
}

func TestZeroIntervalDisablesTimer(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	p := New(func(context.Context) (int, error) {
		return int(fetches.Add(1)), nil
	}, nil, nil)
	defer p.Close()

	p.Apply(Options{Key: "k", Interval: 0, Enabled: true})
	waitFor(t, time.Second, func() bool { return fetches.Load() == 1 })
	time.Sleep(30 * time.Millisecond)

	if n := fetches.Load(); n != 1 {
		t.Errorf("fetches = %d, want only the activation fetch", n)
	}

	p.Refresh()
	waitFor(t, time.Second, func() bool { return fetches.Load() == 2 })
}

func TestHiddenCadenceApplies(t *testing.T) {
	t.Parallel()

	vis := &fakeVisibility{}
	vis.hidden.Store(true)

	var fetches atomic.Int32
	p := New(func(context.Context) (int, error) {
		return int(fetches.Add(1)), nil
	}, vis, nil)
	defer p.Close()

	// Hidden cadence is long; foreground cadence short.
	p.Apply(Options{Key: "k", Interval: 10 * time.Millisecond, HiddenInterval: time.Hour, Enabled: true})
	waitFor(t, time.Second, func() bool { return fetches.Load() == 1 })

	// While hidden, the hour-long cadence means no further ticks.
	time.Sleep(50 * time.Millisecond)
	if n := fetches.Load(); n != 1 {
		t.Fatalf("fetches = %d while hidden, want 1", n)
	}

	// Flipping to foreground reschedules at the short interval without an
	// immediate extra fetch.
	vis.hidden.Store(false)
	p.VisibilityChanged()
	if n := fetches.Load(); n != 1 {
		t.Errorf("visibility change fetched immediately (fetches = %d)", n)
	}
	waitFor(t, time.Second, func() bool { return fetches.Load() >= 3 })
}

func TestKeyChangeRestartsAndDiscardsStaleFetch(t *testing.T) {
	t.Parallel()

	gate := make(chan string)
	p := New(func(context.Context) (string, error) {
		select {
		case v := <-gate:
			return v, nil
		case <-time.After(time.Second):
			return "", errors.New("gate timeout")
		}
	}, nil, nil)
	defer p.Close()

	p.Apply(Options{Key: "league:1", Enabled: true}) // fetch for old key in flight
	p.Apply(Options{Key: "league:2", Enabled: true}) // restart; old completion must be discarded

	gate <- "new-key-data"
	waitFor(t, time.Second, func() bool { return p.Snapshot().HasData })

	gate <- "old-key-data" // stale completion
	time.Sleep(20 * time.Millisecond)

	if v := p.Snapshot(); v.Data == "old-key-data" {
		t.Error("stale completion from torn-down session mutated the view")
	}
}

func TestCloseCancelsSynchronously(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	p := New(func(context.Context) (int, error) {
		return int(fetches.Add(1)), nil
	}, nil, nil)

	p.Apply(Options{Key: "k", Interval: 5 * time.Millisecond, Enabled: true})
	waitFor(t, time.Second, func() bool { return fetches.Load() >= 1 })

	p.Close()
	n := fetches.Load()
	time.Sleep(30 * time.Millisecond)

	// One tick may already hold the lock when Close runs; after that,
	// nothing new may fire.
	if after := fetches.Load(); after > n+1 {
		t.Errorf("fetches kept firing after Close: %d -> %d", n, after)
	}
}
