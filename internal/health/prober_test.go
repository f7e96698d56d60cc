// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type scriptedPinger struct {
	mu   sync.Mutex
	errs []error
	idx  int
}

func (s *scriptedPinger) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx >= len(s.errs) {
		return s.errs[len(s.errs)-1]
	}
	err := s.errs[s.idx]
	s.idx++
	return err
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestProberTracksConnectivity(t *testing.T) {
	t.Parallel()

	pinger := &scriptedPinger{errs: []error{nil}}
	p := NewProber(pinger, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Serve(ctx) }()

	waitFor(t, p.Probed, "first probe never completed")
	if !p.Reachable() {
		t.Error("reachable = false after successful probe")
	}
	if p.LastError() != "" {
		t.Errorf("LastError = %q, want empty", p.LastError())
	}
}

func TestProberRecordsFailureThenRecovers(t *testing.T) {
	t.Parallel()

	pinger := &scriptedPinger{errs: []error{errors.New("connection refused"), nil}}
	p := NewProber(pinger, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Serve(ctx) }()

	waitFor(t, p.Probed, "first probe never completed")
	if p.Reachable() {
		t.Error("reachable = true after failed probe")
	}
	if p.LastError() == "" {
		t.Error("LastError empty after failure")
	}

	waitFor(t, p.Reachable, "prober never recovered")
	if p.LastError() != "" {
		t.Errorf("LastError = %q after recovery, want empty", p.LastError())
	}
}

func TestProberUnprobedIsNotReachable(t *testing.T) {
	t.Parallel()

	p := NewProber(&scriptedPinger{errs: []error{nil}}, time.Hour)
	if p.Probed() || p.Reachable() {
		t.Error("fresh prober must report unprobed and unreachable")
	}
}
