// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package realtime

import (
	"strconv"
	"testing"
	"time"

	"github.com/tmorland/pitchside/internal/models"
)

func msgWithID(id int) models.InboundMessage {
	return models.InboundMessage{Type: models.MessageDelta, TargetID: id}
}

func TestRingEvictsOldest(t *testing.T) {
	t.Parallel()

	r := newRing(3)
	for i := 1; i <= 5; i++ {
		r.push(msgWithID(i))
	}

	got := r.snapshot()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []int{3, 4, 5} {
		if got[i].TargetID != want {
			t.Errorf("snapshot[%d].TargetID = %d, want %d", i, got[i].TargetID, want)
		}
	}
}

func TestRingPartialFill(t *testing.T) {
	t.Parallel()

	r := newRing(8)
	r.push(msgWithID(1))
	r.push(msgWithID(2))

	got := r.snapshot()
	if len(got) != 2 || got[0].TargetID != 1 || got[1].TargetID != 2 {
		t.Errorf("unexpected snapshot: %+v", got)
	}
	if r.len() != 2 {
		t.Errorf("len() = %d, want 2", r.len())
	}
}

func TestRingReset(t *testing.T) {
	t.Parallel()

	r := newRing(4)
	r.push(msgWithID(1))
	r.reset()
	if r.len() != 0 || len(r.snapshot()) != 0 {
		t.Error("reset did not drop messages")
	}
}

func TestBackoffSequence(t *testing.T) {
	t.Parallel()

	base := time.Second
	max := 30 * time.Second
	want := []time.Duration{
		1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
		16 * time.Second, 30 * time.Second, 30 * time.Second, 30 * time.Second,
		30 * time.Second,
	}
	for i, w := range want {
		attempt := i + 1
		if got := backoffDelay(base, max, attempt); got != w {
			t.Errorf("attempt %d: delay = %v, want %v", attempt, got, w)
		}
	}
}

func TestTierWireValues(t *testing.T) {
	t.Parallel()

	got := tierValues(DefaultTiers())
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("default tiers encode to %v, want [0 1]", got)
	}
}

func TestStateStrings(t *testing.T) {
	t.Parallel()

	cases := map[State]string{
		StateIdle:         "idle",
		StateConnecting:   "connecting",
		StateOpen:         "open",
		StateReconnecting: "reconnecting",
		StateClosed:       "disconnected",
		State(99):         "unknown",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("State(%s).String() = %q, want %q", strconv.Itoa(int(s)), s.String(), want)
		}
	}
}
