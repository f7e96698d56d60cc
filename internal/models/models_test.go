// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package models

import (
	"errors"
	"testing"
)

func TestPhaseClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		phase    Phase
		live     bool
		brk      bool
		terminal bool
	}{
		{PhaseScheduled, false, false, false},
		{PhaseFirstHalf, true, false, false},
		{PhaseSecondHalf, true, false, false},
		{PhaseOvertime, true, false, false},
		{PhaseHalfTime, false, true, false},
		{PhaseFinished, false, false, true},
		{PhasePostponed, false, false, true},
		{PhaseCancelled, false, false, true},
	}
	for _, tc := range cases {
		if got := tc.phase.IsLive(); got != tc.live {
			t.Errorf("%s IsLive() = %v, want %v", tc.phase, got, tc.live)
		}
		if got := tc.phase.IsBreak(); got != tc.brk {
			t.Errorf("%s IsBreak() = %v, want %v", tc.phase, got, tc.brk)
		}
		if got := tc.phase.IsTerminal(); got != tc.terminal {
			t.Errorf("%s IsTerminal() = %v, want %v", tc.phase, got, tc.terminal)
		}
	}
}

func TestScoreline(t *testing.T) {
	t.Parallel()

	m := Match{HomeScore: 2, AwayScore: 0}
	if m.Scoreline() != "2-0" {
		t.Errorf("Scoreline() = %q, want %q", m.Scoreline(), "2-0")
	}
}

func TestDecodeInbound(t *testing.T) {
	t.Parallel()

	msg, err := DecodeInbound([]byte(`{"type":"snapshot","target_id":42,"payload":{"home_score":1}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Type != MessageSnapshot {
		t.Errorf("type = %q, want snapshot", msg.Type)
	}
	if msg.TargetID != 42 {
		t.Errorf("target id = %d, want 42", msg.TargetID)
	}
	if len(msg.Payload) == 0 {
		t.Error("expected raw payload to be retained")
	}
}

func TestDecodeInboundPong(t *testing.T) {
	t.Parallel()

	msg, err := DecodeInbound([]byte(`{"type":"pong"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Type != MessagePong {
		t.Errorf("type = %q, want pong", msg.Type)
	}
}

func TestDecodeInboundMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		`not json at all`,
		`{"type":"mystery"}`,
		`{}`,
		``,
	} {
		if _, err := DecodeInbound([]byte(raw)); !errors.Is(err, ErrMalformedFrame) {
			t.Errorf("DecodeInbound(%q) err = %v, want ErrMalformedFrame", raw, err)
		}
	}
}

func TestGoalAlertMessage(t *testing.T) {
	t.Parallel()

	a := GoalAlert{
		MatchID:   7,
		Side:      SideHome,
		Team:      "Arsenal",
		HomeScore: 2,
		AwayScore: 0,
		League:    "Premier League",
	}
	if a.Scoreline() != "2-0" {
		t.Errorf("Scoreline() = %q, want 2-0", a.Scoreline())
	}
	want := "GOAL! Arsenal (2-0) - Premier League"
	if a.Message() != want {
		t.Errorf("Message() = %q, want %q", a.Message(), want)
	}
}
