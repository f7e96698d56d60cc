// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package prefs

import (
	"errors"
	"testing"
)

func TestPinInsertionOrderAndCap(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemory())

	for _, id := range []int{10, 20, 30} {
		if err := s.PinMatch(id); err != nil {
			t.Fatalf("pin %d: %v", id, err)
		}
	}

	// Fourth pin exceeds the cap.
	if err := s.PinMatch(40); !errors.Is(err, ErrPinLimit) {
		t.Errorf("expected ErrPinLimit, got %v", err)
	}

	// Re-pinning an existing id is a no-op, not a cap violation.
	if err := s.PinMatch(20); err != nil {
		t.Errorf("re-pin should be a no-op, got %v", err)
	}

	pinned, err := s.PinnedMatches()
	if err != nil {
		t.Fatal(err)
	}
	if len(pinned) != 3 || pinned[0] != 10 || pinned[1] != 20 || pinned[2] != 30 {
		t.Errorf("pinned = %v, want [10 20 30] insertion-ordered", pinned)
	}
}

func TestUnpin(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemory())
	_ = s.PinMatch(1)
	_ = s.PinMatch(2)

	if err := s.UnpinMatch(1); err != nil {
		t.Fatal(err)
	}
	if err := s.UnpinMatch(99); err != nil {
		t.Errorf("unpinning unknown id should be ignored, got %v", err)
	}

	pinned, _ := s.PinnedMatches()
	if len(pinned) != 1 || pinned[0] != 2 {
		t.Errorf("pinned = %v, want [2]", pinned)
	}

	// Room freed: pinning works again.
	if err := s.PinMatch(3); err != nil {
		t.Errorf("pin after unpin: %v", err)
	}
}

func TestFlagsDefaultFalse(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemory())

	sound, err := s.SoundEnabled()
	if err != nil || sound {
		t.Errorf("SoundEnabled = %v, %v; want false, nil", sound, err)
	}
	notif, err := s.NotificationsEnabled()
	if err != nil || notif {
		t.Errorf("NotificationsEnabled = %v, %v; want false, nil", notif, err)
	}

	if err := s.SetSoundEnabled(true); err != nil {
		t.Fatal(err)
	}
	sound, _ = s.SoundEnabled()
	if !sound {
		t.Error("SoundEnabled not persisted")
	}
}

func TestThemeRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemory())
	theme, err := s.Theme()
	if err != nil || theme != "" {
		t.Errorf("unset theme = %q, %v", theme, err)
	}
	if err := s.SetTheme("dark"); err != nil {
		t.Fatal(err)
	}
	theme, _ = s.Theme()
	if theme != "dark" {
		t.Errorf("theme = %q, want dark", theme)
	}
}

func TestMonitoredLeagues(t *testing.T) {
	t.Parallel()

	s := NewStore(NewMemory())
	leagues, err := s.MonitoredLeagues()
	if err != nil || leagues != nil {
		t.Errorf("unset leagues = %v, %v", leagues, err)
	}
	if err := s.SetMonitoredLeagues([]int{39, 140}); err != nil {
		t.Fatal(err)
	}
	leagues, _ = s.MonitoredLeagues()
	if len(leagues) != 2 || leagues[0] != 39 || leagues[1] != 140 {
		t.Errorf("leagues = %v, want [39 140]", leagues)
	}
}

func TestBadgerRoundTrip(t *testing.T) {
	t.Parallel()

	repo, err := OpenBadger(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	if _, ok, err := repo.Get("missing"); ok || err != nil {
		t.Errorf("missing key: ok=%v err=%v", ok, err)
	}
	if err := repo.Set("theme", []byte(`"light"`)); err != nil {
		t.Fatal(err)
	}
	value, ok, err := repo.Get("theme")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(value) != `"light"` {
		t.Errorf("value = %s", value)
	}

	// The typed store works identically over Badger.
	s := NewStore(repo)
	if err := s.PinMatch(77); err != nil {
		t.Fatal(err)
	}
	pinned, _ := s.PinnedMatches()
	if len(pinned) != 1 || pinned[0] != 77 {
		t.Errorf("pinned = %v, want [77]", pinned)
	}
}
