// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package prefs persists user preferences: pinned matches, monitored
// leagues, theme, and the sound/notification opt-ins. The core consumes
// it through the narrow Repository contract so tests substitute the
// in-memory implementation for the Badger-backed one.
package prefs

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Repository is the persisted key-value contract: get returns the value
// or reports absence, set stores unconditionally.
type Repository interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

// Preference keys.
const (
	KeyPinnedMatches        = "pinned_matches"
	KeyMonitoredLeagues     = "monitored_leagues"
	KeyTheme                = "theme"
	KeySoundEnabled         = "sound_enabled"
	KeyNotificationsEnabled = "notifications_enabled"
)

// MaxPinned caps the pinned match list.
const MaxPinned = 3

// ErrPinLimit reports an attempt to pin past the cap.
var ErrPinLimit = errors.New("pinned match limit reached")

// Store layers typed accessors over a Repository.
type Store struct {
	repo Repository
}

// NewStore wraps a repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// PinnedMatches returns the pinned match ids in insertion order.
func (s *Store) PinnedMatches() ([]int, error) {
	return s.intList(KeyPinnedMatches)
}

// PinMatch appends a match to the pinned list. Pinning an already-pinned
// match is a no-op; pinning past the cap fails with ErrPinLimit.
func (s *Store) PinMatch(id int) error {
	pinned, err := s.PinnedMatches()
	if err != nil {
		return err
	}
	for _, p := range pinned {
		if p == id {
			return nil
		}
	}
	if len(pinned) >= MaxPinned {
		return ErrPinLimit
	}
	return s.setIntList(KeyPinnedMatches, append(pinned, id))
}

// UnpinMatch removes a match from the pinned list. Unknown ids are
// ignored.
func (s *Store) UnpinMatch(id int) error {
	pinned, err := s.PinnedMatches()
	if err != nil {
		return err
	}
	out := pinned[:0]
	for _, p := range pinned {
		if p != id {
			out = append(out, p)
		}
	}
	return s.setIntList(KeyPinnedMatches, out)
}

// MonitoredLeagues returns the league ids the user designated for goal
// monitoring. An empty list means the monitor performs no work.
func (s *Store) MonitoredLeagues() ([]int, error) {
	return s.intList(KeyMonitoredLeagues)
}

// SetMonitoredLeagues replaces the monitored league set.
func (s *Store) SetMonitoredLeagues(ids []int) error {
	return s.setIntList(KeyMonitoredLeagues, ids)
}

// Theme returns the stored theme mode, or "" when unset.
func (s *Store) Theme() (string, error) {
	raw, ok, err := s.repo.Get(KeyTheme)
	if err != nil || !ok {
		return "", err
	}
	var theme string
	if err := json.Unmarshal(raw, &theme); err != nil {
		return "", fmt.Errorf("decode theme: %w", err)
	}
	return theme, nil
}

// SetTheme stores the theme mode.
func (s *Store) SetTheme(theme string) error {
	return s.setJSON(KeyTheme, theme)
}

// SoundEnabled reports the goal-sound opt-in. Defaults to false when
// unset.
func (s *Store) SoundEnabled() (bool, error) {
	return s.boolFlag(KeySoundEnabled)
}

// SetSoundEnabled stores the goal-sound opt-in.
func (s *Store) SetSoundEnabled(v bool) error {
	return s.setJSON(KeySoundEnabled, v)
}

// NotificationsEnabled reports the notification opt-in. Defaults to
// false when unset.
func (s *Store) NotificationsEnabled() (bool, error) {
	return s.boolFlag(KeyNotificationsEnabled)
}

// SetNotificationsEnabled stores the notification opt-in.
func (s *Store) SetNotificationsEnabled(v bool) error {
	return s.setJSON(KeyNotificationsEnabled, v)
}

func (s *Store) intList(key string) ([]int, error) {
	raw, ok, err := s.repo.Get(key)
	if err != nil || !ok {
		return nil, err
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return ids, nil
}

func (s *Store) setIntList(key string, ids []int) error {
	return s.setJSON(key, ids)
}

func (s *Store) boolFlag(key string) (bool, error) {
	raw, ok, err := s.repo.Get(key)
	if err != nil || !ok {
		return false, err
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) setJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.repo.Set(key, raw)
}
