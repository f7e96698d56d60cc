// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package monitor

import "github.com/tmorland/pitchside/internal/models"

// SoundPlayer is the host sound-playback capability. Implementations are
// free to ignore the alert contents and play a fixed chime.
type SoundPlayer interface {
	Play(alert models.GoalAlert) error
}

// Notifier is the host local-notification capability.
type Notifier interface {
	Notify(alert models.GoalAlert) error
}

// NopSound is a SoundPlayer for hosts without audio.
type NopSound struct{}

func (NopSound) Play(models.GoalAlert) error { return nil }

// NopNotifier is a Notifier for hosts without notification support.
type NopNotifier struct{}

func (NopNotifier) Notify(models.GoalAlert) error { return nil }
