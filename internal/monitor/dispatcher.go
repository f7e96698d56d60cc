// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package monitor

import (
	"github.com/tmorland/pitchside/internal/logging"
	"github.com/tmorland/pitchside/internal/metrics"
	"github.com/tmorland/pitchside/internal/models"
)

// Preferences exposes the opt-in flags the dispatcher consults. Satisfied
// by *prefs.Store.
type Preferences interface {
	SoundEnabled() (bool, error)
	NotificationsEnabled() (bool, error)
}

// Dispatcher fans a goal alert out to the sound and notification
// collaborators. Dispatch is fire-and-forget: no retry, no queueing, and
// a failure in one collaborator never blocks the other. A broken
// collaborator is logged and otherwise ignored so the next detection
// cycle is unaffected.
type Dispatcher struct {
	prefs    Preferences
	sound    SoundPlayer
	notifier Notifier
}

// NewDispatcher wires the dispatcher to the host capabilities. Nil
// capabilities are replaced by no-ops.
func NewDispatcher(prefs Preferences, sound SoundPlayer, notifier Notifier) *Dispatcher {
	if sound == nil {
		sound = NopSound{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Dispatcher{prefs: prefs, sound: sound, notifier: notifier}
}

// Dispatch fires the side effects for one alert. Either, both, or
// neither collaborator may run depending on the user's opt-in flags.
func (d *Dispatcher) Dispatch(alert models.GoalAlert) {
	metrics.AlertsEmitted.WithLabelValues(alert.League).Inc()
	logging.Info().
		Str("alert_id", alert.ID).
		Int("match_id", alert.MatchID).
		Str("side", string(alert.Side)).
		Str("score", alert.Scoreline()).
		Str("league", alert.League).
		Msg("Goal alert")

	if enabled, err := d.prefs.SoundEnabled(); err != nil {
		logging.Warn().Err(err).Msg("Sound preference unreadable, skipping sound")
	} else if enabled {
		if err := d.sound.Play(alert); err != nil {
			logging.Warn().Err(err).Str("alert_id", alert.ID).Msg("Sound playback failed")
		}
	}

	if enabled, err := d.prefs.NotificationsEnabled(); err != nil {
		logging.Warn().Err(err).Msg("Notification preference unreadable, skipping notification")
	} else if enabled {
		if err := d.notifier.Notify(alert); err != nil {
			logging.Warn().Err(err).Str("alert_id", alert.ID).Msg("Notification delivery failed")
		}
	}
}
