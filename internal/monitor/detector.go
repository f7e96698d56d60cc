// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package monitor watches the user's monitored leagues for score changes
// and turns them into goal alerts. The detector keeps a per-match score
// baseline and compares every fresh observation against it; the
// dispatcher fans confirmed alerts out to the sound and notification
// collaborators. Both run inside a supervised service on a fixed cadence.
package monitor

import (
	"github.com/google/uuid"

	"github.com/tmorland/pitchside/internal/models"
)

// Detector diffs live-match observations against stored score baselines.
// Baselines are keyed by match id and exclusively owned by the detector;
// they are created on first sighting, replaced on every later observation
// and dropped when the match's league leaves the monitored set.
//
// Detector is not safe for concurrent use. The monitor service calls it
// from a single goroutine.
type Detector struct {
	baselines map[int]models.ScoreSnapshot
}

// NewDetector returns an empty detector with no baselines.
func NewDetector() *Detector {
	return &Detector{baselines: make(map[int]models.ScoreSnapshot)}
}

// Observe diffs one cycle of live-match observations and returns the
// alerts to dispatch, at most one per match per cycle.
//
// Rules, in order:
//   - First sighting of a match creates its baseline and never alerts.
//   - A strict increase on either side alerts once, naming the scoring
//     side and the new score line. When both sides increased in the same
//     observation the home side is reported.
//   - Anything else is silent. A decrease is a data correction: no alert,
//     but the baseline still moves to the corrected score so a later goal
//     alerts from the corrected value.
//
// The baseline is replaced on every observation regardless of outcome,
// so an unchanged score can never re-alert on the next cycle.
func (d *Detector) Observe(matches []models.Match) []models.GoalAlert {
	var alerts []models.GoalAlert
	for _, m := range matches {
		if !m.Phase.IsLive() {
			continue
		}
		prev, seen := d.baselines[m.ID]
		d.baselines[m.ID] = models.SnapshotOf(m)
		if !seen {
			continue
		}
		if alert, ok := diff(prev, m); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

// diff reports whether the observation is a strict score increase over
// the baseline, and builds the alert if so.
func diff(prev models.ScoreSnapshot, m models.Match) (models.GoalAlert, bool) {
	var side models.Side
	var team string
	switch {
	case m.HomeScore > prev.Home:
		side, team = models.SideHome, m.HomeTeam
	case m.AwayScore > prev.Away:
		side, team = models.SideAway, m.AwayTeam
	default:
		return models.GoalAlert{}, false
	}
	return models.GoalAlert{
		ID:        uuid.NewString(),
		MatchID:   m.ID,
		Side:      side,
		Team:      team,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		League:    m.LeagueName,
	}, true
}

// Prune drops baselines for matches whose league is no longer monitored.
// Called when the monitored league set changes so a league that is
// re-added later starts cold.
func (d *Detector) Prune(leagueIDs []int) {
	keep := make(map[int]struct{}, len(leagueIDs))
	for _, id := range leagueIDs {
		keep[id] = struct{}{}
	}
	for matchID, snap := range d.baselines {
		if _, ok := keep[snap.LeagueID]; !ok {
			delete(d.baselines, matchID)
		}
	}
}

// Reset drops every baseline. Used on monitor teardown.
func (d *Detector) Reset() {
	d.baselines = make(map[int]models.ScoreSnapshot)
}

// Tracked returns the number of matches with a stored baseline.
func (d *Detector) Tracked() int {
	return len(d.baselines)
}
