// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package models

import "fmt"

// Side identifies which team scored.
type Side string

// Scoring sides.
const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// GoalAlert is one detected score increase on a monitored match.
// Exactly one alert is emitted per detected increase; the dispatcher
// fans it out to the sound and notification collaborators.
type GoalAlert struct {
	ID        string // unique event id
	MatchID   int
	Side      Side
	Team      string // display name of the scoring team
	HomeScore int
	AwayScore int
	League    string
}

// Scoreline renders the new score as "home-away", e.g. "2-0".
func (a GoalAlert) Scoreline() string {
	return fmt.Sprintf("%d-%d", a.HomeScore, a.AwayScore)
}

// Message renders the human-readable alert text.
func (a GoalAlert) Message() string {
	return fmt.Sprintf("GOAL! %s (%s) - %s", a.Team, a.Scoreline(), a.League)
}
