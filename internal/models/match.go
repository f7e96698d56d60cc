// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package models defines the shared domain types for Pitchside: tracked
// matches with their lifecycle phase, score snapshots, realtime frames,
// and goal alerts.
package models

import "fmt"

// Phase is the lifecycle stage of a tracked match.
type Phase string

// Match lifecycle phases. Live sub-phases are distinct so that clock and
// period rendering can differ, but most callers only care about IsLive.
const (
	PhaseScheduled  Phase = "scheduled"
	PhaseFirstHalf  Phase = "live_first_half"
	PhaseSecondHalf Phase = "live_second_half"
	PhaseOvertime   Phase = "live_overtime"
	PhaseHalfTime   Phase = "half_time"
	PhaseFinished   Phase = "finished"
	PhasePostponed  Phase = "postponed"
	PhaseCancelled  Phase = "cancelled"
)

// IsLive reports whether the match is in an in-play phase.
// The half-time break is not live: no score can change during it, and the
// score monitor skips matches in a break phase.
func (p Phase) IsLive() bool {
	switch p {
	case PhaseFirstHalf, PhaseSecondHalf, PhaseOvertime:
		return true
	default:
		return false
	}
}

// IsBreak reports whether the match is in a neutral break phase.
func (p Phase) IsBreak() bool {
	return p == PhaseHalfTime
}

// IsTerminal reports whether the match will never become live again.
func (p Phase) IsTerminal() bool {
	switch p {
	case PhaseFinished, PhasePostponed, PhaseCancelled:
		return true
	default:
		return false
	}
}

// Match is one tracked fixture as last observed from a provider.
// Values are immutable per observation: a fresh fetch produces a fresh
// Match, never a mutation of a previous one.
type Match struct {
	ID         int    `json:"id"`
	Phase      Phase  `json:"phase"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	LeagueID   int    `json:"league_id"`
	LeagueName string `json:"league_name"`
	Clock      string `json:"clock,omitempty"`
	Period     string `json:"period,omitempty"`
}

// Scoreline renders the score as "home-away", e.g. "2-0".
func (m Match) Scoreline() string {
	return fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore)
}

// League is one competition grouping tracked matches.
type League struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// TodaySummary is the aggregate live-count snapshot for the current day.
type TodaySummary struct {
	LiveCount  int `json:"live_count"`
	TotalCount int `json:"total_count"`
}

// Headline is one entry from the trending/breaking feed.
type Headline struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at,omitempty"`
}

// ScoreSnapshot is the last-observed score baseline for one monitored match.
// Created on first observation of a live match, replaced on every later
// observation, dropped when the match leaves the monitored set.
type ScoreSnapshot struct {
	Home     int
	Away     int
	HomeTeam string
	AwayTeam string
	LeagueID int
	League   string
}

// SnapshotOf builds the baseline snapshot for a match observation.
func SnapshotOf(m Match) ScoreSnapshot {
	return ScoreSnapshot{
		Home:     m.HomeScore,
		Away:     m.AwayScore,
		HomeTeam: m.HomeTeam,
		AwayTeam: m.AwayTeam,
		LeagueID: m.LeagueID,
		League:   m.LeagueName,
	}
}
