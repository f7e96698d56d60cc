// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package realtime

// State is the connection lifecycle of one subscription target.
type State int

// Connection states. Closed is terminal for the current target: once
// reconnect attempts are exhausted, nothing happens until the caller
// assigns a new target.
const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateReconnecting
	StateClosed
)

// String renders the state for logs and the disconnected indicator.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Tier is one named subscription channel controlling update granularity.
// The set is closed so the subscribe-frame contract stays exhaustively
// testable; wire encoding keeps the provider's numeric values.
type Tier int

const (
	// TierState delivers coarse state updates (phase, score).
	TierState Tier = 0
	// TierTimeline delivers the fine-grained event log.
	TierTimeline Tier = 1
)

// DefaultTiers is what a detail view requests: both channels.
func DefaultTiers() []Tier {
	return []Tier{TierState, TierTimeline}
}

// tierValues converts tiers to their wire encoding.
func tierValues(tiers []Tier) []int {
	out := make([]int, len(tiers))
	for i, t := range tiers {
		out[i] = int(t)
	}
	return out
}
