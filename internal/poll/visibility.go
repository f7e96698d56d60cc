// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package poll

// Visibility reports whether the host display is currently backgrounded.
// It abstracts the page-visibility signal of the embedding application so
// pollers stay testable without a real host environment. The host calls
// Poller.VisibilityChanged when the signal flips.
type Visibility interface {
	Hidden() bool
}

// Foreground is the Visibility for hosts with no backgrounding signal:
// never hidden, so the normal interval always applies.
type Foreground struct{}

// Hidden always returns false.
func (Foreground) Hidden() bool { return false }
