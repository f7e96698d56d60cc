// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package realtime

import "github.com/tmorland/pitchside/internal/models"

// ring is a fixed-capacity message buffer. Past capacity, the oldest
// entry is evicted. Not safe for concurrent use; the client guards it
// with its own mutex.
type ring struct {
	buf   []models.InboundMessage
	next  int
	count int
}

func newRing(capacity int) *ring {
	if capacity < 1 {
		capacity = 1
	}
	return &ring{buf: make([]models.InboundMessage, capacity)}
}

// push appends a message, evicting the oldest when full.
func (r *ring) push(msg models.InboundMessage) {
	r.buf[r.next] = msg
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// snapshot returns the buffered messages, oldest first.
func (r *ring) snapshot() []models.InboundMessage {
	out := make([]models.InboundMessage, 0, r.count)
	start := r.next - r.count
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < r.count; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// reset drops all buffered messages.
func (r *ring) reset() {
	r.next = 0
	r.count = 0
}

// len reports the number of buffered messages.
func (r *ring) len() int {
	return r.count
}
