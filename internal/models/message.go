// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package models

import (
	"errors"

	"github.com/goccy/go-json"
)

// MessageType tags an inbound realtime frame.
type MessageType string

// Inbound frame types. Pong carries no payload and is discarded by the
// transport; the other three carry full or partial match state.
const (
	MessageSnapshot MessageType = "snapshot"
	MessageDelta    MessageType = "delta"
	MessageState    MessageType = "state"
	MessagePong     MessageType = "pong"
)

// ErrMalformedFrame reports an inbound frame that could not be decoded.
// The realtime client drops such frames without surfacing them.
var ErrMalformedFrame = errors.New("malformed realtime frame")

// InboundMessage is one decoded frame from the realtime channel.
// Payload holds the raw state or delta document; interpretation is up to
// the detail view consuming the buffer.
type InboundMessage struct {
	Type     MessageType     `json:"type"`
	TargetID int             `json:"target_id,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// DecodeInbound parses a raw frame into an InboundMessage.
// Returns ErrMalformedFrame for undecodable or untyped frames.
func DecodeInbound(data []byte) (InboundMessage, error) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return InboundMessage{}, errors.Join(ErrMalformedFrame, err)
	}
	switch msg.Type {
	case MessageSnapshot, MessageDelta, MessageState, MessagePong:
		return msg, nil
	default:
		return InboundMessage{}, ErrMalformedFrame
	}
}

// SubscribeFrame is the single outbound frame sent after a successful
// channel open, naming the target and requested tiers.
type SubscribeFrame struct {
	Op       string `json:"op"`
	TargetID int    `json:"target_id"`
	Tiers    []int  `json:"tiers"`
}
