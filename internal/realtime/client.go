// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package realtime implements the persistent channel client for a single
// focused match: subscribe on open, heartbeat tolerance, reconnect with
// bounded exponential backoff, and a fixed-capacity inbound buffer.
//
// The reconnect logic is an explicit state machine with a single owned,
// cancelable retry timer per client. Every asynchronous completion
// (dial result, read error, timer expiry) checks that its originating
// generation still matches before mutating state, so a torn-down session
// can never be revived by a stale callback.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tmorland/pitchside/internal/config"
	"github.com/tmorland/pitchside/internal/logging"
	"github.com/tmorland/pitchside/internal/metrics"
	"github.com/tmorland/pitchside/internal/models"
)

// Client maintains the realtime channel for one subscription target at a
// time. Assigning a new target resets the attempt counter and reconnects
// immediately; clearing the target synchronously cancels any pending
// backoff timer and closes the channel.
type Client struct {
	cfg config.RealtimeConfig

	mu       sync.Mutex
	state    State
	target   int
	tiers    []Tier
	attempts int
	gen      int
	conn     *websocket.Conn
	retry    *time.Timer
	done     chan struct{}
	buf      *ring

	onMessage func(models.InboundMessage)
	onState   func(State)
}

// NewClient creates a disconnected client.
func NewClient(cfg *config.RealtimeConfig) *Client {
	return &Client{
		cfg:   *cfg,
		state: StateIdle,
		buf:   newRing(cfg.BufferSize),
	}
}

// SetHandlers registers the message and state-change callbacks. Both are
// optional. Callbacks are invoked outside the client's lock and must not
// block for long; they run on the transport goroutines.
func (c *Client) SetHandlers(onMessage func(models.InboundMessage), onState func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = onMessage
	c.onState = onState
}

// SetTarget switches the subscription to a new match. Any previous
// session is torn down first. Passing no tiers requests the defaults
// (coarse state plus timeline).
func (c *Client) SetTarget(matchID int, tiers ...Tier) {
	if matchID <= 0 {
		c.ClearTarget()
		return
	}
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}

	c.mu.Lock()
	c.teardownLocked()
	c.target = matchID
	c.tiers = tiers
	c.attempts = 0
	c.buf.reset()
	c.done = make(chan struct{})
	gen := c.gen
	notify := c.setStateLocked(StateConnecting)
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
	go c.connect(gen)
}

// ClearTarget tears the session down: the retry timer is cancelled and
// the channel closed before this method returns, so no stale attempt can
// fire for the old target afterwards.
func (c *Client) ClearTarget() {
	c.mu.Lock()
	c.teardownLocked()
	c.target = 0
	c.tiers = nil
	c.attempts = 0
	notify := c.setStateLocked(StateIdle)
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Close is an alias for ClearTarget, for use in defer chains.
func (c *Client) Close() error {
	c.ClearTarget()
	return nil
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attempts returns the failed attempt count for the current target.
func (c *Client) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// Messages returns the buffered inbound messages, oldest first. While
// disconnected this is exactly what a detail view keeps showing.
func (c *Client) Messages() []models.InboundMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.snapshot()
}

// teardownLocked invalidates the current generation: pending retry timer
// stopped, connection closed, per-session done channel closed.
func (c *Client) teardownLocked() {
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	if c.conn != nil {
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		_ = c.conn.Close()
		c.conn = nil
	}
	c.gen++
}

// setStateLocked transitions the state and returns the deferred
// callback invocation, or nil when nothing changed.
func (c *Client) setStateLocked(s State) func() {
	if c.state == s {
		return nil
	}
	logging.Debug().
		Str("from", c.state.String()).
		Str("to", s.String()).
		Int("target", c.target).
		Msg("Realtime state transition")
	c.state = s
	metrics.RealtimeState.Set(float64(s))
	cb := c.onState
	if cb == nil {
		return nil
	}
	return func() { cb(s) }
}

// connect dials the channel for the given generation and, on success,
// sends the subscribe frame and starts the read and ping loops.
func (c *Client) connect(gen int) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	target := c.target
	tiers := tierValues(c.tiers)
	url := c.cfg.URL
	c.mu.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout:  c.cfg.HandshakeTimeout,
		EnableCompression: true,
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.HandshakeTimeout)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		logging.Debug().Err(err).Int("target", target).Msg("Realtime dial failed")
		c.connectionFailed(gen)
		return
	}

	frame, err := json.Marshal(models.SubscribeFrame{Op: "subscribe", TargetID: target, Tiers: tiers})
	if err == nil {
		err = conn.WriteMessage(websocket.TextMessage, frame)
	}
	if err != nil {
		_ = conn.Close()
		c.connectionFailed(gen)
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		// Target changed while dialing; this channel belongs to a dead
		// session.
		c.mu.Unlock()
		_ = conn.Close()
		return
	}
	c.conn = conn
	c.attempts = 0
	done := c.done
	notify := c.setStateLocked(StateOpen)
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
	logging.Info().Int("target", target).Msg("Realtime channel open")

	go c.readLoop(gen, conn)
	go c.pingLoop(gen, conn, done)
}

// readLoop consumes frames until the connection dies. Heartbeat
// tolerance: the read deadline is pushed on every frame and every pong.
func (c *Client) readLoop(gen int, conn *websocket.Conn) {
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	})

	for {
		_ = conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.connectionLost(gen)
			return
		}
		c.handleFrame(gen, data)
	}
}

// handleFrame decodes and buffers one inbound frame. Pongs are discarded;
// malformed frames are dropped without surfacing an error.
func (c *Client) handleFrame(gen int, data []byte) {
	msg, err := models.DecodeInbound(data)
	if err != nil {
		metrics.RealtimeMessages.WithLabelValues("malformed").Inc()
		logging.Debug().Err(err).Msg("Dropping malformed realtime frame")
		return
	}
	metrics.RealtimeMessages.WithLabelValues(string(msg.Type)).Inc()
	if msg.Type == models.MessagePong {
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.buf.push(msg)
	cb := c.onMessage
	c.mu.Unlock()

	if cb != nil {
		cb(msg)
	}
}

// pingLoop sends keepalive pings until the session's done channel closes.
// A failed ping is ignored here; the read loop detects the dead peer via
// its deadline.
func (c *Client) pingLoop(gen int, conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.mu.Lock()
			stale := gen != c.gen
			c.mu.Unlock()
			if stale {
				return
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				// Connection is gone; the read loop handles recovery.
				return
			}
		}
	}
}

// connectionFailed handles a dial or subscribe failure.
func (c *Client) connectionFailed(gen int) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	notify := c.setStateLocked(StateReconnecting)
	retryNotify := c.scheduleRetryLocked(gen)
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
	if retryNotify != nil {
		retryNotify()
	}
}

// connectionLost handles an unexpected closure of an open channel.
func (c *Client) connectionLost(gen int) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	notify := c.setStateLocked(StateReconnecting)
	retryNotify := c.scheduleRetryLocked(gen)
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
	if retryNotify != nil {
		retryNotify()
	}
}

// scheduleRetryLocked records one failed attempt and either arms the
// single retry timer or, once attempts are exhausted, goes Closed. The
// returned func is a deferred state notification for the Closed case.
func (c *Client) scheduleRetryLocked(gen int) func() {
	c.attempts++
	metrics.RealtimeReconnects.Inc()

	if c.attempts >= c.cfg.MaxAttempts {
		logging.Warn().
			Int("target", c.target).
			Int("attempts", c.attempts).
			Msg("Realtime reconnect attempts exhausted")
		return c.setStateLocked(StateClosed)
	}

	delay := backoffDelay(c.cfg.BaseDelay, c.cfg.MaxDelay, c.attempts)
	logging.Debug().
		Int("target", c.target).
		Int("attempt", c.attempts).
		Dur("delay", delay).
		Msg("Realtime reconnect scheduled")

	c.retry = time.AfterFunc(delay, func() {
		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			return
		}
		c.retry = nil
		notify := c.setStateLocked(StateConnecting)
		c.mu.Unlock()

		if notify != nil {
			notify()
		}
		c.connect(gen)
	})
	return nil
}

// backoffDelay computes min(base * 2^(attempt-1), max) for attempt >= 1.
func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}
