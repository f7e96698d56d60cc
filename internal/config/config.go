// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package config loads Pitchside configuration from layered sources:
// built-in defaults, an optional YAML file, and PITCHSIDE_* environment
// variables, in increasing order of precedence.
package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the Pitchside daemon and library.
type Config struct {
	API      APIConfig      `koanf:"api"`
	Realtime RealtimeConfig `koanf:"realtime"`
	Monitor  MonitorConfig  `koanf:"monitor"`
	Poll     PollConfig     `koanf:"poll"`
	Prefs    PrefsConfig    `koanf:"prefs"`
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// APIConfig configures the REST client for the sports data provider.
type APIConfig struct {
	// BaseURL is the provider API root, e.g. "https://api.example.com/v4".
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Timeout bounds each individual request attempt.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// RetryMax is the number of retries after the first attempt.
	// Retries apply only to network errors and 5xx responses.
	RetryMax int `koanf:"retry_max" validate:"gte=0"`

	// RetryBackoff is the linear backoff base: attempt N waits N*RetryBackoff.
	RetryBackoff time.Duration `koanf:"retry_backoff" validate:"gte=0"`

	// RateLimit is the sustained outbound request rate per second.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`

	// RateBurst is the rate limiter burst size.
	RateBurst int `koanf:"rate_burst" validate:"gte=0"`
}

// RealtimeConfig configures the websocket channel client.
type RealtimeConfig struct {
	// URL is the websocket endpoint, e.g. "wss://rt.example.com/feed".
	URL string `koanf:"url"`

	// BaseDelay is the first reconnect backoff delay.
	BaseDelay time.Duration `koanf:"base_delay" validate:"gt=0"`

	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration `koanf:"max_delay" validate:"gt=0"`

	// MaxAttempts bounds reconnect attempts before the client gives up.
	MaxAttempts int `koanf:"max_attempts" validate:"gt=0"`

	// BufferSize is the inbound message ring buffer capacity.
	BufferSize int `koanf:"buffer_size" validate:"gt=0"`

	// HandshakeTimeout bounds the websocket dial.
	HandshakeTimeout time.Duration `koanf:"handshake_timeout" validate:"gt=0"`

	// ReadTimeout is the heartbeat tolerance: a connection with no traffic
	// for this long is considered dead.
	ReadTimeout time.Duration `koanf:"read_timeout" validate:"gt=0"`

	// PingInterval is how often the client sends keepalive pings.
	PingInterval time.Duration `koanf:"ping_interval" validate:"gt=0"`
}

// MonitorConfig configures the score-change monitor.
type MonitorConfig struct {
	// Interval is the fixed detection cadence.
	Interval time.Duration `koanf:"interval" validate:"gt=0"`

	// BatchSize caps concurrent scoreboard requests per wave.
	BatchSize int `koanf:"batch_size" validate:"gt=0"`
}

// PollConfig configures the default polling cadence for display views.
type PollConfig struct {
	// Interval is the foreground refresh cadence. Zero or below disables
	// the background timer.
	Interval time.Duration `koanf:"interval"`

	// HiddenInterval is the cadence while the host is backgrounded.
	// Zero means "no hidden cadence configured" and the normal interval
	// applies regardless of visibility.
	HiddenInterval time.Duration `koanf:"hidden_interval"`
}

// PrefsConfig configures the persisted user-preference store.
type PrefsConfig struct {
	// Dir is the Badger database directory. Empty selects an in-memory
	// store, which does not survive restarts.
	Dir string `koanf:"dir"`
}

// ServerConfig configures the local operational endpoint.
type ServerConfig struct {
	// ListenAddr serves /healthz and /metrics. Empty disables the endpoint.
	ListenAddr string `koanf:"listen_addr"`
}

// LoggingConfig configures logging behaviour.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// defaultConfig returns a Config with all defaults applied. These are
// overridden by the config file and then by environment variables.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "http://localhost:8090/api/v1",
			Timeout:      10 * time.Second,
			RetryMax:     2,
			RetryBackoff: 500 * time.Millisecond,
			RateLimit:    10,
			RateBurst:    20,
		},
		Realtime: RealtimeConfig{
			URL:              "",
			BaseDelay:        time.Second,
			MaxDelay:         30 * time.Second,
			MaxAttempts:      10,
			BufferSize:       256,
			HandshakeTimeout: 10 * time.Second,
			ReadTimeout:      60 * time.Second,
			PingInterval:     30 * time.Second,
		},
		Monitor: MonitorConfig{
			Interval:  20 * time.Second,
			BatchSize: 4,
		},
		Poll: PollConfig{
			Interval:       30 * time.Second,
			HiddenInterval: 2 * time.Minute,
		},
		Prefs: PrefsConfig{
			Dir: "",
		},
		Server: ServerConfig{
			ListenAddr: "127.0.0.1:9390",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration against its struct tags plus the
// cross-field constraints the tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return c.validateRealtime()
}

// validateRealtime enforces backoff ordering: the cap must not be below
// the base delay or the backoff sequence would be non-monotonic.
func (c *Config) validateRealtime() error {
	if c.Realtime.MaxDelay < c.Realtime.BaseDelay {
		return errMaxDelayBelowBase
	}
	return nil
}
