// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

// Package main is the entry point for the Pitchside synchronization daemon.
//
// Pitchside keeps a live-sports client in sync with its score provider:
// visibility-aware polling for display views, bounded-concurrency batch
// fetching, a websocket channel for per-match realtime detail, and a
// score-change monitor that turns goals in the user's monitored leagues
// into sound and notification alerts.
//
// # Application Architecture
//
// The daemon initializes components in the following order:
//
//	1. Configuration: defaults, optional YAML file, environment (Koanf v2)
//	2. Preference store: BadgerDB at prefs.dir, or in-memory when unset
//	3. Provider client: rate-limited REST client behind a circuit breaker
//	4. Supervisor tree: score monitor, realtime client, health prober
//	5. Operational endpoint: /healthz and /metrics on server.listen_addr
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (PITCHSIDE_ prefix, e.g. PITCHSIDE_API_BASE_URL)
//   - Config file (pitchside.yaml, or PITCHSIDE_CONFIG to override)
//   - Built-in defaults
//
// # Signal Handling
//
// The daemon shuts down gracefully on SIGINT and SIGTERM: the supervisor
// tree stops its services, the realtime channel closes with a close
// frame, and the preference store is flushed and closed.
//
// # Example Usage
//
//	export PITCHSIDE_API_BASE_URL=https://scores.example.com/api/v1
//	export PITCHSIDE_REALTIME_URL=wss://scores.example.com/feed
//	export PITCHSIDE_PREFS_DIR=/var/lib/pitchside
//	./pitchsided
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tmorland/pitchside/internal/api"
	"github.com/tmorland/pitchside/internal/config"
	"github.com/tmorland/pitchside/internal/health"
	"github.com/tmorland/pitchside/internal/logging"
	"github.com/tmorland/pitchside/internal/monitor"
	"github.com/tmorland/pitchside/internal/prefs"
	"github.com/tmorland/pitchside/internal/realtime"
	"github.com/tmorland/pitchside/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("api_base_url", cfg.API.BaseURL).
		Bool("realtime_enabled", cfg.Realtime.URL != "").
		Str("prefs_dir", cfg.Prefs.Dir).
		Msg("Starting Pitchside daemon")

	// Preference store: Badger when a directory is configured, otherwise
	// in-memory (preferences then reset on restart).
	var repo prefs.Repository
	var badgerRepo *prefs.Badger
	if cfg.Prefs.Dir != "" {
		badgerRepo, err = prefs.OpenBadger(cfg.Prefs.Dir)
		if err != nil {
			logging.Fatal().Err(err).Str("dir", cfg.Prefs.Dir).Msg("Failed to open preference store")
		}
		repo = badgerRepo
	} else {
		logging.Warn().Msg("No prefs.dir configured, preferences will not persist")
		repo = prefs.NewMemory()
	}
	store := prefs.NewStore(repo)

	// Provider client with rate limiting, retries, and a circuit breaker.
	client := api.NewClient(&cfg.API)
	breaker := api.NewBreakerClient(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for the supervisor's event hook.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	// Score monitor. The daemon is headless: sound and notification
	// capabilities are no-ops until a host frontend registers real ones.
	dispatcher := monitor.NewDispatcher(store, monitor.NopSound{}, monitor.NopNotifier{})
	tree.AddSyncService(monitor.NewService(cfg.Monitor, breaker, store, dispatcher))

	// Realtime channel client, pinned to the supervisor's lifetime. The
	// subscription target is driven by whichever view has focus.
	var rtClient *realtime.Client
	if cfg.Realtime.URL != "" {
		rtClient = realtime.NewClient(&cfg.Realtime)
		tree.AddSyncService(supervisor.NewLifetimeService(rtClient, "realtime-client"))
	}

	// Upstream connectivity prober behind the /healthz banner state.
	prober := health.NewProber(breaker, cfg.Poll.Interval)
	tree.AddSyncService(prober)

	// Operational endpoint.
	if cfg.Server.ListenAddr != "" {
		var rtState func() string
		if rtClient != nil {
			rtState = func() string { return rtClient.State().String() }
		}
		server := &http.Server{
			Addr:              cfg.Server.ListenAddr,
			Handler:           api.NewOpsRouter(prober, rtState),
			ReadHeaderTimeout: 10 * time.Second,
		}
		tree.AddOpsService(supervisor.NewHTTPService(server, 10*time.Second))
		logging.Info().Str("addr", server.Addr).Msg("Operational endpoint enabled")
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if badgerRepo != nil {
		if err := badgerRepo.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing preference store")
		}
	}

	logging.Info().Msg("Daemon stopped gracefully")
}
