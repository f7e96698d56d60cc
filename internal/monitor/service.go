// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package monitor

import (
	"context"
	"strconv"
	"time"

	"github.com/tmorland/pitchside/internal/batch"
	"github.com/tmorland/pitchside/internal/config"
	"github.com/tmorland/pitchside/internal/logging"
	"github.com/tmorland/pitchside/internal/metrics"
	"github.com/tmorland/pitchside/internal/models"
)

// ScoreboardFetcher fetches the current matches for one league. Satisfied
// by *api.Client and *api.BreakerClient.
type ScoreboardFetcher interface {
	Scoreboard(ctx context.Context, leagueID int) ([]models.Match, error)
}

// LeagueSource reports which leagues the user wants goal alerts for.
// Satisfied by *prefs.Store.
type LeagueSource interface {
	MonitoredLeagues() ([]int, error)
}

// Service runs score-change detection on a fixed cadence. It implements
// suture.Service; the supervisor restarts it if a cycle panics.
//
// Each cycle reads the monitored league set, batch-fetches their
// scoreboards under the configured concurrency cap, diffs the live
// matches against the detector's baselines and dispatches any alerts.
// An empty monitored set makes the cycle a no-op: the ticker keeps
// running but no network work happens.
type Service struct {
	cfg        config.MonitorConfig
	fetcher    ScoreboardFetcher
	leagues    LeagueSource
	detector   *Detector
	dispatcher *Dispatcher
}

// NewService assembles the monitor from its collaborators.
func NewService(cfg config.MonitorConfig, fetcher ScoreboardFetcher, leagues LeagueSource, dispatcher *Dispatcher) *Service {
	return &Service{
		cfg:        cfg,
		fetcher:    fetcher,
		leagues:    leagues,
		detector:   NewDetector(),
		dispatcher: dispatcher,
	}
}

// Serve implements suture.Service. It runs one cycle immediately, then
// one per interval until the context is canceled.
func (s *Service) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			s.detector.Reset()
			return ctx.Err()
		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *Service) String() string {
	return "score-monitor"
}

// cycle runs one detection pass. Errors are contained here: a failed
// league fetch drops that league's matches from the pass and nothing
// else, and a misbehaving alert collaborator is absorbed by the
// dispatcher. Nothing propagates to the supervisor.
func (s *Service) cycle(ctx context.Context) {
	leagueIDs, err := s.leagues.MonitoredLeagues()
	if err != nil {
		logging.Warn().Err(err).Msg("Monitored league set unreadable, skipping cycle")
		return
	}
	s.detector.Prune(leagueIDs)
	if len(leagueIDs) == 0 {
		return
	}
	metrics.MonitorCycles.Inc()

	items := make([]batch.Item, len(leagueIDs))
	for i, id := range leagueIDs {
		items[i] = batch.Item{ID: id, Group: strconv.Itoa(id)}
	}
	results := batch.FetchAll(ctx, items, s.cfg.BatchSize, func(ctx context.Context, item batch.Item) ([]models.Match, error) {
		return s.fetcher.Scoreboard(ctx, item.ID)
	})

	var live []models.Match
	for _, res := range results {
		for _, m := range res.Value {
			if m.Phase.IsLive() {
				live = append(live, m)
			}
		}
	}

	alerts := s.detector.Observe(live)
	for _, alert := range alerts {
		s.dispatcher.Dispatch(alert)
	}
	if len(alerts) > 0 {
		logging.Debug().
			Int("alerts", len(alerts)).
			Int("live_matches", len(live)).
			Msg("Monitor cycle complete")
	}
}
