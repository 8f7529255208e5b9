package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/bet-insight/internal/config"
	"github.com/yourusername/bet-insight/internal/datasource"
	"github.com/yourusername/bet-insight/internal/metrics"
	"github.com/yourusername/bet-insight/internal/repository"
)

// StandingsService refreshes league positions on unsettled records from the
// configured standings provider.
type StandingsService struct {
	source  datasource.StandingsSource
	records repository.RecordRepository
	leagues []config.LeagueConfig
	log     *logrus.Entry
}

// NewStandingsService creates a new standings sync service
func NewStandingsService(
	source datasource.StandingsSource,
	records repository.RecordRepository,
	leagues []config.LeagueConfig,
	log *logrus.Logger,
) *StandingsService {
	if log == nil {
		log = logrus.New()
	}
	return &StandingsService{
		source:  source,
		records: records,
		leagues: leagues,
		log:     log.WithField("component", "standings_sync"),
	}
}

// SyncAll fetches the table for every enabled league and applies positions
// to unsettled records. A failing league does not abort the rest of the run.
func (s *StandingsService) SyncAll(ctx context.Context) error {
	if !s.source.IsEnabled() {
		s.log.Debug("Standings source disabled, skipping sync")
		return nil
	}

	startTime := time.Now()
	var failed int

	for _, league := range s.leagues {
		if !league.Enabled {
			continue
		}
		if err := s.syncLeague(ctx, league); err != nil {
			failed++
			metrics.StandingsSyncErrorsTotal.Inc()
			s.log.WithError(err).WithFields(logrus.Fields{
				"country": league.Country,
				"league":  league.League,
			}).Warn("Standings sync failed for league")
		}
	}

	metrics.StandingsSyncDuration.Observe(time.Since(startTime).Seconds())

	if failed > 0 {
		return fmt.Errorf("standings sync failed for %d league(s)", failed)
	}
	return nil
}

// syncLeague applies one league table to the stored records
func (s *StandingsService) syncLeague(ctx context.Context, league config.LeagueConfig) error {
	standings, err := s.source.FetchStandings(ctx, league.Country, league.League)
	if err != nil {
		return fmt.Errorf("failed to fetch standings: %w", err)
	}

	var updated int64
	for _, row := range standings {
		n, err := s.records.UpdateStandings(ctx, row.Team, row.Country, row.League, row.Position)
		if err != nil {
			return fmt.Errorf("failed to apply standings for %s: %w", row.Team, err)
		}
		updated += n
	}

	s.log.WithFields(logrus.Fields{
		"country": league.Country,
		"league":  league.League,
		"teams":   len(standings),
		"updated": updated,
	}).Info("Standings synced")

	return nil
}
