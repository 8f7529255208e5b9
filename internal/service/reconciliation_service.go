package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/bet-insight/internal/analysis"
	"github.com/yourusername/bet-insight/internal/logger"
	"github.com/yourusername/bet-insight/internal/metrics"
	"github.com/yourusername/bet-insight/internal/models"
	"github.com/yourusername/bet-insight/internal/repository"
)

// sweepBatchSize bounds how many pending reconciliations one sweep touches
const sweepBatchSize = 500

// ReconciliationService joins settled results to stored recommendations and
// classifies each divergence for the operator feedback loop.
type ReconciliationService struct {
	records         repository.RecordRepository
	recommendations repository.RecommendationRepository
	reconciliations repository.ReconciliationRepository
	profileCache    *ProfileCache
	log             *logger.ReconciliationLogger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	repos *repository.Repositories,
	profileCache *ProfileCache,
	log *logger.ReconciliationLogger,
) *ReconciliationService {
	return &ReconciliationService{
		records:         repos.Record,
		recommendations: repos.Recommendation,
		reconciliations: repos.Reconciliation,
		profileCache:    profileCache,
		log:             log,
	}
}

// HandleSettledResult reconciles one settled result against stored
// recommendations for its game. Results with no recommendation are recorded
// as unmatched rather than dropped.
func (s *ReconciliationService) HandleSettledResult(ctx context.Context, result *models.HistoricalRecord) error {
	if !result.IsSettled() {
		return fmt.Errorf("result for %s vs %s is not settled", result.HomeTeam, result.AwayTeam)
	}

	// New results change scoring patterns, cached profiles go stale
	if s.profileCache != nil {
		s.profileCache.Invalidate()
	}

	gameID := analysis.GameID(result.EventDate, result.HomeTeam, result.AwayTeam, result.Country, result.League)
	recs, err := s.recommendations.GetByGameID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to look up recommendations for game: %w", err)
	}

	if len(recs) == 0 {
		recon := analysis.NewUnmatchedReconciliation(result)
		if err := s.reconciliations.Create(ctx, recon); err != nil {
			return fmt.Errorf("failed to record unmatched result: %w", err)
		}
		metrics.UnmatchedResultsTotal.Inc()
		if s.log != nil {
			s.log.LogUnmatchedResult(gameID.String(), result.HomeTeam, result.AwayTeam)
		}
		return nil
	}

	for _, rec := range recs {
		if err := s.resolveOne(ctx, rec, result); err != nil {
			return err
		}
	}

	return nil
}

// SweepPending retries reconciliations whose results had not settled yet.
// Returns how many were resolved this pass.
func (s *ReconciliationService) SweepPending(ctx context.Context) (int, error) {
	startTime := time.Now()

	pending, err := s.reconciliations.GetPending(ctx, sweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to load pending reconciliations: %w", err)
	}

	resolved := 0
	for _, recon := range pending {
		result, err := s.settledResultFor(ctx, recon)
		if err != nil {
			return resolved, err
		}
		if result == nil {
			continue
		}

		rec, err := s.recommendations.GetByID(ctx, recon.RecommendationID)
		if err == models.ErrNotFound {
			continue
		}
		if err != nil {
			return resolved, fmt.Errorf("failed to load recommendation for sweep: %w", err)
		}

		if err := s.resolveOne(ctx, rec, result); err != nil {
			return resolved, err
		}
		resolved++
	}

	stillPending := len(pending) - resolved
	metrics.PendingReconciliations.Set(float64(stillPending))
	if s.log != nil {
		s.log.LogSweepCompleted(resolved, 0, stillPending, float64(time.Since(startTime).Milliseconds()))
	}

	return resolved, nil
}

// resolveOne classifies one recommendation against a settled result and
// persists the resolution onto its pending row, or creates the row when
// the result arrived before any pending reconciliation existed.
func (s *ReconciliationService) resolveOne(ctx context.Context, rec *models.Recommendation, result *models.HistoricalRecord) error {
	recon, err := analysis.Resolve(rec, result)
	if err != nil {
		return err
	}

	existing, err := s.reconciliations.GetByRecommendationID(ctx, rec.ID)
	switch {
	case err == models.ErrNotFound:
		if err := s.reconciliations.Create(ctx, recon); err != nil {
			return fmt.Errorf("failed to create resolved reconciliation: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up reconciliation: %w", err)
	case existing.IsResolved():
		return nil
	default:
		recon.ID = existing.ID
		if err := s.reconciliations.Resolve(ctx, recon); err != nil && err != models.ErrAlreadyResolved {
			return fmt.Errorf("failed to resolve reconciliation: %w", err)
		}
	}

	metrics.RecordReconciliation(string(recon.Classification))
	if recon.ConfidenceFailures != nil {
		metrics.RecordConfidenceFailures(recon.ConfidenceFailures)
		if s.log != nil {
			s.log.LogConfidenceFailures(rec.GameID.String(), recon.ConfidenceFailures)
		}
	}
	if s.log != nil && recon.ResolvedAt != nil {
		s.log.LogOutcomeResolved(
			rec.GameID.String(), rec.ID.String(), string(recon.Classification),
			rec.ConfidenceScore, string(result.Result), *recon.ResolvedAt,
		)
	}

	return nil
}

// settledResultFor finds a settled record on the reconciliation's betslip
// for the same game, or nil when still pending.
func (s *ReconciliationService) settledResultFor(ctx context.Context, recon *models.OutcomeReconciliation) (*models.HistoricalRecord, error) {
	records, err := s.records.GetByBetslipID(ctx, recon.BetslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load betslip records for sweep: %w", err)
	}

	for _, record := range records {
		if !record.IsSettled() {
			continue
		}
		gameID := analysis.GameID(record.EventDate, record.HomeTeam, record.AwayTeam, record.Country, record.League)
		if gameID == recon.GameID {
			return record, nil
		}
	}

	return nil, nil
}
