package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/bet-insight/internal/analysis"
	"github.com/yourusername/bet-insight/internal/logger"
	"github.com/yourusername/bet-insight/internal/metrics"
	"github.com/yourusername/bet-insight/internal/models"
	"github.com/yourusername/bet-insight/internal/repository"
)

// AnalysisService loads the historical corpus, runs candidate bets through
// the confidence engine and persists the resulting recommendations.
type AnalysisService struct {
	records         repository.RecordRepository
	recommendations repository.RecommendationRepository
	reconciliations repository.ReconciliationRepository
	profileCache    *ProfileCache
	blacklist       []string
	historyWindow   time.Duration
	workerCount     int
	log             *logger.EngineLogger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	repos *repository.Repositories,
	profileCache *ProfileCache,
	blacklist []string,
	historyWindow time.Duration,
	workerCount int,
	log *logger.EngineLogger,
) *AnalysisService {
	if workerCount <= 0 {
		workerCount = 4
	}

	return &AnalysisService{
		records:         repos.Record,
		recommendations: repos.Recommendation,
		reconciliations: repos.Reconciliation,
		profileCache:    profileCache,
		blacklist:       blacklist,
		historyWindow:   historyWindow,
		workerCount:     workerCount,
		log:             log,
	}
}

// AnalyzeBatch runs a batch of candidates through the engine concurrently
// and persists the recommendations. Output order matches input order.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, candidates []*models.CandidateBet) ([]*models.Recommendation, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	startTime := time.Now()

	engine, err := s.buildEngine(ctx)
	if err != nil {
		return nil, err
	}

	recs := make([]*models.Recommendation, len(candidates))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < s.workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				analysisStart := time.Now()
				rec := engine.AnalyzeCandidate(candidates[i])
				recs[i] = rec
				elapsed := time.Since(analysisStart)
				metrics.RecordAnalysis(rec.ConfidenceScore, elapsed.Seconds())
				s.observeCandidate(rec, float64(elapsed.Microseconds())/1000)
			}
		}()
	}

	for i := range candidates {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	backed, hedged, avoided := 0, 0, 0
	for _, rec := range recs {
		rec.CreatedAt = time.Now()
		if err := s.persist(ctx, rec); err != nil {
			return nil, err
		}

		category := categorize(rec.Recommendation)
		metrics.RecordRecommendation(category)
		switch category {
		case "back":
			backed++
		case "hedge":
			hedged++
		default:
			avoided++
		}
	}

	duration := time.Since(startTime)
	metrics.RecordBatch(duration.Seconds())
	if s.log != nil {
		s.log.LogBatchCompleted(len(candidates), backed, hedged, avoided, float64(duration.Milliseconds()))
	}

	return recs, nil
}

// AnalyzeOne runs a single candidate through the engine and persists the result
func (s *AnalysisService) AnalyzeOne(ctx context.Context, candidate *models.CandidateBet) (*models.Recommendation, error) {
	recs, err := s.AnalyzeBatch(ctx, []*models.CandidateBet{candidate})
	if err != nil {
		return nil, err
	}
	return recs[0], nil
}

// buildEngine loads the corpus and assembles an engine, reusing cached
// scoring profiles when they are still fresh.
func (s *AnalysisService) buildEngine(ctx context.Context) (*analysis.Engine, error) {
	since := time.Now().Add(-s.historyWindow)
	corpus, err := s.records.GetSettledSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load historical corpus: %w", err)
	}
	metrics.CorpusSize.Set(float64(len(corpus)))

	profiles := s.profileCache.Get()
	if profiles == nil {
		profiles = analysis.BuildProfiles(corpus)
		s.profileCache.Set(profiles)
		if s.log != nil {
			s.log.LogProfileCacheMiss(len(corpus))
		}
	}
	_, _, ratio := s.profileCache.Stats()
	metrics.ProfileCacheHitRatio.Set(ratio)

	return analysis.NewEngineWithProfiles(corpus, s.blacklist, profiles, s.baseLogger()), nil
}

// observeCandidate emits per-candidate telemetry from inside the worker
// loop. EngineLogger methods are safe for concurrent use; the metric
// counters are too.
func (s *AnalysisService) observeCandidate(rec *models.Recommendation, durationMs float64) {
	blacklisted := rec.Recommendation == analysis.RecommendationBlacklisted
	if blacklisted {
		metrics.BlacklistHitsTotal.Inc()
	}
	if s.log == nil {
		return
	}

	opponent := rec.AwayTeam
	if rec.Side == models.SideAway {
		opponent = rec.HomeTeam
	}
	s.log.LogCandidateAnalyzed(rec.GameID.String(), rec.Team, opponent, rec.ConfidenceScore, rec.Recommendation, durationMs)
	if blacklisted {
		s.log.LogBlacklistHit(rec.GameID.String(), rec.Team)
		return
	}
	if weak := analysis.WeakSignals(rec.ConfidenceBreakdown); len(weak) > 0 {
		s.log.LogWeakSignals(rec.GameID.String(), weak)
	}
}

// persist stores the recommendation plus its pending reconciliation.
// Duplicate inserts happen on reanalysis of the same ticket and are benign.
func (s *AnalysisService) persist(ctx context.Context, rec *models.Recommendation) error {
	err := s.recommendations.Create(ctx, rec)
	if err == models.ErrDuplicateKey {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to persist recommendation: %w", err)
	}

	recon := analysis.NewPendingReconciliation(rec)
	if err := s.reconciliations.Create(ctx, recon); err != nil {
		return fmt.Errorf("failed to persist pending reconciliation: %w", err)
	}

	return nil
}

// InvalidateProfiles drops cached scoring profiles after new results land
func (s *AnalysisService) InvalidateProfiles() {
	s.profileCache.Invalidate()
}

func (s *AnalysisService) baseLogger() *logrus.Logger {
	if s.log == nil {
		return nil
	}
	return s.log.Logger
}

func categorize(recommendation string) string {
	switch {
	case strings.HasPrefix(recommendation, "Avoid"):
		return "avoid"
	case strings.HasPrefix(recommendation, "Double Chance"):
		return "hedge"
	default:
		return "back"
	}
}
