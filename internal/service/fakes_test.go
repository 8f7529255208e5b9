package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/bet-insight/internal/models"
	"github.com/yourusername/bet-insight/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeRecordRepo struct {
	mu      sync.Mutex
	records []*models.HistoricalRecord
}

func (f *fakeRecordRepo) Create(ctx context.Context, record *models.HistoricalRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRecordRepo) CreateBatch(ctx context.Context, records []*models.HistoricalRecord) error {
	for _, r := range records {
		if err := f.Create(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.HistoricalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRecordRepo) GetByBetslipID(ctx context.Context, betslipID uuid.UUID) ([]*models.HistoricalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.HistoricalRecord
	for _, r := range f.records {
		if r.BetslipID == betslipID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) GetSettledSince(ctx context.Context, since time.Time) ([]*models.HistoricalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.HistoricalRecord
	for _, r := range f.records {
		if r.IsSettled() && !r.EventDate.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) GetByTeam(ctx context.Context, team, country, league string) ([]*models.HistoricalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.HistoricalRecord
	for _, r := range f.records {
		if r.Team == team && r.Country == country && r.League == league {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) SettleResult(ctx context.Context, id uuid.UUID, result models.BetResult, homeScore, awayScore *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			if r.IsSettled() {
				return models.ErrAlreadyResolved
			}
			r.Result = result
			r.HomeScore = homeScore
			r.AwayScore = awayScore
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeRecordRepo) UpdateStandings(ctx context.Context, team, country, league string, position int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var updated int64
	for _, r := range f.records {
		if r.Team == team && r.Country == country && r.League == league && !r.IsSettled() {
			pos := position
			r.LeaguePosition = &pos
			updated++
		}
	}
	return updated, nil
}

type fakeRecommendationRepo struct {
	mu   sync.Mutex
	recs []*models.Recommendation
}

func (f *fakeRecommendationRepo) Create(ctx context.Context, rec *models.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.recs {
		if existing.ID == rec.ID {
			return models.ErrDuplicateKey
		}
	}
	f.recs = append(f.recs, rec)
	return nil
}

func (f *fakeRecommendationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.recs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRecommendationRepo) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Recommendation
	for _, r := range f.recs {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecommendationRepo) GetByBetslipID(ctx context.Context, betslipID uuid.UUID) ([]*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Recommendation
	for _, r := range f.recs {
		if r.BetslipID == betslipID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecommendationRepo) GetRecent(ctx context.Context, limit int) ([]*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.recs) {
		limit = len(f.recs)
	}
	return f.recs[len(f.recs)-limit:], nil
}

func (f *fakeRecommendationRepo) CountByCategory(ctx context.Context, since time.Time) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	for _, r := range f.recs {
		counts[r.Recommendation]++
	}
	return counts, nil
}

type fakeReconciliationRepo struct {
	mu     sync.Mutex
	recons []*models.OutcomeReconciliation
}

func (f *fakeReconciliationRepo) Create(ctx context.Context, recon *models.OutcomeReconciliation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recons = append(f.recons, recon)
	return nil
}

func (f *fakeReconciliationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OutcomeReconciliation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.recons {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeReconciliationRepo) GetByRecommendationID(ctx context.Context, recommendationID uuid.UUID) (*models.OutcomeReconciliation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.recons {
		if r.RecommendationID == recommendationID {
			return r, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeReconciliationRepo) GetPending(ctx context.Context, limit int) ([]*models.OutcomeReconciliation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.OutcomeReconciliation
	for _, r := range f.recons {
		if r.State == models.ReconciliationPending {
			out = append(out, r)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeReconciliationRepo) Resolve(ctx context.Context, recon *models.OutcomeReconciliation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.recons {
		if r.ID == recon.ID {
			if r.State == models.ReconciliationResolved {
				return models.ErrAlreadyResolved
			}
			f.recons[i] = recon
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeReconciliationRepo) ConfidenceFailureCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	for _, r := range f.recons {
		if r.State != models.ReconciliationResolved {
			continue
		}
		for signal, n := range r.ConfidenceFailures {
			counts[signal] += n
		}
	}
	return counts, nil
}

func (f *fakeReconciliationRepo) ClassificationCounts(ctx context.Context, since time.Time) (map[models.OutcomeClass]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[models.OutcomeClass]int)
	for _, r := range f.recons {
		if r.State == models.ReconciliationResolved {
			counts[r.Classification]++
		}
	}
	return counts, nil
}

func fakeRepositories() (*repository.Repositories, *fakeRecordRepo, *fakeRecommendationRepo, *fakeReconciliationRepo) {
	records := &fakeRecordRepo{}
	recs := &fakeRecommendationRepo{}
	recons := &fakeReconciliationRepo{}
	return &repository.Repositories{
		Record:         records,
		Recommendation: recs,
		Reconciliation: recons,
	}, records, recs, recons
}
