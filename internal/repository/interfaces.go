package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/bet-insight/internal/models"
)

// RecordRepository defines the interface for historical record data access
type RecordRepository interface {
	Create(ctx context.Context, record *models.HistoricalRecord) error
	CreateBatch(ctx context.Context, records []*models.HistoricalRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.HistoricalRecord, error)
	GetByBetslipID(ctx context.Context, betslipID uuid.UUID) ([]*models.HistoricalRecord, error)
	GetSettledSince(ctx context.Context, since time.Time) ([]*models.HistoricalRecord, error)
	GetByTeam(ctx context.Context, team, country, league string) ([]*models.HistoricalRecord, error)
	SettleResult(ctx context.Context, id uuid.UUID, result models.BetResult, homeScore, awayScore *int) error
	UpdateStandings(ctx context.Context, team, country, league string, position int) (int64, error)
}

// RecommendationRepository defines the interface for recommendation data access
type RecommendationRepository interface {
	Create(ctx context.Context, rec *models.Recommendation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error)
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Recommendation, error)
	GetByBetslipID(ctx context.Context, betslipID uuid.UUID) ([]*models.Recommendation, error)
	GetRecent(ctx context.Context, limit int) ([]*models.Recommendation, error)
	CountByCategory(ctx context.Context, since time.Time) (map[string]int, error)
}

// ReconciliationRepository defines the interface for outcome reconciliation data access
type ReconciliationRepository interface {
	Create(ctx context.Context, recon *models.OutcomeReconciliation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.OutcomeReconciliation, error)
	GetByRecommendationID(ctx context.Context, recommendationID uuid.UUID) (*models.OutcomeReconciliation, error)
	GetPending(ctx context.Context, limit int) ([]*models.OutcomeReconciliation, error)
	Resolve(ctx context.Context, recon *models.OutcomeReconciliation) error
	ClassificationCounts(ctx context.Context, since time.Time) (map[models.OutcomeClass]int, error)
	ConfidenceFailureCounts(ctx context.Context, since time.Time) (map[string]int, error)
}
