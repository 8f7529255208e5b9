package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/bet-insight/internal/database"
	"github.com/yourusername/bet-insight/internal/models"
)

// PostgresRecommendationRepository implements RecommendationRepository for PostgreSQL
type PostgresRecommendationRepository struct {
	db *database.DB
}

// NewPostgresRecommendationRepository creates a new recommendation repository
func NewPostgresRecommendationRepository(db *database.DB) RecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

// Create inserts a new recommendation. The engine leaves CreatedAt zero so
// identical inputs stay byte-identical; the timestamp is stamped here.
func (p *PostgresRecommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	breakdown, err := json.Marshal(rec.ConfidenceBreakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal confidence breakdown: %w", err)
	}
	weights, err := json.Marshal(rec.Weights)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}
	triplet, err := json.Marshal(rec.Triplet)
	if err != nil {
		return fmt.Errorf("failed to marshal triplet: %w", err)
	}
	var probabilities []byte
	if rec.Probabilities != nil {
		probabilities, err = json.Marshal(rec.Probabilities)
		if err != nil {
			return fmt.Errorf("failed to marshal probabilities: %w", err)
		}
	}

	query := `
		INSERT INTO recommendations (id, betslip_id, game_id, team, home_team, away_team, country,
		                             league, market_type, selection, odds, side, event_date,
		                             confidence_score, confidence_breakdown, weights, recommendation,
		                             reasoning, probabilities, scoring_recommendation, triplet)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (id) DO NOTHING
	`

	commandTag, err := p.db.GetPool().Exec(ctx, query,
		rec.ID, rec.BetslipID, rec.GameID, rec.Team, rec.HomeTeam, rec.AwayTeam, rec.Country,
		rec.League, rec.MarketType, rec.Selection, rec.Odds, rec.Side, rec.EventDate,
		rec.ConfidenceScore, breakdown, weights, rec.Recommendation, rec.Reasoning,
		probabilities, rec.ScoringRecommendation, triplet,
	)
	if err != nil {
		return fmt.Errorf("failed to create recommendation: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrDuplicateKey
	}

	return nil
}

// GetByID retrieves a recommendation by ID
func (p *PostgresRecommendationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	query := recommendationSelect + ` WHERE id = $1`

	rec, err := p.scanOne(p.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}

	return rec, nil
}

// GetByGameID retrieves all recommendations for one game
func (p *PostgresRecommendationRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Recommendation, error) {
	query := recommendationSelect + ` WHERE game_id = $1 ORDER BY created_at DESC`
	return p.queryRecommendations(ctx, query, gameID)
}

// GetByBetslipID retrieves all recommendations on one betslip
func (p *PostgresRecommendationRepository) GetByBetslipID(ctx context.Context, betslipID uuid.UUID) ([]*models.Recommendation, error) {
	query := recommendationSelect + ` WHERE betslip_id = $1 ORDER BY created_at DESC`
	return p.queryRecommendations(ctx, query, betslipID)
}

// GetRecent retrieves the most recently created recommendations
func (p *PostgresRecommendationRepository) GetRecent(ctx context.Context, limit int) ([]*models.Recommendation, error) {
	query := recommendationSelect + ` ORDER BY created_at DESC LIMIT $1`
	return p.queryRecommendations(ctx, query, limit)
}

// CountByCategory tallies recommendations by their category since a cutoff
func (p *PostgresRecommendationRepository) CountByCategory(ctx context.Context, since time.Time) (map[string]int, error) {
	query := `
		SELECT recommendation, COUNT(*)
		FROM recommendations
		WHERE created_at >= $1
		GROUP BY recommendation
	`

	rows, err := p.db.GetPool().Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count recommendations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation count: %w", err)
		}
		counts[category] = count
	}

	return counts, rows.Err()
}

const recommendationSelect = `
	SELECT id, betslip_id, game_id, team, home_team, away_team, country, league, market_type,
	       selection, odds, side, event_date, confidence_score, confidence_breakdown, weights,
	       recommendation, reasoning, probabilities, scoring_recommendation, triplet, created_at
	FROM recommendations`

func (p *PostgresRecommendationRepository) queryRecommendations(ctx context.Context, query string, args ...interface{}) ([]*models.Recommendation, error) {
	rows, err := p.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*models.Recommendation
	for rows.Next() {
		rec, err := p.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func (p *PostgresRecommendationRepository) scanOne(row pgx.Row) (*models.Recommendation, error) {
	rec := &models.Recommendation{}
	var breakdown, weights, triplet []byte
	var probabilities []byte

	err := row.Scan(
		&rec.ID, &rec.BetslipID, &rec.GameID, &rec.Team, &rec.HomeTeam, &rec.AwayTeam,
		&rec.Country, &rec.League, &rec.MarketType, &rec.Selection, &rec.Odds, &rec.Side,
		&rec.EventDate, &rec.ConfidenceScore, &breakdown, &weights, &rec.Recommendation,
		&rec.Reasoning, &probabilities, &rec.ScoringRecommendation, &triplet, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(breakdown, &rec.ConfidenceBreakdown); err != nil {
		return nil, fmt.Errorf("failed to unmarshal confidence breakdown: %w", err)
	}
	if err := json.Unmarshal(weights, &rec.Weights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
	}
	if err := json.Unmarshal(triplet, &rec.Triplet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal triplet: %w", err)
	}
	if len(probabilities) > 0 {
		rec.Probabilities = &models.OutcomeProbabilities{}
		if err := json.Unmarshal(probabilities, rec.Probabilities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal probabilities: %w", err)
		}
	}

	return rec, nil
}
