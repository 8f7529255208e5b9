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

// PostgresReconciliationRepository implements ReconciliationRepository for PostgreSQL
type PostgresReconciliationRepository struct {
	db *database.DB
}

// NewPostgresReconciliationRepository creates a new reconciliation repository
func NewPostgresReconciliationRepository(db *database.DB) ReconciliationRepository {
	return &PostgresReconciliationRepository{db: db}
}

// Create inserts a new reconciliation row
func (p *PostgresReconciliationRepository) Create(ctx context.Context, recon *models.OutcomeReconciliation) error {
	failures, err := marshalFailures(recon.ConfidenceFailures)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reconciliations (id, recommendation_id, betslip_id, game_id, actual_result,
		                             actual_home_score, actual_away_score, state, classification,
		                             insight, confidence_failures, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	recommendationID := nullableUUID(recon.RecommendationID)
	_, err = p.db.GetPool().Exec(ctx, query,
		recon.ID, recommendationID, recon.BetslipID, recon.GameID, recon.ActualResult,
		recon.ActualHomeScore, recon.ActualAwayScore, recon.State, recon.Classification,
		recon.Insight, failures, recon.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reconciliation: %w", err)
	}

	return nil
}

// GetByID retrieves a reconciliation by ID
func (p *PostgresReconciliationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.OutcomeReconciliation, error) {
	query := reconciliationSelect + ` WHERE id = $1`

	recon, err := p.scanOne(p.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliation: %w", err)
	}

	return recon, nil
}

// GetByRecommendationID retrieves the reconciliation attached to one recommendation
func (p *PostgresReconciliationRepository) GetByRecommendationID(ctx context.Context, recommendationID uuid.UUID) (*models.OutcomeReconciliation, error) {
	query := reconciliationSelect + ` WHERE recommendation_id = $1`

	recon, err := p.scanOne(p.db.GetPool().QueryRow(ctx, query, recommendationID))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliation by recommendation: %w", err)
	}

	return recon, nil
}

// GetPending retrieves reconciliations still waiting on a settled result
func (p *PostgresReconciliationRepository) GetPending(ctx context.Context, limit int) ([]*models.OutcomeReconciliation, error) {
	query := reconciliationSelect + ` WHERE state = 'pending' ORDER BY created_at ASC LIMIT $1`

	rows, err := p.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending reconciliations: %w", err)
	}
	defer rows.Close()

	var recons []*models.OutcomeReconciliation
	for rows.Next() {
		recon, err := p.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation: %w", err)
		}
		recons = append(recons, recon)
	}

	return recons, rows.Err()
}

// Resolve attaches a classification to a pending reconciliation
func (p *PostgresReconciliationRepository) Resolve(ctx context.Context, recon *models.OutcomeReconciliation) error {
	failures, err := marshalFailures(recon.ConfidenceFailures)
	if err != nil {
		return err
	}

	query := `
		UPDATE reconciliations
		SET actual_result = $2, actual_home_score = $3, actual_away_score = $4, state = $5,
		    classification = $6, insight = $7, confidence_failures = $8, resolved_at = $9
		WHERE id = $1 AND state != 'resolved'
	`

	commandTag, err := p.db.GetPool().Exec(ctx, query,
		recon.ID, recon.ActualResult, recon.ActualHomeScore, recon.ActualAwayScore,
		recon.State, recon.Classification, recon.Insight, failures, recon.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve reconciliation: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrAlreadyResolved
	}

	return nil
}

// ClassificationCounts tallies resolved reconciliations by outcome class
func (p *PostgresReconciliationRepository) ClassificationCounts(ctx context.Context, since time.Time) (map[models.OutcomeClass]int, error) {
	query := `
		SELECT classification, COUNT(*)
		FROM reconciliations
		WHERE state = 'resolved' AND resolved_at >= $1
		GROUP BY classification
	`

	rows, err := p.db.GetPool().Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count classifications: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.OutcomeClass]int)
	for rows.Next() {
		var class models.OutcomeClass
		var count int
		if err := rows.Scan(&class, &count); err != nil {
			return nil, fmt.Errorf("failed to scan classification count: %w", err)
		}
		counts[class] = count
	}

	return counts, rows.Err()
}

// ConfidenceFailureCounts tallies confidence failures by signal across
// resolved reconciliations
func (p *PostgresReconciliationRepository) ConfidenceFailureCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	query := `
		SELECT f.key, SUM(f.value::int)
		FROM reconciliations r, jsonb_each_text(r.confidence_failures) AS f
		WHERE r.state = 'resolved' AND r.resolved_at >= $1
		GROUP BY f.key
	`

	rows, err := p.db.GetPool().Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count confidence failures: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var signal string
		var count int
		if err := rows.Scan(&signal, &count); err != nil {
			return nil, fmt.Errorf("failed to scan confidence failure count: %w", err)
		}
		counts[signal] = count
	}

	return counts, rows.Err()
}

const reconciliationSelect = `
	SELECT id, recommendation_id, betslip_id, game_id, actual_result, actual_home_score,
	       actual_away_score, state, classification, insight, confidence_failures,
	       created_at, resolved_at
	FROM reconciliations`

func (p *PostgresReconciliationRepository) scanOne(row pgx.Row) (*models.OutcomeReconciliation, error) {
	recon := &models.OutcomeReconciliation{}
	var recommendationID *uuid.UUID
	var failures []byte

	err := row.Scan(
		&recon.ID, &recommendationID, &recon.BetslipID, &recon.GameID, &recon.ActualResult,
		&recon.ActualHomeScore, &recon.ActualAwayScore, &recon.State, &recon.Classification,
		&recon.Insight, &failures, &recon.CreatedAt, &recon.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}

	if recommendationID != nil {
		recon.RecommendationID = *recommendationID
	}
	if len(failures) > 0 {
		if err := json.Unmarshal(failures, &recon.ConfidenceFailures); err != nil {
			return nil, fmt.Errorf("failed to unmarshal confidence failures: %w", err)
		}
	}

	return recon, nil
}

func marshalFailures(failures map[string]int) ([]byte, error) {
	if failures == nil {
		return nil, nil
	}
	data, err := json.Marshal(failures)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confidence failures: %w", err)
	}
	return data, nil
}

// nullableUUID maps the zero UUID to SQL NULL for unmatched reconciliations
func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
