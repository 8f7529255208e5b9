package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/bet-insight/internal/database"
	"github.com/yourusername/bet-insight/internal/models"
)

const recordColumns = `id, betslip_id, team, home_team, away_team, country, league, market_type,
	selection, odds, result, side, event_date, home_score, away_score, league_position,
	opponent_position, last5_wins, last5_draws, last5_losses, created_at`

// PostgresRecordRepository implements RecordRepository for PostgreSQL
type PostgresRecordRepository struct {
	db *database.DB
}

// NewPostgresRecordRepository creates a new historical record repository
func NewPostgresRecordRepository(db *database.DB) RecordRepository {
	return &PostgresRecordRepository{db: db}
}

// Create inserts a new historical record
func (r *PostgresRecordRepository) Create(ctx context.Context, record *models.HistoricalRecord) error {
	query := `
		INSERT INTO historical_records (id, betslip_id, team, home_team, away_team, country, league,
		                                market_type, selection, odds, result, side, event_date,
		                                home_score, away_score, league_position, opponent_position,
		                                last5_wins, last5_draws, last5_losses)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		record.ID, record.BetslipID, record.Team, record.HomeTeam, record.AwayTeam, record.Country,
		record.League, record.MarketType, record.Selection, record.Odds, record.Result, record.Side,
		record.EventDate, record.HomeScore, record.AwayScore, record.LeaguePosition,
		record.OpponentPosition, record.Last5Wins, record.Last5Draws, record.Last5Losses,
	)
	if err != nil {
		return fmt.Errorf("failed to create historical record: %w", err)
	}

	return nil
}

// CreateBatch inserts historical records inside a single transaction
func (r *PostgresRecordRepository) CreateBatch(ctx context.Context, records []*models.HistoricalRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO historical_records (id, betslip_id, team, home_team, away_team, country, league,
			                                market_type, selection, odds, result, side, event_date,
			                                home_score, away_score, league_position, opponent_position,
			                                last5_wins, last5_draws, last5_losses)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		`
		for _, record := range records {
			_, err := tx.Exec(ctx, query,
				record.ID, record.BetslipID, record.Team, record.HomeTeam, record.AwayTeam, record.Country,
				record.League, record.MarketType, record.Selection, record.Odds, record.Result, record.Side,
				record.EventDate, record.HomeScore, record.AwayScore, record.LeaguePosition,
				record.OpponentPosition, record.Last5Wins, record.Last5Draws, record.Last5Losses,
			)
			if err != nil {
				return fmt.Errorf("failed to insert record %s: %w", record.ID, err)
			}
		}
		return nil
	})
}

// GetByID retrieves a historical record by ID
func (r *PostgresRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.HistoricalRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM historical_records WHERE id = $1`, recordColumns)

	record := &models.HistoricalRecord{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(recordScanTargets(record)...)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get historical record: %w", err)
	}

	return record, nil
}

// GetByBetslipID retrieves all records attached to one betslip
func (r *PostgresRecordRepository) GetByBetslipID(ctx context.Context, betslipID uuid.UUID) ([]*models.HistoricalRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM historical_records
		WHERE betslip_id = $1
		ORDER BY event_date DESC
	`, recordColumns)

	return r.queryRecords(ctx, query, betslipID)
}

// GetSettledSince retrieves settled records newer than the cutoff
func (r *PostgresRecordRepository) GetSettledSince(ctx context.Context, since time.Time) ([]*models.HistoricalRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM historical_records
		WHERE result IN ('win', 'loss') AND event_date >= $1
		ORDER BY event_date DESC
	`, recordColumns)

	return r.queryRecords(ctx, query, since)
}

// GetByTeam retrieves a team's records scoped to one competition
func (r *PostgresRecordRepository) GetByTeam(ctx context.Context, team, country, league string) ([]*models.HistoricalRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM historical_records
		WHERE lower(team) = lower($1) AND lower(country) = lower($2) AND lower(league) = lower($3)
		ORDER BY event_date DESC
	`, recordColumns)

	return r.queryRecords(ctx, query, team, country, league)
}

// SettleResult marks a pending record with its terminal result and scoreline
func (r *PostgresRecordRepository) SettleResult(ctx context.Context, id uuid.UUID, result models.BetResult, homeScore, awayScore *int) error {
	query := `
		UPDATE historical_records
		SET result = $2, home_score = $3, away_score = $4
		WHERE id = $1 AND result = 'pending'
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, id, result, homeScore, awayScore)
	if err != nil {
		return fmt.Errorf("failed to settle record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrAlreadyResolved
	}

	return nil
}

// UpdateStandings writes the current league position onto a team's pending records
func (r *PostgresRecordRepository) UpdateStandings(ctx context.Context, team, country, league string, position int) (int64, error) {
	query := `
		UPDATE historical_records
		SET league_position = $4
		WHERE lower(team) = lower($1) AND lower(country) = lower($2) AND lower(league) = lower($3)
		  AND result = 'pending'
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, team, country, league, position)
	if err != nil {
		return 0, fmt.Errorf("failed to update standings: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func (r *PostgresRecordRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]*models.HistoricalRecord, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query historical records: %w", err)
	}
	defer rows.Close()

	var records []*models.HistoricalRecord
	for rows.Next() {
		record := &models.HistoricalRecord{}
		if err := rows.Scan(recordScanTargets(record)...); err != nil {
			return nil, fmt.Errorf("failed to scan historical record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func recordScanTargets(record *models.HistoricalRecord) []interface{} {
	return []interface{}{
		&record.ID, &record.BetslipID, &record.Team, &record.HomeTeam, &record.AwayTeam,
		&record.Country, &record.League, &record.MarketType, &record.Selection, &record.Odds,
		&record.Result, &record.Side, &record.EventDate, &record.HomeScore, &record.AwayScore,
		&record.LeaguePosition, &record.OpponentPosition, &record.Last5Wins, &record.Last5Draws,
		&record.Last5Losses, &record.CreatedAt,
	}
}
