package database

import (
	"context"
	"fmt"

	"github.com/yourusername/bet-insight/internal/config"
)

// schema holds the DDL applied on startup. CREATE IF NOT EXISTS keeps
// repeated initialization idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS historical_records (
		id UUID PRIMARY KEY,
		betslip_id UUID NOT NULL,
		team TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		country TEXT NOT NULL,
		league TEXT NOT NULL,
		market_type TEXT NOT NULL,
		selection TEXT NOT NULL,
		odds DOUBLE PRECISION NOT NULL,
		result TEXT NOT NULL DEFAULT 'pending',
		side TEXT NOT NULL DEFAULT 'UNKNOWN',
		event_date TIMESTAMPTZ NOT NULL,
		home_score INT,
		away_score INT,
		league_position INT,
		opponent_position INT,
		last5_wins INT,
		last5_draws INT,
		last5_losses INT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_historical_records_team
		ON historical_records (team, country, league)`,
	`CREATE INDEX IF NOT EXISTS idx_historical_records_fixture
		ON historical_records (home_team, away_team, event_date)`,
	`CREATE INDEX IF NOT EXISTS idx_historical_records_event_date
		ON historical_records (event_date DESC)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id UUID PRIMARY KEY,
		betslip_id UUID NOT NULL,
		game_id UUID NOT NULL,
		team TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		country TEXT NOT NULL,
		league TEXT NOT NULL,
		market_type TEXT NOT NULL,
		selection TEXT NOT NULL,
		odds DOUBLE PRECISION NOT NULL,
		side TEXT NOT NULL,
		event_date TIMESTAMPTZ NOT NULL,
		confidence_score DOUBLE PRECISION NOT NULL,
		confidence_breakdown JSONB NOT NULL,
		weights JSONB NOT NULL,
		recommendation TEXT NOT NULL,
		reasoning TEXT NOT NULL,
		probabilities JSONB,
		scoring_recommendation TEXT NOT NULL DEFAULT '',
		triplet JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_game
		ON recommendations (game_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_created_at
		ON recommendations (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS reconciliations (
		id UUID PRIMARY KEY,
		recommendation_id UUID,
		betslip_id UUID,
		game_id UUID NOT NULL,
		actual_result TEXT NOT NULL DEFAULT 'pending',
		actual_home_score INT,
		actual_away_score INT,
		state TEXT NOT NULL,
		classification TEXT NOT NULL DEFAULT '',
		insight TEXT NOT NULL DEFAULT '',
		confidence_failures JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		resolved_at TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reconciliations_recommendation
		ON reconciliations (recommendation_id) WHERE recommendation_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_reconciliations_state
		ON reconciliations (state)`,
}

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema applies the schema DDL statements in order
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
