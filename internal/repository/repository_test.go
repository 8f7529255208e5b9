package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/bet-insight/internal/database"
	"github.com/yourusername/bet-insight/internal/models"
)

// Integration tests. SetupTestDB skips when no test database is reachable.

func testRecord(team string) *models.HistoricalRecord {
	return &models.HistoricalRecord{
		ID:         uuid.New(),
		BetslipID:  uuid.New(),
		Team:       team,
		HomeTeam:   team,
		AwayTeam:   "Opponent FC",
		Country:    "ENG",
		League:     "Premier League",
		MarketType: models.MarketTypeWin,
		Selection:  team + " Win",
		Odds:       2.1,
		Result:     models.BetResultPending,
		Side:       models.SideHome,
		EventDate:  time.Now().Add(24 * time.Hour),
	}
}

func TestRecordRepositoryCreateAndGet(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	record := testRecord("Roundtrip FC")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repos.Record.Create(ctx, record); err != nil {
		t.Fatalf("failed to create record: %v", err)
	}

	retrieved, err := repos.Record.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("failed to retrieve record: %v", err)
	}

	if retrieved.ID != record.ID {
		t.Errorf("expected record ID %v, got %v", record.ID, retrieved.ID)
	}
	if retrieved.Result != models.BetResultPending {
		t.Errorf("expected pending result, got %s", retrieved.Result)
	}
}

func TestRecordRepositorySettleResultOnce(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	record := testRecord("Settle FC")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repos.Record.Create(ctx, record); err != nil {
		t.Fatalf("failed to create record: %v", err)
	}

	home, away := 2, 0
	if err := repos.Record.SettleResult(ctx, record.ID, models.BetResultWin, &home, &away); err != nil {
		t.Fatalf("failed to settle record: %v", err)
	}

	// Second settle must fail, settled records are immutable
	if err := repos.Record.SettleResult(ctx, record.ID, models.BetResultLoss, &home, &away); err != models.ErrAlreadyResolved {
		t.Fatalf("expected ErrAlreadyResolved on double settle, got %v", err)
	}
}

func TestRecommendationRepositoryRejectsDuplicates(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	rec := &models.Recommendation{
		ID:                  uuid.New(),
		BetslipID:           uuid.New(),
		GameID:              uuid.New(),
		Team:                "Duplicate FC",
		HomeTeam:            "Duplicate FC",
		AwayTeam:            "Opponent FC",
		Country:             "ENG",
		League:              "Premier League",
		Side:                models.SideHome,
		EventDate:           time.Now().Add(24 * time.Hour),
		ConfidenceBreakdown: models.ConfidenceBreakdown{"team_record": 75},
		Weights:             models.WeightVector{"team_record": 1},
		Recommendation:      "Home Win",
		Reasoning:           "test",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repos.Recommendation.Create(ctx, rec); err != nil {
		t.Fatalf("failed to create recommendation: %v", err)
	}

	if err := repos.Recommendation.Create(ctx, rec); err != models.ErrDuplicateKey {
		t.Fatalf("expected ErrDuplicateKey on re-insert, got %v", err)
	}
}

func TestReconciliationRepositoryResolveFlow(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	recon := &models.OutcomeReconciliation{
		ID:               uuid.New(),
		RecommendationID: uuid.New(),
		BetslipID:        uuid.New(),
		GameID:           uuid.New(),
		ActualResult:     models.BetResultPending,
		State:            models.ReconciliationPending,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repos.Reconciliation.Create(ctx, recon); err != nil {
		t.Fatalf("failed to create reconciliation: %v", err)
	}

	now := time.Now()
	recon.ActualResult = models.BetResultWin
	recon.State = models.ReconciliationResolved
	recon.Classification = models.OutcomeBothCorrect
	recon.Insight = "system and user agreed"
	recon.ResolvedAt = &now

	if err := repos.Reconciliation.Resolve(ctx, recon); err != nil {
		t.Fatalf("failed to resolve reconciliation: %v", err)
	}

	retrieved, err := repos.Reconciliation.GetByID(ctx, recon.ID)
	if err != nil {
		t.Fatalf("failed to retrieve reconciliation: %v", err)
	}
	if retrieved.Classification != models.OutcomeBothCorrect {
		t.Errorf("expected BothCorrect, got %s", retrieved.Classification)
	}
	if !retrieved.IsResolved() {
		t.Error("expected reconciliation to be resolved")
	}

	// Resolving twice must fail
	if err := repos.Reconciliation.Resolve(ctx, recon); err != models.ErrAlreadyResolved {
		t.Fatalf("expected ErrAlreadyResolved on double resolve, got %v", err)
	}
}

func TestNewRepositoriesRequiresDB(t *testing.T) {
	if _, err := NewRepositories(nil); err == nil {
		t.Fatal("expected error for nil database")
	}
}
