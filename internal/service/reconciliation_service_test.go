package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bet-insight/internal/analysis"
	"github.com/yourusername/bet-insight/internal/models"
)

func TestHandleSettledResultUnmatched(t *testing.T) {
	repos, _, _, recons := fakeRepositories()
	svc := NewReconciliationService(repos, NewProfileCache(time.Minute), nil)

	result := settledTestRecord("Nobody FC", models.BetResultWin, 1)
	require.NoError(t, svc.HandleSettledResult(context.Background(), result))

	require.Len(t, recons.recons, 1)
	assert.Equal(t, models.ReconciliationUnmatched, recons.recons[0].State)
}

func TestHandleSettledResultRejectsPending(t *testing.T) {
	repos, _, _, _ := fakeRepositories()
	svc := NewReconciliationService(repos, NewProfileCache(time.Minute), nil)

	result := settledTestRecord("Arsenal", models.BetResultPending, 1)
	assert.Error(t, svc.HandleSettledResult(context.Background(), result))
}

func TestHandleSettledResultResolvesStoredRecommendation(t *testing.T) {
	repos, _, recs, recons := fakeRepositories()

	analysisSvc := NewAnalysisService(repos, NewProfileCache(time.Minute), nil, 365*24*time.Hour, 1, nil)
	candidate := testCandidate()
	rec, err := analysisSvc.AnalyzeOne(context.Background(), candidate)
	require.NoError(t, err)
	require.Len(t, recs.recs, 1)

	// Settled result on the same fixture
	result := &models.HistoricalRecord{
		BetslipID:  candidate.BetslipID,
		Team:       candidate.Team,
		HomeTeam:   candidate.HomeTeam,
		AwayTeam:   candidate.AwayTeam,
		Country:    candidate.Country,
		League:     candidate.League,
		MarketType: candidate.MarketType,
		Selection:  candidate.Selection,
		Odds:       candidate.Odds,
		Result:     models.BetResultWin,
		Side:       models.SideHome,
		EventDate:  candidate.EventDate,
	}

	svc := NewReconciliationService(repos, NewProfileCache(time.Minute), nil)
	require.NoError(t, svc.HandleSettledResult(context.Background(), result))

	recon, err := recons.GetByRecommendationID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReconciliationResolved, recon.State)
	assert.NotEmpty(t, recon.Classification)
	assert.True(t, recon.IsResolved())
}

func TestSweepPendingResolvesSettledBetslips(t *testing.T) {
	repos, records, _, recons := fakeRepositories()

	analysisSvc := NewAnalysisService(repos, NewProfileCache(time.Minute), nil, 365*24*time.Hour, 1, nil)
	candidate := testCandidate()
	rec, err := analysisSvc.AnalyzeOne(context.Background(), candidate)
	require.NoError(t, err)

	// The betslip settles after the recommendation was stored
	result := &models.HistoricalRecord{
		BetslipID:  candidate.BetslipID,
		Team:       candidate.Team,
		HomeTeam:   candidate.HomeTeam,
		AwayTeam:   candidate.AwayTeam,
		Country:    candidate.Country,
		League:     candidate.League,
		MarketType: candidate.MarketType,
		Selection:  candidate.Selection,
		Odds:       candidate.Odds,
		Result:     models.BetResultLoss,
		Side:       models.SideHome,
		EventDate:  candidate.EventDate,
	}
	require.NoError(t, records.Create(context.Background(), result))

	svc := NewReconciliationService(repos, NewProfileCache(time.Minute), nil)
	resolved, err := svc.SweepPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resolved)

	recon, err := recons.GetByRecommendationID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.True(t, recon.IsResolved())
}

func TestSweepPendingLeavesUnsettled(t *testing.T) {
	repos, _, _, _ := fakeRepositories()

	analysisSvc := NewAnalysisService(repos, NewProfileCache(time.Minute), nil, 365*24*time.Hour, 1, nil)
	_, err := analysisSvc.AnalyzeOne(context.Background(), testCandidate())
	require.NoError(t, err)

	svc := NewReconciliationService(repos, NewProfileCache(time.Minute), nil)
	resolved, err := svc.SweepPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resolved, "nothing settled yet, nothing to resolve")
}

func TestHandleSettledResultInvalidatesProfiles(t *testing.T) {
	repos, _, _, _ := fakeRepositories()

	cache := NewProfileCache(time.Minute)
	cache.Set(analysis.BuildProfiles(nil))
	require.NotNil(t, cache.Get())

	svc := NewReconciliationService(repos, cache, nil)
	result := settledTestRecord("Anyone FC", models.BetResultWin, 1)
	require.NoError(t, svc.HandleSettledResult(context.Background(), result))

	assert.Nil(t, cache.Get(), "settled results must invalidate cached profiles")
}
