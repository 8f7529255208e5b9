package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bet-insight/internal/analysis"
	"github.com/yourusername/bet-insight/internal/logger"
	"github.com/yourusername/bet-insight/internal/metrics"
	"github.com/yourusername/bet-insight/internal/models"
)

func settledTestRecord(team string, result models.BetResult, day int) *models.HistoricalRecord {
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
		Odds:       2.0,
		Result:     result,
		Side:       models.SideHome,
		EventDate:  time.Now().Add(-time.Duration(day) * 24 * time.Hour),
	}
}

func testCandidate() *models.CandidateBet {
	return &models.CandidateBet{
		BetslipID:  uuid.New(),
		Team:       "Arsenal",
		HomeTeam:   "Arsenal",
		AwayTeam:   "Chelsea",
		Country:    "ENG",
		League:     "Premier League",
		MarketType: models.MarketTypeWin,
		Selection:  "Arsenal Win",
		Odds:       2.1,
		EventDate:  time.Now().Add(24 * time.Hour),
	}
}

func TestAnalyzeBatchPersistsRecommendations(t *testing.T) {
	repos, records, recs, recons := fakeRepositories()
	for day := 1; day <= 12; day++ {
		result := models.BetResultWin
		if day%4 == 0 {
			result = models.BetResultLoss
		}
		require.NoError(t, records.Create(context.Background(), settledTestRecord("Arsenal", result, day)))
	}

	svc := NewAnalysisService(repos, NewProfileCache(time.Minute), nil, 365*24*time.Hour, 3, nil)

	candidates := []*models.CandidateBet{testCandidate(), testCandidate(), testCandidate()}
	out, err := svc.AnalyzeBatch(context.Background(), candidates)
	require.NoError(t, err)
	require.Len(t, out, 3)

	for i, rec := range out {
		assert.Equal(t, candidates[i].BetslipID, rec.BetslipID, "output order must match input order")
		assert.False(t, rec.CreatedAt.IsZero(), "persistence must stamp CreatedAt")
	}

	assert.Len(t, recs.recs, 3)
	assert.Len(t, recons.recons, 3, "each stored recommendation gets a pending reconciliation")
	for _, recon := range recons.recons {
		assert.Equal(t, models.ReconciliationPending, recon.State)
	}
}

func TestAnalyzeBatchEmptyInput(t *testing.T) {
	repos, _, _, _ := fakeRepositories()
	svc := NewAnalysisService(repos, NewProfileCache(time.Minute), nil, 365*24*time.Hour, 3, nil)

	out, err := svc.AnalyzeBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestAnalyzeBatchReusesCachedProfiles(t *testing.T) {
	repos, records, _, _ := fakeRepositories()
	require.NoError(t, records.Create(context.Background(), settledTestRecord("Arsenal", models.BetResultWin, 1)))

	cache := NewProfileCache(time.Minute)
	svc := NewAnalysisService(repos, cache, nil, 365*24*time.Hour, 2, nil)

	_, err := svc.AnalyzeBatch(context.Background(), []*models.CandidateBet{testCandidate()})
	require.NoError(t, err)
	_, err = svc.AnalyzeBatch(context.Background(), []*models.CandidateBet{testCandidate()})
	require.NoError(t, err)

	hits, misses, _ := cache.Stats()
	assert.Equal(t, uint64(1), hits, "second batch must hit the profile cache")
	assert.Equal(t, uint64(1), misses)
}

func TestAnalyzeBatchBlacklist(t *testing.T) {
	repos, _, _, _ := fakeRepositories()
	svc := NewAnalysisService(repos, NewProfileCache(time.Minute), []string{"Arsenal"}, 365*24*time.Hour, 2, nil)

	out, err := svc.AnalyzeBatch(context.Background(), []*models.CandidateBet{testCandidate()})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Avoid (Blacklisted)", out[0].Recommendation)
}

func TestAnalyzeBatchEmitsCandidateTelemetry(t *testing.T) {
	repos, _, _, _ := fakeRepositories()

	base := logrus.New()
	buf := &bytes.Buffer{}
	base.SetOutput(buf)
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetLevel(logrus.DebugLevel)

	before := testutil.ToFloat64(metrics.BlacklistHitsTotal)

	svc := NewAnalysisService(repos, NewProfileCache(time.Minute), []string{"Arsenal"},
		365*24*time.Hour, 1, logger.NewEngineLogger(base))

	out, err := svc.AnalyzeBatch(context.Background(), []*models.CandidateBet{testCandidate()})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.BlacklistHitsTotal),
		"blacklisted candidate must increment the blacklist counter")

	logs := buf.String()
	assert.Contains(t, logs, "Candidate analysis completed")
	assert.Contains(t, logs, "Candidate team is blacklisted")
	assert.Contains(t, logs, "Scoring profiles rebuilt")
}

func TestAnalyzeOneDuplicateTicketIsBenign(t *testing.T) {
	repos, _, recs, recons := fakeRepositories()
	svc := NewAnalysisService(repos, NewProfileCache(time.Minute), nil, 365*24*time.Hour, 1, nil)

	candidate := testCandidate()
	first, err := svc.AnalyzeOne(context.Background(), candidate)
	require.NoError(t, err)

	// Same ticket analyzed again produces the same deterministic ID
	second, err := svc.AnalyzeOne(context.Background(), candidate)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assert.Len(t, recs.recs, 1, "duplicate must not double-persist")
	assert.Len(t, recons.recons, 1)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, "back", categorize("Home Win"))
	assert.Equal(t, "back", categorize("Away Win"))
	assert.Equal(t, "hedge", categorize("Double Chance Home/Draw"))
	assert.Equal(t, "avoid", categorize("Avoid"))
	assert.Equal(t, "avoid", categorize("Avoid (Blacklisted)"))
}

func TestProfileCacheExpiry(t *testing.T) {
	cache := NewProfileCache(10 * time.Millisecond)
	require.Nil(t, cache.Get())

	cache.Set(analysis.BuildProfiles(nil))
	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, cache.Get(), "entries must expire after the TTL")
}

func TestProfileCacheInvalidate(t *testing.T) {
	cache := NewProfileCache(time.Minute)
	cache.Set(analysis.BuildProfiles(nil))
	require.NotNil(t, cache.Get())

	cache.Invalidate()
	assert.Nil(t, cache.Get())
}
