package analysis

import (
	"strings"
	"testing"

	"github.com/yourusername/bet-insight/internal/models"
)

// lopsidedCorpus gives TeamA a strong record and TeamB a weak one
func lopsidedCorpus() []*models.HistoricalRecord {
	var corpus []*models.HistoricalRecord
	for day := 1; day <= 8; day++ {
		corpus = append(corpus, settledRecord("TeamA", models.BetResultWin, day))
	}
	corpus = append(corpus, settledRecord("TeamA", models.BetResultLoss, 9))
	for day := 1; day <= 6; day++ {
		result := models.BetResultLoss
		if day <= 2 {
			result = models.BetResultWin
		}
		rec := settledRecord("TeamB", result, day+10)
		corpus = append(corpus, rec)
	}
	return corpus
}

func TestRankMarketsProducesThreeRankedEntries(t *testing.T) {
	corpus := lopsidedCorpus()
	est := NewEstimator(corpus)
	set := BuildProfiles(corpus)
	c := testCandidate()

	results := RankMarkets(c, est, nil, set.ProfileFor("TeamA", "ENG", "Premier"), set.ProfileFor("TeamB", "ENG", "Premier"))
	if len(results) != 3 {
		t.Fatalf("expected 3 market analyses, got %d", len(results))
	}
	for i, r := range results {
		if r.Rank != i+1 {
			t.Fatalf("rank %d at index %d", r.Rank, i)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].AdjustedScore > results[i-1].AdjustedScore {
			t.Fatal("results must be sorted descending by adjusted score")
		}
	}
}

func TestStraightWinPicksClearLeader(t *testing.T) {
	est := NewEstimator(lopsidedCorpus())
	result := analyzeStraightWin(testCandidate(), est)
	if !strings.Contains(result.Bet, "TeamA") {
		t.Fatalf("expected TeamA as leader, got %q", result.Bet)
	}
	if result.RiskLevel != models.RiskLevelHigh {
		t.Fatalf("straight win must be high risk, got %s", result.RiskLevel)
	}
}

func TestStraightWinNoClearLeader(t *testing.T) {
	corpus := []*models.HistoricalRecord{
		settledRecord("TeamA", models.BetResultWin, 1),
		settledRecord("TeamA", models.BetResultLoss, 2),
		settledRecord("TeamB", models.BetResultWin, 3),
		settledRecord("TeamB", models.BetResultLoss, 4),
	}
	est := NewEstimator(corpus)
	result := analyzeStraightWin(testCandidate(), est)
	if result.Bet != "No clear winner" {
		t.Fatalf("even records should yield no pick, got %q", result.Bet)
	}
}

func TestDoubleChanceNeverBelowStraightWin(t *testing.T) {
	corpora := [][]*models.HistoricalRecord{
		lopsidedCorpus(),
		{settledRecord("TeamA", models.BetResultWin, 1)},
		nil,
	}
	for _, corpus := range corpora {
		est := NewEstimator(corpus)
		c := testCandidate()
		straight := analyzeStraightWin(c, est)
		double := analyzeDoubleChance(c, est, nil, straight)
		if double.Confidence < straight.Confidence {
			t.Fatalf("hedge confidence %.1f below straight-win %.1f", double.Confidence, straight.Confidence)
		}
	}
}

func TestDoubleChanceUsesHeadToHeadDrawRate(t *testing.T) {
	corpus := lopsidedCorpus()
	est := NewEstimator(corpus)
	c := testCandidate()
	straight := analyzeStraightWin(c, est)

	drawn := scoredRecord("TeamA", "TeamB", 1, 1, 1)
	h2h := &models.MatchupHistory{Records: []*models.HistoricalRecord{drawn}}

	result := analyzeDoubleChance(c, est, h2h, straight)
	if !strings.Contains(result.Reasoning, "head-to-head") {
		t.Fatalf("expected head-to-head draw rate in reasoning, got %q", result.Reasoning)
	}

	noHistory := analyzeDoubleChance(c, est, nil, straight)
	if !strings.Contains(noHistory.Reasoning, "league default") {
		t.Fatalf("expected league default fallback, got %q", noHistory.Reasoning)
	}
}

func TestOverUnderHighScoringFixture(t *testing.T) {
	games := []*models.HistoricalRecord{
		scoredRecord("TeamA", "TeamC", 3, 2, 1),
		scoredRecord("TeamD", "TeamA", 2, 3, 2),
		scoredRecord("TeamB", "TeamC", 4, 1, 3),
		scoredRecord("TeamD", "TeamB", 1, 3, 4),
	}
	set := BuildProfiles(games)
	result := analyzeOverUnder(set.ProfileFor("TeamA", "ENG", "Premier"), set.ProfileFor("TeamB", "ENG", "Premier"))
	if !strings.HasPrefix(result.Bet, "Over") {
		t.Fatalf("high-scoring sides should yield an Over call, got %q", result.Bet)
	}
}

func TestOverUnderNoData(t *testing.T) {
	result := analyzeOverUnder(nil, nil)
	if result.Bet != "No clear trend" {
		t.Fatalf("missing profiles should yield no trend, got %q", result.Bet)
	}
}

func TestRiskAdjustmentFactors(t *testing.T) {
	corpus := lopsidedCorpus()
	est := NewEstimator(corpus)
	c := testCandidate()

	straight := analyzeStraightWin(c, est)
	if straight.AdjustedScore != straight.Confidence {
		t.Fatalf("straight win is unadjusted: %.1f vs %.1f", straight.AdjustedScore, straight.Confidence)
	}
	double := analyzeDoubleChance(c, est, nil, straight)
	if double.AdjustedScore >= double.Confidence {
		t.Fatalf("double chance must be discounted: %.1f vs %.1f", double.AdjustedScore, double.Confidence)
	}
}
