package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/yourusername/bet-insight/internal/models"
)

// Market ranker constants. Analyzer confidences live on an internal 0-10
// risk scale and are converted to the engine-wide 0-100 scale only when
// they leave this file inside a MarketAnalysis.
const (
	winRateGapThreshold = 0.10
	defaultDrawRate     = 0.15
	midConfidence       = 5.0
	maxRiskScore        = 10.0
	minOverUnderScore   = 2.0
	goalLineSlope       = 4.0

	straightWinAdjust  = 1.0
	doubleChanceAdjust = 0.9
	overUnderAdjust    = 0.95
)

var goalLines = []float64{1.5, 2.5, 3.5, 4.5}

// RankMarkets runs the three independent market analyzers for one
// candidate and risk-ranks the results into primary/secondary/tertiary.
func RankMarkets(c *models.CandidateBet, est *Estimator, h2h *models.MatchupHistory, homeProfile, awayProfile *models.ScoringProfile) []models.MarketAnalysis {
	straight := analyzeStraightWin(c, est)
	double := analyzeDoubleChance(c, est, h2h, straight)
	overUnder := analyzeOverUnder(homeProfile, awayProfile)

	results := []models.MarketAnalysis{straight, double, overUnder}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AdjustedScore > results[j].AdjustedScore
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// analyzeStraightWin compares the two teams' exact-match win rates and
// backs the leader only when the gap is decisive.
func analyzeStraightWin(c *models.CandidateBet, est *Estimator) models.MarketAnalysis {
	homeRate, homeN := est.WinRate(c.HomeTeam, c.Country, c.League)
	awayRate, awayN := est.WinRate(c.AwayTeam, c.Country, c.League)

	gap := homeRate - awayRate
	if math.Abs(gap) <= winRateGapThreshold || (homeN == 0 && awayN == 0) {
		return marketResult(models.MarketTypeWin, "No clear winner", midConfidence, straightWinAdjust,
			fmt.Sprintf("Win rates too close: %s %.0f%% (%d bets) vs %s %.0f%% (%d bets)",
				c.HomeTeam, homeRate*100, homeN, c.AwayTeam, awayRate*100, awayN),
			models.RiskLevelHigh)
	}

	leader, leaderRate, leaderN := c.HomeTeam, homeRate, homeN
	if gap < 0 {
		leader, leaderRate, leaderN = c.AwayTeam, awayRate, awayN
	}
	confidence := math.Min(leaderRate*100/10, maxRiskScore)
	return marketResult(models.MarketTypeWin, leader+" Win", confidence, straightWinAdjust,
		fmt.Sprintf("%s leads on win rate: %.0f%% over %d settled bets", leader, leaderRate*100, leaderN),
		models.RiskLevelHigh)
}

// analyzeDoubleChance hedges the straight-win leader with the draw. The
// confidence is floored at the straight-win confidence: covering two
// outcomes can never look worse than backing one of them.
func analyzeDoubleChance(c *models.CandidateBet, est *Estimator, h2h *models.MatchupHistory, straight models.MarketAnalysis) models.MarketAnalysis {
	homeRate, _ := est.WinRate(c.HomeTeam, c.Country, c.League)
	awayRate, _ := est.WinRate(c.AwayTeam, c.Country, c.League)

	leader, leaderRate := c.HomeTeam, homeRate
	if awayRate > homeRate {
		leader, leaderRate = c.AwayTeam, awayRate
	}

	drawRate := defaultDrawRate
	drawSource := "league default"
	if h2h != nil {
		if rate, ok := h2h.DrawRate(); ok {
			drawRate = rate
			drawSource = "head-to-head history"
		}
	}

	confidence := math.Min((leaderRate*100+drawRate*100)/10, maxRiskScore)
	if confidence < straight.Confidence/10 {
		confidence = straight.Confidence / 10
	}
	return marketResult(models.MarketTypeDoubleChance, leader+" or Draw", confidence, doubleChanceAdjust,
		fmt.Sprintf("%s win rate %.0f%% plus %.0f%% draw rate from %s", leader, leaderRate*100, drawRate*100, drawSource),
		models.RiskLevelLow)
}

// analyzeOverUnder evaluates each fixed goal line in both directions and
// keeps the single most confident call. Confidence grows with the margin
// between the combined goal expectation and the line.
func analyzeOverUnder(homeProfile, awayProfile *models.ScoringProfile) models.MarketAnalysis {
	if homeProfile == nil || awayProfile == nil {
		return marketResult(models.MarketTypeOverUnder, "No clear trend", minOverUnderScore, overUnderAdjust,
			"No goals data for either team or its league", models.RiskLevelMedium)
	}

	expected := (homeProfile.AvgTotalGoals() + awayProfile.AvgTotalGoals()) / 2

	bestBet := ""
	bestConfidence := 0.0
	for _, line := range goalLines {
		distance := expected - line
		confidence := math.Min(math.Abs(distance)*goalLineSlope, maxRiskScore)
		if confidence <= bestConfidence {
			continue
		}
		bestConfidence = confidence
		if distance > 0 {
			bestBet = fmt.Sprintf("Over %.1f Goals", line)
		} else {
			bestBet = fmt.Sprintf("Under %.1f Goals", line)
		}
	}

	if bestConfidence < minOverUnderScore {
		return marketResult(models.MarketTypeOverUnder, "No clear trend", minOverUnderScore, overUnderAdjust,
			fmt.Sprintf("Combined expectation %.1f goals sits too close to every line", expected),
			models.RiskLevelMedium)
	}

	reasoning := fmt.Sprintf("Combined goal expectation %.1f per game", expected)
	if homeProfile.LeagueAverage || awayProfile.LeagueAverage {
		reasoning += " (league-average data)"
	}
	return marketResult(models.MarketTypeOverUnder, bestBet, bestConfidence, overUnderAdjust, reasoning, models.RiskLevelMedium)
}

// marketResult converts an internal 0-10 risk score onto the 0-100 scale
// and applies the market's risk adjustment.
func marketResult(market models.MarketType, bet string, confidence, adjust float64, reasoning string, risk models.RiskLevel) models.MarketAnalysis {
	return models.MarketAnalysis{
		Market:        market,
		Bet:           bet,
		Confidence:    round1(confidence * 10),
		AdjustedScore: round1(confidence * adjust * 10),
		Reasoning:     reasoning,
		RiskLevel:     risk,
	}
}
