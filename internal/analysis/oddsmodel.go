package analysis

import (
	"math"
	"sort"

	"github.com/yourusername/bet-insight/internal/models"
)

// Scoreline model constants
const (
	totalGoalBudget = 2.5
	maxGoalsPerSide = 5
	topScorelines   = 5
)

// BuildOutcomeProbabilities converts decimal 1X2 odds into overround-free
// outcome probabilities and a Poisson scoreline model. The fixed total-goal
// budget is split between the sides in proportion to their true win
// probabilities. Returns nil when any odds input is missing or non-positive;
// callers must treat nil as "no probability data", not zero.
func BuildOutcomeProbabilities(homeOdds, drawOdds, awayOdds float64) *models.OutcomeProbabilities {
	for _, o := range []float64{homeOdds, drawOdds, awayOdds} {
		if o <= 0 || math.IsNaN(o) || math.IsInf(o, 0) {
			return nil
		}
	}

	impliedHome := 1 / homeOdds
	impliedDraw := 1 / drawOdds
	impliedAway := 1 / awayOdds
	overround := impliedHome + impliedDraw + impliedAway

	trueHome := impliedHome / overround
	trueDraw := impliedDraw / overround
	trueAway := impliedAway / overround

	strength := trueHome + trueAway
	lambdaHome := totalGoalBudget * trueHome / strength
	lambdaAway := totalGoalBudget * trueAway / strength

	return &models.OutcomeProbabilities{
		Home:          round1(trueHome * 100),
		Draw:          round1(trueDraw * 100),
		Away:          round1(trueAway * 100),
		LambdaHome:    lambdaHome,
		LambdaAway:    lambdaAway,
		TopScorelines: likelyScorelines(lambdaHome, lambdaAway),
	}
}

// likelyScorelines enumerates every scoreline up to maxGoalsPerSide per
// side and keeps the most probable few. Ties break on the lower-scoring
// line so output ordering is deterministic.
func likelyScorelines(lambdaHome, lambdaAway float64) []models.Scoreline {
	lines := make([]models.Scoreline, 0, (maxGoalsPerSide+1)*(maxGoalsPerSide+1))
	for home := 0; home <= maxGoalsPerSide; home++ {
		for away := 0; away <= maxGoalsPerSide; away++ {
			lines = append(lines, models.Scoreline{
				HomeGoals:   home,
				AwayGoals:   away,
				Probability: poissonPMF(lambdaHome, home) * poissonPMF(lambdaAway, away),
			})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Probability != lines[j].Probability {
			return lines[i].Probability > lines[j].Probability
		}
		if lines[i].HomeGoals != lines[j].HomeGoals {
			return lines[i].HomeGoals < lines[j].HomeGoals
		}
		return lines[i].AwayGoals < lines[j].AwayGoals
	})
	return lines[:topScorelines]
}

// poissonPMF returns P(X = k) for X ~ Poisson(lambda)
func poissonPMF(lambda float64, k int) float64 {
	return math.Exp(-lambda) * math.Pow(lambda, float64(k)) / factorial(k)
}

func factorial(k int) float64 {
	result := 1.0
	for i := 2; i <= k; i++ {
		result *= float64(i)
	}
	return result
}
