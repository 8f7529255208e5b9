package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConfidenceBreakdown maps signal name to a 0-100 confidence score.
// Invariant: every value lies in [10,100]; exactly 50 means no evidence.
type ConfidenceBreakdown map[string]float64

// WeightVector maps signal name to its allocated weight.
// Invariant: weights sum to 1 after the allocator renormalizes.
type WeightVector map[string]float64

// Sum returns the total weight, used to check the normalization invariant
func (w WeightVector) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// RiskLevel categorizes a market analysis by relative risk
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// MarketAnalysis is one market-specific recommendation inside a triplet
type MarketAnalysis struct {
	Market        MarketType `db:"market" json:"market"`
	Bet           string     `db:"bet" json:"bet"`
	Confidence    float64    `db:"confidence" json:"confidence"`
	AdjustedScore float64    `db:"adjusted_score" json:"adjusted_score"`
	Reasoning     string     `db:"reasoning" json:"reasoning"`
	RiskLevel     RiskLevel  `db:"risk_level" json:"risk_level"`
	Rank          int        `db:"rank" json:"rank"`
}

// Scoreline is one enumerated final score with its modeled probability
type Scoreline struct {
	HomeGoals   int     `json:"home_goals"`
	AwayGoals   int     `json:"away_goals"`
	Probability float64 `json:"probability"`
}

// OutcomeProbabilities carries overround-free 1X2 probabilities plus the
// Poisson scoreline model derived from them. Nil when odds were unusable.
type OutcomeProbabilities struct {
	Home          float64     `json:"home"`
	Draw          float64     `json:"draw"`
	Away          float64     `json:"away"`
	LambdaHome    float64     `json:"lambda_home"`
	LambdaAway    float64     `json:"lambda_away"`
	TopScorelines []Scoreline `json:"top_scorelines"`
}

// Recommendation is the immutable output of one candidate analysis,
// persisted keyed by betslip ID plus the canonical per-game ID.
type Recommendation struct {
	ID                    uuid.UUID             `db:"id" json:"id"`
	BetslipID             uuid.UUID             `db:"betslip_id" json:"betslip_id" validate:"required"`
	GameID                uuid.UUID             `db:"game_id" json:"game_id" validate:"required"`
	Team                  string                `db:"team" json:"team"`
	HomeTeam              string                `db:"home_team" json:"home_team"`
	AwayTeam              string                `db:"away_team" json:"away_team"`
	Country               string                `db:"country" json:"country"`
	League                string                `db:"league" json:"league"`
	MarketType            MarketType            `db:"market_type" json:"market_type"`
	Selection             string                `db:"selection" json:"selection"`
	Odds                  float64               `db:"odds" json:"odds"`
	Side                  Side                  `db:"side" json:"side"`
	EventDate             time.Time             `db:"event_date" json:"event_date"`
	ConfidenceScore       float64               `db:"confidence_score" json:"confidence_score"`
	ConfidenceBreakdown   ConfidenceBreakdown   `db:"confidence_breakdown" json:"confidence_breakdown"`
	Weights               WeightVector          `db:"weights" json:"weights"`
	Recommendation        string                `db:"recommendation" json:"recommendation"`
	Reasoning             string                `db:"reasoning" json:"recommendation_reasoning"`
	Probabilities         *OutcomeProbabilities `db:"probabilities" json:"probabilities"`
	ScoringRecommendation string                `db:"scoring_recommendation" json:"scoring_recommendation"`
	Triplet               []MarketAnalysis      `db:"triplet" json:"recommendation_triplet"`
	CreatedAt             time.Time             `db:"created_at" json:"created_at"`
}

// Primary returns the top-ranked market analysis, if any
func (r *Recommendation) Primary() *MarketAnalysis {
	for i := range r.Triplet {
		if r.Triplet[i].Rank == 1 {
			return &r.Triplet[i]
		}
	}
	return nil
}

// PotentialReturn computes the gross return for a given stake.
// Decimal arithmetic so persisted money amounts don't drift.
func (r *Recommendation) PotentialReturn(stake decimal.Decimal) decimal.Decimal {
	return stake.Mul(decimal.NewFromFloat(r.Odds)).Round(2)
}

// PotentialProfit computes the net profit for a given stake
func (r *Recommendation) PotentialProfit(stake decimal.Decimal) decimal.Decimal {
	return r.PotentialReturn(stake).Sub(stake)
}
