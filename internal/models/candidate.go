package models

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// CandidateBet represents an unsettled prospective wager under analysis.
// Same shape as HistoricalRecord minus the result; created per analysis run
// and discarded once a Recommendation has been produced.
type CandidateBet struct {
	ID               uuid.UUID  `json:"id"`
	BetslipID        uuid.UUID  `json:"betslip_id" validate:"required"`
	Team             string     `json:"team" validate:"required"`
	HomeTeam         string     `json:"home_team" validate:"required"`
	AwayTeam         string     `json:"away_team" validate:"required"`
	Country          string     `json:"country" validate:"required"`
	League           string     `json:"league" validate:"required"`
	MarketType       MarketType `json:"market_type" validate:"required,oneof=WIN DOUBLE_CHANCE OVER_UNDER"`
	Selection        string     `json:"selection"`
	Odds             float64    `json:"odds" validate:"required,gt=1"`
	HomeOdds         *float64   `json:"home_odds"`
	DrawOdds         *float64   `json:"draw_odds"`
	AwayOdds         *float64   `json:"away_odds"`
	Side             Side       `json:"side"`
	EventDate        time.Time  `json:"event_date" validate:"required"`
	LeaguePosition   *int       `json:"league_position"`
	OpponentPosition *int       `json:"opponent_position"`
	Last5Wins        *int       `json:"last5_wins"`
	Last5Draws       *int       `json:"last5_draws"`
	Last5Losses      *int       `json:"last5_losses"`
}

// Normalize resolves derived fields that downstream stages rely on.
// Side resolution happens here, once, at the ingestion boundary.
func (c *CandidateBet) Normalize() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Side == "" || c.Side == SideUnknown {
		c.Side = ResolveSide(c.Team, c.HomeTeam, c.AwayTeam)
	}
}

// HasMatchOdds reports whether all three 1X2 odds are present and usable
func (c *CandidateBet) HasMatchOdds() bool {
	for _, o := range []*float64{c.HomeOdds, c.DrawOdds, c.AwayOdds} {
		if o == nil || *o <= 0 || math.IsNaN(*o) {
			return false
		}
	}
	return true
}

// ParseOdds parses a decimal odds string defensively. Malformed or
// non-positive input yields (0, false), never an error.
func ParseOdds(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
