package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MarketType represents the type of market a wager was placed on
type MarketType string

const (
	MarketTypeWin          MarketType = "WIN"
	MarketTypeDoubleChance MarketType = "DOUBLE_CHANCE"
	MarketTypeOverUnder    MarketType = "OVER_UNDER"
)

// BetResult represents the settled outcome of a wager
type BetResult string

const (
	BetResultWin     BetResult = "win"
	BetResultLoss    BetResult = "loss"
	BetResultPending BetResult = "pending"
)

// Side identifies which side of the matchup a wager backs.
// Resolved once at ingestion, never re-derived downstream.
type Side string

const (
	SideHome    Side = "HOME"
	SideAway    Side = "AWAY"
	SideUnknown Side = "UNKNOWN"
)

// HistoricalRecord represents one settled wager. Immutable once settled;
// produced by the ingestion layer, consumed read-only by the engine.
type HistoricalRecord struct {
	ID               uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	BetslipID        uuid.UUID  `db:"betslip_id" json:"betslip_id"`
	Team             string     `db:"team" json:"team" validate:"required"`
	HomeTeam         string     `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam         string     `db:"away_team" json:"away_team" validate:"required"`
	Country          string     `db:"country" json:"country" validate:"required"`
	League           string     `db:"league" json:"league" validate:"required"`
	MarketType       MarketType `db:"market_type" json:"market_type" validate:"required,oneof=WIN DOUBLE_CHANCE OVER_UNDER"`
	Selection        string     `db:"selection" json:"selection" validate:"required"`
	Odds             float64    `db:"odds" json:"odds" validate:"required,gt=1"`
	Result           BetResult  `db:"result" json:"result" validate:"required,oneof=win loss pending"`
	Side             Side       `db:"side" json:"side"`
	EventDate        time.Time  `db:"event_date" json:"event_date" validate:"required"`
	HomeScore        *int       `db:"home_score" json:"home_score"`
	AwayScore        *int       `db:"away_score" json:"away_score"`
	LeaguePosition   *int       `db:"league_position" json:"league_position"`
	OpponentPosition *int       `db:"opponent_position" json:"opponent_position"`
	Last5Wins        *int       `db:"last5_wins" json:"last5_wins"`
	Last5Draws       *int       `db:"last5_draws" json:"last5_draws"`
	Last5Losses      *int       `db:"last5_losses" json:"last5_losses"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// IsSettled reports whether the wager has a terminal result
func (r *HistoricalRecord) IsSettled() bool {
	return r.Result == BetResultWin || r.Result == BetResultLoss
}

// TotalGoals returns the combined scoreline, if recorded
func (r *HistoricalRecord) TotalGoals() (int, bool) {
	if r.HomeScore == nil || r.AwayScore == nil {
		return 0, false
	}
	return *r.HomeScore + *r.AwayScore, true
}

// IsDraw reports whether the recorded scoreline was a draw
func (r *HistoricalRecord) IsDraw() bool {
	if r.HomeScore == nil || r.AwayScore == nil {
		return false
	}
	return *r.HomeScore == *r.AwayScore
}

// Opponent returns the team on the other side of the matchup
func (r *HistoricalRecord) Opponent() string {
	if r.Side == SideAway {
		return r.HomeTeam
	}
	return r.AwayTeam
}

// ResolveSide determines which side of the matchup a team name refers to.
// Names come in from tickets with inconsistent casing and spacing, so the
// match is containment on normalized strings rather than equality.
func ResolveSide(team, homeTeam, awayTeam string) Side {
	t := NormalizeTeamName(team)
	switch {
	case t == "":
		return SideUnknown
	case strings.Contains(t, NormalizeTeamName(homeTeam)) || strings.Contains(NormalizeTeamName(homeTeam), t):
		return SideHome
	case strings.Contains(t, NormalizeTeamName(awayTeam)) || strings.Contains(NormalizeTeamName(awayTeam), t):
		return SideAway
	default:
		return SideUnknown
	}
}

// NormalizeTeamName lowercases and collapses whitespace for key building
func NormalizeTeamName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}
