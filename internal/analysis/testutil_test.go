package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/bet-insight/internal/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testDate(day int) time.Time {
	return time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC)
}

// settledRecord builds a settled wager on team in a TeamA vs TeamB fixture
func settledRecord(team string, result models.BetResult, day int) *models.HistoricalRecord {
	rec := &models.HistoricalRecord{
		ID:         uuid.New(),
		Team:       team,
		HomeTeam:   "TeamA",
		AwayTeam:   "TeamB",
		Country:    "ENG",
		League:     "Premier",
		MarketType: models.MarketTypeWin,
		Selection:  team + " Win",
		Odds:       2.0,
		Result:     result,
		EventDate:  testDate(day),
	}
	rec.Side = models.ResolveSide(rec.Team, rec.HomeTeam, rec.AwayTeam)
	return rec
}

func scoredRecord(home, away string, homeScore, awayScore, day int) *models.HistoricalRecord {
	rec := &models.HistoricalRecord{
		ID:         uuid.New(),
		Team:       home,
		HomeTeam:   home,
		AwayTeam:   away,
		Country:    "ENG",
		League:     "Premier",
		MarketType: models.MarketTypeWin,
		Selection:  home + " Win",
		Odds:       1.8,
		Result:     models.BetResultWin,
		EventDate:  testDate(day),
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
	}
	rec.Side = models.SideHome
	return rec
}

func testCandidate() *models.CandidateBet {
	c := &models.CandidateBet{
		ID:         uuid.New(),
		BetslipID:  uuid.New(),
		Team:       "TeamA",
		HomeTeam:   "TeamA",
		AwayTeam:   "TeamB",
		Country:    "ENG",
		League:     "Premier",
		MarketType: models.MarketTypeWin,
		Selection:  "TeamA Win",
		Odds:       2.1,
		EventDate:  testDate(20),
	}
	c.Normalize()
	return c
}
