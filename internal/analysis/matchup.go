package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/bet-insight/internal/models"
)

// GameKey builds the canonical key identifying one real-world game.
// Multiple tickets on the same game collapse to the same key.
func GameKey(date time.Time, homeTeam, awayTeam, country, league string) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		date.Format("2006-01-02"),
		models.NormalizeTeamName(homeTeam),
		models.NormalizeTeamName(awayTeam),
		strings.ToLower(strings.TrimSpace(country)),
		strings.ToLower(strings.TrimSpace(league)),
	)
}

// GameID derives the deterministic per-game identifier recommendations
// are persisted under, alongside the caller-supplied betslip ID.
func GameID(date time.Time, homeTeam, awayTeam, country, league string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(GameKey(date, homeTeam, awayTeam, country, league)))
}

// MatchupKey builds the canonical head-to-head key for a team pair within
// one country+league. Date is ignored and the pair is sorted, so both
// orientations of the fixture map to the same key.
func MatchupKey(teamA, teamB, country, league string) string {
	a := models.NormalizeTeamName(teamA)
	b := models.NormalizeTeamName(teamB)
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%s|%s|%s|%s",
		a, b,
		strings.ToLower(strings.TrimSpace(country)),
		strings.ToLower(strings.TrimSpace(league)),
	)
}

// DedupGames collapses the corpus to one record per real-world game,
// keeping the first record seen for each canonical game key.
func DedupGames(records []*models.HistoricalRecord) []*models.HistoricalRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]*models.HistoricalRecord, 0, len(records))
	for _, rec := range records {
		key := GameKey(rec.EventDate, rec.HomeTeam, rec.AwayTeam, rec.Country, rec.League)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, rec)
	}
	return unique
}

// HeadToHead extracts the matchup history between two teams within one
// country+league. Only settled results qualify; ordered newest first.
func HeadToHead(records []*models.HistoricalRecord, teamA, teamB, country, league string) *models.MatchupHistory {
	key := MatchupKey(teamA, teamB, country, league)
	history := &models.MatchupHistory{Key: key}

	for _, rec := range DedupGames(records) {
		if !rec.IsSettled() {
			continue
		}
		if MatchupKey(rec.HomeTeam, rec.AwayTeam, rec.Country, rec.League) != key {
			continue
		}
		history.Records = append(history.Records, rec)
	}

	sort.SliceStable(history.Records, func(i, j int) bool {
		return history.Records[i].EventDate.After(history.Records[j].EventDate)
	})
	return history
}
