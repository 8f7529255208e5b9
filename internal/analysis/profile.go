package analysis

import (
	"fmt"
	"strings"

	"github.com/yourusername/bet-insight/internal/models"
)

// ProfileSet holds scoring-pattern aggregates for every team seen in the
// corpus, scoped by country+league, with a league-average fallback for
// teams that have no games of their own.
type ProfileSet struct {
	profiles map[string]*models.ScoringProfile
	leagues  map[string][]*models.ScoringProfile
}

// profileAccumulator gathers raw totals before rates are derived
type profileAccumulator struct {
	team, country, league    string
	games                    int
	homeGames, awayGames     int
	over15, over25, over35   int
	scored, conceded         int
	homeScored, homeConceded int
	awayScored, awayConceded int
}

// BuildProfiles aggregates deduplicated historical games into per-team
// scoring profiles. Games without a recorded scoreline are skipped; they
// carry no goals information.
func BuildProfiles(records []*models.HistoricalRecord) *ProfileSet {
	accs := make(map[string]*profileAccumulator)

	for _, rec := range DedupGames(records) {
		if rec.HomeScore == nil || rec.AwayScore == nil {
			continue
		}
		home := accumulatorFor(accs, rec.HomeTeam, rec.Country, rec.League)
		away := accumulatorFor(accs, rec.AwayTeam, rec.Country, rec.League)

		hs, as := *rec.HomeScore, *rec.AwayScore
		total := hs + as

		home.games++
		home.homeGames++
		home.scored += hs
		home.conceded += as
		home.homeScored += hs
		home.homeConceded += as

		away.games++
		away.awayGames++
		away.scored += as
		away.conceded += hs
		away.awayScored += as
		away.awayConceded += hs

		for _, acc := range []*profileAccumulator{home, away} {
			if total > 1 {
				acc.over15++
			}
			if total > 2 {
				acc.over25++
			}
			if total > 3 {
				acc.over35++
			}
		}
	}

	set := &ProfileSet{
		profiles: make(map[string]*models.ScoringProfile, len(accs)),
		leagues:  make(map[string][]*models.ScoringProfile),
	}
	for key, acc := range accs {
		profile := acc.finalize()
		set.profiles[key] = profile
		lk := leagueKey(acc.country, acc.league)
		set.leagues[lk] = append(set.leagues[lk], profile)
	}
	return set
}

// ProfileFor returns the team's scoring profile, falling back to the
// league-wide average when the team has no aggregate of its own. The
// fallback is explicitly tagged LeagueAverage. Returns nil only when the
// league itself has no data at all.
func (s *ProfileSet) ProfileFor(team, country, league string) *models.ScoringProfile {
	if profile, ok := s.profiles[profileKey(team, country, league)]; ok {
		return profile
	}
	return s.leagueAverage(team, country, league)
}

// leagueAverage synthesizes a profile from the unweighted mean of every
// team profile in the league.
func (s *ProfileSet) leagueAverage(team, country, league string) *models.ScoringProfile {
	peers := s.leagues[leagueKey(country, league)]
	if len(peers) == 0 {
		return nil
	}

	avg := &models.ScoringProfile{
		Team:          team,
		Country:       country,
		League:        league,
		LeagueAverage: true,
	}
	n := float64(len(peers))
	for _, p := range peers {
		avg.Over15Rate += p.Over15Rate / n
		avg.Over25Rate += p.Over25Rate / n
		avg.Over35Rate += p.Over35Rate / n
		avg.AvgScored += p.AvgScored / n
		avg.AvgConceded += p.AvgConceded / n
		avg.HomeAvgScored += p.HomeAvgScored / n
		avg.HomeAvgConceded += p.HomeAvgConceded / n
		avg.AwayAvgScored += p.AwayAvgScored / n
		avg.AwayAvgConceded += p.AwayAvgConceded / n
	}
	return avg
}

// ScoringRecommendation renders the over/under tendency of a fixture from
// both sides' profiles. Nil profiles mean no data for the whole league.
func ScoringRecommendation(home, away *models.ScoringProfile) string {
	if home == nil || away == nil {
		return "No scoring data for this league"
	}

	over25 := (home.Over25Rate + away.Over25Rate) / 2
	expected := (home.AvgTotalGoals() + away.AvgTotalGoals()) / 2

	suffix := ""
	if home.LeagueAverage || away.LeagueAverage {
		suffix = " (league-average data)"
	}

	switch {
	case over25 >= 0.6:
		return fmt.Sprintf("Over 2.5 goals likely: %.0f%% historical rate, %.1f expected%s", over25*100, expected, suffix)
	case over25 <= 0.4:
		return fmt.Sprintf("Under 2.5 goals likely: %.0f%% historical over rate, %.1f expected%s", over25*100, expected, suffix)
	default:
		return fmt.Sprintf("No strong goals trend: %.0f%% over 2.5 rate, %.1f expected%s", over25*100, expected, suffix)
	}
}

func (a *profileAccumulator) finalize() *models.ScoringProfile {
	p := &models.ScoringProfile{
		Team:       a.team,
		Country:    a.country,
		League:     a.league,
		TotalGames: a.games,
		HomeGames:  a.homeGames,
		AwayGames:  a.awayGames,
	}
	if a.games > 0 {
		n := float64(a.games)
		p.Over15Rate = float64(a.over15) / n
		p.Over25Rate = float64(a.over25) / n
		p.Over35Rate = float64(a.over35) / n
		p.AvgScored = float64(a.scored) / n
		p.AvgConceded = float64(a.conceded) / n
	}
	if a.homeGames > 0 {
		p.HomeAvgScored = float64(a.homeScored) / float64(a.homeGames)
		p.HomeAvgConceded = float64(a.homeConceded) / float64(a.homeGames)
	}
	if a.awayGames > 0 {
		p.AwayAvgScored = float64(a.awayScored) / float64(a.awayGames)
		p.AwayAvgConceded = float64(a.awayConceded) / float64(a.awayGames)
	}
	return p
}

func accumulatorFor(accs map[string]*profileAccumulator, team, country, league string) *profileAccumulator {
	key := profileKey(team, country, league)
	if acc, ok := accs[key]; ok {
		return acc
	}
	acc := &profileAccumulator{team: team, country: country, league: league}
	accs[key] = acc
	return acc
}

func profileKey(team, country, league string) string {
	return fmt.Sprintf("%s|%s", models.NormalizeTeamName(team), leagueKey(country, league))
}

func leagueKey(country, league string) string {
	return strings.ToLower(strings.TrimSpace(country)) + "|" + strings.ToLower(strings.TrimSpace(league))
}
