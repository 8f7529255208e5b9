package models

// ScoringProfile aggregates a team's historical goals-per-game pattern
// within one country+league, split by home/away role. Games are
// deduplicated by canonical game key before aggregation, so repeated
// tickets on the same real-world game count once.
type ScoringProfile struct {
	Team            string  `db:"team" json:"team"`
	Country         string  `db:"country" json:"country"`
	League          string  `db:"league" json:"league"`
	TotalGames      int     `db:"total_games" json:"total_games"`
	HomeGames       int     `db:"home_games" json:"home_games"`
	AwayGames       int     `db:"away_games" json:"away_games"`
	Over15Rate      float64 `db:"over15_rate" json:"over15_rate"`
	Over25Rate      float64 `db:"over25_rate" json:"over25_rate"`
	Over35Rate      float64 `db:"over35_rate" json:"over35_rate"`
	AvgScored       float64 `db:"avg_scored" json:"avg_scored"`
	AvgConceded     float64 `db:"avg_conceded" json:"avg_conceded"`
	HomeAvgScored   float64 `db:"home_avg_scored" json:"home_avg_scored"`
	HomeAvgConceded float64 `db:"home_avg_conceded" json:"home_avg_conceded"`
	AwayAvgScored   float64 `db:"away_avg_scored" json:"away_avg_scored"`
	AwayAvgConceded float64 `db:"away_avg_conceded" json:"away_avg_conceded"`

	// LeagueAverage marks a profile synthesized from the league-wide
	// average because the team itself had no usable games.
	LeagueAverage bool `db:"league_average" json:"league_average"`
}

// AvgTotalGoals returns the expected combined goals in this team's games
func (p *ScoringProfile) AvgTotalGoals() float64 {
	return p.AvgScored + p.AvgConceded
}

// MatchupHistory is the ordered list of prior settled records between the
// same two teams in the same country+league, newest first.
type MatchupHistory struct {
	Key     string              `json:"key"`
	Records []*HistoricalRecord `json:"records"`
}

// DrawRate returns the share of head-to-head games that ended level.
// Second return is false when no game carried a scoreline.
func (m *MatchupHistory) DrawRate() (float64, bool) {
	scored := 0
	draws := 0
	for _, rec := range m.Records {
		if rec.HomeScore == nil || rec.AwayScore == nil {
			continue
		}
		scored++
		if rec.IsDraw() {
			draws++
		}
	}
	if scored == 0 {
		return 0, false
	}
	return float64(draws) / float64(scored), true
}
