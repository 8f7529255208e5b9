package analysis

import (
	"math"
	"sort"

	"github.com/yourusername/bet-insight/internal/models"
)

// oddsBandWidth is the decimal-odds neighborhood used for the odds signal
const oddsBandWidth = 0.5

// Estimator computes per-signal confidence scores for a candidate against
// the historical corpus. It holds no mutable state; every method filters
// the corpus with a signal-specific predicate and runs the shared
// Wilson-score routine over the resulting win/loss sample.
type Estimator struct {
	records []*models.HistoricalRecord
}

// NewEstimator creates an estimator over the given corpus
func NewEstimator(records []*models.HistoricalRecord) *Estimator {
	return &Estimator{records: records}
}

// EstimateSignals computes the full eight-signal breakdown for a candidate.
// Missing data in any signal degrades to the neutral prior, never an error.
func (e *Estimator) EstimateSignals(c *models.CandidateBet, h2h *models.MatchupHistory) (models.ConfidenceBreakdown, SignalStats) {
	stats := SignalStats{
		SignalTeam:     e.teamStat(c),
		SignalLeague:   e.leagueStat(c),
		SignalOdds:     e.oddsBandStat(c),
		SignalMatchup:  e.matchupStat(c, h2h),
		SignalHomeAway: e.homeAwayStat(c),
	}
	stats[SignalPosition] = SignalStat{Confidence: e.PositionConfidence(c)}
	stats[SignalRecentForm] = SignalStat{Confidence: e.RecentFormConfidence(c)}
	stats[SignalMomentum] = SignalStat{Confidence: e.MomentumConfidence(c)}

	breakdown := make(models.ConfidenceBreakdown, len(stats))
	for name, stat := range stats {
		breakdown[name] = stat.Confidence
	}
	return breakdown, stats
}

// teamStat scores the candidate team's settled record in this exact
// country+league.
func (e *Estimator) teamStat(c *models.CandidateBet) SignalStat {
	return e.sample(func(r *models.HistoricalRecord) bool {
		return sameTeam(r.Team, c.Team) && sameScope(r, c)
	})
}

// leagueStat scores the bettor's overall record in this country+league,
// regardless of team.
func (e *Estimator) leagueStat(c *models.CandidateBet) SignalStat {
	return e.sample(func(r *models.HistoricalRecord) bool {
		return sameScope(r, c)
	})
}

// oddsBandStat scores settled wagers of the same market type whose odds
// fall within the band around the candidate's odds.
func (e *Estimator) oddsBandStat(c *models.CandidateBet) SignalStat {
	return e.sample(func(r *models.HistoricalRecord) bool {
		return r.MarketType == c.MarketType && math.Abs(r.Odds-c.Odds) <= oddsBandWidth
	})
}

// matchupStat scores prior wagers on the candidate team within the
// head-to-head history of this exact fixture.
func (e *Estimator) matchupStat(c *models.CandidateBet, h2h *models.MatchupHistory) SignalStat {
	wins, losses := 0, 0
	if h2h != nil {
		for _, r := range h2h.Records {
			if !sameTeam(r.Team, c.Team) {
				continue
			}
			switch r.Result {
			case models.BetResultWin:
				wins++
			case models.BetResultLoss:
				losses++
			}
		}
	}
	return SignalStat{Confidence: wilsonConfidence(wins, losses), Wins: wins, Losses: losses}
}

// homeAwayStat scores the team's record when playing the same side of the
// matchup as the candidate backs.
func (e *Estimator) homeAwayStat(c *models.CandidateBet) SignalStat {
	if c.Side == models.SideUnknown || c.Side == "" {
		return SignalStat{Confidence: NeutralScore}
	}
	return e.sample(func(r *models.HistoricalRecord) bool {
		return sameTeam(r.Team, c.Team) && sameScope(r, c) && r.Side == c.Side
	})
}

// RecentFormConfidence scores the precomputed last-5 form counts.
// Each missing game below five costs five points.
func (e *Estimator) RecentFormConfidence(c *models.CandidateBet) float64 {
	wins := intOrZero(c.Last5Wins)
	draws := intOrZero(c.Last5Draws)
	losses := intOrZero(c.Last5Losses)
	total := wins + draws + losses
	if total == 0 {
		return NeutralScore
	}

	score := (float64(wins) + 0.5*float64(draws)) / float64(total) * 100
	if total < 5 {
		score -= float64(5-total) * 5
	}
	return clampScore(score)
}

// MomentumConfidence scores the team's last ten settled games with an
// exponential recency weight, newest first. A scoreline draw contributes
// nothing; wins and losses pull the signed sum up or down. The normalized
// [-1,1] momentum is rescaled onto the common score range.
func (e *Estimator) MomentumConfidence(c *models.CandidateBet) float64 {
	recent := e.recentSettled(c, 10)
	if len(recent) == 0 {
		return NeutralScore
	}

	sum := 0.0
	totalWeight := 0.0
	for i, rec := range recent {
		weight := math.Pow(0.8, float64(i))
		totalWeight += weight
		if rec.IsDraw() {
			continue
		}
		switch rec.Result {
		case models.BetResultWin:
			sum += weight
		case models.BetResultLoss:
			sum -= weight
		}
	}
	if totalWeight == 0 {
		return NeutralScore
	}

	norm := sum / totalWeight
	return clampScore((norm+1)*45 + 10)
}

// PositionConfidence buckets the candidate's league-table rank, adjusted
// by the opponent's bucket. No table data yields the neutral prior.
func (e *Estimator) PositionConfidence(c *models.CandidateBet) float64 {
	if c.LeaguePosition == nil {
		return NeutralScore
	}

	score := positionBucket(*c.LeaguePosition)
	if c.OpponentPosition != nil {
		oppScore := positionBucket(*c.OpponentPosition)
		if oppScore <= 40 {
			score += 10
		} else if oppScore >= 70 {
			score -= 10
		}
	}
	return clampScore(score)
}

func positionBucket(position int) float64 {
	switch {
	case position <= 3:
		return 80
	case position <= 6:
		return 70
	case position <= 10:
		return 60
	case position <= 15:
		return 40
	default:
		return 30
	}
}

// sample counts settled wins and losses over records matching the predicate
func (e *Estimator) sample(match func(*models.HistoricalRecord) bool) SignalStat {
	wins, losses := 0, 0
	for _, r := range e.records {
		if !match(r) {
			continue
		}
		switch r.Result {
		case models.BetResultWin:
			wins++
		case models.BetResultLoss:
			losses++
		}
	}
	return SignalStat{Confidence: wilsonConfidence(wins, losses), Wins: wins, Losses: losses}
}

// recentSettled returns up to limit settled games for the candidate team,
// newest first.
func (e *Estimator) recentSettled(c *models.CandidateBet, limit int) []*models.HistoricalRecord {
	var recent []*models.HistoricalRecord
	for _, r := range e.records {
		if sameTeam(r.Team, c.Team) && sameScope(r, c) && r.IsSettled() {
			recent = append(recent, r)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].EventDate.After(recent[j].EventDate)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// WinRate returns a team's raw win rate and sample size in the candidate's
// country+league. Used by the market ranker.
func (e *Estimator) WinRate(team, country, league string) (float64, int) {
	wins, losses := 0, 0
	for _, r := range e.records {
		if !sameTeam(r.Team, team) {
			continue
		}
		if models.NormalizeTeamName(r.Country) != models.NormalizeTeamName(country) ||
			models.NormalizeTeamName(r.League) != models.NormalizeTeamName(league) {
			continue
		}
		switch r.Result {
		case models.BetResultWin:
			wins++
		case models.BetResultLoss:
			losses++
		}
	}
	n := wins + losses
	if n == 0 {
		return 0, 0
	}
	return float64(wins) / float64(n), n
}

func sameTeam(a, b string) bool {
	return models.NormalizeTeamName(a) == models.NormalizeTeamName(b)
}

func sameScope(r *models.HistoricalRecord, c *models.CandidateBet) bool {
	return models.NormalizeTeamName(r.Country) == models.NormalizeTeamName(c.Country) &&
		models.NormalizeTeamName(r.League) == models.NormalizeTeamName(c.League)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
