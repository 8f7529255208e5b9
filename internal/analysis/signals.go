// Package analysis implements the confidence and recommendation engine:
// per-signal Wilson-score estimation over the historical corpus, adaptive
// weight allocation, composite scoring, market ranking, an odds-derived
// scoreline model, and outcome reconciliation. Everything in this package
// is pure and deterministic over in-memory collections.
package analysis

// Signal names used as keys in ConfidenceBreakdown and WeightVector
const (
	SignalTeam       = "team"
	SignalLeague     = "league"
	SignalOdds       = "odds"
	SignalMatchup    = "matchup"
	SignalPosition   = "position"
	SignalHomeAway   = "homeAway"
	SignalRecentForm = "recentForm"
	SignalMomentum   = "momentum"
)

// AllSignals lists every signal the estimator produces
var AllSignals = []string{
	SignalTeam,
	SignalLeague,
	SignalOdds,
	SignalMatchup,
	SignalPosition,
	SignalHomeAway,
	SignalRecentForm,
	SignalMomentum,
}

// SignalStat carries the sample behind one signal's confidence score,
// kept so the classifier can cite win rates and sample sizes.
type SignalStat struct {
	Confidence float64
	Wins       int
	Losses     int
}

// SampleSize returns the number of settled wagers behind the signal
func (s SignalStat) SampleSize() int {
	return s.Wins + s.Losses
}

// WinRate returns the raw win proportion, 0 when the sample is empty
func (s SignalStat) WinRate() float64 {
	n := s.SampleSize()
	if n == 0 {
		return 0
	}
	return float64(s.Wins) / float64(n)
}

// SignalStats maps signal name to its backing sample
type SignalStats map[string]SignalStat
