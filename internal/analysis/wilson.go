package analysis

import "math"

// Score bounds shared by every signal computation
const (
	MinScore     = 10.0
	MaxScore     = 100.0
	NeutralScore = 50.0
)

// wilsonZ is the z-value for a 95% interval
const wilsonZ = 1.96

// wilsonConfidence estimates a 0-100 confidence from a win/loss sample
// using a Wilson-score interval with an extra conservative shrink of
// half a standard error. An empty sample is no evidence either way and
// returns the neutral prior exactly.
func wilsonConfidence(wins, losses int) float64 {
	n := wins + losses
	if n == 0 {
		return NeutralScore
	}

	nf := float64(n)
	p := float64(wins) / nf
	z := wilsonZ

	center := p + z*z/(2*nf) - z*math.Sqrt((p*(1-p)+z*z/(4*nf))/nf)
	center /= 1 + z*z/nf

	confidence := center - 0.5*math.Sqrt(p*(1-p)/nf)
	return clampScore(confidence * 100)
}

// clampScore bounds a score to [MinScore, MaxScore]
func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return NeutralScore
	}
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// round1 rounds to one decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
