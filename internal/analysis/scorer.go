package analysis

import "github.com/yourusername/bet-insight/internal/models"

// CompositeScore collapses the breakdown into a single 0-100 confidence
// via the weighted sum, rounded to one decimal. Summation follows the
// fixed AllSignals order so the same inputs always produce the same
// float result, bit for bit.
func CompositeScore(breakdown models.ConfidenceBreakdown, weights models.WeightVector) float64 {
	score := 0.0
	for _, name := range AllSignals {
		conf, ok := breakdown[name]
		if !ok {
			continue
		}
		score += conf * weights[name]
	}
	return clampScore(round1(score))
}
