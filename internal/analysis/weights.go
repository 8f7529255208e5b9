package analysis

import "github.com/yourusername/bet-insight/internal/models"

// Weight allocation constants. The base vector intentionally sums to
// slightly more than 1; the allocator always renormalizes as its final
// step, after every conditional adjustment has run.
const (
	weakSignalThreshold = 30.0
	weakSignalShrink    = 0.55
)

// BaseWeights returns the starting weight vector before any adjustment
func BaseWeights() models.WeightVector {
	return models.WeightVector{
		SignalTeam:       0.20,
		SignalRecentForm: 0.15,
		SignalMomentum:   0.15,
		SignalLeague:     0.15,
		SignalOdds:       0.15,
		SignalMatchup:    0.15,
		SignalPosition:   0.10,
		SignalHomeAway:   0.05,
	}
}

// AllocateWeights adapts the base vector to the candidate's breakdown and
// market type. Signals with weak confidence lose just under half their
// weight, with the freed mass redistributed proportionally onto the three
// anchor signals (team, league, odds). Over/Under markets lean harder on
// odds and league history than on the team's own win record.
func AllocateWeights(breakdown models.ConfidenceBreakdown, marketType models.MarketType) models.WeightVector {
	weights := BaseWeights()

	anchors := []string{SignalTeam, SignalLeague, SignalOdds}
	for _, name := range AllSignals {
		conf, ok := breakdown[name]
		if !ok || conf >= weakSignalThreshold {
			continue
		}
		freed := weights[name] * (1 - weakSignalShrink)
		weights[name] *= weakSignalShrink

		anchorTotal := 0.0
		for _, a := range anchors {
			anchorTotal += weights[a]
		}
		if anchorTotal > 0 {
			for _, a := range anchors {
				weights[a] += freed * weights[a] / anchorTotal
			}
		}
	}

	if marketType == models.MarketTypeOverUnder {
		weights[SignalOdds] *= 1.3
		weights[SignalLeague] *= 1.2
		weights[SignalTeam] *= 0.7
	}

	normalize(weights)
	return weights
}

// WeakSignals lists the signals whose confidence fell below the
// reweighting threshold, in AllSignals order.
func WeakSignals(breakdown models.ConfidenceBreakdown) []string {
	var weak []string
	for _, name := range AllSignals {
		if conf, ok := breakdown[name]; ok && conf < weakSignalThreshold {
			weak = append(weak, name)
		}
	}
	return weak
}

// normalize rescales the vector so weights sum to exactly 1. The total
// accumulates in AllSignals order to keep the result reproducible.
func normalize(weights models.WeightVector) {
	total := 0.0
	for _, name := range AllSignals {
		total += weights[name]
	}
	if total == 0 {
		return
	}
	for _, name := range AllSignals {
		weights[name] /= total
	}
}
