package analysis

import (
	"fmt"
	"strings"

	"github.com/yourusername/bet-insight/internal/models"
)

// Classifier thresholds on the 0-100 scale
const (
	backThreshold  = 70.0
	hedgeThreshold = 40.0
)

// RecommendationBlacklisted is the categorical call for blacklisted teams
const RecommendationBlacklisted = "Avoid (Blacklisted)"

// Classification is the categorical call for one candidate
type Classification struct {
	Recommendation string
	Reasoning      string
}

// weakSignalLabels maps corpus-backed signals to the phrasing used in
// generated reasoning. Form and momentum are excluded: they have no
// win/loss sample to cite.
var weakSignalLabels = map[string]string{
	SignalTeam:     "team record",
	SignalLeague:   "league record",
	SignalOdds:     "record at these odds",
	SignalMatchup:  "head-to-head record",
	SignalPosition: "table position",
	SignalHomeAway: "home/away record",
}

// Classify maps a composite score onto a categorical recommendation.
// Blacklisted teams bypass the scorer entirely.
func Classify(c *models.CandidateBet, score float64, stats SignalStats, blacklist map[string]struct{}) Classification {
	if _, banned := blacklist[models.NormalizeTeamName(c.Team)]; banned {
		return Classification{
			Recommendation: RecommendationBlacklisted,
			Reasoning:      fmt.Sprintf("%s is blacklisted; analysis skipped", c.Team),
		}
	}

	switch {
	case score >= backThreshold:
		return Classification{
			Recommendation: directionalPick(c.Side),
			Reasoning:      fmt.Sprintf("Composite confidence %.1f supports a directional bet", score),
		}
	case score >= hedgeThreshold:
		return Classification{
			Recommendation: hedgePick(c.Side),
			Reasoning:      fmt.Sprintf("Composite confidence %.1f suggests covering the draw", score),
		}
	default:
		return Classification{
			Recommendation: "Avoid",
			Reasoning:      avoidReasoning(score, stats),
		}
	}
}

func directionalPick(side models.Side) string {
	switch side {
	case models.SideHome:
		return "Home Win"
	case models.SideAway:
		return "Away Win"
	default:
		return "Win"
	}
}

func hedgePick(side models.Side) string {
	switch side {
	case models.SideHome:
		return "Double Chance Home/Draw"
	case models.SideAway:
		return "Double Chance Away/Draw"
	default:
		return "Double Chance"
	}
}

// avoidReasoning builds a human-readable explanation from whichever
// underlying signals are weak, citing win rate and sample size. When no
// single signal stands out, fall back to a generic message.
func avoidReasoning(score float64, stats SignalStats) string {
	var clauses []string
	for _, name := range AllSignals {
		label, ok := weakSignalLabels[name]
		if !ok {
			continue
		}
		stat, ok := stats[name]
		if !ok || stat.Confidence >= hedgeThreshold {
			continue
		}
		if stat.SampleSize() > 0 {
			clauses = append(clauses, fmt.Sprintf("%s is weak (%.0f%% over %d settled bets)",
				label, stat.WinRate()*100, stat.SampleSize()))
		} else {
			clauses = append(clauses, fmt.Sprintf("%s scores %.0f with no supporting data", label, stat.Confidence))
		}
	}

	if len(clauses) == 0 {
		return fmt.Sprintf("Overall confidence %.1f is too low to back this selection", score)
	}
	return "Avoid: " + strings.Join(clauses, "; ")
}
