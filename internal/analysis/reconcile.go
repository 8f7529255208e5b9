package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/bet-insight/internal/models"
)

// highConfidenceThreshold marks signals whose failure on a wrong outcome
// gets tallied for the operator feedback loop.
const highConfidenceThreshold = 70.0

// NewUnmatchedReconciliation records an observed result that matched no
// stored recommendation. Surfaced to the operator, never fatal.
func NewUnmatchedReconciliation(result *models.HistoricalRecord) *models.OutcomeReconciliation {
	return &models.OutcomeReconciliation{
		ID:        uuid.New(),
		GameID:    GameID(result.EventDate, result.HomeTeam, result.AwayTeam, result.Country, result.League),
		BetslipID: result.BetslipID,
		State:     models.ReconciliationUnmatched,
		Insight:   "Observed result has no stored recommendation",
		CreatedAt: time.Now(),
	}
}

// NewPendingReconciliation joins a recommendation to a game whose result
// is not yet settled.
func NewPendingReconciliation(rec *models.Recommendation) *models.OutcomeReconciliation {
	return &models.OutcomeReconciliation{
		ID:               uuid.New(),
		RecommendationID: rec.ID,
		BetslipID:        rec.BetslipID,
		GameID:           rec.GameID,
		ActualResult:     models.BetResultPending,
		State:            models.ReconciliationPending,
		CreatedAt:        time.Now(),
	}
}

// Resolve joins a stored recommendation with the observed result and
// classifies the divergence. Classification derives from two independent
// booleans: did the user's actual selection win, and did the system's
// recommendation match what the user actually selected.
func Resolve(rec *models.Recommendation, result *models.HistoricalRecord) (*models.OutcomeReconciliation, error) {
	if !result.IsSettled() {
		return nil, fmt.Errorf("cannot resolve against pending result for game %s vs %s", result.HomeTeam, result.AwayTeam)
	}

	userWon := result.Result == models.BetResultWin
	systemAgreed := recommendationMatchesSelection(rec)
	classification := classifyOutcome(userWon, systemAgreed)

	now := time.Now()
	recon := &models.OutcomeReconciliation{
		ID:               uuid.New(),
		RecommendationID: rec.ID,
		BetslipID:        rec.BetslipID,
		GameID:           rec.GameID,
		ActualResult:     result.Result,
		ActualHomeScore:  result.HomeScore,
		ActualAwayScore:  result.AwayScore,
		State:            models.ReconciliationResolved,
		Classification:   classification,
		Insight:          outcomeInsight(classification, rec),
		ResolvedAt:       &now,
		CreatedAt:        now,
	}

	// The system was wrong whenever agreement and outcome diverge: it
	// either backed a loser or advised against a winner.
	if systemAgreed != userWon {
		recon.ConfidenceFailures = confidenceFailures(rec.ConfidenceBreakdown)
	}
	return recon, nil
}

// classifyOutcome maps the two booleans onto exactly one class
func classifyOutcome(userWon, systemAgreed bool) models.OutcomeClass {
	switch {
	case userWon && systemAgreed:
		return models.OutcomeBothCorrect
	case userWon && !systemAgreed:
		return models.OutcomeUserWonSystemWrong
	case !userWon && !systemAgreed:
		return models.OutcomeSystemRightUserLost
	default:
		return models.OutcomeBothWrong
	}
}

// recommendationMatchesSelection checks whether the system's call covered
// the selection the user actually placed. A directional pick matches the
// same side; a double-chance hedge covers its side as well.
func recommendationMatchesSelection(rec *models.Recommendation) bool {
	call := strings.ToLower(rec.Recommendation)
	if strings.Contains(call, "avoid") {
		return false
	}

	switch rec.Side {
	case models.SideHome:
		return strings.Contains(call, "home") || call == "win"
	case models.SideAway:
		return strings.Contains(call, "away") || call == "win"
	default:
		return strings.Contains(call, "win") || strings.Contains(call, "double chance")
	}
}

// confidenceFailures tallies every signal that scored high on an outcome
// the system got wrong. The feedback loop that shows an operator which
// signal systematically overstates certainty.
func confidenceFailures(breakdown models.ConfidenceBreakdown) map[string]int {
	failures := make(map[string]int)
	for signal, confidence := range breakdown {
		if confidence >= highConfidenceThreshold {
			failures[signal]++
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return failures
}

func outcomeInsight(class models.OutcomeClass, rec *models.Recommendation) string {
	switch class {
	case models.OutcomeBothCorrect:
		return fmt.Sprintf("Recommendation %q confirmed by the result", rec.Recommendation)
	case models.OutcomeUserWonSystemWrong:
		return fmt.Sprintf("Selection won despite the system advising %q; review which signals dragged confidence down", rec.Recommendation)
	case models.OutcomeSystemRightUserLost:
		return fmt.Sprintf("System advised %q and the selection lost; the caution was justified", rec.Recommendation)
	default:
		return fmt.Sprintf("Recommendation %q failed; confidence factors flagged for review", rec.Recommendation)
	}
}
