package models

import (
	"time"

	"github.com/google/uuid"
)

// ReconciliationState tracks a stored recommendation's join to real results
type ReconciliationState string

const (
	ReconciliationUnmatched ReconciliationState = "unmatched"
	ReconciliationPending   ReconciliationState = "pending"
	ReconciliationResolved  ReconciliationState = "resolved"
)

// OutcomeClass classifies the divergence between what the system
// recommended, what the user actually backed, and what happened.
type OutcomeClass string

const (
	OutcomeBothCorrect         OutcomeClass = "BothCorrect"
	OutcomeUserWonSystemWrong  OutcomeClass = "UserWonSystemWrong"
	OutcomeSystemRightUserLost OutcomeClass = "SystemRightUserLost"
	OutcomeBothWrong           OutcomeClass = "BothWrong"
)

// OutcomeReconciliation joins a stored recommendation with an observed
// result. Created once results are known; immutable afterwards apart from
// attaching the classification fields on resolution.
type OutcomeReconciliation struct {
	ID                 uuid.UUID           `db:"id" json:"id"`
	RecommendationID   uuid.UUID           `db:"recommendation_id" json:"recommendation_id" validate:"required"`
	BetslipID          uuid.UUID           `db:"betslip_id" json:"betslip_id"`
	GameID             uuid.UUID           `db:"game_id" json:"game_id"`
	ActualResult       BetResult           `db:"actual_result" json:"actual_result"`
	ActualHomeScore    *int                `db:"actual_home_score" json:"actual_home_score"`
	ActualAwayScore    *int                `db:"actual_away_score" json:"actual_away_score"`
	State              ReconciliationState `db:"state" json:"state"`
	Classification     OutcomeClass        `db:"classification" json:"analysis_type"`
	Insight            string              `db:"insight" json:"insight"`
	ConfidenceFailures map[string]int      `db:"confidence_failures" json:"confidence_failures"`
	CreatedAt          time.Time           `db:"created_at" json:"created_at"`
	ResolvedAt         *time.Time          `db:"resolved_at" json:"resolved_at"`
}

// IsResolved reports whether classification has been attached
func (o *OutcomeReconciliation) IsResolved() bool {
	return o.State == ReconciliationResolved && o.ResolvedAt != nil
}
