// Package logger provides reconciliation audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ReconciliationLogger provides dedicated logging for outcome reconciliation.
type ReconciliationLogger struct {
	*logrus.Entry
}

// NewReconciliationLogger creates a new reconciliation logger.
func NewReconciliationLogger(baseLogger *logrus.Logger) *ReconciliationLogger {
	return &ReconciliationLogger{
		Entry: baseLogger.WithField("component", "reconciliation"),
	}
}

// LogOutcomeResolved logs a recommendation reconciled against a settled result.
func (rl *ReconciliationLogger) LogOutcomeResolved(gameID, recommendationID, classification string, confidence float64, userResult string, resolvedAt time.Time) {
	rl.WithFields(logrus.Fields{
		"game_id":           gameID,
		"recommendation_id": recommendationID,
		"classification":    classification,
		"confidence_score":  confidence,
		"user_result":       userResult,
		"resolved_at":       resolvedAt.Unix(),
	}).Info("Outcome reconciliation resolved")
}

// LogUnmatchedResult logs a settled result with no stored recommendation.
func (rl *ReconciliationLogger) LogUnmatchedResult(gameID, team, opponent string) {
	rl.WithFields(logrus.Fields{
		"game_id":    gameID,
		"team":       team,
		"opponent":   opponent,
		"event_type": "unmatched_result",
	}).Warn("Settled result has no matching recommendation")
}

// LogConfidenceFailures logs which high-confidence signals backed a wrong call.
func (rl *ReconciliationLogger) LogConfidenceFailures(gameID string, failures map[string]int) {
	rl.WithFields(logrus.Fields{
		"game_id":             gameID,
		"confidence_failures": failures,
	}).Warn("High-confidence signals failed on a wrong call")
}

// LogSweepCompleted logs a finished reconciliation sweep.
func (rl *ReconciliationLogger) LogSweepCompleted(resolved, unmatched, stillPending int, durationMs float64) {
	rl.WithFields(logrus.Fields{
		"resolved":          resolved,
		"unmatched":         unmatched,
		"still_pending":     stillPending,
		"sweep_duration_ms": durationMs,
	}).Info("Reconciliation sweep completed")
}
