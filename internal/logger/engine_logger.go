// Package logger provides engine-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// EngineLogger provides dedicated logging for confidence engine operations.
type EngineLogger struct {
	*logrus.Entry
}

// NewEngineLogger creates a new engine logger.
func NewEngineLogger(baseLogger *logrus.Logger) *EngineLogger {
	return &EngineLogger{
		Entry: baseLogger.WithField("component", "engine"),
	}
}

// LogCandidateAnalyzed logs one analyzed candidate bet.
func (el *EngineLogger) LogCandidateAnalyzed(gameID, team, opponent string, confidence float64, recommendation string, durationMs float64) {
	el.WithFields(logrus.Fields{
		"game_id":              gameID,
		"team":                 team,
		"opponent":             opponent,
		"confidence_score":     confidence,
		"recommendation":       recommendation,
		"analysis_duration_ms": durationMs,
	}).Info("Candidate analysis completed")
}

// LogWeakSignals logs which signals were shrunk during weight allocation.
func (el *EngineLogger) LogWeakSignals(gameID string, weakSignals []string) {
	el.WithFields(logrus.Fields{
		"game_id":      gameID,
		"weak_signals": weakSignals,
	}).Debug("Weak signals reweighted toward anchors")
}

// LogBlacklistHit logs a candidate rejected by the blacklist.
func (el *EngineLogger) LogBlacklistHit(gameID, team string) {
	el.WithFields(logrus.Fields{
		"game_id":    gameID,
		"team":       team,
		"event_type": "blacklist_hit",
	}).Warn("Candidate team is blacklisted")
}

// LogBatchCompleted logs a finished analysis batch.
func (el *EngineLogger) LogBatchCompleted(candidates, backed, hedged, avoided int, durationMs float64) {
	el.WithFields(logrus.Fields{
		"candidates":        candidates,
		"backed":            backed,
		"hedged":            hedged,
		"avoided":           avoided,
		"batch_duration_ms": durationMs,
	}).Info("Analysis batch completed")
}

// LogProfileCacheMiss logs a scoring-profile rebuild from the corpus.
func (el *EngineLogger) LogProfileCacheMiss(corpusSize int) {
	el.WithFields(logrus.Fields{
		"corpus_size": corpusSize,
	}).Debug("Scoring profiles rebuilt")
}
