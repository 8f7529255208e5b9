package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestEngineLoggerCandidateAnalyzed(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogCandidateAnalyzed(
		"game_001",
		"Arsenal",
		"Chelsea",
		72.5,
		"Home Win",
		12.0,
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "game_001", logEntry["game_id"])
	assert.Equal(t, "engine", logEntry["component"])
	assert.Equal(t, 72.5, logEntry["confidence_score"])
}

func TestEngineLoggerBlacklistHit(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogBlacklistHit("game_001", "Shady FC")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "blacklist_hit", logEntry["event_type"])
	assert.Equal(t, "Shady FC", logEntry["team"])
}

func TestEngineLoggerBatchCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogBatchCompleted(25, 6, 11, 8, 340.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(25), logEntry["candidates"])
	assert.Equal(t, float64(6), logEntry["backed"])
}

func TestReconciliationLoggerOutcomeResolved(t *testing.T) {
	log, buf := setupTestLogger()
	reconLogger := NewReconciliationLogger(log)

	reconLogger.LogOutcomeResolved(
		"game_001",
		"rec_123",
		"BothCorrect",
		81.0,
		"win",
		time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC),
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "rec_123", logEntry["recommendation_id"])
	assert.Equal(t, "BothCorrect", logEntry["classification"])
	assert.Equal(t, "reconciliation", logEntry["component"])
}

func TestReconciliationLoggerUnmatchedResult(t *testing.T) {
	log, buf := setupTestLogger()
	reconLogger := NewReconciliationLogger(log)

	reconLogger.LogUnmatchedResult("game_002", "Leeds", "Everton")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "unmatched_result", logEntry["event_type"])
}

func TestLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogCandidateAnalyzed("game_001", "Arsenal", "Chelsea", 72.5, "Home Win", 12.0)

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("nonsense")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func BenchmarkEngineLoggerCandidateAnalyzed(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	engineLogger := NewEngineLogger(log)

	for i := 0; i < b.N; i++ {
		engineLogger.LogCandidateAnalyzed("game_001", "Arsenal", "Chelsea", 72.5, "Home Win", 12.0)
	}
}
