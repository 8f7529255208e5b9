// Package metrics provides the centralized Prometheus metrics registry for the engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bet_insight",
		Name:      "analyses_total",
		Help:      "Total number of candidate bets analyzed",
	})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bet_insight",
		Name:      "recommendations_total",
		Help:      "Total recommendations produced, by category",
	}, []string{"category"})
	BlacklistHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bet_insight",
		Name:      "blacklist_hits_total",
		Help:      "Total candidates rejected by the blacklist",
	})
	ReconciliationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bet_insight",
		Name:      "reconciliations_total",
		Help:      "Total resolved reconciliations, by outcome classification",
	}, []string{"classification"})
	ConfidenceFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bet_insight",
		Name:      "confidence_failures_total",
		Help:      "High-confidence signals that backed a wrong call, by signal",
	}, []string{"signal"})
	UnmatchedResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bet_insight",
		Name:      "unmatched_results_total",
		Help:      "Settled results with no stored recommendation",
	})
	ResultsFeedMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bet_insight",
		Name:      "results_feed_messages_total",
		Help:      "Total messages received on the settled-results feed",
	})
	ResultsFeedReconnectsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bet_insight",
		Name:      "results_feed_reconnects_total",
		Help:      "Total reconnect attempts on the settled-results feed",
	})
	StandingsSyncErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bet_insight",
		Name:      "standings_sync_errors_total",
		Help:      "Total failed standings sync attempts",
	})
)

// Gauge metrics
var (
	ProfileCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bet_insight",
		Name:      "profile_cache_hit_ratio",
		Help:      "Hit ratio of the scoring-profile cache",
	})
	CorpusSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bet_insight",
		Name:      "corpus_size",
		Help:      "Number of historical records loaded for analysis",
	})
	PendingReconciliations = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bet_insight",
		Name:      "pending_reconciliations",
		Help:      "Reconciliations still waiting on a settled result",
	})
)

// Histogram metrics
var (
	CompositeScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bet_insight",
		Name:      "composite_score",
		Help:      "Distribution of composite confidence scores",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bet_insight",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of single candidate analyses in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	BatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bet_insight",
		Name:      "batch_duration_seconds",
		Help:      "Duration of analysis batches in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60},
	})
	StandingsSyncDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bet_insight",
		Name:      "standings_sync_duration_seconds",
		Help:      "Duration of standings sync runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysesTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(BlacklistHitsTotal)
		registry.MustRegister(ReconciliationsTotal)
		registry.MustRegister(ConfidenceFailuresTotal)
		registry.MustRegister(UnmatchedResultsTotal)
		registry.MustRegister(ResultsFeedMessagesTotal)
		registry.MustRegister(ResultsFeedReconnectsTotal)
		registry.MustRegister(StandingsSyncErrorsTotal)

		registry.MustRegister(ProfileCacheHitRatio)
		registry.MustRegister(CorpusSize)
		registry.MustRegister(PendingReconciliations)

		registry.MustRegister(CompositeScore)
		registry.MustRegister(AnalysisDuration)
		registry.MustRegister(BatchDuration)
		registry.MustRegister(StandingsSyncDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysis records one completed candidate analysis.
func RecordAnalysis(score float64, durationSeconds float64) {
	AnalysesTotal.Inc()
	CompositeScore.Observe(score)
	AnalysisDuration.Observe(durationSeconds)
}

// RecordRecommendation records a recommendation by its category.
func RecordRecommendation(category string) {
	RecommendationsTotal.WithLabelValues(category).Inc()
}

// RecordReconciliation records a resolved reconciliation by classification.
func RecordReconciliation(classification string) {
	ReconciliationsTotal.WithLabelValues(classification).Inc()
}

// RecordConfidenceFailures tallies failed high-confidence signals.
func RecordConfidenceFailures(failures map[string]int) {
	for signal, count := range failures {
		ConfidenceFailuresTotal.WithLabelValues(signal).Add(float64(count))
	}
}

// RecordBatch records a completed analysis batch.
func RecordBatch(durationSeconds float64) {
	BatchDuration.Observe(durationSeconds)
}
