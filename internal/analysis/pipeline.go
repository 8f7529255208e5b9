package analysis

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/bet-insight/internal/models"
)

// Engine runs the full analysis pipeline for candidate bets over a fixed
// historical corpus. Stages run in a fixed order because each depends on
// the previous stage's output: estimator, allocator, scorer, classifier,
// then the market ranker and odds model. The engine holds no mutable
// state between calls; the returned Recommendation is the only output,
// and identical corpus plus candidate always yields identical results.
type Engine struct {
	corpus    []*models.HistoricalRecord
	estimator *Estimator
	profiles  *ProfileSet
	blacklist map[string]struct{}
	logger    *logrus.Logger
}

// NewEngine builds an engine over the corpus. Profiles and the estimator
// are constructed once and shared across candidates.
func NewEngine(corpus []*models.HistoricalRecord, blacklist []string, logger *logrus.Logger) *Engine {
	return NewEngineWithProfiles(corpus, blacklist, BuildProfiles(corpus), logger)
}

// NewEngineWithProfiles builds an engine reusing an already built profile
// set, letting callers cache profiles across batches over the same corpus.
func NewEngineWithProfiles(corpus []*models.HistoricalRecord, blacklist []string, profiles *ProfileSet, logger *logrus.Logger) *Engine {
	banned := make(map[string]struct{}, len(blacklist))
	for _, team := range blacklist {
		banned[models.NormalizeTeamName(team)] = struct{}{}
	}
	return &Engine{
		corpus:    corpus,
		estimator: NewEstimator(corpus),
		profiles:  profiles,
		blacklist: banned,
		logger:    logger,
	}
}

// Profiles exposes the engine's scoring-pattern aggregates
func (e *Engine) Profiles() *ProfileSet {
	return e.profiles
}

// AnalyzeCandidate runs one candidate through the pipeline and returns an
// immutable recommendation. CreatedAt is left zero; the persistence layer
// stamps it, keeping engine output deterministic.
func (e *Engine) AnalyzeCandidate(c *models.CandidateBet) *models.Recommendation {
	c.Normalize()

	h2h := HeadToHead(e.corpus, c.HomeTeam, c.AwayTeam, c.Country, c.League)
	breakdown, stats := e.estimator.EstimateSignals(c, h2h)
	weights := AllocateWeights(breakdown, c.MarketType)
	score := CompositeScore(breakdown, weights)
	classification := Classify(c, score, stats, e.blacklist)

	homeProfile := e.profiles.ProfileFor(c.HomeTeam, c.Country, c.League)
	awayProfile := e.profiles.ProfileFor(c.AwayTeam, c.Country, c.League)
	triplet := RankMarkets(c, e.estimator, h2h, homeProfile, awayProfile)

	var probabilities *models.OutcomeProbabilities
	if c.HasMatchOdds() {
		probabilities = BuildOutcomeProbabilities(*c.HomeOdds, *c.DrawOdds, *c.AwayOdds)
	}

	rec := &models.Recommendation{
		ID:                    uuid.NewSHA1(uuid.NameSpaceOID, []byte(c.BetslipID.String()+"|"+c.ID.String())),
		BetslipID:             c.BetslipID,
		GameID:                GameID(c.EventDate, c.HomeTeam, c.AwayTeam, c.Country, c.League),
		Team:                  c.Team,
		HomeTeam:              c.HomeTeam,
		AwayTeam:              c.AwayTeam,
		Country:               c.Country,
		League:                c.League,
		MarketType:            c.MarketType,
		Selection:             c.Selection,
		Odds:                  c.Odds,
		Side:                  c.Side,
		EventDate:             c.EventDate,
		ConfidenceScore:       score,
		ConfidenceBreakdown:   breakdown,
		Weights:               weights,
		Recommendation:        classification.Recommendation,
		Reasoning:             classification.Reasoning,
		Probabilities:         probabilities,
		ScoringRecommendation: ScoringRecommendation(homeProfile, awayProfile),
		Triplet:               triplet,
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"team":           c.Team,
			"game_id":        rec.GameID,
			"confidence":     score,
			"recommendation": rec.Recommendation,
		}).Debug("Candidate analyzed")
	}
	return rec
}
