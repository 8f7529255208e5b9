package analysis

import (
	"math"
	"testing"
)

func TestBuildOutcomeProbabilitiesEqualOdds(t *testing.T) {
	probs := BuildOutcomeProbabilities(3.0, 3.0, 3.0)
	if probs == nil {
		t.Fatal("expected a model for valid odds")
	}

	if math.Abs(probs.Home-probs.Draw) > 0.1 || math.Abs(probs.Draw-probs.Away) > 0.1 {
		t.Fatalf("equal odds must yield equal probabilities, got %.2f/%.2f/%.2f", probs.Home, probs.Draw, probs.Away)
	}
	sum := probs.Home + probs.Draw + probs.Away
	if math.Abs(sum-100) > 0.2 {
		t.Fatalf("normalized probabilities sum to %.2f, want 100", sum)
	}
}

func TestBuildOutcomeProbabilitiesRemovesOverround(t *testing.T) {
	// A typical book: implied probabilities sum well above 1
	probs := BuildOutcomeProbabilities(1.9, 3.4, 4.2)
	if probs == nil {
		t.Fatal("expected a model for valid odds")
	}
	sum := probs.Home + probs.Draw + probs.Away
	if math.Abs(sum-100) > 0.2 {
		t.Fatalf("overround not removed, probabilities sum to %.2f", sum)
	}
	if probs.Home <= probs.Away {
		t.Fatalf("shorter home odds must imply higher probability: home %.2f vs away %.2f", probs.Home, probs.Away)
	}
}

func TestBuildOutcomeProbabilitiesInvalidOdds(t *testing.T) {
	cases := [][3]float64{
		{0, 3.2, 2.1},
		{1.9, 0, 2.1},
		{1.9, 3.2, 0},
		{-1.5, 3.2, 2.1},
		{math.NaN(), 3.2, 2.1},
	}
	for _, odds := range cases {
		if got := BuildOutcomeProbabilities(odds[0], odds[1], odds[2]); got != nil {
			t.Fatalf("odds %v must yield nil model", odds)
		}
	}
}

func TestLambdaSplitFollowsStrength(t *testing.T) {
	probs := BuildOutcomeProbabilities(1.5, 4.0, 6.0)
	if probs == nil {
		t.Fatal("expected a model")
	}
	if probs.LambdaHome <= probs.LambdaAway {
		t.Fatalf("stronger home side must take more of the goal budget: %.2f vs %.2f", probs.LambdaHome, probs.LambdaAway)
	}
	if math.Abs(probs.LambdaHome+probs.LambdaAway-totalGoalBudget) > 1e-9 {
		t.Fatalf("lambdas must sum to the goal budget, got %.4f", probs.LambdaHome+probs.LambdaAway)
	}
}

func TestTopScorelines(t *testing.T) {
	probs := BuildOutcomeProbabilities(2.0, 3.3, 3.8)
	if probs == nil {
		t.Fatal("expected a model")
	}
	if len(probs.TopScorelines) != topScorelines {
		t.Fatalf("expected %d scorelines, got %d", topScorelines, len(probs.TopScorelines))
	}
	for i := 1; i < len(probs.TopScorelines); i++ {
		if probs.TopScorelines[i].Probability > probs.TopScorelines[i-1].Probability {
			t.Fatal("scorelines must be sorted by descending probability")
		}
	}
}

func TestPoissonPMF(t *testing.T) {
	// P(X=0) for lambda=1 is e^-1
	if got := poissonPMF(1, 0); math.Abs(got-math.Exp(-1)) > 1e-12 {
		t.Fatalf("poissonPMF(1, 0) = %.6f, want e^-1", got)
	}
	total := 0.0
	for k := 0; k <= 30; k++ {
		total += poissonPMF(1.3, k)
	}
	if math.Abs(total-1) > 1e-9 {
		t.Fatalf("pmf mass sums to %.9f, want 1", total)
	}
}
