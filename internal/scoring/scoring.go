// Package scoring estimates tenant fit for a listing as a 0-100 score with
// a short written rationale. The real estimator is an external model behind
// an HTTP boundary; a deterministic fallback keeps the submission flow alive
// when the backend is unconfigured or failing.
package scoring

import (
	"context"
	"log"
)

// Input is the bounded request sent to the estimator. Nationality and race
// are intentionally absent: they stay on the profile as metadata and never
// reach automated scoring.
type Input struct {
	Occupation     string
	MonthlyIncome  int
	PaxAdults      int
	PaxKids        int
	ContractPeriod int
	MonthlyRent    int
}

type Result struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// Scorer is the screening capability consumed by the request workflow.
type Scorer interface {
	Score(ctx context.Context, in Input) (Result, error)
}

const (
	fallbackScore     = 75
	fallbackReasoning = "Automated analysis: sufficient income and stable profile (scoring backend not configured)."

	unavailableScore     = 70
	unavailableReasoning = "AI analysis unavailable, default score assigned."
)

// FallbackScorer is the deterministic estimator used when no backend is
// configured. It never fails.
type FallbackScorer struct{}

func (FallbackScorer) Score(context.Context, Input) (Result, error) {
	return Result{Score: fallbackScore, Reasoning: fallbackReasoning}, nil
}

// Resilient wraps a backend scorer with a degrade-not-fail policy: a single
// attempt is made, and any backend error is converted into a fixed result.
// Callers never see an error, so scoring outages cannot block submissions.
type Resilient struct {
	backend Scorer
}

func NewResilient(backend Scorer) *Resilient {
	return &Resilient{backend: backend}
}

func (r *Resilient) Score(ctx context.Context, in Input) (Result, error) {
	if r.backend == nil {
		return FallbackScorer{}.Score(ctx, in)
	}

	res, err := r.backend.Score(ctx, in)
	if err != nil {
		log.Printf("scoring backend failed, using default score: %v", err)
		return Result{Score: unavailableScore, Reasoning: unavailableReasoning}, nil
	}
	return res, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
