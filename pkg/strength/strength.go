// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package strength estimates how strong a password candidate is. Evaluation is
// a pure function of the candidate and the estimator settings: no state is
// kept between calls and results for the same input are always identical.
package strength

import "unicode/utf8"

const (
	maxBaseScore  = 40
	perRuneScore  = 3
	perClassScore = 12
	commonPenalty = 25
	lengthPenalty = 10
	minScore      = 0
	maxScore      = 100
)

// Result is the outcome of a single evaluation.
type Result struct {
	Score    int      `json:"score"`
	Label    Label    `json:"label"`
	Criteria Criteria `json:"criteria"`
	// CrackTimeSeconds is nil for an empty candidate and may be +Inf.
	CrackTimeSeconds *float64 `json:"-"`
	Tips             []string `json:"tips"`
}

// CrackTimeDisplay renders the crack time estimate for humans.
func (r Result) CrackTimeDisplay() string {
	if r.CrackTimeSeconds == nil {
		return Placeholder
	}
	return FormatDuration(*r.CrackTimeSeconds)
}

type Option func(*Estimator)

// WithGuessRate sets the assumed attacker guesses per second. Non-positive
// values keep DefaultGuessRate.
func WithGuessRate(rate float64) Option {
	return func(e *Estimator) {
		if rate > 0 {
			e.guessRate = rate
		}
	}
}

type Estimator struct {
	guessRate float64
}

func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{guessRate: DefaultGuessRate}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Estimator) GuessRate() float64 {
	return e.guessRate
}

// Evaluate scores candidate and derives its label, criteria, crack time and
// tips.
func (e *Estimator) Evaluate(candidate string) Result {
	criteria := CheckCriteria(candidate)
	score := Score(candidate, criteria)

	return Result{
		Score:            score,
		Label:            LabelFor(score),
		Criteria:         criteria,
		CrackTimeSeconds: CrackTimeSeconds(candidate, e.guessRate),
		Tips:             Tips(criteria),
	}
}

var defaultEstimator = NewEstimator()

// Evaluate uses an estimator with DefaultGuessRate.
func Evaluate(candidate string) Result {
	return defaultEstimator.Evaluate(candidate)
}

// Score computes the 0-100 score of candidate given its criteria.
func Score(candidate string, c Criteria) int {
	if candidate == "" {
		return minScore
	}

	length := utf8.RuneCountInString(candidate)
	score := length * perRuneScore
	if score > maxBaseScore {
		score = maxBaseScore
	}

	score += c.Classes() * perClassScore

	if !c.Uncommon {
		score -= commonPenalty
	}
	if length < MinLength {
		score -= lengthPenalty
	}

	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
