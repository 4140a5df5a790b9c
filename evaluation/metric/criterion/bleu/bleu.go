//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

// Package bleu defines BLEU scoring criteria.
package bleu

import (
	"context"
	"fmt"

	ibleu "trpc.group/trpc-go/trpc-bleu-go/evaluation/internal/bleu"
)

// Tokenizer tokenizes text into a list of tokens.
type Tokenizer = ibleu.Tokenizer

// Scorer computes corpus BLEU with a fixed configuration.
type Scorer = ibleu.Scorer

// Result holds a BLEU score and the values it was combined from.
type Result = ibleu.Result

// Precision is the corpus-level modified precision of one n-gram order.
type Precision = ibleu.Precision

// MisalignedCorpusError describes which reference corpus is misaligned.
type MisalignedCorpusError = ibleu.MisalignedCorpusError

// DefaultMaxOrder is the n-gram order used when MaxOrder is unset.
const DefaultMaxOrder = ibleu.DefaultMaxOrder

// Scoring errors, matched with errors.Is.
var (
	ErrMisalignedCorpus      = ibleu.ErrMisalignedCorpus
	ErrDegenerateDenominator = ibleu.ErrDegenerateDenominator
	ErrEmptyCandidateCorpus  = ibleu.ErrEmptyCandidateCorpus
	ErrNoReferences          = ibleu.ErrNoReferences
	ErrInvalidOrder          = ibleu.ErrInvalidOrder
	ErrInvalidWeights        = ibleu.ErrInvalidWeights
)

// BleuCriterion configures BLEU scoring for evaluation.
type BleuCriterion struct {
	// Ignore skips BLEU scoring when true.
	Ignore bool `json:"ignore,omitempty"`
	// MaxOrder is the highest n-gram order and defaults to 4 when unset.
	MaxOrder int `json:"maxOrder,omitempty"`
	// Weights holds one weight per order; uniform 1/MaxOrder when empty.
	Weights []float64 `json:"weights,omitempty"`
	// Threshold is the minimum BLEU score required to pass.
	Threshold float64 `json:"threshold,omitempty"`
	// Tokenizer overrides the built-in lowercase/whitespace tokenization when provided.
	Tokenizer Tokenizer `json:"-"`
}

// MatchResult holds BLEU scoring output for a single comparison.
type MatchResult struct {
	// MaxOrder is the highest n-gram order used.
	MaxOrder int
	// Value is the BLEU score.
	Value float64
	// Result holds brevity penalty and per-order precisions; nil when ignored.
	Result *Result
	// Passed reports whether Value meets the configured threshold.
	Passed bool
}

// Reason formats the scoring output for display.
func (r MatchResult) Reason() string {
	if r.Result == nil {
		return fmt.Sprintf("bleu-%d=%.6f", r.MaxOrder, r.Value)
	}
	return fmt.Sprintf("bleu-%d=%.6f bp=%.6f c=%d r=%d",
		r.MaxOrder, r.Value, r.Result.BrevityPenalty, r.Result.CandidateLength, r.Result.ReferenceLength)
}

// NewScorer builds a Scorer from the criterion settings.
func (c *BleuCriterion) NewScorer() (*Scorer, error) {
	if c == nil {
		return nil, fmt.Errorf("bleu criterion is nil")
	}
	maxOrder := c.MaxOrder
	if maxOrder == 0 {
		maxOrder = DefaultMaxOrder
	}
	opt := []ibleu.Option{ibleu.WithMaxOrder(maxOrder)}
	if len(c.Weights) > 0 {
		opt = append(opt, ibleu.WithWeights(c.Weights...))
	}
	if c.Tokenizer != nil {
		opt = append(opt, ibleu.WithTokenizer(c.Tokenizer))
	}
	return ibleu.New(opt...)
}

// Match scores prediction against target as a one-sentence corpus.
// Line breaks inside either text count as whitespace.
func (c *BleuCriterion) Match(ctx context.Context, target, prediction string) (*MatchResult, error) {
	return c.MatchCorpus(ctx, []string{prediction}, [][]string{{target}})
}

// MatchCorpus scores candidate lines against line-aligned reference sets.
func (c *BleuCriterion) MatchCorpus(ctx context.Context, candidates []string, references [][]string) (*MatchResult, error) {
	if c == nil {
		return nil, fmt.Errorf("bleu criterion is nil")
	}
	if c.Ignore {
		return &MatchResult{MaxOrder: c.MaxOrder, Value: 1.0, Passed: true}, nil
	}
	scorer, err := c.NewScorer()
	if err != nil {
		return nil, err
	}
	result, err := scorer.Score(ctx, candidates, references...)
	if err != nil {
		return nil, err
	}
	return &MatchResult{
		MaxOrder: scorer.MaxOrder(),
		Value:    result.Score,
		Result:   result,
		Passed:   result.Score >= c.Threshold,
	}, nil
}
