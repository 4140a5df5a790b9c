//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"context"
	"fmt"

	"trpc.group/trpc-go/trpc-bleu-go/log"
	"trpc.group/trpc-go/trpc-bleu-go/telemetry"
)

// Scorer computes corpus BLEU with a fixed configuration.
// A Scorer holds no per-call state and is safe for concurrent use.
type Scorer struct {
	maxOrder  int
	weights   []float64
	tokenizer Tokenizer
}

// New validates the options and returns a Scorer.
func New(opt ...Option) (*Scorer, error) {
	opts := newOptions(opt...)
	if err := opts.validate(); err != nil {
		return nil, err
	}
	tok := opts.tokenizer
	if tok == nil {
		tok = newTokenizer()
	}
	return &Scorer{
		maxOrder:  opts.maxOrder,
		weights:   opts.orderWeights(),
		tokenizer: tok,
	}, nil
}

// MaxOrder returns the highest n-gram order N.
func (s *Scorer) MaxOrder() int {
	return s.maxOrder
}

// Tokenize turns raw lines into a corpus with the scorer's tokenizer.
func (s *Scorer) Tokenize(lines []string) Corpus {
	return TokenizeCorpus(lines, s.tokenizer)
}

// Score tokenizes the candidate and reference lines and scores them.
// Every reference must have one line per candidate line.
func (s *Scorer) Score(ctx context.Context, candidate []string, references ...[]string) (*Result, error) {
	refs := make([]Corpus, len(references))
	for i, ref := range references {
		refs[i] = s.Tokenize(ref)
	}
	return s.ScoreCorpus(ctx, s.Tokenize(candidate), refs)
}

// ScoreCorpus scores an already tokenized candidate corpus against reference corpora.
func (s *Scorer) ScoreCorpus(ctx context.Context, candidate Corpus, references []Corpus) (*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}
	ctx, span := telemetry.Tracer.Start(ctx, telemetry.SpanNameCompute)
	defer span.End()

	result, err := s.score(ctx, candidate, references)
	var score, bp float64
	if result != nil {
		score, bp = result.Score, result.BrevityPenalty
	}
	telemetry.TraceCompute(span, s.maxOrder, len(candidate), len(references), score, bp, err)
	telemetry.RecordCompute(ctx, s.maxOrder, score, err)
	return result, err
}

func (s *Scorer) score(ctx context.Context, candidate Corpus, references []Corpus) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(references) == 0 {
		return nil, ErrNoReferences
	}
	for k, ref := range references {
		if len(ref) != len(candidate) {
			return nil, &MisalignedCorpusError{
				Reference:    k,
				CandidateLen: len(candidate),
				ReferenceLen: len(ref),
			}
		}
	}

	vocab := newVocabulary()
	cand := vocab.encodeCorpus(candidate)
	refs := make([][][]int32, len(references))
	for k, ref := range references {
		refs[k] = vocab.encodeCorpus(ref)
	}

	brevity, err := brevityPenalty(cand, refs)
	if err != nil {
		return nil, err
	}
	log.Debugf("bleu: c=%d r=%d BP=%v", brevity.CandidateLength, brevity.ReferenceLength, brevity.Penalty)

	precisions := make([]Precision, 0, s.maxOrder)
	for n := 1; n <= s.maxOrder; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := modifiedPrecision(cand, refs, n)
		if err != nil {
			return nil, err
		}
		log.Debugf("bleu: P(%d) = %d/%d = %v", n, p.Clipped, p.Total, p.Value)
		precisions = append(precisions, p)
	}

	score, zero := combine(brevity.Penalty, precisions, s.weights)
	if zero {
		log.Debugf("bleu: zero modified precision, score is 0")
	}
	return &Result{
		Score:           score,
		BrevityPenalty:  brevity.Penalty,
		CandidateLength: brevity.CandidateLength,
		ReferenceLength: brevity.ReferenceLength,
		Precisions:      precisions,
		Weights:         append([]float64(nil), s.weights...),
		ZeroPrecision:   zero,
	}, nil
}

// Compute scores candidate lines against reference line sets with a one-off Scorer.
func Compute(ctx context.Context, candidate []string, references [][]string, opt ...Option) (*Result, error) {
	s, err := New(opt...)
	if err != nil {
		return nil, err
	}
	return s.Score(ctx, candidate, references...)
}
