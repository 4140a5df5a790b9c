//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"errors"
	"fmt"
)

var (
	// ErrMisalignedCorpus reports a reference corpus whose sentence count differs from the candidate corpus.
	ErrMisalignedCorpus = errors.New("misaligned corpus")
	// ErrDegenerateDenominator reports an n-gram order with no candidate n-grams in the whole corpus.
	ErrDegenerateDenominator = errors.New("degenerate denominator")
	// ErrEmptyCandidateCorpus reports a candidate corpus without a single token.
	ErrEmptyCandidateCorpus = errors.New("empty candidate corpus")
	// ErrNoReferences reports a scoring call without reference corpora.
	ErrNoReferences = errors.New("no reference corpora")
	// ErrInvalidOrder reports a max n-gram order outside [1, MaxOrder].
	ErrInvalidOrder = errors.New("invalid max n-gram order")
	// ErrInvalidWeights reports weights that do not match the max order or are not usable.
	ErrInvalidWeights = errors.New("invalid n-gram weights")
)

// MisalignedCorpusError describes which reference corpus is misaligned.
type MisalignedCorpusError struct {
	// Reference is the index of the reference corpus in enumeration order.
	Reference int
	// CandidateLen is the number of candidate sentences.
	CandidateLen int
	// ReferenceLen is the number of sentences in the reference corpus.
	ReferenceLen int
}

// Error implements error.
func (e *MisalignedCorpusError) Error() string {
	return fmt.Sprintf("%s: reference %d has %d sentences, candidate has %d",
		ErrMisalignedCorpus, e.Reference, e.ReferenceLen, e.CandidateLen)
}

// Unwrap returns ErrMisalignedCorpus so errors.Is matches the sentinel.
func (e *MisalignedCorpusError) Unwrap() error {
	return ErrMisalignedCorpus
}
