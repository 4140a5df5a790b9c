//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import "math"

// Brevity holds the corpus lengths and the resulting brevity penalty.
type Brevity struct {
	// CandidateLength is c, the total candidate token count.
	CandidateLength int
	// ReferenceLength is r, the sum of per-sentence effective reference lengths.
	ReferenceLength int
	// Penalty is 1 when c > r and exp(1 - r/c) otherwise.
	Penalty float64
}

// effectiveReferenceLength picks the reference length closest to candLen.
// Ties go to the earliest reference.
func effectiveReferenceLength(candLen int, refLens []int) int {
	if len(refLens) == 0 {
		return 0
	}
	best := refLens[0]
	bestDiff := absInt(best - candLen)
	for _, l := range refLens[1:] {
		if d := absInt(l - candLen); d < bestDiff {
			best, bestDiff = l, d
		}
	}
	return best
}

// brevityPenalty accumulates c and r over the corpus and computes BP.
func brevityPenalty(cand [][]int32, refs [][][]int32) (Brevity, error) {
	var b Brevity
	refLens := make([]int, len(refs))
	for i, sent := range cand {
		for k, ref := range refs {
			refLens[k] = len(ref[i])
		}
		b.CandidateLength += len(sent)
		b.ReferenceLength += effectiveReferenceLength(len(sent), refLens)
	}
	if b.CandidateLength == 0 {
		return b, ErrEmptyCandidateCorpus
	}
	if b.CandidateLength > b.ReferenceLength {
		b.Penalty = 1
		return b, nil
	}
	b.Penalty = math.Exp(1 - float64(b.ReferenceLength)/float64(b.CandidateLength))
	return b, nil
}

// absInt returns the absolute value of v.
func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
