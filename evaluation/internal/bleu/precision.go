//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import "fmt"

// Precision is the corpus-level modified precision of one n-gram order.
type Precision struct {
	// Order is the n-gram order n.
	Order int
	// Clipped is the sum of clipped n-gram counts over all candidate sentences.
	Clipped int
	// Total is the sum of raw candidate n-gram counts over all candidate sentences.
	Total int
	// Value is Clipped / Total.
	Value float64
}

// maxRefCounts returns, for every n-gram of any reference sentence, its highest count in a single reference.
func maxRefCounts(refSents [][]int32, n int) map[NGram]int {
	maxCounts := make(map[NGram]int)
	for _, ref := range refSents {
		for g, cnt := range countNGrams(ref, n) {
			if cnt > maxCounts[g] {
				maxCounts[g] = cnt
			}
		}
	}
	return maxCounts
}

// clippedCount returns the clipped count and raw n-gram total of one candidate sentence.
func clippedCount(cand []int32, refMax map[NGram]int, n int) (clipped, total int) {
	for g, cnt := range countNGrams(cand, n) {
		clipped += min(cnt, refMax[g])
	}
	return clipped, ngramTotal(len(cand), n)
}

// sentenceRefs collects the reference sentences at index i, one per reference corpus.
func sentenceRefs(refs [][][]int32, i int) [][]int32 {
	out := make([][]int32, len(refs))
	for k, ref := range refs {
		out[k] = ref[i]
	}
	return out
}

// modifiedPrecision sums clipped and raw counts across the corpus before dividing once.
func modifiedPrecision(cand [][]int32, refs [][][]int32, n int) (Precision, error) {
	p := Precision{Order: n}
	for i, sent := range cand {
		if ngramTotal(len(sent), n) == 0 {
			continue
		}
		clipped, total := clippedCount(sent, maxRefCounts(sentenceRefs(refs, i), n), n)
		p.Clipped += clipped
		p.Total += total
	}
	if p.Total == 0 {
		return p, fmt.Errorf("%w: no candidate %d-grams in corpus", ErrDegenerateDenominator, n)
	}
	p.Value = float64(p.Clipped) / float64(p.Total)
	return p, nil
}
