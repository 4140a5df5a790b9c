//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

// Package bleu implements corpus-level BLEU scoring for text evaluation.
package bleu

import "math"

// Result holds a BLEU score and the values it was combined from.
type Result struct {
	// Score is the final BLEU score in range [0, 1].
	Score float64
	// BrevityPenalty is BP in range (0, 1].
	BrevityPenalty float64
	// CandidateLength is c, the total candidate token count.
	CandidateLength int
	// ReferenceLength is r, the total effective reference length.
	ReferenceLength int
	// Precisions holds the modified precision of orders 1..N in ascending order.
	Precisions []Precision
	// Weights holds the weight applied to each order.
	Weights []float64
	// ZeroPrecision reports that a weighted order had no clipped match, forcing the score to 0.
	ZeroPrecision bool
}

// Precision returns the modified precision of order n.
func (r *Result) Precision(n int) (Precision, bool) {
	if r == nil || n < 1 || n > len(r.Precisions) {
		return Precision{}, false
	}
	return r.Precisions[n-1], true
}

// combine computes BP * exp(sum w_n ln P_n) in ascending order.
// Any weighted order with zero precision yields a zero score without taking ln(0).
func combine(bp float64, precisions []Precision, weights []float64) (float64, bool) {
	var sum float64
	for i, p := range precisions {
		w := weights[i]
		if w == 0 {
			continue
		}
		if p.Clipped == 0 {
			return 0, true
		}
		sum += w * math.Log(p.Value)
	}
	return bp * math.Exp(sum), false
}
