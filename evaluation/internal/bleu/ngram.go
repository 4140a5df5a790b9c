//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

// NGram is a comparable n-gram key made of interned token ids.
// Slots past the n-gram order stay zero; token ids start at 1.
type NGram [MaxOrder]int32

// vocabulary interns tokens into ids that are unique within one scoring call.
type vocabulary struct {
	ids map[string]int32
}

// newVocabulary creates an empty vocabulary.
func newVocabulary() *vocabulary {
	return &vocabulary{ids: make(map[string]int32)}
}

// encode maps a sentence to token ids, assigning new ids on first sight.
func (v *vocabulary) encode(sentence Sentence) []int32 {
	ids := make([]int32, len(sentence))
	for i, token := range sentence {
		id, ok := v.ids[token]
		if !ok {
			id = int32(len(v.ids) + 1)
			v.ids[token] = id
		}
		ids[i] = id
	}
	return ids
}

// encodeCorpus maps every sentence of a corpus to token ids.
func (v *vocabulary) encodeCorpus(corpus Corpus) [][]int32 {
	out := make([][]int32, len(corpus))
	for i, sentence := range corpus {
		out[i] = v.encode(sentence)
	}
	return out
}

// ngramTotal returns the number of order-n n-grams in a sentence of the given length.
func ngramTotal(length, n int) int {
	if n <= 0 || length < n {
		return 0
	}
	return length - n + 1
}

// extractNGrams returns every contiguous length-n window of ids, in order.
func extractNGrams(ids []int32, n int) []NGram {
	total := ngramTotal(len(ids), n)
	if total == 0 {
		return nil
	}
	ngrams := make([]NGram, total)
	for i := 0; i < total; i++ {
		copy(ngrams[i][:n], ids[i:i+n])
	}
	return ngrams
}

// countNGrams builds the multiset of order-n n-grams of a sentence.
func countNGrams(ids []int32, n int) map[NGram]int {
	ngrams := extractNGrams(ids, n)
	counts := make(map[NGram]int, len(ngrams))
	for _, g := range ngrams {
		counts[g]++
	}
	return counts
}
