//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenizer_CaseAndWhitespace verifies lowercasing, trimming and splitting on whitespace runs.
func TestTokenizer_CaseAndWhitespace(t *testing.T) {
	tok := newTokenizer()
	assert.Equal(t, []string{"the", "cat", "sat."}, tok.Tokenize("  The CAT\t\tsat. \r\n"))
	assert.Equal(t, []string{"école", "straße"}, tok.Tokenize("ÉCOLE Straße"))
	assert.Empty(t, tok.Tokenize(""))
	assert.Empty(t, tok.Tokenize(" \t "))
}

// TestTokenizeCorpus_KeepsLineCount verifies that blank lines become empty sentences.
func TestTokenizeCorpus_KeepsLineCount(t *testing.T) {
	corpus := TokenizeCorpus([]string{"a B", "", "c"}, nil)
	require.Len(t, corpus, 3)
	assert.Equal(t, Sentence{"a", "b"}, corpus[0])
	assert.Empty(t, corpus[1])
	assert.Equal(t, Sentence{"c"}, corpus[2])
}

// TestExtractNGrams verifies window extraction and the empty result for short sentences.
func TestExtractNGrams(t *testing.T) {
	ids := []int32{1, 2, 3, 2}
	bigrams := extractNGrams(ids, 2)
	require.Len(t, bigrams, 3)
	assert.Equal(t, NGram{1, 2}, bigrams[0])
	assert.Equal(t, NGram{2, 3}, bigrams[1])
	assert.Equal(t, NGram{3, 2}, bigrams[2])

	assert.Empty(t, extractNGrams(ids, 5))
	assert.Empty(t, extractNGrams(nil, 1))
	assert.Equal(t, 0, ngramTotal(0, 1))
	assert.Equal(t, 4, ngramTotal(4, 1))
	assert.Equal(t, 1, ngramTotal(4, 4))
}

// TestCountNGrams_NoDelimiterCollision verifies that tokens containing spaces never collide as n-gram keys.
func TestCountNGrams_NoDelimiterCollision(t *testing.T) {
	v := newVocabulary()
	left := v.encode(Sentence{"a b", "c"})
	right := v.encode(Sentence{"a", "b c"})

	leftCounts := countNGrams(left, 2)
	rightCounts := countNGrams(right, 2)
	require.Len(t, leftCounts, 1)
	require.Len(t, rightCounts, 1)
	for g := range leftCounts {
		_, ok := rightCounts[g]
		assert.False(t, ok)
	}
}

// TestMaxRefCounts verifies element-wise maximum across references rather than a sum.
func TestMaxRefCounts(t *testing.T) {
	v := newVocabulary()
	refs := [][]int32{
		v.encode(Sentence{"the", "cat", "is", "on", "the", "mat"}),
		v.encode(Sentence{"there", "is", "a", "cat", "on", "the", "mat"}),
	}
	counts := maxRefCounts(refs, 1)
	the := v.encode(Sentence{"the"})
	cat := v.encode(Sentence{"cat"})
	assert.Equal(t, 2, counts[extractNGrams(the, 1)[0]])
	assert.Equal(t, 1, counts[extractNGrams(cat, 1)[0]])
}

// TestModifiedPrecision verifies corpus-level aggregation of clipped and raw counts.
func TestModifiedPrecision(t *testing.T) {
	v := newVocabulary()
	cand := v.encodeCorpus(Corpus{{"the", "the", "the"}, {}, {"a", "cat"}})
	refs := [][][]int32{v.encodeCorpus(Corpus{{"the", "mat"}, {"x"}, {"a", "dog"}})}

	p, err := modifiedPrecision(cand, refs, 1)
	require.NoError(t, err)
	assert.Equal(t, Precision{Order: 1, Clipped: 2, Total: 5, Value: 0.4}, p)

	p, err = modifiedPrecision(cand, refs, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Clipped)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 0.0, p.Value)

	_, err = modifiedPrecision(cand, refs, 4)
	assert.ErrorIs(t, err, ErrDegenerateDenominator)
}

// TestEffectiveReferenceLength verifies closest-length selection and the first-reference tie-break.
func TestEffectiveReferenceLength(t *testing.T) {
	assert.Equal(t, 4, effectiveReferenceLength(5, []int{4, 6}))
	assert.Equal(t, 6, effectiveReferenceLength(5, []int{6, 4}))
	assert.Equal(t, 5, effectiveReferenceLength(5, []int{3, 5, 5}))
	assert.Equal(t, 9, effectiveReferenceLength(0, []int{9}))
}

// TestBrevityPenalty verifies BP for longer and shorter candidate corpora.
func TestBrevityPenalty(t *testing.T) {
	v := newVocabulary()
	long := v.encodeCorpus(Corpus{{"a", "b", "c", "d", "e"}})
	short := v.encodeCorpus(Corpus{{"a", "b"}})
	refs := [][][]int32{v.encodeCorpus(Corpus{{"a", "b", "c"}}), v.encodeCorpus(Corpus{{"a", "b", "c", "d", "e", "f", "g"}})}

	b, err := brevityPenalty(long, refs[:1])
	require.NoError(t, err)
	assert.Equal(t, Brevity{CandidateLength: 5, ReferenceLength: 3, Penalty: 1}, b)

	b, err = brevityPenalty(short, refs)
	require.NoError(t, err)
	assert.Equal(t, 3, b.ReferenceLength)
	assert.InDelta(t, 0.60653065971, b.Penalty, 1e-9)

	_, err = brevityPenalty(v.encodeCorpus(Corpus{{}}), refs)
	assert.ErrorIs(t, err, ErrEmptyCandidateCorpus)
}

// TestCombine_ZeroPrecision verifies the explicit zero branch and the log-average otherwise.
func TestCombine_ZeroPrecision(t *testing.T) {
	precisions := []Precision{
		{Order: 1, Clipped: 1, Total: 2, Value: 0.5},
		{Order: 2, Clipped: 0, Total: 1, Value: 0},
	}
	score, zero := combine(1, precisions, []float64{0.5, 0.5})
	assert.True(t, zero)
	assert.Equal(t, 0.0, score)

	score, zero = combine(0.5, precisions[:1], []float64{1})
	assert.False(t, zero)
	assert.InDelta(t, 0.25, score, 1e-12)
}
