//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentence is an ordered sequence of lowercase word tokens.
type Sentence []string

// Corpus is an ordered sequence of sentences indexed by line.
type Corpus []Sentence

// Tokenizer tokenizes text into a list of tokens.
type Tokenizer interface {
	// Tokenize splits input text into tokens.
	Tokenize(text string) []string
}

// tokenizer lowercases a line and splits it on whitespace runs.
type tokenizer struct{}

// newTokenizer creates the built-in lowercase/whitespace tokenizer.
func newTokenizer() *tokenizer {
	return &tokenizer{}
}

// Tokenize lowercases text and splits it on runs of Unicode whitespace.
// A blank line yields an empty slice.
func (t *tokenizer) Tokenize(text string) []string {
	// A Caser carries state, so one is built per call.
	lower := cases.Lower(language.Und).String(text)
	return strings.Fields(lower)
}

// TokenizeCorpus turns raw lines into a corpus using tok, or the built-in tokenizer when tok is nil.
// Empty tokens produced by a custom tokenizer are dropped.
func TokenizeCorpus(lines []string, tok Tokenizer) Corpus {
	if tok == nil {
		tok = newTokenizer()
	}
	corpus := make(Corpus, len(lines))
	for i, line := range lines {
		tokens := tok.Tokenize(line)
		sentence := make(Sentence, 0, len(tokens))
		for _, token := range tokens {
			if token == "" {
				continue
			}
			sentence = append(sentence, token)
		}
		corpus[i] = sentence
	}
	return corpus
}
