//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package bleu

import (
	"fmt"
	"math"
)

const (
	// DefaultMaxOrder is the n-gram order used when none is configured.
	DefaultMaxOrder = 4
	// MaxOrder is the largest supported n-gram order.
	MaxOrder = 16
)

// options holds internal configuration for BLEU scoring.
type options struct {
	// maxOrder is the highest n-gram order N.
	maxOrder int
	// weights holds one weight per order; nil means uniform 1/N.
	weights []float64
	// tokenizer overrides the built-in tokenizer when provided.
	tokenizer Tokenizer
}

// newOptions applies functional options to build a scoring configuration.
func newOptions(opt ...Option) *options {
	opts := &options{maxOrder: DefaultMaxOrder}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures BLEU scoring.
type Option func(*options)

// WithMaxOrder sets the highest n-gram order N.
func WithMaxOrder(n int) Option {
	return func(o *options) {
		o.maxOrder = n
	}
}

// WithWeights sets one weight per n-gram order, starting at order 1.
func WithWeights(weights ...float64) Option {
	return func(o *options) {
		o.weights = append([]float64(nil), weights...)
	}
}

// WithTokenizer overrides the built-in tokenizer when provided.
func WithTokenizer(tokenizer Tokenizer) Option {
	return func(o *options) {
		o.tokenizer = tokenizer
	}
}

// validate checks the order range and the weights.
func (o *options) validate() error {
	if o.maxOrder < 1 || o.maxOrder > MaxOrder {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidOrder, o.maxOrder, MaxOrder)
	}
	if o.weights == nil {
		return nil
	}
	if len(o.weights) != o.maxOrder {
		return fmt.Errorf("%w: got %d weights for max order %d", ErrInvalidWeights, len(o.weights), o.maxOrder)
	}
	var sum float64
	for i, w := range o.weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return fmt.Errorf("%w: weight %d is %v", ErrInvalidWeights, i+1, w)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}
	return nil
}

// orderWeights returns the weight of every order 1..N.
func (o *options) orderWeights() []float64 {
	if o.weights != nil {
		return append([]float64(nil), o.weights...)
	}
	weights := make([]float64, o.maxOrder)
	w := 1.0 / float64(o.maxOrder)
	for i := range weights {
		weights[i] = w
	}
	return weights
}
