//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

package corpus

// options holds loader configuration.
type options struct {
	// pattern selects reference files inside a reference directory.
	pattern string
}

// newOptions applies functional options to build a loader configuration.
func newOptions(opt ...Option) *options {
	opts := &options{pattern: DefaultPattern}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures corpus loading.
type Option func(*options)

// WithPattern sets the doublestar pattern used to select files in a reference directory.
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}
