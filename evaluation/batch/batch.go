//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package batch scores several candidate corpora against shared references on a worker pool.
// Each corpus is still scored by one sequential call.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/internal/bleu"
	"trpc.group/trpc-go/trpc-bleu-go/log"
)

// Job is one candidate corpus to score.
type Job struct {
	// Name identifies the job in results, typically the candidate file path.
	Name string
	// Candidate holds the raw candidate lines.
	Candidate []string
}

// JobResult is the outcome of one job.
type JobResult struct {
	// Name is copied from the job.
	Name string
	// Result is the BLEU result; nil when Err is set.
	Result *bleu.Result
	// Err is the scoring or submission failure.
	Err error
}

// Runner scores jobs concurrently with a fixed-size pool.
type Runner struct {
	scorer *bleu.Scorer
	pool   *ants.PoolWithFunc
}

type jobParam struct {
	idx        int
	ctx        context.Context
	job        Job
	references []bleu.Corpus
	scorer     *bleu.Scorer
	results    []*JobResult
	wg         *sync.WaitGroup
}

func createJobPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*jobParam)
		if !ok {
			panic("bleu batch pool args type error")
		}
		defer param.wg.Done()
		candidate := param.scorer.Tokenize(param.job.Candidate)
		result, err := param.scorer.ScoreCorpus(param.ctx, candidate, param.references)
		param.results[param.idx] = &JobResult{Name: param.job.Name, Result: result, Err: err}
	})
	if err != nil {
		return nil, fmt.Errorf("create bleu batch pool: %w", err)
	}
	return pool, nil
}

// New creates a Runner around scorer.
func New(scorer *bleu.Scorer, opt ...Option) (*Runner, error) {
	if scorer == nil {
		return nil, errors.New("scorer is nil")
	}
	opts := newOptions(opt...)
	pool, err := createJobPool(opts.workers)
	if err != nil {
		return nil, err
	}
	return &Runner{scorer: scorer, pool: pool}, nil
}

// Run scores every job against references and returns results in job order.
// References are tokenized once and shared read-only by all workers.
func (r *Runner) Run(ctx context.Context, jobs []Job, references [][]string) []*JobResult {
	refs := make([]bleu.Corpus, len(references))
	for i, ref := range references {
		refs[i] = r.scorer.Tokenize(ref)
	}
	results := make([]*JobResult, len(jobs))
	var wg sync.WaitGroup
	for idx, job := range jobs {
		wg.Add(1)
		param := &jobParam{
			idx:        idx,
			ctx:        ctx,
			job:        job,
			references: refs,
			scorer:     r.scorer,
			results:    results,
			wg:         &wg,
		}
		if err := r.pool.Invoke(param); err != nil {
			wg.Done()
			results[idx] = &JobResult{Name: job.Name, Err: fmt.Errorf("submit bleu job %s: %w", job.Name, err)}
		}
	}
	wg.Wait()
	for _, res := range results {
		if res.Err != nil {
			log.Warnf("bleu batch: %s: %v", res.Name, res.Err)
		}
	}
	return results
}

// Close releases the worker pool.
func (r *Runner) Close() {
	r.pool.Release()
}

// options holds batch runner configuration.
type options struct {
	workers int
}

func newOptions(opt ...Option) *options {
	opts := &options{workers: runtime.GOMAXPROCS(0)}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures a Runner.
type Option func(*options)

// WithWorkers sets the pool size.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
