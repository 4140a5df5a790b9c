//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package main provides the bleu command, which scores a candidate
// translation file against a reference file or a directory of references.
//
// Usage:
//
//	bleu [flags] <candidate-file-or-dir> <reference-file-or-dir>
//
// The score is written to -output (bleu_out.txt by default). When the
// candidate path is a directory, every file in it is scored against the
// same references on a worker pool and -output receives one
// "<file>\t<score>" line per candidate.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/batch"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/corpus"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/metric/criterion/bleu"
	"trpc.group/trpc-go/trpc-bleu-go/evaluation/report"
	"trpc.group/trpc-go/trpc-bleu-go/internal/config"
	"trpc.group/trpc-go/trpc-bleu-go/log"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bleu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		flagMaxOrder   = fs.Int("n", 4, "Maximum n-gram order")
		flagWeights    = fs.String("weights", "", "Comma-separated weight per order (default uniform 1/n)")
		flagOutput     = fs.String("output", report.DefaultScoreFile, "Score output file")
		flagJSON       = fs.String("json", "", "Write a JSON report to this file")
		flagRefPattern = fs.String("ref-pattern", corpus.DefaultPattern, "Pattern selecting files in a reference or candidate directory")
		flagWorkers    = fs.Int("workers", 4, "Worker pool size when the candidate path is a directory")
		flagLogLevel   = fs.String("log-level", log.LevelInfo, "Log level (debug, info, warn, error, fatal)")
		flagConfig     = fs.String("config", "", "YAML config file")
		flagEnvFile    = fs.String("env-file", "", "Env file with BLEU_* variables (default .env when present)")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: bleu [flags] <candidate-file-or-dir> <reference-file-or-dir>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(stderr, "bleu: %v\n", err)
		return exitError
	}
	envFile, optional := *flagEnvFile, false
	if envFile == "" {
		envFile, optional = config.DefaultEnvFile, true
	}
	vars, err := config.ReadEnvFile(envFile, optional)
	if err != nil {
		fmt.Fprintf(stderr, "bleu: %v\n", err)
		return exitError
	}
	if err := cfg.ApplyEnv(config.Lookup(vars)); err != nil {
		fmt.Fprintf(stderr, "bleu: %v\n", err)
		return exitError
	}
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.MaxOrder = *flagMaxOrder
		case "weights":
			cfg.Weights, flagErr = config.ParseWeights(*flagWeights)
		case "output":
			cfg.Output = *flagOutput
		case "json":
			cfg.JSONReport = *flagJSON
		case "ref-pattern":
			cfg.RefPattern = *flagRefPattern
		case "workers":
			cfg.Workers = *flagWorkers
		case "log-level":
			cfg.LogLevel = *flagLogLevel
		}
	})
	if flagErr != nil {
		fmt.Fprintf(stderr, "bleu: -weights: %v\n", flagErr)
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "bleu: %v\n", err)
		return exitUsage
	}

	log.SetOutput(stderr)
	log.SetLevel(cfg.LogLevel)

	criterion := &bleu.BleuCriterion{MaxOrder: cfg.MaxOrder, Weights: cfg.Weights}
	scorer, err := criterion.NewScorer()
	if err != nil {
		log.Errorf("bleu: %v", err)
		return exitUsage
	}

	candidatePath, referencePath := fs.Arg(0), fs.Arg(1)
	info, err := os.Stat(candidatePath)
	if err != nil {
		log.Errorf("bleu: %v", err)
		return exitError
	}
	if info.IsDir() {
		err = scoreDirectory(ctx, cfg, scorer, candidatePath, referencePath, stdout)
	} else {
		err = scoreFile(ctx, cfg, scorer, candidatePath, referencePath, stdout)
	}
	if err != nil {
		log.Errorf("bleu: %v", err)
		return exitError
	}
	return exitOK
}

// scoreFile scores one candidate file and writes the score file and optional report.
func scoreFile(ctx context.Context, cfg *config.Config, scorer *bleu.Scorer, candidatePath, referencePath string, stdout io.Writer) error {
	corpora, err := corpus.Load(ctx, candidatePath, referencePath, corpus.WithPattern(cfg.RefPattern))
	if err != nil {
		return err
	}
	result, scoreErr := scorer.Score(ctx, corpora.Candidate.Lines, corpora.ReferenceLines()...)
	if cfg.JSONReport != "" {
		rep := report.New(candidatePath, corpora.ReferencePaths(), scorer.MaxOrder(), result, scoreErr)
		if err := report.WriteJSON(cfg.JSONReport, rep); err != nil {
			return err
		}
	}
	if scoreErr != nil {
		return scoreErr
	}
	if err := report.WriteText(stdout, result); err != nil {
		return err
	}
	return report.WriteScoreFile(cfg.Output, result.Score)
}

// scoreDirectory scores every candidate file in dir against the same references.
func scoreDirectory(ctx context.Context, cfg *config.Config, scorer *bleu.Scorer, dir, referencePath string, stdout io.Writer) error {
	refs, err := corpus.LoadReferences(referencePath, cfg.RefPattern)
	if err != nil {
		return err
	}
	paths, err := corpus.ResolvePaths(dir, cfg.RefPattern)
	if err != nil {
		return err
	}
	jobs := make([]batch.Job, 0, len(paths))
	for _, p := range paths {
		f, err := corpus.LoadFile(p)
		if err != nil {
			return err
		}
		jobs = append(jobs, batch.Job{Name: p, Candidate: f.Lines})
	}
	runner, err := batch.New(scorer, batch.WithWorkers(cfg.Workers))
	if err != nil {
		return err
	}
	defer runner.Close()

	loaded := &corpus.Corpora{References: refs}
	results := runner.Run(ctx, jobs, loaded.ReferenceLines())

	var (
		lines   strings.Builder
		reports []*report.Report
		failed  int
	)
	for _, res := range results {
		reports = append(reports, report.New(res.Name, loaded.ReferencePaths(), scorer.MaxOrder(), res.Result, res.Err))
		if res.Err != nil {
			failed++
			fmt.Fprintf(stdout, "%s: error: %v\n", res.Name, res.Err)
			continue
		}
		fmt.Fprintf(stdout, "%s: BLEU %s\n", res.Name, report.FormatScore(res.Result.Score))
		fmt.Fprintf(&lines, "%s\t%s\n", res.Name, report.FormatScore(res.Result.Score))
	}
	if cfg.JSONReport != "" {
		if err := report.WriteJSON(cfg.JSONReport, reports...); err != nil {
			return err
		}
	}
	if err := os.WriteFile(cfg.Output, []byte(lines.String()), 0o644); err != nil {
		return fmt.Errorf("write score file %s: %w", cfg.Output, err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d candidates failed", failed, len(results))
	}
	return nil
}
