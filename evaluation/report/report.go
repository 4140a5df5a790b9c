//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//

// Package report writes BLEU scores and structured scoring reports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-bleu-go/evaluation/internal/bleu"
)

// DefaultScoreFile is the file the score is written to when no output is configured.
const DefaultScoreFile = "bleu_out.txt"

// FormatScore returns the shortest decimal text that round-trips score.
// Integral values keep a ".0" suffix, so 1 is written as "1.0".
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

// WriteScore writes the formatted score to w without a trailing newline.
func WriteScore(w io.Writer, score float64) error {
	_, err := io.WriteString(w, FormatScore(score))
	return err
}

// WriteScoreFile creates or truncates path and writes the formatted score.
func WriteScoreFile(path string, score float64) error {
	if path == "" {
		path = DefaultScoreFile
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create score file %s: %w", path, err)
	}
	if err := WriteScore(f, score); err != nil {
		f.Close()
		return fmt.Errorf("write score file %s: %w", path, err)
	}
	return f.Close()
}

// Precision is the serialized modified precision of one order.
type Precision struct {
	// Order is the n-gram order.
	Order int `json:"order"`
	// Clipped is the corpus clipped count.
	Clipped int `json:"clipped"`
	// Total is the corpus raw candidate n-gram count.
	Total int `json:"total"`
	// Value is Clipped / Total.
	Value float64 `json:"value"`
}

// Report is a structured record of one scoring run.
type Report struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`
	// Candidate is the candidate file path.
	Candidate string `json:"candidate"`
	// References are the reference file paths in enumeration order.
	References []string `json:"references"`
	// MaxOrder is the highest n-gram order N.
	MaxOrder int `json:"maxOrder"`
	// Score is the BLEU score.
	Score float64 `json:"score"`
	// BrevityPenalty is BP.
	BrevityPenalty float64 `json:"brevityPenalty"`
	// CandidateLength is c.
	CandidateLength int `json:"candidateLength"`
	// ReferenceLength is r.
	ReferenceLength int `json:"referenceLength"`
	// Precisions holds the modified precision of orders 1..N.
	Precisions []Precision `json:"precisions"`
	// ZeroPrecision reports that the score was forced to 0 by an order without matches.
	ZeroPrecision bool `json:"zeroPrecision,omitempty"`
	// Error holds the failure message when scoring failed.
	Error string `json:"error,omitempty"`
	// CreatedAt is the time the report was built.
	CreatedAt time.Time `json:"createdAt"`
}

// New builds a report for a scoring run. result may be nil when err is set.
func New(candidate string, references []string, maxOrder int, result *bleu.Result, err error) *Report {
	r := &Report{
		ID:         uuid.New().String(),
		Candidate:  candidate,
		References: append([]string(nil), references...),
		MaxOrder:   maxOrder,
		Precisions: []Precision{},
		CreatedAt:  time.Now().UTC(),
	}
	if err != nil {
		r.Error = err.Error()
	}
	if result == nil {
		return r
	}
	r.Score = result.Score
	r.BrevityPenalty = result.BrevityPenalty
	r.CandidateLength = result.CandidateLength
	r.ReferenceLength = result.ReferenceLength
	r.ZeroPrecision = result.ZeroPrecision
	for _, p := range result.Precisions {
		r.Precisions = append(r.Precisions, Precision{
			Order:   p.Order,
			Clipped: p.Clipped,
			Total:   p.Total,
			Value:   p.Value,
		})
	}
	return r
}

// WriteJSON writes reports to path as an indented JSON array.
func WriteJSON(path string, reports ...*Report) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// WriteText prints the diagnostics of a result: BP, every P(n) and the score.
func WriteText(w io.Writer, result *bleu.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "BP: %s\n", FormatScore(result.BrevityPenalty))
	for _, p := range result.Precisions {
		fmt.Fprintf(&b, "P(%d) = %d/%d = %s\n", p.Order, p.Clipped, p.Total, FormatScore(p.Value))
	}
	b.WriteString("------------------------\n")
	fmt.Fprintf(&b, "BLEU: %s\n", FormatScore(result.Score))
	b.WriteString("------------------------\n")
	_, err := io.WriteString(w, b.String())
	return err
}
