//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry instruments BLEU scoring with OpenTelemetry.
// Tracer and meters default to no-op providers until initialized.
package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// telemetry constants.
const (
	InstrumentName = "trpc.bleu.go"

	SpanNameCompute = "bleu.compute"

	KeyMaxOrder        = "bleu.max_order"
	KeySentenceCount   = "bleu.sentence_count"
	KeyReferenceCount  = "bleu.reference_count"
	KeyScore           = "bleu.score"
	KeyBrevityPenalty  = "bleu.brevity_penalty"
	KeyErrorType       = "error.type"
	ValueErrorTypeNone = ""
)

var (
	// TracerProvider is the provider Tracer was created from.
	TracerProvider trace.TracerProvider = noop.NewTracerProvider()
	// Tracer starts scoring spans.
	Tracer trace.Tracer = TracerProvider.Tracer(InstrumentName)
)

// InitTracerProvider routes scoring spans to tp.
func InitTracerProvider(tp trace.TracerProvider) {
	TracerProvider = tp
	Tracer = tp.Tracer(InstrumentName)
}

// TraceCompute annotates a scoring span with its inputs and outcome.
func TraceCompute(span trace.Span, maxOrder, sentences, references int, score, bp float64, err error) {
	span.SetAttributes(
		attribute.Int(KeyMaxOrder, maxOrder),
		attribute.Int(KeySentenceCount, sentences),
		attribute.Int(KeyReferenceCount, references),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		span.SetAttributes(attribute.String(KeyErrorType, errorType(err)))
		return
	}
	span.SetAttributes(
		attribute.Float64(KeyScore, score),
		attribute.Float64(KeyBrevityPenalty, bp),
	)
}
