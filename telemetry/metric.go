//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// metric names.
const (
	MeterName         = "trpc.bleu.go.compute"
	MetricComputeCnt  = "bleu.compute.count"
	MetricScoreResult = "bleu.score"
)

var (
	// MeterProvider is the provider the scoring meters were created from.
	MeterProvider metric.MeterProvider = noop.NewMeterProvider()

	ComputeMeter        metric.Meter            = MeterProvider.Meter(MeterName)
	ComputeMetricCnt    metric.Int64Counter     = noop.Int64Counter{}
	ComputeMetricScores metric.Float64Histogram = noop.Float64Histogram{}
)

// InitMeterProvider initializes the meter provider and the scoring meters.
func InitMeterProvider(mp metric.MeterProvider) error {
	meter := mp.Meter(MeterName)
	cnt, err := meter.Int64Counter(
		MetricComputeCnt,
		metric.WithDescription("Total number of BLEU scoring calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricComputeCnt, err)
	}
	scores, err := meter.Float64Histogram(
		MetricScoreResult,
		metric.WithDescription("Distribution of successful BLEU scores"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricScoreResult, err)
	}
	MeterProvider = mp
	ComputeMeter = meter
	ComputeMetricCnt = cnt
	ComputeMetricScores = scores
	return nil
}

// RecordCompute counts a scoring call and records its score when it succeeded.
func RecordCompute(ctx context.Context, maxOrder int, score float64, err error) {
	attrs := []attribute.KeyValue{
		attribute.Int(KeyMaxOrder, maxOrder),
		attribute.String(KeyErrorType, errorType(err)),
	}
	ComputeMetricCnt.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err != nil {
		return
	}
	ComputeMetricScores.Record(ctx, score, metric.WithAttributes(attribute.Int(KeyMaxOrder, maxOrder)))
}

// errorType returns a low-cardinality label for err: the innermost wrapped error text.
func errorType(err error) string {
	if err == nil {
		return ValueErrorTypeNone
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
