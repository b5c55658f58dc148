// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package telemetry records OpenTelemetry metrics and traces for retry
// loops.
//
// Install adds handlers to a retryhttp.HandlerGroup which count
// attempts and retries, record the wait before each retry, and wrap
// each execution in a client span. Each attempt's request context
// carries the execution span, so an instrumented HTTPDoer nests its own
// spans beneath it.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/gogama/retryhttp"
	"github.com/gogama/retryhttp/request"
	"github.com/gogama/retryhttp/transient"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ScopeName is the instrumentation scope of the meter and tracer.
	ScopeName = "github.com/gogama/retryhttp/telemetry"

	MetricAttempts = "http.client.retry.attempts" // Counter
	MetricRetries  = "http.client.retry.retries"  // Counter
	MetricWait     = "http.client.retry.wait"     // Histogram in seconds

	attrHTTPRequestMethod  = "http.request.method"
	attrHTTPResponseStatus = "http.response.status_code"
	attrErrorType          = "error.type"
	attrURLFull            = "url.full"
	attrAttempt            = "retry.attempt"
	attrAttempts           = "retry.attempts"
	attrRemaining          = "retry.remaining"
	attrWait               = "retry.wait_ms"

	errorTypeOther = "_OTHER"
)

var waitBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
}

type spanKey struct{}

type instruments struct {
	tracer   trace.Tracer
	attempts metric.Int64Counter
	retries  metric.Int64Counter
	wait     metric.Float64Histogram
}

// Install pushes telemetry handlers onto the back of g's handler
// chains. A nil mp or tp selects the global provider registered with
// package otel.
//
// An error is returned if an instrument cannot be created, in which
// case g is unchanged.
func Install(g *retryhttp.HandlerGroup, mp metric.MeterProvider, tp trace.TracerProvider) error {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	meter := mp.Meter(ScopeName)
	in := &instruments{tracer: tp.Tracer(ScopeName)}

	var err error
	in.attempts, err = meter.Int64Counter(
		MetricAttempts,
		metric.WithDescription("Number of HTTP request attempts, including the initial attempt"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return fmt.Errorf("telemetry: %s: %w", MetricAttempts, err)
	}
	in.retries, err = meter.Int64Counter(
		MetricRetries,
		metric.WithDescription("Number of retries decided"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return fmt.Errorf("telemetry: %s: %w", MetricRetries, err)
	}
	in.wait, err = meter.Float64Histogram(
		MetricWait,
		metric.WithDescription("Wait before each retry, jitter included"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(waitBuckets...),
	)
	if err != nil {
		return fmt.Errorf("telemetry: %s: %w", MetricWait, err)
	}

	g.PushBack(retryhttp.BeforeExecutionStart, retryhttp.HandlerFunc(in.start))
	g.PushBack(retryhttp.BeforeAttempt, retryhttp.HandlerFunc(in.beforeAttempt))
	g.PushBack(retryhttp.AfterAttempt, retryhttp.HandlerFunc(in.afterAttempt))
	g.PushBack(retryhttp.BeforeRetryWait, retryhttp.HandlerFunc(in.retry))
	g.PushBack(retryhttp.AfterExecutionEnd, retryhttp.HandlerFunc(in.end))
	return nil
}

// Span returns the execution span started by the handlers Install
// adds, or a no-op span if there is none.
func Span(e *request.Execution) trace.Span {
	if s, ok := e.Value(spanKey{}).(trace.Span); ok {
		return s
	}
	return trace.SpanFromContext(context.Background())
}

func (in *instruments) start(_ retryhttp.Event, e *request.Execution) {
	_, span := in.tracer.Start(e.Plan.Context(), "HTTP "+e.Plan.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(attrHTTPRequestMethod, e.Plan.Method),
			attribute.String(attrURLFull, e.Plan.URL.Redacted()),
		),
	)
	e.SetValue(spanKey{}, span)
}

func (in *instruments) beforeAttempt(_ retryhttp.Event, e *request.Execution) {
	span := Span(e)
	if !span.SpanContext().IsValid() {
		return
	}
	e.Request = e.Request.WithContext(trace.ContextWithSpan(e.Request.Context(), span))
}

func (in *instruments) afterAttempt(_ retryhttp.Event, e *request.Execution) {
	attrs := outcomeAttributes(e)
	in.attempts.Add(e.Plan.Context(), 1, metric.WithAttributes(attrs...))
	Span(e).AddEvent("attempt", trace.WithAttributes(
		append(attrs, attribute.Int(attrAttempt, e.Attempt))...,
	))
}

func (in *instruments) retry(_ retryhttp.Event, e *request.Execution) {
	ctx := e.Plan.Context()
	in.retries.Add(ctx, 1)
	in.wait.Record(ctx, e.Wait.Seconds())
	Span(e).AddEvent("retry", trace.WithAttributes(
		attribute.Int(attrAttempt, e.Attempt),
		attribute.Int(attrRemaining, e.Backoff.Remaining()+1),
		attribute.Int64(attrWait, e.Wait.Milliseconds()),
	))
}

func (in *instruments) end(_ retryhttp.Event, e *request.Execution) {
	span := Span(e)
	span.SetAttributes(attribute.Int(attrAttempts, e.Attempt+1))
	if e.Response != nil {
		span.SetAttributes(attribute.Int(attrHTTPResponseStatus, e.StatusCode()))
	}
	if e.Err != nil {
		span.SetAttributes(attribute.String(attrErrorType, errorType(e.Err)))
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	} else if e.StatusCode() >= 500 {
		span.SetStatus(codes.Error, "")
	}
	end := e.End
	if end.IsZero() {
		end = time.Now()
	}
	span.End(trace.WithTimestamp(end))
}

func outcomeAttributes(e *request.Execution) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String(attrHTTPRequestMethod, e.Plan.Method)}
	if e.Err != nil {
		return append(attrs, attribute.String(attrErrorType, errorType(e.Err)))
	}
	return append(attrs, attribute.Int(attrHTTPResponseStatus, e.StatusCode()))
}

func errorType(err error) string {
	c := transient.Categorize(err)
	if c == transient.Not {
		return errorTypeOther
	}
	return c.String()
}
