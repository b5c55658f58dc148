// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging traces retry loops with zerolog.
//
// Install adds handlers to a retryhttp.HandlerGroup which log each
// attempt at debug level, each retry decision at info level, and the
// end of each execution at info level, or at warn level if it ended in
// an error. Every execution is tagged with a random correlation id.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/gogama/retryhttp"
	"github.com/gogama/retryhttp/request"
	"github.com/gogama/retryhttp/transient"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type idKey struct{}

// New creates a logger writing to w at the named level. If level does
// not parse, info level is used. If pretty is true, output is formatted
// for human readability. A nil w means standard error.
func New(level string, pretty bool, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	zLevel, err := zerolog.ParseLevel(level)
	if err != nil || zLevel == zerolog.NoLevel {
		zLevel = zerolog.InfoLevel
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zLevel)
}

// Install pushes logging handlers for l onto the back of g's handler
// chains.
func Install(g *retryhttp.HandlerGroup, l zerolog.Logger) {
	h := &handler{log: l}
	g.PushBack(retryhttp.BeforeExecutionStart, retryhttp.HandlerFunc(h.start))
	g.PushBack(retryhttp.AfterAttempt, retryhttp.HandlerFunc(h.attempt))
	g.PushBack(retryhttp.BeforeRetryWait, retryhttp.HandlerFunc(h.retry))
	g.PushBack(retryhttp.AfterPlanTimeout, retryhttp.HandlerFunc(h.planTimeout))
	g.PushBack(retryhttp.AfterExecutionEnd, retryhttp.HandlerFunc(h.end))
}

// ExecutionID returns the correlation id assigned to e by the handlers
// Install adds, or the empty string if there is none.
func ExecutionID(e *request.Execution) string {
	id, _ := e.Value(idKey{}).(string)
	return id
}

type handler struct {
	log zerolog.Logger
}

func (h *handler) start(_ retryhttp.Event, e *request.Execution) {
	e.SetValue(idKey{}, uuid.NewString())
	h.log.Debug().
		Str("execution", ExecutionID(e)).
		Str("method", e.Plan.Method).
		Str("url", e.Plan.URL.Redacted()).
		Int("attempts", e.Backoff.Remaining()+1).
		Msg("execution start")
}

func (h *handler) attempt(_ retryhttp.Event, e *request.Execution) {
	evt := h.log.Debug().
		Str("execution", ExecutionID(e)).
		Int("attempt", e.Attempt)
	if e.Response != nil {
		evt = evt.Int("status", e.StatusCode())
	}
	if e.Err != nil {
		evt = evt.Err(e.Err).Stringer("category", transient.Categorize(e.Err))
	}
	evt.Msg("attempt complete")
}

func (h *handler) retry(_ retryhttp.Event, e *request.Execution) {
	h.log.Info().
		Str("execution", ExecutionID(e)).
		Int("attempt", e.Attempt).
		Int("remaining", e.Backoff.Remaining()+1).
		Dur("next_delay", e.Backoff.Delay()).
		Dur("wait", e.Wait).
		Msg("retrying")
}

func (h *handler) planTimeout(_ retryhttp.Event, e *request.Execution) {
	h.log.Warn().
		Str("execution", ExecutionID(e)).
		Int("attempt", e.Attempt).
		Msg("plan deadline exceeded")
}

func (h *handler) end(_ retryhttp.Event, e *request.Execution) {
	var evt *zerolog.Event
	if e.Err != nil {
		evt = h.log.Warn().Err(e.Err)
	} else {
		evt = h.log.Info().Int("status", e.StatusCode())
	}
	evt.Str("execution", ExecutionID(e)).
		Int("attempts", e.Attempt+1).
		Dur("duration", e.Duration()).
		Msg("execution end")
}
