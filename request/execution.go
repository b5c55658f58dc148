// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/retryhttp/backoff"
	"github.com/gogama/retryhttp/transient"
)

// An Execution is the state of a single Plan execution.
//
// The client creates one Execution per plan, updates it as attempts are
// made and retries decided, and returns it when the execution ends. The
// same Execution is handed to the retry engine and to event handlers.
// Those should treat its exported fields as read-only, with the
// exception of the outbound Request during the BeforeAttempt event.
type Execution struct {
	// Plan is the plan being executed. It is never nil.
	Plan *Plan
	// Start is the time the execution started.
	Start time.Time
	// End is the time the execution ended, or the zero time while it
	// is in flight.
	End time.Time
	// Attempt is the zero-based number of the current attempt. After
	// the execution ends it is the number of the final attempt, so
	// three attempts in total leave Attempt equal to 2.
	Attempt int
	// AttemptTimeouts counts the attempts which ended in a timeout.
	AttemptTimeouts int
	// Backoff is the backoff state which governs the next retry
	// decision. It starts as the client's root state and is replaced
	// by its successor each time a retry is decided.
	Backoff backoff.State
	// Wait is the realized wait, jitter included, before the current
	// attempt. It is zero for the initial attempt.
	Wait time.Duration
	// Request is the HTTP request of the current or most recent
	// attempt.
	Request *http.Request
	// Response is the HTTP response received by the most recent
	// attempt. It is nil if the attempt failed in transport or is
	// still underway.
	Response *http.Response
	// Err is the error of the most recent attempt, or nil. Whenever
	// Err is non-nil it is a *url.Error.
	//
	// Once the execution has ended, Err is the same error returned by
	// the client.
	Err error
	// Body is the fully-read response body of the most recent attempt.
	// Both Body and Err may be non-nil if reading the body failed
	// part way through; Body is only valid if Err is nil.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the most recent response, or 0
// if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the header of the most recent response, or nil if
// there is none.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}
	return e.Response.Header
}

// Duration returns the elapsed time of the execution: zero if it has
// not started, End minus Start if it has ended, and the time since
// Start otherwise.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return 0
	} else if !e.Ended() {
		return time.Since(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err is a timeout, either of the most recent
// attempt or of the whole plan.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue stores an arbitrary value in the execution under key. Keys
// follow the rules of context.WithValue: they must be comparable and
// should be of an unexported type to avoid collisions.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the value stored under key by SetValue, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	if e.data == nil {
		return nil
	}
	return e.data.Value(key)
}
