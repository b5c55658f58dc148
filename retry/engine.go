// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/retryhttp/backoff"
	"github.com/gogama/retryhttp/request"
)

// A Decision is the outcome of Engine.Decide.
type Decision struct {
	// Retry is true if another attempt should be made.
	Retry bool
	// Next is the backoff state which replaces the evaluated state for
	// the next attempt. It is the zero State if Retry is false.
	Next backoff.State
	// Wait is the time to wait before the next attempt. It is the
	// jittered delay of the evaluated state, so the first retry waits
	// the initial delay. It is zero if Retry is false.
	Wait time.Duration
}

// An Engine decides whether to retry after each attempt.
//
// The zero value is ready to use: it applies DefaultDecider and draws
// jitter from backoff.ProcessRand. An Engine holds no mutable state and
// is safe for concurrent use by multiple goroutines, provided its Rand
// is.
type Engine struct {
	// Decider judges whether an attempt outcome is retryable. If nil,
	// DefaultDecider is used.
	Decider Decider
	// Rand supplies jitter samples. If nil, backoff.ProcessRand is
	// used.
	Rand backoff.Rand
}

// DefaultEngine is the zero Engine.
var DefaultEngine = &Engine{}

// Decide examines the outcome of the attempt e just completed, under
// backoff state s, and decides whether to retry.
//
// If s has no remaining attempts the decision is to stop, whatever the
// outcome. Otherwise the decision is to retry if the Decider accepts
// the outcome, with s advanced to its successor and the wait drawn from
// s.EffectiveWait.
func (en *Engine) Decide(s backoff.State, e *request.Execution) Decision {
	if s.Exhausted() {
		return Decision{}
	}
	d := en.Decider
	if d == nil {
		d = DefaultDecider
	}
	if !d.Decide(e) {
		return Decision{}
	}
	r := en.Rand
	if r == nil {
		r = backoff.ProcessRand
	}
	return Decision{
		Retry: true,
		Next:  s.Advance(),
		Wait:  s.EffectiveWait(r),
	}
}
