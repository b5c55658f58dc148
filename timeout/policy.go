// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/retryhttp/request"
)

// A Policy sets the timeout of each attempt within a plan execution.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout for the next attempt of e. Zero means
	// the attempt is bounded only by the plan's context.
	//
	// Before the first attempt e holds no outcome. Before a retry e
	// holds the outcome of the attempt being retried, so e.Timeout()
	// reports whether that attempt timed out and e.AttemptTimeouts
	// counts it.
	Timeout(e *request.Execution) time.Duration
}

// None is a policy which sets no attempt timeout.
var None Policy = Fixed(0)

// Fixed constructs a policy giving every attempt timeout d. A zero d
// sets no timeout. It panics if d is negative.
func Fixed(d time.Duration) Policy {
	if d < 0 {
		panic("retryhttp/timeout: timeout may not be negative")
	}
	return policy{d}
}

// Adaptive constructs a policy which lengthens the timeout after an
// attempt times out.
//
// The first attempt, and any retry of an attempt which did not time
// out, gets timeout usual. A retry of an attempt which timed out gets
// after[n-1], where n is the number of timeouts so far in the
// execution, or the last element of after once n exceeds len(after).
// With
//
//	p := Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// attempts normally time out after 200ms; the retry after the first
// timeout allows 1s and retries after later timeouts allow 10s.
//
// Adaptive panics if any timeout is negative.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make(policy, 0, 1+len(after))
	for _, d := range append([]time.Duration{usual}, after...) {
		if d < 0 {
			panic("retryhttp/timeout: timeout may not be negative")
		}
		p = append(p, d)
	}
	return p
}

// policy[0] is the usual timeout and policy[i] the timeout after the
// i-th attempt timeout.
type policy []time.Duration

func (p policy) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return p[0]
	}
	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}
	return p[i]
}
