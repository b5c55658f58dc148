// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/retryhttp/request"
	"github.com/gogama/retryhttp/transient"
)

// A Decider judges whether the outcome of the most recent attempt in
// an execution warrants a retry. It does not consider the attempt
// budget; the Engine does that.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It also provides the logical
// composition methods And and Or.
//
// Every DeciderFunc must be safe for concurrent use by multiple
// goroutines.
type DeciderFunc func(e *request.Execution) bool

var (
	// DefaultDecider retries every transport failure and every client
	// (4xx) or server (5xx) error status. 1xx, 2xx and 3xx responses
	// are final.
	//
	// Retrying 4xx responses repeats requests the server rejected as
	// malformed or unauthorized. Use a narrower decider, for example
	// ServerError.Or(StatusCode(429)).Or(AnyErr), when that is not
	// wanted.
	DefaultDecider = AnyErr.Or(ClientError).Or(ServerError)

	// AnyErr retries every attempt which ended in a transport failure,
	// whatever the cause.
	AnyErr DeciderFunc = anyErr

	// TransientErr retries an attempt whose transport failure is
	// transient according to transient.Categorize.
	TransientErr DeciderFunc = transientErr

	// ClientError retries responses with a 4xx status.
	ClientError = StatusClass(4)

	// ServerError retries responses with a 5xx status.
	ServerError = StatusClass(5)
)

// Decide returns f(e).
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And composes two deciders into one which returns true only if both
// do. g is not evaluated if f returns false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two deciders into one which returns true if either does.
// g is not evaluated if f returns true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// StatusClass constructs a decider which retries responses whose status
// code is in class c, i.e. in [c*100, c*100+99]. It panics unless c is
// between 1 and 5.
//
// The decider returns false if the attempt produced no response.
func StatusClass(c int) DeciderFunc {
	if c < 1 || c > 5 {
		panic("retryhttp/retry: status class must be between 1 and 5")
	}
	return func(e *request.Execution) bool {
		s := e.StatusCode()
		return e.Err == nil && s/100 == c
	}
}

// StatusCode constructs a decider which retries responses whose status
// code is one of ss.
func StatusCode(ss ...int) DeciderFunc {
	set := make(map[int]struct{}, len(ss))
	for _, s := range ss {
		set[s] = struct{}{}
	}
	return func(e *request.Execution) bool {
		if e.Err != nil || e.Response == nil {
			return false
		}
		_, ok := set[e.StatusCode()]
		return ok
	}
}

// Before constructs a decider allowing retries until d has elapsed
// since the start of the plan execution. Compose it with And.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// Never is a decider which never retries.
var Never DeciderFunc = func(_ *request.Execution) bool { return false }

func anyErr(e *request.Execution) bool {
	return e.Err != nil
}

func transientErr(e *request.Execution) bool {
	return transient.Transient(e.Err)
}
