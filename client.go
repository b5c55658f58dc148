// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryhttp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/retryhttp/backoff"
	"github.com/gogama/retryhttp/request"
	"github.com/gogama/retryhttp/retry"
	"github.com/gogama/retryhttp/timeout"
)

// An HTTPDoer implements a Do method in the same manner as the Go
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the Go
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client is an HTTP client with retry support. Its zero value is a
// valid configuration.
//
// The zero value client uses http.DefaultClient as the HTTPDoer,
// backoff.Default() as the root backoff state, retry.DefaultEngine to
// make retry decisions, no attempt timeout, and no event handlers.
//
// Client is safe for concurrent use by multiple goroutines. Each call
// to Do runs its own sequential retry loop and shares no mutable state
// with other calls, except what the HTTPDoer and the installed handlers
// share themselves.
//
// On top of the features of its HTTPDoer, Client:
//
// • reads and buffers the whole response body of every attempt (the
// Execution.Body field);
//
// • retries attempts according to the retry engine, waiting with
// exponential backoff between attempts;
//
// • bounds each attempt with an optional timeout, and the whole loop
// with the plan's context; and
//
// • invokes handlers at designated points within the loop, allowing
// features such as logging and telemetry to be mixed in.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// Backoff is the root backoff state of every retry loop: the total
	// attempt budget and the delay progression.
	//
	// If Backoff is the zero State, backoff.Default() is used.
	Backoff backoff.State
	// Engine decides whether to retry after each attempt and how long
	// to wait.
	//
	// If Engine is nil, retry.DefaultEngine is used.
	Engine *retry.Engine
	// AttemptTimeout bounds each individual attempt, including reading
	// the response body. Zero means attempts are bounded only by the
	// plan's context.
	//
	// AttemptTimeout is ignored if Timeouts is non-nil.
	AttemptTimeout time.Duration
	// Timeouts chooses the timeout of each attempt, for example to
	// allow more time after an attempt times out.
	//
	// If Timeouts is nil, timeout.Fixed(AttemptTimeout) is used.
	Timeouts timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during the retry loop.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// Do executes an HTTP request plan and returns the outcome of the final
// attempt.
//
// The first attempt sends the request built from the plan. Whenever the
// retry engine decides to retry, the request last sent is replicated,
// the loop waits for the backoff delay, and the replica is sent. The
// loop ends when the engine decides to stop (the outcome is acceptable
// or the attempt budget is exhausted), when the plan's context is done,
// or when the request cannot be replicated.
//
// The returned Execution is never nil and describes the real outcome of
// the final attempt. A final 4xx or 5xx response is returned with a nil
// error; there is no synthetic "retries exhausted" error.
//
// Any returned error is a *url.Error, and the Err field of the
// Execution references the same error. An error occurs if the final
// attempt failed in transport, if reading its body failed, if the plan
// context ended the loop, or if replication failed. In the last case
// the Execution still holds the response of the final attempt.
//
// The url.Error's Timeout method, and the Execution's Timeout method,
// report true if the final attempt timed out or the plan's deadline
// passed.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	e := request.Execution{
		Plan:    p,
		Backoff: c.Backoff,
	}
	if e.Backoff.IsZero() {
		e.Backoff = backoff.Default()
	}

	doer := c.doer()

	engine := c.Engine
	if engine == nil {
		engine = retry.DefaultEngine
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	timeouts := c.Timeouts
	if timeouts == nil {
		timeouts = timeout.None
		if c.AttemptTimeout > 0 {
			timeouts = timeout.Fixed(c.AttemptTimeout)
		}
	}

	ctx := p.Context()
	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()
	next := p.ToRequest(ctx)
	attemptTimeout := timeouts.Timeout(&e)

	for {
		if err := ctx.Err(); err != nil {
			e.Err = urlErrorWrap(p, err)
			if errors.Is(err, context.DeadlineExceeded) {
				handlers.run(AfterPlanTimeout, &e)
			}
			break
		}

		sendAndReceive(p, &e, next, attemptTimeout, doer, handlers)
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, &e)
		}
		handlers.run(AfterAttempt, &e)

		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				handlers.run(AfterPlanTimeout, &e)
			}
			break
		}

		d := engine.Decide(e.Backoff, &e)
		if !d.Retry {
			break
		}

		var err error
		next, err = request.Replicate(ctx, e.Request)
		if err != nil {
			e.Err = urlErrorWrap(p, err)
			break
		}

		attemptTimeout = timeouts.Timeout(&e)
		e.Backoff = d.Next
		e.Wait = d.Wait
		handlers.run(BeforeRetryWait, &e)

		if !sleep(ctx, d.Wait) {
			err = ctx.Err()
			e.Response = nil
			e.Body = nil
			e.Err = urlErrorWrap(p, err)
			if errors.Is(err, context.DeadlineExceeded) {
				handlers.run(AfterPlanTimeout, &e)
			}
			break
		}

		e.Response = nil
		e.Err = nil
		e.Body = nil
		e.Attempt++
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return &e, e.Err
}

func sendAndReceive(p *request.Plan, e *request.Execution, r *http.Request, limit time.Duration, doer HTTPDoer, handlers *HandlerGroup) {
	ctx, cancel := attemptContext(p.Context(), limit)
	defer cancel()
	e.Request = r.WithContext(ctx)
	handlers.run(BeforeAttempt, e)
	resp, err := doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
		return
	}
	e.Response = resp
	readBody(p, e, handlers)
}

func attemptContext(parent context.Context, limit time.Duration) (context.Context, context.CancelFunc) {
	if limit > 0 {
		return context.WithTimeout(parent, limit)
	}
	return context.WithCancel(parent)
}

func readBody(p *request.Plan, e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
	}
}

// sleep waits for d or until ctx is done, whichever comes first. It
// returns false if ctx ended the wait.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Get(url string) (*request.Execution, error) {
	return Get(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.BodyBytes, namely: string; []byte;
// io.Reader; and io.ReadCloser.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(c, url, contentType, body)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer, if it has one.
func (c *Client) CloseIdleConnections() {
	type idleCloser interface {
		CloseIdleConnections()
	}
	if ic, ok := c.doer().(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
