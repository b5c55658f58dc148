// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryhttp

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gogama/retryhttp/backoff"
	"github.com/gogama/retryhttp/request"
	"github.com/gogama/retryhttp/retry"
	"github.com/gogama/retryhttp/timeout"
)

// Transport is an http.RoundTripper middleware which retries round
// trips made through a base RoundTripper. It lets code written against
// a plain http.Client gain retries:
//
//	hc := &http.Client{
//		Transport: &retryhttp.Transport{Backoff: backoff.New(backoff.WithAttempts(3))},
//	}
//
// Each RoundTrip buffers the request body, runs the same retry loop as
// Client.Do over Base, and returns the response of the final attempt
// with its buffered body. Fields have the same meaning and defaults as
// the same-named fields of Client.
//
// Transport is safe for concurrent use by multiple goroutines.
type Transport struct {
	// Base is the RoundTripper which performs each attempt. If nil,
	// http.DefaultTransport is used.
	Base http.RoundTripper

	// Backoff is the root backoff state of every request. The zero value
	// is replaced with backoff.Default().
	Backoff backoff.State

	// Engine decides whether to retry. If nil, retry.DefaultEngine is used.
	Engine *retry.Engine

	// AttemptTimeout bounds each attempt when Timeouts is nil. Zero or
	// negative means no timeout.
	AttemptTimeout time.Duration

	// Timeouts chooses the timeout of each attempt. It takes precedence
	// over AttemptTimeout.
	Timeouts timeout.Policy

	// Handlers receives the events of every request. May be nil.
	Handlers *HandlerGroup
}

// RoundTrip implements http.RoundTripper.
//
// As the RoundTripper contract requires, the request is not modified
// and its body is always closed. A non-nil error is returned only if
// the final attempt failed; a final error status is returned as a
// response.
func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	p, err := request.FromRequest(r)
	if err != nil {
		if r.Body != nil {
			_ = r.Body.Close()
		}
		return nil, err
	}
	c := Client{
		HTTPDoer:       roundTripDoer{t.base()},
		Backoff:        t.Backoff,
		Engine:         t.Engine,
		AttemptTimeout: t.AttemptTimeout,
		Timeouts:       t.Timeouts,
		Handlers:       t.Handlers,
	}
	e, err := c.Do(p)
	if err != nil {
		return nil, err
	}
	resp := e.Response
	resp.Body = io.NopCloser(bytes.NewReader(e.Body))
	resp.ContentLength = int64(len(e.Body))
	resp.Request = r
	return resp, nil
}

// CloseIdleConnections invokes the same method on Base, if it has one.
func (t *Transport) CloseIdleConnections() {
	type idleCloser interface {
		CloseIdleConnections()
	}
	if ic, ok := t.base().(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

type roundTripDoer struct {
	rt http.RoundTripper
}

func (d roundTripDoer) Do(r *http.Request) (*http.Response, error) {
	return d.rt.RoundTrip(r)
}
