// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const nilCtxMsg = "retryhttp/request: nil context"

// A Plan is a logical HTTP request which may be sent several times.
//
// Unlike an http.Request, whose body is a one-shot stream, a Plan holds
// its body as a byte slice so that every attempt can send the same
// bytes. Field names follow http.Request.
type Plan struct {
	// Method is the HTTP method. An empty string means GET.
	Method string
	// URL is the target URL.
	URL *urlpkg.URL
	// Header holds the request header fields. Repeated fields keep
	// their order.
	Header http.Header
	// Body is the buffered request body. Nil or empty means no body.
	Body []byte
	// TransferEncoding lists transfer encodings, outermost first.
	TransferEncoding []string
	// Close asks the transport to close the connection after each
	// attempt.
	Close bool
	// Host optionally overrides the Host header. If empty, URL.Host is
	// sent.
	Host string

	ctx context.Context
}

// NewPlan calls NewPlanWithContext with the background context.
func NewPlan(method, url string, body interface{}) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext returns a new Plan given a method, URL, and
// optional body.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser. Readers are read to the end and
// buffered; an io.ReadCloser is closed afterward.
func NewPlanWithContext(ctx context.Context, method, url string, body interface{}) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("retryhttp/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = strings.TrimSuffix(u.Host, ":")
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// FromRequest converts an outbound http.Request into a Plan with the
// same method, URL, header, host and body, and the request's context.
//
// The request body, if any, is read to the end and closed. The header
// and URL are cloned so the Plan does not alias r.
func FromRequest(r *http.Request) (*Plan, error) {
	if r.URL == nil {
		return nil, errors.New("retryhttp/request: nil URL")
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("retryhttp/request: invalid method %q", method)
	}
	var b []byte
	var err error
	switch {
	case r.GetBody != nil:
		var rc io.ReadCloser
		if rc, err = r.GetBody(); err == nil {
			b, err = BodyBytes(rc)
		}
		if r.Body != nil {
			_ = r.Body.Close()
		}
	case r.Body != nil && r.Body != http.NoBody:
		b, err = BodyBytes(r.Body)
	}
	if err != nil {
		return nil, err
	}
	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	host := r.Host
	if host == "" {
		host = r.URL.Host
	}
	return &Plan{
		ctx:              r.Context(),
		Method:           method,
		URL:              cloneURL(r.URL),
		Header:           header,
		Body:             b,
		TransferEncoding: append([]string(nil), r.TransferEncoding...),
		Close:            r.Close,
		Host:             host,
	}, nil
}

// Context returns the plan's context, which controls cancellation of
// the whole plan execution. It is never nil.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
//
// The context bounds every attempt, every event handler, and every wait
// between attempts.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// ToRequest creates the HTTP/1.1 request for the first attempt of the
// plan, bound to ctx. The request has GetBody set so that it can be
// replicated for later attempts.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := &http.Request{
		Method:           p.Method,
		URL:              p.URL,
		Proto:            "HTTP/1.1",
		ProtoMajor:       1,
		ProtoMinor:       1,
		Header:           p.Header,
		TransferEncoding: p.TransferEncoding,
		Close:            p.Close,
		Host:             p.Host,
	}
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if len(p.Body) > 0 {
		body := p.Body
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		r.Body, _ = r.GetBody()
		r.ContentLength = int64(len(body))
	}
	return r.WithContext(ctx)
}

func validMethod(method string) bool {
	return len(method) > 0 && strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
