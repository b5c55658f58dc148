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

	"golang.org/x/net/http/httpguts"
)

// ErrBodyNotReplayable is returned by Replicate when the request body
// is a one-shot stream that cannot be produced a second time. Use
// Buffer to make such a request replayable.
var ErrBodyNotReplayable = errors.New("retryhttp/request: body is not replayable")

// A ReplicationError reports why a request could not be rebuilt for a
// retry. Retrying would fail the same way, so the retry loop gives up.
type ReplicationError struct {
	// Field names the part of the request which was rejected, e.g.
	// "method", "header", or "body".
	Field string
	// Detail describes the rejected value.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ReplicationError) Error() string {
	msg := "retryhttp/request: cannot replicate " + e.Field
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReplicationError) Unwrap() error {
	return e.Err
}

// Replicate returns a copy of r, bound to ctx, suitable for sending as
// a new attempt after r has been sent and its body consumed.
//
// The copy has the same method, URL, protocol version, header fields
// (every value of every field, in order), host, and body content.
// Nothing reference-typed is shared with r, so changing the copy never
// affects r.
//
// The body is reproduced by calling r.GetBody. If r has a body but no
// GetBody, Replicate fails with ErrBodyNotReplayable rather than
// sending an empty body. Invalid methods, header names and header
// values are rejected with a *ReplicationError.
func Replicate(ctx context.Context, r *http.Request) (*http.Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, &ReplicationError{Field: "method", Detail: fmt.Sprintf("%q", method)}
	}
	if r.URL == nil {
		return nil, &ReplicationError{Field: "url", Detail: "nil"}
	}
	for name, values := range r.Header {
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, &ReplicationError{Field: "header", Detail: fmt.Sprintf("invalid name %q", name)}
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, &ReplicationError{Field: "header", Detail: fmt.Sprintf("invalid value for %q", name)}
			}
		}
	}

	r2 := &http.Request{
		Method:           method,
		URL:              cloneURL(r.URL),
		Proto:            r.Proto,
		ProtoMajor:       r.ProtoMajor,
		ProtoMinor:       r.ProtoMinor,
		Header:           r.Header.Clone(),
		ContentLength:    r.ContentLength,
		TransferEncoding: append([]string(nil), r.TransferEncoding...),
		Close:            r.Close,
		Host:             r.Host,
		Trailer:          r.Trailer.Clone(),
		GetBody:          r.GetBody,
	}
	if r2.Header == nil {
		r2.Header = make(http.Header)
	}

	switch {
	case r.GetBody != nil:
		body, err := r.GetBody()
		if err != nil {
			return nil, &ReplicationError{Field: "body", Err: err}
		}
		r2.Body = body
	case r.Body == nil || r.Body == http.NoBody:
		r2.Body = r.Body
	default:
		return nil, ErrBodyNotReplayable
	}

	return r2.WithContext(ctx), nil
}

// Buffer makes r replayable by reading its body into memory and
// installing a GetBody function which serves the buffered bytes. It is
// a no-op if r already has GetBody or has no body.
//
// If reading the body fails, r's body is closed and the error returned.
func Buffer(r *http.Request) error {
	if r.GetBody != nil || r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	b, err := BodyBytes(r.Body)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		r.Body = http.NoBody
		r.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
		r.ContentLength = 0
		return nil
	}
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(b)), nil
	}
	r.Body, _ = r.GetBody()
	r.ContentLength = int64(len(b))
	return nil
}

func cloneURL(u *urlpkg.URL) *urlpkg.URL {
	u2 := new(urlpkg.URL)
	*u2 = *u
	if u.User != nil {
		u2.User = new(urlpkg.Userinfo)
		*u2.User = *u.User
	}
	return u2
}
