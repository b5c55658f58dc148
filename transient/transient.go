// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize. Every category except Not is transient.
type Category int

const (
	// Not is the category of nil errors, of cancellations, and of any
	// error a retry is unlikely to cure.
	Not Category = iota
	// Timeout is a client-side timeout: the error or one of its causes
	// has a Timeout method reporting true. This includes
	// context.DeadlineExceeded.
	Timeout
	// ConnRefused is syscall.ECONNREFUSED. The remote service may be
	// restarting and not yet listening.
	ConnRefused
	// ConnReset is syscall.ECONNRESET, typically a server or load
	// balancer dropping an active connection.
	ConnReset
	// UnexpectedEOF is the server closing the connection mid-exchange,
	// reported as io.ErrUnexpectedEOF or io.EOF.
	UnexpectedEOF
	// DNSTemporary is a *net.DNSError whose IsTemporary flag is set.
	DNSTemporary
)

var categoryNames = []string{
	"not_transient",
	"timeout",
	"conn_refused",
	"conn_reset",
	"unexpected_eof",
	"dns_temporary",
}

// String returns a short snake_case name for the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err, looking through
// wrapped causes. Cancellation by the caller (context.Canceled) is
// never transient, even when wrapped together with a timeout.
//
// Categorize deliberately ignores Temporary methods, whose meaning is
// not well defined.
func Categorize(err error) Category {
	if err == nil || errors.Is(err, context.Canceled) {
		return Not
	}
	var t hasTimeout
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return UnexpectedEOF
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary {
		return DNSTemporary
	}
	return Not
}

// Transient reports whether err falls in any category other than Not.
func Transient(err error) bool {
	return Categorize(err) != Not
}

type hasTimeout interface {
	Timeout() bool
}
