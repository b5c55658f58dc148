// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogama/retryhttp"
	"github.com/gogama/retryhttp/backoff"
	"github.com/gogama/retryhttp/logging"
	"github.com/gogama/retryhttp/retry"
	"github.com/gogama/retryhttp/timeout"
	"github.com/rs/zerolog"
)

// BackoffState returns the root backoff state described by c.Backoff.
// c must be valid.
func (c *Config) BackoffState() backoff.State {
	opts := []backoff.Option{
		backoff.WithAttempts(c.Backoff.Attempts),
		backoff.WithDelay(c.Backoff.Delay),
		backoff.WithMultiplier(c.Backoff.Multiplier),
		backoff.WithMaxDelay(c.Backoff.MaxDelay),
	}
	switch c.Backoff.Jitter.Mode {
	case JitterAbsolute:
		opts = append(opts, backoff.WithJitter(backoff.AbsoluteJitter(c.Backoff.Jitter.Absolute)))
	case JitterPercent:
		opts = append(opts, backoff.WithJitter(backoff.PercentJitter(c.Backoff.Jitter.Percent)))
	}
	return backoff.New(opts...)
}

// Decider returns the retry decider described by c.Retry. With no
// statuses and errors set to none it is retry.Never.
func (c *Config) Decider() (retry.DeciderFunc, error) {
	var d retry.DeciderFunc
	or := func(g retry.DeciderFunc) {
		if d == nil {
			d = g
		} else {
			d = d.Or(g)
		}
	}

	switch c.Retry.Errors {
	case ErrorsAll:
		or(retry.AnyErr)
	case ErrorsTransient:
		or(retry.TransientErr)
	case ErrorsNone:
	default:
		return nil, fmt.Errorf("unknown retry.errors mode %q", c.Retry.Errors)
	}

	var codes []int
	for _, s := range c.Retry.Statuses {
		if class, ok := strings.CutSuffix(s, "xx"); ok {
			n, err := strconv.Atoi(class)
			if err != nil || n < 1 || n > 5 {
				return nil, fmt.Errorf("invalid status class %q", s)
			}
			or(retry.StatusClass(n))
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 100 || n > 599 {
			return nil, fmt.Errorf("invalid status code %q", s)
		}
		codes = append(codes, n)
	}
	if len(codes) > 0 {
		or(retry.StatusCode(codes...))
	}

	if d == nil {
		return retry.Never, nil
	}
	return d, nil
}

// Engine returns a retry engine using c.Decider.
func (c *Config) Engine() (*retry.Engine, error) {
	d, err := c.Decider()
	if err != nil {
		return nil, fmt.Errorf("failed to build decider: %w", err)
	}
	return &retry.Engine{Decider: d}, nil
}

// Timeouts returns the attempt timeout policy described by c.Attempt.
func (c *Config) Timeouts() timeout.Policy {
	if len(c.Attempt.Escalate) == 0 {
		return timeout.Fixed(c.Attempt.Timeout)
	}
	return timeout.Adaptive(c.Attempt.Timeout, c.Attempt.Escalate...)
}

// Logger returns a logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	return logging.New(c.Log.Level, c.Log.Pretty, w)
}

// Client returns a retry client sending through doer, configured by c.
// If handlers is nil, the client has none.
func (c *Config) Client(doer retryhttp.HTTPDoer, handlers *retryhttp.HandlerGroup) (*retryhttp.Client, error) {
	en, err := c.Engine()
	if err != nil {
		return nil, err
	}
	return &retryhttp.Client{
		HTTPDoer: doer,
		Backoff:  c.BackoffState(),
		Engine:   en,
		Timeouts: c.Timeouts(),
		Handlers: handlers,
	}, nil
}
