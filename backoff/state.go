// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package backoff

import (
	"math"
	"time"
)

const (
	// DefaultAttempts is the total number of attempts allowed by
	// Default, including the initial attempt.
	DefaultAttempts = 10
	// DefaultDelay is the delay Default waits before the first retry.
	DefaultDelay = 100 * time.Millisecond
	// DefaultMultiplier is the growth factor used by Default.
	DefaultMultiplier = 2.0

	maxDuration = time.Duration(math.MaxInt64)
)

// A State describes the remaining retry budget and the delay to wait
// before the next attempt.
//
// The zero value is not a usable State: use New or Default. A State is
// immutable and may be freely copied and shared between goroutines.
type State struct {
	remaining  int
	delay      time.Duration
	multiplier float64
	maxDelay   time.Duration
	jitter     Jitter
}

// An Option configures a State under construction by New.
type Option func(*State)

// Default returns the default root State: 10 attempts, 100 ms initial
// delay, multiplier 2.0, no delay ceiling and no jitter.
func Default() State {
	return New()
}

// New constructs a root State, starting from the Default settings and
// applying opts in order. An initial delay above the ceiling is clamped
// to the ceiling.
func New(opts ...Option) State {
	s := State{
		remaining:  DefaultAttempts - 1,
		delay:      DefaultDelay,
		multiplier: DefaultMultiplier,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.maxDelay > 0 && s.delay > s.maxDelay {
		s.delay = s.maxDelay
	}
	return s
}

// WithAttempts sets the total number of attempts, counting the initial
// attempt. A value of 1 disables retries. It panics if n is less than 1.
func WithAttempts(n int) Option {
	if n < 1 {
		panic("retryhttp/backoff: attempts must be positive")
	}
	return func(s *State) {
		s.remaining = n - 1
	}
}

// WithDelay sets the delay to wait before the first retry.
func WithDelay(d time.Duration) Option {
	if d < 0 {
		panic("retryhttp/backoff: delay may not be negative")
	}
	return func(s *State) {
		s.delay = d
	}
}

// WithMultiplier sets the factor by which the delay grows after each
// retry. Values below 1 would shrink the delay and are rejected.
func WithMultiplier(m float64) Option {
	if math.IsNaN(m) || math.IsInf(m, 0) || m < 1 {
		panic("retryhttp/backoff: multiplier must be a finite value of at least 1")
	}
	return func(s *State) {
		s.multiplier = m
	}
}

// WithMaxDelay sets a ceiling on the delay. Zero removes the ceiling.
func WithMaxDelay(d time.Duration) Option {
	if d < 0 {
		panic("retryhttp/backoff: max delay may not be negative")
	}
	return func(s *State) {
		s.maxDelay = d
	}
}

// WithJitter sets the jitter strategy applied by EffectiveWait. A nil
// jitter disables jitter.
func WithJitter(j Jitter) Option {
	return func(s *State) {
		s.jitter = j
	}
}

// Remaining returns the number of attempts left, not counting the one
// most recently completed.
func (s State) Remaining() int {
	return s.remaining
}

// Exhausted reports whether the attempt budget is used up.
func (s State) Exhausted() bool {
	return s.remaining == 0
}

// Delay returns the base delay to wait before the next attempt.
func (s State) Delay() time.Duration {
	return s.delay
}

// Multiplier returns the delay growth factor.
func (s State) Multiplier() float64 {
	return s.multiplier
}

// MaxDelay returns the delay ceiling and true, or zero and false if
// there is no ceiling.
func (s State) MaxDelay() (time.Duration, bool) {
	return s.maxDelay, s.maxDelay > 0
}

// Jitter returns the jitter strategy, or nil if none is configured.
func (s State) Jitter() Jitter {
	return s.jitter
}

// IsZero reports whether s is the zero State, i.e. was not produced by
// New or Advance.
func (s State) IsZero() bool {
	return s.multiplier == 0
}

// Advance returns the successor of s: one fewer remaining attempt and
// the delay multiplied by the multiplier, clamped to the ceiling.
//
// Advance panics if s is exhausted. Callers should consult the retry
// engine rather than advancing a State directly.
func (s State) Advance() State {
	if s.remaining <= 0 {
		panic("retryhttp/backoff: advance past exhausted budget")
	}
	next := s
	next.remaining--
	next.delay = scale(s.delay, s.multiplier)
	if s.maxDelay > 0 && next.delay > s.maxDelay {
		next.delay = s.maxDelay
	}
	return next
}

// EffectiveWait returns the duration to actually sleep before the
// attempt governed by s: the delay with the jitter strategy applied.
// The State itself is not changed.
//
// If r is nil, ProcessRand is used.
func (s State) EffectiveWait(r Rand) time.Duration {
	if s.jitter == nil {
		return s.delay
	}
	if r == nil {
		r = ProcessRand
	}
	return s.jitter.apply(s.delay, r)
}

// scale multiplies d by f, saturating at the largest representable
// duration.
func scale(d time.Duration, f float64) time.Duration {
	x := float64(d) * f
	if x >= float64(maxDuration) {
		return maxDuration
	}
	return time.Duration(x)
}
