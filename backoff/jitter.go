// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package backoff

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// A Jitter randomly lengthens a backoff delay so that many clients
// backing off from the same failure do not retry in lockstep.
//
// The two implementations are AbsoluteJitter and PercentJitter.
type Jitter interface {
	fmt.Stringer
	apply(d time.Duration, r Rand) time.Duration
}

// A Rand supplies the uniform samples used to compute jitter.
//
// *rand.Rand from math/rand/v2 satisfies Rand. A Rand shared between
// retry loops must be safe for concurrent use; *rand.Rand is not, so
// give each loop its own or use ProcessRand.
type Rand interface {
	// Int64N returns a uniform sample in [0, n). n is always positive.
	Int64N(n int64) int64
	// Float64 returns a uniform sample in [0.0, 1.0).
	Float64() float64
}

// ProcessRand is the process-wide Rand backed by the top-level
// functions of math/rand/v2. It is safe for concurrent use.
var ProcessRand Rand = processRand{}

type processRand struct{}

func (processRand) Int64N(n int64) int64 {
	return rand.Int64N(n)
}

func (processRand) Float64() float64 {
	return rand.Float64()
}

// AbsoluteJitter adds a uniformly sampled duration in [0, j) to the
// delay. It panics if j is negative. Zero is allowed and adds nothing.
func AbsoluteJitter(j time.Duration) Jitter {
	if j < 0 {
		panic("retryhttp/backoff: jitter may not be negative")
	}
	return absoluteJitter(j)
}

// PercentJitter scales the delay by 1+u where u is uniformly sampled
// from [0, p). It panics unless p is in [0, 1).
func PercentJitter(p float64) Jitter {
	if math.IsNaN(p) || p < 0 || p >= 1 {
		panic("retryhttp/backoff: jitter percentage must be in [0, 1)")
	}
	return percentJitter(p)
}

type absoluteJitter time.Duration

func (j absoluteJitter) apply(d time.Duration, r Rand) time.Duration {
	if j <= 0 {
		return d
	}
	x := time.Duration(r.Int64N(int64(j)))
	if d > maxDuration-x {
		return maxDuration
	}
	return d + x
}

func (j absoluteJitter) String() string {
	return "+[0," + time.Duration(j).String() + ")"
}

type percentJitter float64

func (j percentJitter) apply(d time.Duration, r Rand) time.Duration {
	if j <= 0 {
		return d
	}
	return scale(d, 1+r.Float64()*float64(j))
}

func (j percentJitter) String() string {
	return fmt.Sprintf("x[1,%g)", 1+float64(j))
}
