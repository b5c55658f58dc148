// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package backoff provides the immutable exponential backoff state used
// by the retry engine to budget attempts and space them out in time.
//
// A State is a value. It is never modified in place: each retry
// produces a successor with one fewer remaining attempt and a delay
// advanced by the multiplier (and clamped to the optional ceiling).
//
//     s := backoff.New(
//         backoff.WithAttempts(5),
//         backoff.WithDelay(250*time.Millisecond),
//         backoff.WithMaxDelay(2*time.Second),
//         backoff.WithJitter(backoff.PercentJitter(0.2)),
//     )
//
// The stored delay sequence is deterministic. Jitter only perturbs the
// realized wait returned by EffectiveWait, and the randomness behind it
// comes from a Rand which callers may replace with a deterministic
// source in tests.
package backoff
