// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides, after each attempt of an HTTP request plan
// execution, whether another attempt should be made and how long to
// wait before making it.
//
// The Engine combines a backoff.State, which holds the attempt budget
// and delay schedule, with a Decider, which judges the outcome of the
// attempt. Deciders compose:
//
//     engine := &retry.Engine{
//         Decider: retry.ServerError.
//             Or(retry.StatusCode(429)).
//             Or(retry.TransientErr).
//             And(retry.Before(30 * time.Second)),
//     }
//
// The zero Engine uses DefaultDecider, which retries every transport
// failure and every 4xx or 5xx response.
package retry
