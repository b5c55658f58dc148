// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout chooses the timeout of each attempt in a retry loop.
//
// A Client consults its Policy once before the first attempt and once
// after every attempt it decides to retry, so a policy can lengthen
// the timeout when attempts keep timing out. Fixed gives every attempt
// the same timeout; Adaptive escalates after timeouts.
package timeout
