// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport errors from HTTP request
// attempts as transient (a retry may succeed) or not. The retry package
// uses it for the TransientErr decider, and the telemetry package uses
// Category names as the error.type metric attribute.
//
// Package transient depends only on the standard library.
package transient
