// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the request-side types of the retry loop: Plan
(a replayable logical request), Execution (the state of one retry loop),
and Replicate (the rebuilding of an outbound request for another
attempt).

A Plan is a stripped-down http.Request whose body is a byte slice, so
that every attempt can send the same bytes:

	p, err := request.NewPlan("GET", "https://example.com", nil)
	...
	e, err := client.Do(p)
	...

A Plan may carry a context. Cancelling it, or letting its deadline pass,
ends the whole retry loop, including any wait between attempts:

	p, err := request.NewPlanWithContext(ctx, "POST", "https://example.com/upload", body)

Existing http.Request values are converted with FromRequest. Between
attempts the client calls Replicate to rebuild the request it last sent.
The replica carries the same method, URL, protocol version, header
fields and body; nothing it holds is shared with the previous request.

An Execution is both the output of the client's Do method and the input
to the retry engine and to event handlers. It records the attempt
number, the current backoff state, the wait before the current attempt,
and the outcome of the most recent attempt.
*/
package request
