// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package retryhttp provides retry middleware for outbound HTTP requests.
Failed requests, and requests answered with an error status, are sent
again with exponential backoff, optional jitter, and a bounded attempt
budget.

Create a Client to begin making requests.

	client := &retryhttp.Client{}
	e, err := client.Get("https://www.example.com")
	...
	e, err := client.Post("https://www.example.com/upload",
		"application/json", &buf)

The root backoff state sets the attempt budget and delay progression:

	client := &retryhttp.Client{
		Backoff: backoff.New(
			backoff.WithAttempts(5),
			backoff.WithDelay(250*time.Millisecond),
			backoff.WithMaxDelay(5*time.Second),
			backoff.WithJitter(backoff.PercentJitter(0.2)),
		),
	}

The retry engine decides which outcomes are retried. By default every
transport failure and every 4xx or 5xx status is retried. To retry only
server errors and transient transport failures:

	client := &retryhttp.Client{
		Engine: &retry.Engine{
			Decider: retry.ServerError.Or(retry.TransientErr),
		},
	}

For control over how attempts are sent, use a custom HTTPDoer, such as
an http.Client with its own transport. To add retries to existing code
built on http.Client, use Transport as its RoundTripper instead.

To hook into the retry loop, install a handler into the appropriate
handler chain. Packages logging and telemetry install ready-made
handlers:

	handlers := &retryhttp.HandlerGroup{}
	handlers.PushBack(retryhttp.BeforeRetryWait, retryhttp.HandlerFunc(
		func(_ retryhttp.Event, e *request.Execution) {
			log.Printf("attempt %d failed, waiting %s", e.Attempt, e.Wait)
		}),
	)
	client := &retryhttp.Client{
		Handlers: handlers,
	}
*/
package retryhttp
