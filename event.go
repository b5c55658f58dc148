// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryhttp

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client or Transport to observe
// or extend the retry loop.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// retry loop starts.
	//
	// When BeforeExecutionStart fires, the only execution fields set
	// are the plan and the root backoff state.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// attempt.
	//
	// When BeforeAttempt fires, the execution's request field is set
	// to the HTTP request that WILL BE sent after all BeforeAttempt
	// handlers have finished. Handlers may replace or modify it. A
	// modified request is carried over to later attempts, because each
	// retry replicates the request last sent.
	//
	// On the initial attempt the request's URL and Header reference
	// the plan's, so handlers should clone them before making changes.
	BeforeAttempt
	// BeforeReadBody identifies the event that occurs after an attempt
	// has produced an HTTP response, but before the response body is
	// read and buffered.
	//
	// BeforeReadBody never fires if the attempt ended in a transport
	// error, but always fires if a response is received, whatever its
	// status code.
	BeforeReadBody
	// AfterAttemptTimeout identifies the event that occurs after an
	// attempt failed because of a timeout.
	//
	// When AfterAttemptTimeout fires, the execution's error field is
	// set to the timeout error and its attempt timeout counter has been
	// incremented.
	AfterAttemptTimeout
	// AfterAttempt identifies the event that occurs after every
	// attempt, successful or not, and before the retry decision.
	//
	// When AfterAttempt fires, the execution's response field or its
	// error field or both are non-nil. Both are only non-nil if reading
	// the response body failed.
	AfterAttempt
	// BeforeRetryWait identifies the event that occurs after the retry
	// engine has decided to retry, and before the wait.
	//
	// When BeforeRetryWait fires, the execution's backoff field holds
	// the advanced state for the next attempt and its wait field holds
	// the wait about to begin. The outcome fields still describe the
	// attempt just completed.
	BeforeRetryWait
	// AfterPlanTimeout identifies the event that occurs after the plan
	// context's deadline is exceeded. The deadline may be detected at
	// the end of an attempt, during the wait between attempts, or
	// before an attempt starts.
	//
	// AfterPlanTimeout always fires after the AfterAttempt of the
	// attempt in progress, if any.
	AfterPlanTimeout
	// AfterExecutionEnd identifies the event that occurs after the
	// retry loop ends.
	//
	// When AfterExecutionEnd fires, the execution is in the state that
	// will be returned to the caller, with the end time set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"BeforeRetryWait",
	"AfterPlanTimeout",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// retry loop, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		BeforeReadBody,
		AfterAttemptTimeout,
		AfterAttempt,
		BeforeRetryWait,
		AfterPlanTimeout,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
