// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryhttp

import (
	"github.com/gogama/retryhttp/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Client or Transport.
//
// Install all handlers before the group is first used. A HandlerGroup
// is safe for concurrent use by multiple retry loops once no more
// handlers are being added.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type. It panics if h is nil or evt is not one of
// the values returned by Events.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("retryhttp: nil handler")
	}
	if evt < 0 || evt >= eventSentinel {
		panic("retryhttp: invalid event")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	i := int(evt)
	if i < len(g.handlers) {
		for _, h := range g.handlers[i] {
			h.Handle(evt, e)
		}
	}
}

// A Handler handles the occurrence of an event during a retry loop.
//
// Handlers run synchronously on the goroutine executing the loop, so a
// slow handler delays the loop.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
