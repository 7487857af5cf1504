// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"github.com/gogama/apix/request"
)

// A HandlerGroup holds one chain of event handlers per query event. A
// Client runs the chains of its Handlers field; any other APIClient
// opts in by implementing EventSource.
//
// Relative to the client's hooks, a query runs:
//
//	BeforeQueryStart handlers
//	Queryable.Body
//	RequestHook.BeforeRequest
//	BeforeSend handlers
//	HTTPDoer.Do
//	AfterResponse handlers
//	ResponseHandler.HandleResponse
//	Queryable.Deserialize
//	AfterQueryEnd handlers
//
// A failure skips straight to AfterQueryEnd, which always runs. Within
// a chain, handlers run in the order they were added, on the goroutine
// that called Query or QueryFrom.
//
// Add handlers before the group is shared between queries. Running
// queries only read the group, so any number may run at once.
type HandlerGroup struct {
	chains [numEvents][]Handler
}

// PushBack adds h to the back of the chain for event evt.
//
// PushBack panics if h is nil or evt is not one of the events returned
// by Events.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("apix: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("apix: invalid event")
	}

	g.chains[evt] = append(g.chains[evt], h)
}

// PushBackAll adds h to the back of every chain. Use it for handlers
// which follow a query from start to end, such as tracers.
func (g *HandlerGroup) PushBackAll(h Handler) {
	for _, evt := range Events() {
		g.PushBack(evt, h)
	}
}

// Len returns the number of handlers in the chain for event evt, or
// zero if evt is not a valid event.
func (g *HandlerGroup) Len(evt Event) int {
	if evt < 0 || int(evt) >= numEvents {
		return 0
	}

	return len(g.chains[evt])
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	for _, h := range g.chains[evt] {
		h.Handle(evt, e)
	}
}

// A Handler observes a query at one of its events. Handlers cannot fail
// the query. They may record data on the execution with SetValue, and a
// BeforeSend handler may replace the execution's Request.
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
