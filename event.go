// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to observe queries, for
// example to log them or record metrics.
type Event int

const (
	// BeforeQueryStart identifies the event that occurs before a query
	// execution starts.
	//
	// When BeforeQueryStart fires, the execution's method and URL have
	// been resolved from the query descriptor, but the request body has
	// not yet been produced and the start time is not yet set.
	BeforeQueryStart Event = iota
	// BeforeSend identifies the event that occurs immediately before the
	// HTTP request is handed to the transport.
	//
	// When BeforeSend fires, the execution's request field is set to the
	// request returned by the client's before-request hook. Handlers
	// should not modify it; use a RequestHook for that.
	//
	// BeforeSend never fires if the request body could not be produced,
	// or if the before-request hook failed.
	BeforeSend
	// AfterResponse identifies the event that occurs after the transport
	// returned an HTTP response (as opposed to an error) but before the
	// response is checked and its body read.
	//
	// Note that AfterResponse always fires if an HTTP response is
	// received, regardless of its status code.
	AfterResponse
	// AfterQueryEnd identifies the event that occurs after the query
	// execution ends, whether it succeeded or failed.
	//
	// When AfterQueryEnd fires, the execution's end time is set, and
	// its error field holds the same error returned to the caller.
	AfterQueryEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeQueryStart",
	"BeforeSend",
	"AfterResponse",
	"AfterQueryEnd",
}

// Events returns a slice containing all events which can occur in a
// query execution, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeQueryStart,
		BeforeSend,
		AfterResponse,
		AfterQueryEnd,
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
