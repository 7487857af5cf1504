// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/apix/transient"
)

// An Execution represents the state of a single API query execution.
//
// When a query is executed, an Execution is created for it. The
// Execution is updated as the query progresses (for example when the
// HTTP request is built, or when the HTTP response becomes available)
// and is passed to every event handler along the way.
//
// Event handlers may set values on an Execution using its SetValue
// method and read them back using the Value method. However, they should
// treat the structure's exported field values as immutable and leave
// them unmodified, as the execution state is vital to the correct
// functioning of the query. The one exception is Request, which a
// BeforeSend handler may replace.
type Execution struct {
	// Method is the HTTP method resolved from the query descriptor,
	// for example "GET". It is set before the BeforeQueryStart event.
	Method string

	// URL is the request target resolved from the query descriptor. It
	// is set before the BeforeQueryStart event.
	URL string

	// RequestBody is the pre-serialized request body produced by the
	// query descriptor, or nil if the query has no body. It is computed
	// exactly once per execution and is the same slice sent on the
	// wire.
	RequestBody []byte

	// Start is the start time of the query execution. It is assigned a
	// non-zero value after the BeforeQueryStart event, and this value
	// remains constant thereafter.
	Start time.Time

	// End is the end time of the query execution. It contains the zero
	// value until the execution ends, when it is set to the current
	// time.
	End time.Time

	// Request is the HTTP request sent, as returned from the client's
	// before-request hook. It is nil until the BeforeSend event. A
	// BeforeSend handler may replace it, for example with a copy
	// carrying a shorter deadline, and the replacement is what gets
	// sent.
	Request *http.Request

	// Response is the HTTP response received. It is nil if the query
	// failed before a response was received.
	Response *http.Response

	// Body is the complete response body, as returned by the client's
	// response handler. It is nil unless the response handler
	// succeeded.
	Body []byte

	// Err is the error the query ended with. It is nil while the query
	// is in flight, and nil at the end of a successful query. When set,
	// it has the same value as the error returned to the caller.
	Err error

	// data contains arbitrary user data. Event handlers may interact
	// with it via the Value and SetValue methods.
	data context.Context
}

// StatusCode returns the status code of the HTTP response. If there is
// no HTTP response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers. If there is no HTTP
// response, the nil header is returned.
//
// Note that a nil return value is always safe for read-only operations,
// since http.Header is a map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended. Once it has, there
// will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout, either of the transport or of the query
// context.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue allows event handlers to store arbitrary data in the query
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil; it must be comparable; and it
// should not be of type string or any other built-in type, to avoid
// collisions between different event handlers.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
