// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"fmt"
	"net/http"

	"golang.org/x/net/http/httpguts"
)

// A RequestHook adjusts an HTTP request right before it is sent. It is
// the extension point for cross-cutting concerns that need to touch the
// request, such as injecting authentication headers, delaying for rate
// limits, or signing.
//
// BeforeRequest may modify r in place and return it, or return a
// different request. It may block, but should respect r.Context().
//
// If BeforeRequest returns an error, the query ends with that error and
// no request is sent. An *Error is returned to the caller unchanged.
// Any other error is wrapped whole in an *Error whose kind is that of
// the first *Error in its chain, or Transport if there is none.
//
// An APIClient opts in to the hook by implementing RequestHook.
type RequestHook interface {
	BeforeRequest(r *http.Request) (*http.Request, error)
}

// The RequestHookFunc type is an adapter to allow the use of ordinary
// functions as request hooks.
type RequestHookFunc func(r *http.Request) (*http.Request, error)

// BeforeRequest calls f(r).
func (f RequestHookFunc) BeforeRequest(r *http.Request) (*http.Request, error) {
	return f(r)
}

// Chain composes request hooks into one hook which runs them in order,
// passing each the request returned by the previous one. The chain stops
// at the first error.
func Chain(hooks ...RequestHook) RequestHook {
	for _, h := range hooks {
		if h == nil {
			panic("apix: nil hook")
		}
	}
	chain := make([]RequestHook, len(hooks))
	copy(chain, hooks)
	return RequestHookFunc(func(r *http.Request) (*http.Request, error) {
		var err error
		for _, h := range chain {
			r, err = h.BeforeRequest(r)
			if err != nil {
				return nil, err
			}
		}
		return r, nil
	})
}

// Header returns a request hook which sets the header name to value on
// every request, replacing any existing values.
//
// Header panics if name is not a valid header field name or value is
// not a valid header field value.
func Header(name, value string) RequestHook {
	if !httpguts.ValidHeaderFieldName(name) {
		panic(fmt.Sprintf("apix: invalid header name %q", name))
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		panic(fmt.Sprintf("apix: invalid value for header %q", name))
	}
	return RequestHookFunc(func(r *http.Request) (*http.Request, error) {
		r.Header.Set(name, value)
		return r, nil
	})
}

// A ResponseHandler turns the HTTP response into the raw bytes handed to
// the query descriptor's Deserialize method. The default, used when an
// APIClient does not implement ResponseHandler, is CheckResponse.
//
// The response body is closed after HandleResponse returns, so
// implementations need not close it. Errors are reported the same way
// as RequestHook errors.
type ResponseHandler interface {
	HandleResponse(r *http.Response) ([]byte, error)
}

// The ResponseHandlerFunc type is an adapter to allow the use of
// ordinary functions as response handlers.
type ResponseHandlerFunc func(r *http.Response) ([]byte, error)

// HandleResponse calls f(r).
func (f ResponseHandlerFunc) HandleResponse(r *http.Response) ([]byte, error) {
	return f(r)
}
