// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/apix/request"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// An APIClient is the capability to execute queries: it holds the
// client state descriptors are built from, and the transport requests
// are sent through.
//
// An APIClient may additionally implement RequestHook, ResponseHandler,
// and EventSource to customize query execution. Client implements all
// of them and is the usual choice; implement APIClient directly when the
// state and transport live in an existing type.
type APIClient[State any] interface {
	// State returns the client's full state. Queries only read it.
	State() *State

	// Doer returns the transport used to send requests. It must not
	// return nil.
	Doer() HTTPDoer
}

// An EventSource provides the event handler chains run during query
// execution. An APIClient opts in to events by implementing
// EventSource.
type EventSource interface {
	EventHandlers() *HandlerGroup
}

var emptyHandlers = HandlerGroup{}

// A Client is a ready-made APIClient. Apart from the state, given to
// NewClient, all of its fields are optional.
//
// Client is safe for concurrent use by multiple goroutines as long as
// its fields and state are not modified while queries are in flight.
// Queries never modify the state.
type Client[State any] struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses. Connection pooling, TLS, redirects and
	// timeouts are its business.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// RequestHook adjusts each request before it is sent.
	//
	// If RequestHook is nil, requests are sent as built.
	RequestHook RequestHook
	// ResponseHandler turns each response into raw bytes for the query
	// descriptor to deserialize.
	//
	// If ResponseHandler is nil, CheckResponse is used.
	ResponseHandler ResponseHandler
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during query execution.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup

	state *State
}

// NewClient returns a Client holding the given state. The state is
// shared, not copied: the Client reads it on every query.
func NewClient[State any](state *State) *Client[State] {
	if state == nil {
		panic("apix: nil state")
	}
	return &Client[State]{state: state}
}

// State returns the client's full state.
func (c *Client[State]) State() *State {
	return c.state
}

// Doer returns the client's HTTPDoer, or http.DefaultClient if none is
// set.
func (c *Client[State]) Doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

// BeforeRequest runs the client's RequestHook, if any.
func (c *Client[State]) BeforeRequest(r *http.Request) (*http.Request, error) {
	if c.RequestHook == nil {
		return r, nil
	}

	return c.RequestHook.BeforeRequest(r)
}

// HandleResponse runs the client's ResponseHandler, or CheckResponse if
// none is set.
func (c *Client[State]) HandleResponse(r *http.Response) ([]byte, error) {
	if c.ResponseHandler == nil {
		return CheckResponse(r)
	}

	return c.ResponseHandler.HandleResponse(r)
}

// EventHandlers returns the client's handler group.
func (c *Client[State]) EventHandlers() *HandlerGroup {
	return c.Handlers
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client[State]) CloseIdleConnections() {
	type idleCloser interface {
		CloseIdleConnections()
	}
	if ic, ok := c.Doer().(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// CheckResponse is the default response handling. It fails with a
// *StatusError, without reading the body, unless the status code is in
// the 2XX range. Otherwise it reads and returns the complete body.
func CheckResponse(r *http.Response) ([]byte, error) {
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return nil, &StatusError{
			Code:   r.StatusCode,
			Status: r.Status,
			Header: r.Header,
		}
	}

	if r.Body == nil {
		return []byte{}, nil
	}

	return io.ReadAll(r.Body)
}

// Query executes a query whose descriptor needs the client's full
// state. It is QueryFrom with the Identity narrower.
func Query[R, State any](ctx context.Context, c APIClient[State], q Queryable[State, R]) (R, error) {
	return QueryFrom[R](ctx, c, Identity[State](), q)
}

// QueryFrom executes a query and returns its typed result.
//
// The query descriptor q is given the state returned by narrow, applied
// to the client's full state. QueryFrom then:
//
// • builds the HTTP request from the descriptor's method, URL, and
// body, setting Content-Type to application/json when there is a body;
//
// • runs the client's RequestHook, if it implements one;
//
// • sends the request through the client's Doer;
//
// • runs the client's ResponseHandler, or CheckResponse, on the
// response; and
//
// • passes the resulting bytes to the descriptor's Deserialize method.
//
// The first failure ends the query, and nothing after it runs. Every
// returned error is an *Error. Failures to produce the request body or
// to deserialize the response are Serialization errors. Failures to
// send the request or receive the response, including context
// cancellation and timeout, and non-2XX status codes, are Transport
// errors. QueryFrom never retries.
//
// Go cannot infer R from q, so name it explicitly; the other type
// arguments are inferred from narrow:
//
//	item, err := apix.QueryFrom[Item](ctx, client, SessionEndpoint, GetItem{ID: "42"})
func QueryFrom[R, Full, S any](ctx context.Context, c APIClient[Full], narrow Narrower[Full, S], q Queryable[S, R]) (R, error) {
	if narrow == nil {
		panic("apix: nil narrower")
	}

	handlers := &emptyHandlers
	if es, ok := c.(EventSource); ok {
		if g := es.EventHandlers(); g != nil {
			handlers = g
		}
	}

	var e request.Execution
	r, err := execute(ctx, c, narrow(c.State()), q, handlers, &e)
	if err != nil {
		e.Err = err
	}
	e.End = time.Now()
	handlers.run(AfterQueryEnd, &e)
	return r, err
}

func execute[R, Full, S any](ctx context.Context, c APIClient[Full], s *S, q Queryable[S, R], handlers *HandlerGroup, e *request.Execution) (r R, err error) {
	e.Method = q.Method(s).String()
	e.URL = q.URL(s)
	handlers.run(BeforeQueryStart, e)
	e.Start = time.Now()

	e.RequestBody, err = q.Body(s)
	if err != nil {
		return r, stageError(Serialization, err)
	}

	req, err := request.New(ctx, e.Method, e.URL, e.RequestBody)
	if err != nil {
		return r, stageError(Transport, urlErrorWrap(e.Method, e.URL, err))
	}
	if e.RequestBody != nil {
		req.Header.Set("Content-Type", ContentTypeJSON)
	}

	if hook, ok := c.(RequestHook); ok {
		req, err = hook.BeforeRequest(req)
		if err != nil {
			return r, extensionError(err)
		}
		if req == nil {
			panic("apix: nil request from hook")
		}
	}
	e.Request = req
	handlers.run(BeforeSend, e)

	doer := c.Doer()
	if doer == nil {
		panic("apix: nil doer")
	}
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Response = nil
		return r, stageError(Transport, urlErrorWrap(e.Method, e.URL, err))
	}
	defer func() {
		if e.Response.Body != nil {
			_ = e.Response.Body.Close()
		}
	}()
	handlers.run(AfterResponse, e)

	var data []byte
	if h, ok := c.(ResponseHandler); ok {
		data, err = h.HandleResponse(e.Response)
	} else {
		data, err = CheckResponse(e.Response)
	}
	if err != nil {
		return r, extensionError(err)
	}
	e.Body = data

	r, err = q.Deserialize(data)
	if err != nil {
		var zero R
		return zero, stageError(Serialization, err)
	}
	return r, nil
}

func urlErrorWrap(method, rawURL string, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(method),
		URL: rawURL,
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
