// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gogama/apix/transient"
)

// A Kind identifies which failure domain an Error belongs to.
//
// There are exactly two kinds. Every error returned by Query and
// QueryFrom is an *Error of one of them.
type Kind int

const (
	// Serialization identifies a failure to encode a request body or
	// to decode a response body, including failures returned by a
	// custom Deserialize method.
	Serialization Kind = iota + 1
	// Transport identifies a failure to send the request or receive
	// the response (network, TLS, timeout, cancellation), or a response
	// whose status code does not indicate success.
	Transport
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Serialization:
		return "serialization"
	case Transport:
		return "transport"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// An Error is the error type returned by a query. Err holds the
// underlying cause, which may be inspected with errors.Is and
// errors.As since Error unwraps to it.
//
// Callers typically switch on Kind to tell bad data (Serialization)
// apart from a bad exchange with the server (Transport):
//
//	var apiErr *apix.Error
//	if errors.As(err, &apiErr) && apiErr.Kind == apix.Transport {
//		...
//	}
type Error struct {
	Kind Kind
	Err  error
}

// SerializationError wraps err as an Error of kind Serialization.
// If err is itself an *Error, it is returned unchanged. An *Error found
// deeper in err's chain stays part of the cause.
func SerializationError(err error) *Error {
	return newError(Serialization, err)
}

// TransportError wraps err as an Error of kind Transport. If err is
// itself an *Error, it is returned unchanged. An *Error found deeper in
// err's chain stays part of the cause.
func TransportError(err error) *Error {
	return newError(Transport, err)
}

func newError(k Kind, err error) *Error {
	if err == nil {
		panic("apix: nil error")
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: k, Err: err}
}

// stageError reports the failure of a query stage whose kind is fixed.
// Only a direct *Error of that same kind passes through.
func stageError(k Kind, err error) *Error {
	if e, ok := err.(*Error); ok && e.Kind == k {
		return e
	}
	return &Error{Kind: k, Err: err}
}

// extensionError reports a failure returned by a request hook or a
// response handler. A direct *Error passes through. Otherwise err stays
// the whole cause, and the kind is taken from the first *Error in its
// chain, or is Transport if there is none.
func extensionError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	k := Transport
	var inner *Error
	if errors.As(err, &inner) {
		k = inner.Kind
	}
	return &Error{Kind: k, Err: err}
}

// Error returns the error message, prefixed with the kind.
func (err *Error) Error() string {
	if err.Err == nil {
		return "apix: " + err.Kind.String() + " error"
	}
	return "apix: " + err.Kind.String() + " error: " + err.Err.Error()
}

// Unwrap returns the underlying cause.
func (err *Error) Unwrap() error {
	return err.Err
}

// Timeout reports whether err is a Transport error caused by a
// timeout, either of the transport itself or of the query context.
func (err *Error) Timeout() bool {
	return err.Kind == Transport && transient.Categorize(err.Err) == transient.Timeout
}

// IsSerialization reports whether err is, or wraps, an *Error of kind
// Serialization.
func IsSerialization(err error) bool {
	return isKind(err, Serialization)
}

// IsTransport reports whether err is, or wraps, an *Error of kind
// Transport.
func IsTransport(err error) bool {
	return isKind(err, Transport)
}

func isKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// A StatusError is the cause of a Transport error produced when the
// server responds with a status code outside the 2XX range. The
// response body is not read.
type StatusError struct {
	// Code is the HTTP status code, for example 503.
	Code int
	// Status is the HTTP status line text, for example
	// "503 Service Unavailable". It may be empty if the transport did
	// not provide one.
	Status string
	// Header contains the response headers, for example to inspect a
	// Retry-After value.
	Header http.Header
}

// Error returns a message describing the unexpected status.
func (err *StatusError) Error() string {
	if err.Status != "" {
		return "apix: unexpected status " + err.Status
	}
	return fmt.Sprintf("apix: unexpected status %d", err.Code)
}

// StatusCode returns the HTTP status code.
func (err *StatusError) StatusCode() int {
	return err.Code
}
