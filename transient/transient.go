// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize().
//
// The category Not means the error is not transient from the perspective
// of completing an API query successfully, or in other words that
// repeating the query after encountering this error is very unlikely to
// succeed. Canceled is also not transient: the caller gave up.
//
// All other categories indicate the error is transient, in other words
// that repeating the query has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Canceled indicates the query context was canceled by the caller.
	//
	// Function Categorize() will return Canceled if the error or any of
	// its wrapped causes is context.Canceled.
	Canceled
	// Timeout indicates a client-side timeout. The server may be going
	// through a temporary period of slowness.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	//
	// Function Categorize() will return ConnRefused if the error is not
	// a Timeout, and the error or any of its wrapped causes is equal to
	// syscall.ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	//
	// Function Categorize() will return ConnReset if the error is not a
	// Timeout, and the error or any of its wrapped causes is equal to
	// syscall.ECONNRESET.
	ConnReset
	// Throttled indicates the server rejected the query with status 429
	// (Too Many Requests).
	//
	// Function Categorize() will return Throttled if the error or any of
	// its wrapped causes has a StatusCode() function that reports 429.
	Throttled
	// Unavailable indicates the server, or a gateway in front of it,
	// reported a temporary failure with status 502, 503, or 504.
	//
	// Function Categorize() will return Unavailable if the error or any
	// of its wrapped causes has a StatusCode() function that reports one
	// of those status codes.
	Unavailable
	// categorySentinel provides the total number of categories.
	categorySentinel
)

var categoryNames = []string{
	"not",
	"canceled",
	"timeout",
	"conn_refused",
	"conn_reset",
	"throttled",
	"unavailable",
}

// String returns the name of the category, suitable for use as a
// metric label value.
func (c Category) String() string {
	if c < 0 || c >= categorySentinel {
		return "unknown"
	}
	return categoryNames[c]
}

// Transient reports whether the category indicates a transient error.
func (c Category) Transient() bool {
	return c != Not && c != Canceled
}

// Categorize returns the transience category of the given error. A nil
// error, and an error that is not transient from the perspective of
// completing an API query, both produce the return value Not.
//
// In assessing transience, Categorize looks at wrapped cause errors
// contained within err, not just err itself. However, Categorize never
// checks if an error has a Temporary() function that returns true, as
// the semantics of Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	var hasStatus hasStatusCode
	if errors.As(err, &hasStatus) {
		switch hasStatus.StatusCode() {
		case 429:
			return Throttled
		case 502, 503, 504:
			return Unavailable
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}

type hasStatusCode interface {
	StatusCode() int
}
