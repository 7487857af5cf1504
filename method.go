// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import "net/http"

// A Method identifies the HTTP request method a query uses.
//
// The set of methods is closed. The zero value is Get, which is also
// the method a Queryable uses when it does not override Method.
type Method int

const (
	// Get identifies the GET method.
	Get Method = iota
	// Head identifies the HEAD method.
	Head
	// Post identifies the POST method.
	Post
	// Put identifies the PUT method.
	Put
	// Patch identifies the PATCH method.
	Patch
	// Delete identifies the DELETE method.
	Delete
	// methodSentinel provides the total number of methods typed as a
	// Method.
	methodSentinel

	// numMethods provides the total number of methods as an int.
	numMethods = int(methodSentinel)
)

var methodNames = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// Methods returns a slice containing every Method.
func Methods() []Method {
	return []Method{
		Get,
		Head,
		Post,
		Put,
		Patch,
		Delete,
	}
}

// String returns the HTTP verb for the method, for example "GET".
//
// String panics if m is not one of the defined methods.
func (m Method) String() string {
	if m < 0 || int(m) >= numMethods {
		panic("apix: invalid method")
	}
	return methodNames[int(m)]
}
