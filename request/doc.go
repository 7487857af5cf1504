// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the low-level pieces used while executing an
API query: New, which turns a resolved method, URL, and optional
pre-serialized body into an http.Request, and Execution, which records
the state of a single query execution.

Execution is the input type for the event handlers invoked during query
execution (see apix.HandlerGroup). You will typically not allocate
Execution instances yourself; the query functions in package apix
create one per query and pass it to each handler in turn:

	handlers.PushBack(apix.AfterQueryEnd, apix.HandlerFunc(
		func(_ apix.Event, e *request.Execution) {
			fmt.Println(e.Method, e.URL, e.StatusCode(), e.Duration())
		}),
	)

Package request is separate from package apix so that handler packages,
such as apix/logging and apix/metrics, can depend on Execution without
an import cycle.
*/
package request
