// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package ratelimit provides request hooks which delay API requests to
// stay within a request rate, using the token bucket limiter from
// golang.org/x/time/rate.
//
// Queries never retry, so a hook only ever waits. A query whose context
// ends while it waits fails with a Transport error and sends nothing.
//
//	cl.RequestHook = ratelimit.New(rate.Every(100*time.Millisecond), 5)
package ratelimit
