// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/apix"
	"github.com/gogama/apix/request"
)

// A Policy defines a timeout policy which may be installed on an API
// client (see Install) to direct how long each query may take from the
// moment its request is sent until the response body has been read.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the request about to be
	// sent.
	//
	// Parameter e contains the current state of the query execution.
	// Its Method, URL, RequestBody and Request fields are set. A zero or
	// negative return value means no timeout.
	Timeout(e *request.Execution) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 5 seconds on each query.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite is a built-in timeout policy which never times out. Deadlines
// already present on the query context still apply.
var Infinite Policy = Fixed(0)

// Fixed constructs a timeout policy that uses the same value for every
// query. The return value is a timeout policy that always returns the
// value d.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (p fixed) Timeout(_ *request.Execution) time.Duration {
	return time.Duration(p)
}

// ByMethod constructs a timeout policy that chooses the timeout by HTTP
// method, using usual for any method missing from byMethod.
//
// Use ByMethod when writes are known to be slower than reads:
//
//	p := ByMethod(2*time.Second, map[apix.Method]time.Duration{
//		apix.Post: 10 * time.Second,
//		apix.Put:  10 * time.Second,
//	})
func ByMethod(usual time.Duration, byMethod map[apix.Method]time.Duration) Policy {
	p := methodPolicy{usual: usual, byName: make(map[string]time.Duration, len(byMethod))}
	for m, d := range byMethod {
		p.byName[m.String()] = d
	}
	return p
}

type methodPolicy struct {
	usual  time.Duration
	byName map[string]time.Duration
}

func (p methodPolicy) Timeout(e *request.Execution) time.Duration {
	if d, ok := p.byName[e.Method]; ok {
		return d
	}

	return p.usual
}
