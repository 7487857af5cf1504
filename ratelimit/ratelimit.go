// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gogama/apix"
	"golang.org/x/time/rate"
)

// A Hook is a request hook which waits on a single limiter shared by
// every request it sees.
type Hook struct {
	limiter *rate.Limiter
}

// New returns a Hook allowing events up to rate r with bursts of at
// most b requests.
func New(r rate.Limit, b int) *Hook {
	return &Hook{limiter: rate.NewLimiter(r, b)}
}

// Limiter returns the hook's underlying limiter, which may be used to
// adjust the limit at runtime.
func (h *Hook) Limiter() *rate.Limiter {
	return h.limiter
}

// BeforeRequest waits until the limiter allows r to be sent.
func (h *Hook) BeforeRequest(r *http.Request) (*http.Request, error) {
	return wait(h.limiter, r)
}

// A PerHost hook keeps a separate limiter for each request host, so
// that a client spread across several API hosts is limited per host.
type PerHost struct {
	r rate.Limit
	b int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewPerHost returns a PerHost hook allowing events up to rate r with
// bursts of at most b requests, per host.
func NewPerHost(r rate.Limit, b int) *PerHost {
	return &PerHost{
		r:        r,
		b:        b,
		limiters: make(map[string]*rate.Limiter),
	}
}

// BeforeRequest waits until the limiter for r's host allows r to be
// sent.
func (h *PerHost) BeforeRequest(r *http.Request) (*http.Request, error) {
	return wait(h.limiter(r.URL.Host), r)
}

func (h *PerHost) limiter(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.limiters[host]
	if !ok {
		l = rate.NewLimiter(h.r, h.b)
		h.limiters[host] = l
	}
	return l
}

// wait blocks until l allows r. When the limiter refuses up front
// because the wait would outlast the context deadline, the error wraps
// context.DeadlineExceeded so the query reports a timeout.
func wait(l *rate.Limiter, r *http.Request) (*http.Request, error) {
	ctx := r.Context()
	if err := l.Wait(ctx); err != nil {
		if _, ok := ctx.Deadline(); ok && ctx.Err() == nil {
			err = fmt.Errorf("ratelimit: %v: %w", err, context.DeadlineExceeded)
		}
		return nil, apix.TransportError(err)
	}

	return r, nil
}
