// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"context"

	"github.com/gogama/apix"
	"github.com/gogama/apix/request"
)

// Install adds event handlers to g which enforce policy p on every
// query. On BeforeSend, the execution's request is replaced with a copy
// whose context carries the policy timeout. On AfterQueryEnd, once the
// response body has been read and closed, the timeout context is
// released.
//
// A query that runs out of time fails with a Transport error whose
// Timeout method returns true.
func Install(g *apix.HandlerGroup, p Policy) {
	if g == nil {
		panic("timeout: nil handler group")
	}
	if p == nil {
		panic("timeout: nil policy")
	}

	h := &handler{policy: p}
	g.PushBack(apix.BeforeSend, h)
	g.PushBack(apix.AfterQueryEnd, h)
}

type cancelKey struct{}

type handler struct {
	policy Policy
}

func (h *handler) Handle(evt apix.Event, e *request.Execution) {
	switch evt {
	case apix.BeforeSend:
		d := h.policy.Timeout(e)
		if d <= 0 {
			return
		}
		ctx, cancel := context.WithTimeout(e.Request.Context(), d)
		e.Request = e.Request.WithContext(ctx)
		e.SetValue(cancelKey{}, cancel)
	case apix.AfterQueryEnd:
		if cancel, ok := e.Value(cancelKey{}).(context.CancelFunc); ok {
			cancel()
		}
	}
}
