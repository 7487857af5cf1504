// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"errors"

	"github.com/apex/log"
	"github.com/gogama/apix"
	"github.com/gogama/apix/request"
	"github.com/gogama/apix/transient"
)

// A Handler is an event handler which logs query executions to Logger.
type Handler struct {
	// Logger receives the log entries. It must not be nil.
	Logger log.Interface
	// Fields are added to every entry, for example to name the API.
	Fields log.Fields
}

// Install adds a Handler logging to l to the BeforeQueryStart and
// AfterQueryEnd chains of g, and returns it.
func Install(g *apix.HandlerGroup, l log.Interface) *Handler {
	if g == nil {
		panic("logging: nil handler group")
	}
	if l == nil {
		panic("logging: nil logger")
	}

	h := &Handler{Logger: l}
	g.PushBack(apix.BeforeQueryStart, h)
	g.PushBack(apix.AfterQueryEnd, h)
	return h
}

// Handle logs the execution e. Events other than BeforeQueryStart and
// AfterQueryEnd are ignored.
func (h *Handler) Handle(evt apix.Event, e *request.Execution) {
	switch evt {
	case apix.BeforeQueryStart:
		h.entry(e).Debug("query start")
	case apix.AfterQueryEnd:
		entry := h.entry(e).WithField("duration", e.Duration().String())
		if code := e.StatusCode(); code != 0 {
			entry = entry.WithField("status", code)
		}
		if e.Err == nil {
			entry.Info("query done")
			return
		}
		var apiErr *apix.Error
		if errors.As(e.Err, &apiErr) {
			entry = entry.WithField("kind", apiErr.Kind.String())
		}
		entry.WithFields(log.Fields{
			"category": transient.Categorize(e.Err).String(),
		}).WithError(e.Err).Warn("query failed")
	}
}

func (h *Handler) entry(e *request.Execution) *log.Entry {
	f := make(log.Fields, len(h.Fields)+2)
	for k, v := range h.Fields {
		f[k] = v
	}
	f["method"] = e.Method
	f["url"] = e.URL
	return h.Logger.WithFields(f)
}
