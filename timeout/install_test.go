// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gogama/apix"
	"github.com/gogama/apix/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowQuery struct {
	apix.Defaults[string, apix.Unit]
	delay time.Duration
}

func (q slowQuery) URL(baseURL *string) string {
	return *baseURL + "/?delay=" + q.delay.String()
}

func (q slowQuery) Deserialize(data []byte) (apix.Unit, error) {
	return apix.DecodeJSONOrZero[apix.Unit](data)
}

func newSlowServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, _ := time.ParseDuration(r.URL.Query().Get("delay"))
		select {
		case <-time.After(d):
		case <-r.Context().Done():
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestInstall(t *testing.T) {
	server := newSlowServer()
	defer server.Close()

	t.Run("times out", func(t *testing.T) {
		cl := apix.NewClient(&server.URL)
		cl.HTTPDoer = server.Client()
		cl.Handlers = &apix.HandlerGroup{}
		Install(cl.Handlers, Fixed(20*time.Millisecond))

		start := time.Now()
		_, err := apix.Query[apix.Unit, string](context.Background(), cl, slowQuery{delay: 5 * time.Second})

		var apiErr *apix.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, apix.Transport, apiErr.Kind)
		assert.True(t, apiErr.Timeout())
		assert.Less(t, time.Since(start), 5*time.Second)
	})
	t.Run("releases context", func(t *testing.T) {
		cl := apix.NewClient(&server.URL)
		cl.HTTPDoer = server.Client()
		cl.Handlers = &apix.HandlerGroup{}
		Install(cl.Handlers, DefaultPolicy)
		var sent *http.Request
		var deadline bool
		cl.Handlers.PushBack(apix.AfterQueryEnd, apix.HandlerFunc(func(_ apix.Event, e *request.Execution) {
			sent = e.Request
			_, deadline = e.Request.Context().Deadline()
		}))

		_, err := apix.Query[apix.Unit, string](context.Background(), cl, slowQuery{})

		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.True(t, deadline)
		assert.ErrorIs(t, sent.Context().Err(), context.Canceled)
	})
	t.Run("infinite", func(t *testing.T) {
		cl := apix.NewClient(&server.URL)
		cl.HTTPDoer = server.Client()
		cl.Handlers = &apix.HandlerGroup{}
		Install(cl.Handlers, Infinite)
		var deadline bool
		cl.Handlers.PushBack(apix.BeforeSend, apix.HandlerFunc(func(_ apix.Event, e *request.Execution) {
			_, deadline = e.Request.Context().Deadline()
		}))

		_, err := apix.Query[apix.Unit, string](context.Background(), cl, slowQuery{delay: time.Millisecond})

		require.NoError(t, err)
		assert.False(t, deadline)
	})
	t.Run("panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "timeout: nil handler group", func() { Install(nil, DefaultPolicy) })
		assert.PanicsWithValue(t, "timeout: nil policy", func() { Install(&apix.HandlerGroup{}, nil) })
	})
}
