// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r2, err := Chain().BeforeRequest(r)
		assert.NoError(t, err)
		assert.Same(t, r, r2)
	})
	t.Run("order", func(t *testing.T) {
		var calls []string
		record := func(name string) RequestHook {
			return RequestHookFunc(func(r *http.Request) (*http.Request, error) {
				calls = append(calls, name)
				r.Header.Add("X-Order", name)
				return r, nil
			})
		}
		r := httptest.NewRequest("GET", "/", nil)

		r2, err := Chain(record("a"), record("b"), record("c")).BeforeRequest(r)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, calls)
		assert.Equal(t, []string{"a", "b", "c"}, r2.Header.Values("X-Order"))
	})
	t.Run("replacement", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		var seen *http.Request
		replace := RequestHookFunc(func(r *http.Request) (*http.Request, error) {
			return r.Clone(r.Context()), nil
		})
		observe := RequestHookFunc(func(r *http.Request) (*http.Request, error) {
			seen = r
			return r, nil
		})

		r2, err := Chain(replace, observe).BeforeRequest(r)

		require.NoError(t, err)
		assert.NotSame(t, r, r2)
		assert.Same(t, r2, seen)
	})
	t.Run("stops at error", func(t *testing.T) {
		hookErr := errors.New("no token")
		fail := RequestHookFunc(func(r *http.Request) (*http.Request, error) {
			return nil, hookErr
		})
		var later bool
		after := RequestHookFunc(func(r *http.Request) (*http.Request, error) {
			later = true
			return r, nil
		})

		r2, err := Chain(fail, after).BeforeRequest(httptest.NewRequest("GET", "/", nil))

		assert.Nil(t, r2)
		assert.Same(t, hookErr, err)
		assert.False(t, later)
	})
	t.Run("nil hook", func(t *testing.T) {
		assert.PanicsWithValue(t, "apix: nil hook", func() {
			Chain(Header("A", "b"), nil)
		})
	})
	t.Run("arguments copied", func(t *testing.T) {
		hooks := []RequestHook{Header("X-A", "1")}
		c := Chain(hooks...)
		hooks[0] = Header("X-A", "2")
		r, err := c.BeforeRequest(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "1", r.Header.Get("X-A"))
	})
}

func TestHeader(t *testing.T) {
	t.Run("sets", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Add("authorization", "old")
		r.Header.Add("authorization", "older")

		r2, err := Header("Authorization", "Bearer x").BeforeRequest(r)

		require.NoError(t, err)
		assert.Same(t, r, r2)
		assert.Equal(t, []string{"Bearer x"}, r2.Header.Values("Authorization"))
	})
	t.Run("invalid name", func(t *testing.T) {
		for _, name := range []string{"", "Bad Name", "Bad:Name", "Bad\nName"} {
			assert.Panics(t, func() { Header(name, "v") }, "name %q", name)
		}
		assert.PanicsWithValue(t, `apix: invalid header name "a b"`, func() { Header("a b", "v") })
	})
	t.Run("invalid value", func(t *testing.T) {
		assert.PanicsWithValue(t, `apix: invalid value for header "X-A"`, func() {
			Header("X-A", "line\r\nInjected: 1")
		})
	})
}

func TestResponseHandlerFunc(t *testing.T) {
	resp := &http.Response{StatusCode: 201}
	var seen *http.Response
	f := ResponseHandlerFunc(func(r *http.Response) ([]byte, error) {
		seen = r
		return []byte("x"), nil
	})

	b, err := f.HandleResponse(resp)

	assert.NoError(t, err)
	assert.Equal(t, []byte("x"), b)
	assert.Same(t, resp, seen)
}
