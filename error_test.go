// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "serialization", Serialization.String())
	assert.Equal(t, "transport", Transport.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestError(t *testing.T) {
	cause := errors.New("foo")

	t.Run("constructors", func(t *testing.T) {
		s := SerializationError(cause)
		assert.Equal(t, Serialization, s.Kind)
		assert.Same(t, cause, s.Err)
		tr := TransportError(cause)
		assert.Equal(t, Transport, tr.Kind)
		assert.Same(t, cause, tr.Err)
		assert.PanicsWithValue(t, "apix: nil error", func() { SerializationError(nil) })
		assert.PanicsWithValue(t, "apix: nil error", func() { TransportError(nil) })
	})
	t.Run("no double wrap", func(t *testing.T) {
		s := SerializationError(cause)
		assert.Same(t, s, TransportError(s))
		wrapped := fmt.Errorf("hook: %w", s)
		tr := TransportError(wrapped)
		assert.Equal(t, Transport, tr.Kind)
		assert.Same(t, wrapped, tr.Err)
		assert.ErrorIs(t, tr, cause)
	})
	t.Run("stage", func(t *testing.T) {
		s := SerializationError(cause)
		assert.Same(t, s, stageError(Serialization, s))
		tr := TransportError(cause)
		fromTransport := stageError(Serialization, tr)
		assert.Equal(t, Serialization, fromTransport.Kind)
		assert.Same(t, tr, fromTransport.Err)
		wrapped := fmt.Errorf("decode item: %w", tr)
		fromWrapped := stageError(Serialization, wrapped)
		assert.Equal(t, Serialization, fromWrapped.Kind)
		assert.Same(t, wrapped, fromWrapped.Err)
	})
	t.Run("extension", func(t *testing.T) {
		s := SerializationError(cause)
		assert.Same(t, s, extensionError(s))
		wrapped := fmt.Errorf("auth hook: %w", s)
		ext := extensionError(wrapped)
		assert.Equal(t, Serialization, ext.Kind)
		assert.Same(t, wrapped, ext.Err)
		assert.Equal(t, "apix: serialization error: auth hook: apix: serialization error: foo", ext.Error())
		plain := extensionError(cause)
		assert.Equal(t, Transport, plain.Kind)
		assert.Same(t, cause, plain.Err)
	})
	t.Run("message", func(t *testing.T) {
		assert.Equal(t, "apix: serialization error: foo", SerializationError(cause).Error())
		assert.Equal(t, "apix: transport error: foo", TransportError(cause).Error())
		assert.Equal(t, "apix: transport error", (&Error{Kind: Transport}).Error())
	})
	t.Run("unwrap", func(t *testing.T) {
		err := error(TransportError(&url.Error{Op: "Get", URL: "test", Err: syscall.ECONNRESET}))
		assert.ErrorIs(t, err, syscall.ECONNRESET)
		var urlErr *url.Error
		require.ErrorAs(t, err, &urlErr)
		assert.Equal(t, "test", urlErr.URL)
	})
	t.Run("predicates", func(t *testing.T) {
		s := SerializationError(cause)
		tr := TransportError(cause)
		assert.True(t, IsSerialization(s))
		assert.False(t, IsTransport(s))
		assert.True(t, IsTransport(tr))
		assert.False(t, IsSerialization(tr))
		assert.True(t, IsTransport(fmt.Errorf("wrapped: %w", tr)))
		assert.False(t, IsTransport(cause))
		assert.False(t, IsSerialization(nil))
	})
	t.Run("timeout", func(t *testing.T) {
		assert.True(t, TransportError(&url.Error{Err: context.DeadlineExceeded}).Timeout())
		assert.True(t, TransportError(syscall.ETIMEDOUT).Timeout())
		assert.False(t, TransportError(context.Canceled).Timeout())
		assert.False(t, SerializationError(context.DeadlineExceeded).Timeout())
		assert.False(t, TransportError(&StatusError{Code: 504}).Timeout())
	})
}

func TestStatusError(t *testing.T) {
	assert.Equal(t, "apix: unexpected status 503 Service Unavailable",
		(&StatusError{Code: 503, Status: "503 Service Unavailable"}).Error())
	assert.Equal(t, "apix: unexpected status 418", (&StatusError{Code: 418}).Error())
	assert.Equal(t, 404, (&StatusError{Code: 404}).StatusCode())
}
