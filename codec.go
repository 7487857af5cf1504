// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"bytes"

	"github.com/goccy/go-json"
)

// ContentTypeJSON is the Content-Type set on every request with a body.
const ContentTypeJSON = "application/json"

// A Unit is the response type of a query whose successful response
// carries no payload. Pair it with DecodeJSONOrZero:
//
//	func (d DeleteItem) Deserialize(data []byte) (apix.Unit, error) {
//		return apix.DecodeJSONOrZero[apix.Unit](data)
//	}
type Unit struct{}

// EncodeJSON encodes v as a JSON document. It is the usual way to
// implement Queryable.Body:
//
//	func (c CreateItem) Body(_ *Session) ([]byte, error) {
//		return apix.EncodeJSON(c.Item)
//	}
//
// The returned slice is never nil when the error is nil, so a
// successfully encoded body is always sent.
func EncodeJSON(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

// DecodeJSON decodes the whole of data as a JSON document into a value
// of type R. It is the default implementation of
// Queryable.Deserialize.
//
// Empty data is not a valid JSON document and produces an error. Use
// DecodeJSONOrZero for responses which may be empty.
func DecodeJSON[R any](data []byte) (R, error) {
	var r R
	if err := json.Unmarshal(data, &r); err != nil {
		var zero R
		return zero, err
	}
	return r, nil
}

// DecodeJSONOrZero is like DecodeJSON except that empty data, or data
// consisting only of whitespace, decodes to the zero value of R
// without invoking the JSON decoder.
func DecodeJSONOrZero[R any](data []byte) (R, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		var zero R
		return zero, nil
	}
	return DecodeJSON[R](data)
}
