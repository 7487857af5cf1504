// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

// A Queryable describes one kind of API request and the type of its
// response.
//
// Type parameter S is the state the descriptor needs to build its
// request, which is usually a narrow slice of the client's full state
// (see Narrower). Type parameter R is the response type.
//
// URL, Method, and Body must be pure functions of the descriptor and
// the state. Each is called exactly once per query execution.
//
// Embed Defaults to get the default Method, Body, and Deserialize, and
// implement only URL plus whatever needs to differ:
//
//	type GetItem struct {
//		apix.Defaults[Endpoint, Item]
//		ID string
//	}
//
//	func (q GetItem) URL(ep *Endpoint) string {
//		return ep.BaseURL + "/items/" + url.PathEscape(q.ID)
//	}
type Queryable[S, R any] interface {
	// URL returns the complete request target, including scheme and
	// host.
	URL(state *S) string

	// Method returns the HTTP method to use.
	Method(state *S) Method

	// Body returns the pre-serialized request body. A nil slice means
	// the request has no body. A non-nil slice, even an empty one, is
	// sent with a Content-Type of application/json. A non-nil error is
	// reported as a Serialization error and no request is sent.
	Body(state *S) ([]byte, error)

	// Deserialize converts the complete raw response body into the
	// response value. A non-nil error is reported as a Serialization
	// error.
	Deserialize(data []byte) (R, error)
}

// Defaults provides the default implementations of the optional
// Queryable methods. Embed it in a query descriptor type.
type Defaults[S, R any] struct{}

// Method returns Get.
func (Defaults[S, R]) Method(_ *S) Method {
	return Get
}

// Body returns no body.
func (Defaults[S, R]) Body(_ *S) ([]byte, error) {
	return nil, nil
}

// Deserialize decodes data as a JSON document using DecodeJSON.
func (Defaults[S, R]) Deserialize(data []byte) (R, error) {
	return DecodeJSON[R](data)
}

// A Narrower views a client's full state as the narrower state a query
// descriptor declares it needs.
//
// A Narrower must return a pointer into full (full itself, one of its
// fields, or something reachable from it), never a newly allocated
// value, and must be deterministic and free of side effects. The
// returned pointer is only used for the duration of the query.
//
// Narrowers let a descriptor depend only on the slice of state it uses,
// so a client's state can grow without retyping every descriptor:
//
//	type Session struct {
//		Endpoint Endpoint
//		Token    string
//	}
//
//	func SessionEndpoint(s *Session) *Endpoint { return &s.Endpoint }
type Narrower[Full, S any] func(full *Full) *S

// Identity returns the Narrower for descriptors which need the client's
// full state. It returns its argument.
func Identity[S any]() Narrower[S, S] {
	return func(s *S) *S {
		return s
	}
}
