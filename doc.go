// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package apix describes and executes typed HTTP API queries against a
stateful client.

A query descriptor states, once, how to build one kind of request and
what type its response has. It implements Queryable, usually by
embedding Defaults and adding a URL method:

	type GetItem struct {
		apix.Defaults[Endpoint, Item]
		ID string
	}

	func (q GetItem) URL(ep *Endpoint) string {
		return ep.BaseURL + "/items/" + url.PathEscape(q.ID)
	}

An API client holds the state requests are built from and the HTTPDoer
that sends them. Client is a ready-made APIClient:

	type Session struct {
		Endpoint Endpoint
		Token    string
	}

	client := apix.NewClient(&Session{Endpoint: Endpoint{BaseURL: "https://api.example.com"}})

Descriptors ask only for the state they need. A Narrower selects it
from the client's full state without copying:

	func SessionEndpoint(s *Session) *Endpoint { return &s.Endpoint }

	item, err := apix.QueryFrom[Item](ctx, client, SessionEndpoint, GetItem{ID: "42"})

Use Query when a descriptor needs the full state.

Every error returned by a query is an *Error whose Kind is either
Serialization, when the request body could not be produced or the
response could not be decoded, or Transport, for everything that went
wrong on the way to and from the server, including non-2XX status
codes:

	var apiErr *apix.Error
	if errors.As(err, &apiErr) && apiErr.Kind == apix.Transport {
		var status *apix.StatusError
		if errors.As(err, &status) && status.Code == 404 {
			...
		}
	}

To add headers, sign requests, or wait for rate limits, set a
RequestHook on the client:

	client.RequestHook = apix.Chain(
		apix.Header("Authorization", "Bearer "+token),
		ratelimit.New(rate.Every(100*time.Millisecond), 5),
	)

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer. For example, use a GoLang standard
HTTP client:

	client.HTTPDoer = &http.Client{
		..., // See package "net/http" for detailed documentation
	}

To hook into the details of query execution, install a handler into
the appropriate handler chain. Packages logging, metrics, and timeout
provide ready-made handlers:

	client.Handlers = &apix.HandlerGroup{}
	logging.Install(client.Handlers, log.Log)
	timeout.Install(client.Handlers, timeout.Fixed(10*time.Second))

Queries never retry and never cache.
*/
package apix
