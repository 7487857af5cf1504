// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics records Prometheus metrics for API queries: a count
// of queries by method, outcome and status code, a latency histogram,
// and a gauge of requests in flight.
//
// Create a Collector, register it, and install it on the handler group
// of each client to be measured:
//
//	c := metrics.NewCollector("inventory")
//	prometheus.MustRegister(c)
//	cl.Handlers = &apix.HandlerGroup{}
//	metrics.Install(cl.Handlers, c)
package metrics
