// Copyright 2021 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"strconv"

	"github.com/gogama/apix"
	"github.com/gogama/apix/request"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess       = "success"
	OutcomeSerialization = "serialization"
	OutcomeTransport     = "transport"
)

// DefaultBuckets are the latency histogram buckets, in seconds.
var DefaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// A Collector holds the query metrics of one or more clients. It
// implements prometheus.Collector and apix.Handler.
type Collector struct {
	// Queries counts finished queries by method, outcome, and status
	// code. The code label is empty when no response was received.
	Queries *prometheus.CounterVec
	// Duration observes query latency in seconds by method and outcome.
	Duration *prometheus.HistogramVec
	// InFlight gauges the requests sent whose query has not ended.
	InFlight prometheus.Gauge
}

// NewCollector creates a Collector whose metric names are prefixed by
// namespace, which may be empty. The Collector is not registered.
func NewCollector(namespace string) *Collector {
	return &Collector{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "apix_queries_total",
			Help:      "Total number of API queries executed.",
		}, []string{"method", "outcome", "code"}),

		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "apix_query_duration_seconds",
			Help:      "API query latency, from start until the response body has been read.",
			Buckets:   DefaultBuckets,
		}, []string{"method", "outcome"}),

		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "apix_requests_inflight",
			Help:      "Number of API requests currently in flight.",
		}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.Queries.Describe(ch)
	c.Duration.Describe(ch)
	c.InFlight.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.Queries.Collect(ch)
	c.Duration.Collect(ch)
	c.InFlight.Collect(ch)
}

// Install adds c to the BeforeSend and AfterQueryEnd chains of g.
func Install(g *apix.HandlerGroup, c *Collector) {
	if g == nil {
		panic("metrics: nil handler group")
	}
	if c == nil {
		panic("metrics: nil collector")
	}

	g.PushBack(apix.BeforeSend, c)
	g.PushBack(apix.AfterQueryEnd, c)
}

type sentKey struct{}

// Handle records the execution e. Events other than BeforeSend and
// AfterQueryEnd are ignored.
func (c *Collector) Handle(evt apix.Event, e *request.Execution) {
	switch evt {
	case apix.BeforeSend:
		c.InFlight.Inc()
		e.SetValue(sentKey{}, true)
	case apix.AfterQueryEnd:
		if sent, _ := e.Value(sentKey{}).(bool); sent {
			c.InFlight.Dec()
		}
		o := outcome(e.Err)
		var code string
		if e.Response != nil {
			code = strconv.Itoa(e.StatusCode())
		}
		c.Queries.WithLabelValues(e.Method, o, code).Inc()
		c.Duration.WithLabelValues(e.Method, o).Observe(e.Duration().Seconds())
	}
}

func outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}

	var apiErr *apix.Error
	if errors.As(err, &apiErr) && apiErr.Kind == apix.Serialization {
		return OutcomeSerialization
	}

	return OutcomeTransport
}
