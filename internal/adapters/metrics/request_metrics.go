package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Request kinds, taken from the package a mediator request is declared in
const (
	KindCommand = "command"
	KindQuery   = "query"
	KindOther   = "other"
)

// Request outcomes
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// RequestMetricsCollector tracks planner requests dispatched through the mediator
type RequestMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	planNodes       *prometheus.HistogramVec
}

// NewRequestMetricsCollector creates a collector for RequestMetricsMiddleware
func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Time spent handling planner requests, by request and kind",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"request", "kind"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Planner requests handled, by request, kind and outcome",
			},
			[]string{"request", "kind", "outcome"},
		),

		// Plan trees grow combinatorially with alternatives; buckets span 1 to ~260k nodes
		planNodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "response_plan_nodes",
				Help:      "Nodes in the plan tree returned by a request",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"request"},
		),
	}
}

// Register adds the request metrics to the Prometheus registry
func (c *RequestMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal, c.planNodes} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one handled request
func (c *RequestMetricsCollector) RecordRequest(request, kind, outcome string, seconds float64) {
	c.requestDuration.WithLabelValues(request, kind).Observe(seconds)
	c.requestsTotal.WithLabelValues(request, kind, outcome).Inc()
}

// RecordPlanNodes records the size of a plan tree returned by request
func (c *RequestMetricsCollector) RecordPlanNodes(request string, nodes int) {
	c.planNodes.WithLabelValues(request).Observe(float64(nodes))
}
