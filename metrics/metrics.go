// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sickfits"

var (
	// HTTPRequestsTotal counts handled requests.
	// Labels: method, route, status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration measures handler latency.
	// Labels: method, route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// GraphQLFieldsTotal counts resolved top-level GraphQL fields.
	// Labels: field, outcome (ok, error)
	GraphQLFieldsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "graphql",
		Name:      "fields_total",
		Help:      "Top-level GraphQL fields resolved, by outcome.",
	}, []string{"field", "outcome"})
)

// ObserveField records the outcome of one top-level GraphQL field.
func ObserveField(field string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	GraphQLFieldsTotal.WithLabelValues(field, outcome).Inc()
}
