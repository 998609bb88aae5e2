// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the API.

Collectors live on a private registry owned by [Collector] rather than the
global default registry, so tests can build as many collectors as they like
and main.go decides what is exported on /actuator/metrics.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookreview"

// Label names shared across series.
const (
	LabelMethod   = "method"
	LabelRoute    = "route"
	LabelStatus   = "status"
	LabelOutcome  = "outcome"
	LabelScope    = "scope"
	LabelDecision = "decision"
)

// Collector records HTTP, authentication and authorization metrics.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authentications *prometheus.CounterVec
	policyDecisions *prometheus.CounterVec
	tokensIssued    prometheus.Counter
	recommendCalls  *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, including the
// standard Go runtime and process collectors.
func NewCollector() *Collector {
	collector := &Collector{
		registry: prometheus.NewRegistry(),

		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{LabelMethod, LabelRoute, LabelStatus}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelMethod, LabelRoute}),

		authentications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authentication_total",
			Help:      "Identity establishment outcomes per request.",
		}, []string{LabelOutcome}),

		policyDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorization_decisions_total",
			Help:      "Access policy decisions by scope.",
		}, []string{LabelScope, LabelDecision}),

		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Bearer tokens issued by signup and login.",
		}),

		recommendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_recommendation_calls_total",
			Help:      "Calls to the language model by outcome.",
		}, []string{LabelOutcome}),
	}

	collector.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collector.requestsTotal,
		collector.requestDuration,
		collector.authentications,
		collector.policyDecisions,
		collector.tokensIssued,
		collector.recommendCalls,
	)

	return collector
}

// Registry returns the registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// # Recording

// RecordRequest records one finished HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveAuthentication records how identity establishment ended for a request.
func (c *Collector) ObserveAuthentication(outcome string) {
	c.authentications.WithLabelValues(outcome).Inc()
}

// ObservePolicyDecision records an access policy decision.
func (c *Collector) ObservePolicyDecision(scope, decision string) {
	c.policyDecisions.WithLabelValues(scope, decision).Inc()
}

// ObserveTokenIssued counts one issued bearer token.
func (c *Collector) ObserveTokenIssued() {
	c.tokensIssued.Inc()
}

// ObserveRecommendation records one language model call outcome.
func (c *Collector) ObserveRecommendation(outcome string) {
	c.recommendCalls.WithLabelValues(outcome).Inc()
}

// # Middleware

// Middleware records request count and latency labelled by the chi route
// pattern, which keeps label cardinality bounded.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		c.RecordRequest(request.Method, route, recorder.status, time.Since(startTime))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}
