// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collection label used for ad hoc buckets to bound label cardinality.
const otherCollection = "other"

var (
	// Personalization Metrics
	LikeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalize_like_operations_total",
			Help: "Total number of like and unlike operations",
		},
		[]string{"operation"}, // "like", "unlike"
	)

	TriggerActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalize_trigger_activations_total",
			Help: "Total number of trigger transitions to an active collection",
		},
		[]string{"collection"},
	)

	TriggerDeactivations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "personalize_trigger_deactivations_total",
			Help: "Total number of trigger transitions back to inactive",
		},
	)

	ComposeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalize_compose_total",
			Help: "Total number of content composition attempts by outcome",
		},
		[]string{"outcome"}, // "composed", "no_trigger", "unknown_collection"
	)

	// Persistence Metrics
	PersistWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalize_persist_writes_total",
			Help: "Total number of liked-set write attempts by result",
		},
		[]string{"result"}, // "success", "retry", "dropped"
	)

	PersistWriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "personalize_persist_write_duration_seconds",
			Help:    "Duration of liked-set store writes in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	PersistLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalize_persist_load_failures_total",
			Help: "Total number of liked-set loads that fell back to an empty set",
		},
		[]string{"reason"}, // "read", "decode"
	)

	// Catalog Metrics
	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refreshes_total",
			Help: "Total number of catalog snapshot refreshes by result",
		},
		[]string{"source", "result"},
	)

	CatalogRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_refresh_duration_seconds",
			Help:    "Duration of catalog snapshot refreshes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products in the current catalog snapshot",
		},
	)

	CatalogCollections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_collections",
			Help: "Number of collections in the current catalog snapshot",
		},
	)

	CatalogLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful catalog refresh",
		},
	)

	// Session Metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Current number of sessions with a live engine",
		},
	)

	SessionEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_evicted_total",
			Help: "Total number of sessions evicted from the registry",
		},
		[]string{"reason"}, // "capacity", "idle", "shutdown"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// collectionLabel keeps ad hoc buckets from exploding label cardinality.
func collectionLabel(collection string, known bool) string {
	if !known {
		return otherCollection
	}
	return collection
}

// RecordLikeOperation records a like or unlike.
func RecordLikeOperation(operation string) {
	LikeOperations.WithLabelValues(operation).Inc()
}

// RecordTriggerActivation records a transition to an active trigger.
// Unknown collections are folded into a single "other" label.
func RecordTriggerActivation(collection string, known bool) {
	TriggerActivations.WithLabelValues(collectionLabel(collection, known)).Inc()
}

// RecordTriggerDeactivation records a transition from active to inactive.
func RecordTriggerDeactivation() {
	TriggerDeactivations.Inc()
}

// RecordCompose records a composition outcome.
func RecordCompose(outcome string) {
	ComposeOutcomes.WithLabelValues(outcome).Inc()
}

// RecordPersistWrite records a single store write attempt.
// final marks the last attempt for a snapshot; a failed final attempt is a drop.
func RecordPersistWrite(duration time.Duration, err error, final bool) {
	PersistWriteDuration.Observe(duration.Seconds())
	switch {
	case err == nil:
		PersistWrites.WithLabelValues("success").Inc()
	case final:
		PersistWrites.WithLabelValues("dropped").Inc()
	default:
		PersistWrites.WithLabelValues("retry").Inc()
	}
}

// RecordPersistLoadFailure records a load that fell back to an empty set.
func RecordPersistLoadFailure(reason string) {
	PersistLoadFailures.WithLabelValues(reason).Inc()
}

// RecordCatalogRefresh records a catalog refresh.
// Snapshot size gauges only move on success.
func RecordCatalogRefresh(source string, duration time.Duration, products, collections int, err error) {
	CatalogRefreshDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogRefreshes.WithLabelValues(source, "error").Inc()
		return
	}
	CatalogRefreshes.WithLabelValues(source, "success").Inc()
	CatalogProducts.Set(float64(products))
	CatalogCollections.Set(float64(collections))
	CatalogLastSuccess.Set(float64(time.Now().Unix()))
}

// SetActiveSessions updates the active session gauge.
func SetActiveSessions(count int) {
	ActiveSessions.Set(float64(count))
}

// RecordSessionEviction records a session leaving the registry.
func RecordSessionEviction(reason string) {
	SessionEvictions.WithLabelValues(reason).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rate-limited request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}
