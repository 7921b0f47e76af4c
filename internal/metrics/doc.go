// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

Personalization:
  - personalize_like_operations_total{operation}
  - personalize_trigger_activations_total{collection}
  - personalize_trigger_deactivations_total
  - personalize_compose_total{outcome}

Persistence:
  - personalize_persist_writes_total{result}: success, retry, dropped
  - personalize_persist_write_duration_seconds
  - personalize_persist_load_failures_total{reason}

Catalog:
  - catalog_refreshes_total{source,result}
  - catalog_refresh_duration_seconds
  - catalog_products, catalog_collections
  - catalog_last_success_timestamp_seconds

Sessions:
  - sessions_active
  - sessions_evicted_total{reason}

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Circuit breaker:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

# Cardinality

Trigger activations are labelled by canonical collection. Ad hoc collection
buckets derived from free-form catalog labels share the "other" label.

# Usage

	metrics.RecordLikeOperation("like")
	metrics.RecordAPIRequest("GET", "/api/v1/sessions/{sessionID}/trigger", "200", elapsed)

Tests assert on collectors with prometheus/testutil:

	before := testutil.ToFloat64(metrics.LikeOperations.WithLabelValues("like"))
*/
package metrics
