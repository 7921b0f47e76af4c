// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

/*
Package api provides the HTTP surface of the personalization service.

Each shopper session gets its own personalization engine, created on first
use and cached in a SessionRegistry. The registry bounds the number of live
engines with an LRU and closes (and therefore flushes) engines when they are
evicted for capacity, expire after the idle TTL, or the service shuts down.

# Routes

All responses use the APIResponse envelope ({status, data, metadata, error}).

	GET    /api/v1/health/live                            liveness
	GET    /api/v1/health/ready                           readiness (catalog loaded)
	GET    /api/v1/catalog/products                       catalog snapshot products
	GET    /api/v1/catalog/collections                    catalog snapshot collections
	GET    /api/v1/sessions/{sessionID}/likes             liked product ids
	PUT    /api/v1/sessions/{sessionID}/likes/{productID} like a product
	DELETE /api/v1/sessions/{sessionID}/likes/{productID} unlike a product
	GET    /api/v1/sessions/{sessionID}/trigger           active trigger or null
	GET    /api/v1/sessions/{sessionID}/content           personalized content, 204 when none
	GET    /api/v1/sessions/{sessionID}/insights          liked-set statistics
	GET    /metrics                                       Prometheus metrics

# Middleware

The global chain assigns request ids, resolves client IPs behind trusted
proxies, recovers panics, logs access at debug level and applies CORS. API
routes add httprate limiting per client IP, security headers, Prometheus
request metrics and gzip compression of JSON bodies.

Session and product ids are validated with the "identifier" tag from the
validation package: printable, non-blank, at most 128 bytes, no '/'.
*/
package api
