// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: reuses a well-formed X-Request-ID or mints a UUID, and puts it
    in the logging context so every log line for the request carries it
  - TrustedRealIP: honors X-Forwarded-For and X-Real-IP only from configured
    proxy addresses or CIDR ranges
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    chi route pattern

All middleware uses the func(http.Handler) http.Handler shape expected by
chi's r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.TrustedRealIP(cfg.Security.TrustedProxies))
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Get("/sessions/{sessionID}/likes", h.Likes)
	})

PrometheusMetrics reads the route pattern after the handler returns, so it
must be installed inside the router (r.Use) rather than wrapped around it.
*/
package middleware
