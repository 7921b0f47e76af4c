// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/middleware"
)

// Router wires handlers and middleware into a chi route tree.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	trustedProxies []string
}

// NewRouter creates a router from the security config section.
func NewRouter(handler *Handler, security config.SecurityConfig) *Router {
	return &Router{
		handler:        handler,
		chiMiddleware:  NewChiMiddleware(ChiMiddlewareConfigFromSecurity(security)),
		trustedProxies: security.TrustedProxies,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)                            // X-Request-ID in header and logging context
	r.Use(middleware.TrustedRealIP(router.trustedProxies)) // Forwarded client IP, trusted proxies only
	r.Use(chimiddleware.Recoverer)                         // Recover from panics
	r.Use(AccessLog())                                     // Debug-level request log
	r.Use(router.chiMiddleware.CORS())                     // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Catalog and Session Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", router.handler.CatalogProducts)
			r.Get("/collections", router.handler.CatalogCollections)
		})

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Use(SessionContext)

			r.Get("/likes", router.handler.Likes)
			r.Put("/likes/{productID}", router.handler.Like)
			r.Delete("/likes/{productID}", router.handler.Unlike)
			r.Get("/trigger", router.handler.Trigger)
			r.Get("/content", router.handler.Content)
			r.Get("/insights", router.handler.Insights)
		})
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
