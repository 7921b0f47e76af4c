// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// readiness is the body of the readiness probe.
type readiness struct {
	Status           string     `json:"status"`
	CatalogLoaded    bool       `json:"catalog_loaded"`
	CatalogProducts  int        `json:"catalog_products"`
	LastCatalogFetch *time.Time `json:"last_catalog_refresh"`
	ActiveSessions   int        `json:"active_sessions"`
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// The service is ready once a catalog snapshot has loaded; before that every
// session would get fallback content only.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	body := readiness{
		Status:         "not_ready",
		ActiveSessions: h.sessions.Len(),
	}

	if h.catalog != nil {
		body.CatalogLoaded = h.catalog.Ready()
		body.CatalogProducts = h.catalog.Catalog().Len()
		if last := h.catalog.LastSuccess(); !last.IsZero() {
			body.LastCatalogFetch = &last
		}
	}

	status := http.StatusServiceUnavailable
	if body.CatalogLoaded {
		status = http.StatusOK
		body.Status = "ready"
	}

	respondData(w, r, status, body)
}
