// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"time"

	"github.com/tomtom215/atelier/internal/personalize"
)

// CatalogView is the read side of the catalog snapshot used by handlers.
// *catalog.Snapshotter satisfies it.
type CatalogView interface {
	personalize.CatalogSource

	// Ready reports whether at least one snapshot has loaded.
	Ready() bool

	// LastSuccess is the time of the last successful refresh, zero if none.
	LastSuccess() time.Time
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness
//   - handlers_catalog.go: catalog snapshot reads
//   - handlers_sessions.go: per-session likes, trigger, content and insights
type Handler struct {
	sessions  *SessionRegistry
	catalog   CatalogView
	startTime time.Time
}

// NewHandler creates a new API handler.
//
//	snapshot := catalog.NewSnapshotter(src, "seed", 0, logger)
//	sessions, _ := api.NewSessionRegistry(cfg.Sessions, &cfg.Personalize, snapshot, store, logger)
//	handler := api.NewHandler(sessions, snapshot)
//	router := api.NewRouter(handler, cfg.Security)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(sessions *SessionRegistry, catalog CatalogView) *Handler {
	return &Handler{
		sessions:  sessions,
		catalog:   catalog,
		startTime: time.Now(),
	}
}
