// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

/*
Package services provides suture.Service wrappers for Atelier components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve(ctx) error pattern and implements fmt.Stringer so supervisor events
name the service.

# Available Services

HTTPServerService wraps *http.Server. Context cancellation triggers a
graceful Shutdown bounded by its own timeout.

CatalogRefreshService loads the catalog snapshot on start and reloads it on
an interval. Failures are logged and the previous snapshot stays in use, so
the service itself never exits with an error.

SessionSweepService evicts idle session engines on an interval. Eviction
closes each engine, which flushes its pending liked-set write.

# Usage

	tree.AddCatalogService(services.NewCatalogRefreshService(snapshot, cfg.Catalog.RefreshInterval, logger))
	tree.AddSessionService(services.NewSessionSweepService(registry, sweepInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
*/
package services
