// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

/*
Package supervisor provides process supervision for Atelier using suture v4.

Long-running services are organized into three layers so that a failure in
one layer is restarted without touching the others:

	RootSupervisor ("atelier")
	├── CatalogSupervisor ("catalog-layer")
	│   └── CatalogRefreshService
	├── SessionsSupervisor ("sessions-layer")
	│   └── SessionSweepService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (restarts, backoff, shutdown timeouts) are logged through
sutureslog. The slog.Logger handed to NewSupervisorTree is normally
logging.NewSlogLogger, which forwards to zerolog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.Logger()), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCatalogService(refreshSvc)
	tree.AddSessionService(sweepSvc)
	tree.AddAPIService(httpSvc)

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}

Serve returns once ctx is canceled and every service has stopped or the
shutdown timeout expired. UnstoppedServiceReport lists services that did not
stop in time.
*/
package supervisor
