// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package main is the entry point for the Atelier personalization server.
//
// Atelier tracks which watches a shopper likes, works out which collection
// they gravitate towards, and serves collection-specific content once that
// affinity crosses a threshold.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Storage: memory, BadgerDB or Redis for persisted liked sets
//  4. Catalog: seed, file or HTTP source behind a refreshed snapshot
//  5. Sessions: LRU-bounded registry of per-session engines
//  6. HTTP Server: chi router with rate limiting and Prometheus metrics
//  7. Supervisor tree: catalog refresh, session sweep and HTTP services
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree. Once the HTTP server has
// drained, every session engine is closed so pending liked-set writes reach
// the store before it is closed.
//
// # Example Usage
//
//	export STORAGE_BACKEND=badger
//	export BADGER_PATH=/data/likes
//	export CATALOG_SOURCE=http
//	export CATALOG_BASE_URL=https://catalog.internal
//	./atelier
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/atelier/internal/api"
	"github.com/tomtom215/atelier/internal/catalog"
	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/kvstore"
	"github.com/tomtom215/atelier/internal/logging"
	"github.com/tomtom215/atelier/internal/supervisor"
	"github.com/tomtom215/atelier/internal/supervisor/services"
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("storage", string(cfg.Storage.Backend)).
		Str("catalog", cfg.Catalog.Source).
		Msg("Starting Atelier with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := kvstore.Open(ctx, cfg.Storage)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open liked-set store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing liked-set store")
		}
	}()

	source, err := catalog.NewSource(cfg.Catalog, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure catalog source")
	}
	snapshot := catalog.NewSnapshotter(source, cfg.Catalog.Source, cfg.Catalog.RefreshTimeout, logger)

	registry, err := api.NewSessionRegistry(cfg.Sessions, &cfg.Personalize, snapshot, store, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create session registry")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	router := api.NewRouter(api.NewHandler(registry, snapshot), cfg.Security)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCatalogService(services.NewCatalogRefreshService(snapshot, cfg.Catalog.RefreshInterval, logger))
	tree.AddSessionService(services.NewSessionSweepService(registry, sweepInterval(cfg.Sessions.IdleTTL), logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	// No requests are in flight now; flush every session before the store closes.
	closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.Sessions.CloseTimeout+cfg.Server.ShutdownTimeout)
	defer closeCancel()
	if err := registry.Close(closeCtx); err != nil {
		logging.Error().Err(err).Msg("Some sessions did not flush before shutdown")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// sweepInterval is the idle TTL capped at one minute.
func sweepInterval(idleTTL time.Duration) time.Duration {
	if idleTTL <= 0 || idleTTL > time.Minute {
		return time.Minute
	}
	return idleTTL
}
