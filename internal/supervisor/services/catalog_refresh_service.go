// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package services provides Suture service wrappers for application components.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CatalogRefresher reloads a catalog snapshot. Satisfied by *catalog.Snapshotter.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// CatalogRefreshService loads the catalog snapshot on start and then
// refreshes it on an interval. A failed refresh keeps the previous snapshot.
type CatalogRefreshService struct {
	refresher CatalogRefresher
	interval  time.Duration
	logger    zerolog.Logger
	name      string
}

// NewCatalogRefreshService creates the refresh service. An interval of zero
// or less loads the catalog once and then idles until shutdown.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogRefreshService(refresher CatalogRefresher, interval time.Duration, logger zerolog.Logger) *CatalogRefreshService {
	return &CatalogRefreshService{
		refresher: refresher,
		interval:  interval,
		logger:    logger.With().Str("service", "catalog-refresh").Logger(),
		name:      "catalog-refresh-service",
	}
}

// Serve implements suture.Service.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("catalog refresh service starting")

	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("initial catalog load failed (will retry on schedule)")
	}

	if s.interval <= 0 {
		<-ctx.Done()
		s.logger.Info().Msg("catalog refresh service shutting down")
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.refresher.Refresh(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled catalog refresh failed")
			}
		}
	}
}

// String returns the service name for logging.
func (s *CatalogRefreshService) String() string {
	return s.name
}
