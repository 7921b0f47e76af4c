// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/atelier/internal/metrics"
	"github.com/tomtom215/atelier/internal/personalize"
)

// Snapshotter holds the current catalog snapshot for a source.
//
// Readers call Catalog and never block. Refresh builds a new snapshot and
// swaps it in atomically; on failure the previous snapshot stays in place.
type Snapshotter struct {
	source  personalize.CatalogService
	name    string
	timeout time.Duration
	logger  zerolog.Logger

	current     atomic.Pointer[personalize.Catalog]
	loaded      atomic.Bool
	lastSuccess atomic.Int64

	// refreshMu serializes refreshes so snapshots are swapped in call order.
	refreshMu sync.Mutex
}

// NewSnapshotter creates a Snapshotter for source. name labels metrics and
// logs (e.g. "seed", "file", "http"). The initial snapshot is empty.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotter(source personalize.CatalogService, name string, timeout time.Duration, logger zerolog.Logger) *Snapshotter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &Snapshotter{
		source:  source,
		name:    name,
		timeout: timeout,
		logger:  logger.With().Str("component", "catalog").Str("source", name).Logger(),
	}
	s.current.Store(personalize.NewCatalog(nil, nil))
	return s
}

// Catalog implements personalize.CatalogSource.
func (s *Snapshotter) Catalog() *personalize.Catalog {
	return s.current.Load()
}

// Ready reports whether at least one refresh has succeeded.
func (s *Snapshotter) Ready() bool {
	return s.loaded.Load()
}

// LastSuccess returns the time of the last successful refresh, or the zero time.
func (s *Snapshotter) LastSuccess() time.Time {
	ns := s.lastSuccess.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Refresh loads a new snapshot from the source.
func (s *Snapshotter) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	cat, err := personalize.LoadCatalog(ctx, s.source)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordCatalogRefresh(s.name, duration, 0, 0, err)
		s.logger.Warn().Err(err).Bool("has_snapshot", s.Ready()).Msg("catalog refresh failed, keeping previous snapshot")
		return err
	}

	collections := len(cat.Collections())
	metrics.RecordCatalogRefresh(s.name, duration, cat.Len(), collections, nil)
	s.current.Store(cat)
	s.loaded.Store(true)
	s.lastSuccess.Store(time.Now().UnixNano())

	s.logger.Info().
		Int("products", cat.Len()).
		Int("collections", collections).
		Dur("duration", duration).
		Msg("catalog snapshot refreshed")
	return nil
}
