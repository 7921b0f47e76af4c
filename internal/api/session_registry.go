// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/atelier/internal/cache"
	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/logging"
	"github.com/tomtom215/atelier/internal/metrics"
	"github.com/tomtom215/atelier/internal/personalize"
	"github.com/tomtom215/atelier/internal/validation"
)

// SessionRegistry keeps one personalization engine per shopper session.
//
// Engines live in a bounded LRU with an idle TTL. An engine leaving the
// registry, by eviction or at shutdown, is closed so its last liked-set write
// reaches storage before a later request can reload the session.
//
// Engine creation and eviction happen under one mutex. That keeps a session
// from being reloaded while its previous engine is still flushing.
type SessionRegistry struct {
	cfg    config.SessionsConfig
	base   *personalize.Config
	source personalize.CatalogSource
	store  personalize.KeyValueStore
	logger zerolog.Logger

	mu       sync.Mutex
	sessions *cache.LRU[*personalize.Engine]
	closed   bool
}

// NewSessionRegistry creates a registry. base is cloned per session with the
// storage key suffixed by the session id.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSessionRegistry(cfg config.SessionsConfig, base *personalize.Config, source personalize.CatalogSource, store personalize.KeyValueStore, logger zerolog.Logger) (*SessionRegistry, error) {
	if store == nil {
		return nil, personalize.ErrNilStore
	}
	if base == nil {
		base = personalize.DefaultConfig()
	}
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("session registry: %w", err)
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = 5 * time.Second
	}

	r := &SessionRegistry{
		cfg:    cfg,
		base:   base.Clone(),
		source: source,
		store:  store,
		logger: logger.With().Str("component", "sessions").Logger(),
	}
	r.sessions = cache.NewLRU[*personalize.Engine](cfg.MaxActive, cfg.IdleTTL,
		cache.WithEvictFunc[*personalize.Engine](r.onEvict))

	return r, nil
}

// StorageKey returns the key a session's liked set is stored under.
func StorageKey(base, sessionID string) string {
	return base + ":" + sessionID
}

// Engine returns the session's engine, creating and loading it on first use.
func (r *SessionRegistry) Engine(ctx context.Context, sessionID string) (*personalize.Engine, error) {
	if len(sessionID) > validation.MaxIdentifierLength || !validation.IsIdentifier(sessionID) {
		return nil, ErrInvalidSessionID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}
	if engine, ok := r.sessions.Get(sessionID); ok {
		return engine, nil
	}

	cfg := r.base.Clone()
	cfg.StorageKey = StorageKey(r.base.StorageKey, sessionID)

	logger := r.logger.With().Str("session", logging.SanitizeSessionID(sessionID)).Logger()
	engine, err := personalize.NewEngine(ctx, cfg, r.source, r.store, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	r.sessions.Add(sessionID, engine)
	metrics.SetActiveSessions(r.sessions.Len())

	logging.Ctx(ctx).Debug().
		Str("component", "sessions").
		Int("active", r.sessions.Len()).
		Msg("Session engine created")

	return engine, nil
}

// Len returns the number of cached engines.
func (r *SessionRegistry) Len() int {
	return r.sessions.Len()
}

// Sweep closes engines idle past the TTL and returns how many were evicted.
func (r *SessionRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0
	}
	n := r.sessions.CleanupExpired()
	metrics.SetActiveSessions(r.sessions.Len())
	return n
}

// Close drains the registry and closes every engine. Later Engine calls
// return ErrRegistryClosed.
func (r *SessionRegistry) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	entries := r.sessions.Drain()
	for _, entry := range entries {
		metrics.RecordSessionEviction("shutdown")
		if err := entry.Value.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close session %s: %w", logging.SanitizeSessionID(entry.Key), err))
		}
	}
	metrics.SetActiveSessions(0)

	r.logger.Info().Int("sessions", len(entries)).Msg("Session registry drained")
	return errors.Join(errs...)
}

// onEvict runs outside the LRU lock but inside r.mu.
func (r *SessionRegistry) onEvict(sessionID string, engine *personalize.Engine, reason cache.EvictReason) {
	metrics.RecordSessionEviction(reason.String())

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.CloseTimeout)
	defer cancel()

	if err := engine.Close(ctx); err != nil {
		r.logger.Warn().Err(err).
			Str("session", logging.SanitizeSessionID(sessionID)).
			Str("reason", reason.String()).
			Msg("Evicted session did not flush in time")
		return
	}

	r.logger.Debug().
		Str("session", logging.SanitizeSessionID(sessionID)).
		Str("reason", reason.String()).
		Msg("Session evicted")
}
