// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/atelier/internal/kvstore"
	"github.com/tomtom215/atelier/internal/metrics"
)

// Tracker owns the liked-product set of one user.
//
// Mutations apply in memory immediately and are persisted in the background.
// A storage failure never fails a mutation and never rolls it back.
type Tracker struct {
	mu    sync.RWMutex
	liked map[string]struct{}

	persister *persister
	logger    zerolog.Logger
}

// NewTracker loads the liked set stored under cfg.StorageKey.
//
// A missing key yields an empty set. An unreadable or corrupt payload is
// logged and also yields an empty set; it is never surfaced as an error.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTracker(ctx context.Context, store KeyValueStore, cfg *Config, logger zerolog.Logger) (*Tracker, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger = logger.With().Str("storage_key", cfg.StorageKey).Logger()
	t := &Tracker{
		liked:  loadLiked(ctx, store, cfg.StorageKey, logger),
		logger: logger,
	}
	t.persister = newPersister(store, cfg.StorageKey, cfg.Persist, logger)

	logger.Debug().Int("liked", len(t.liked)).Msg("Liked set loaded")
	return t, nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func loadLiked(ctx context.Context, store KeyValueStore, key string, logger zerolog.Logger) map[string]struct{} {
	liked := make(map[string]struct{})

	data, err := store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return liked
	}
	if err != nil {
		metrics.RecordPersistLoadFailure("read")
		logger.Warn().Err(err).Msg("Failed to read liked set, starting empty")
		return liked
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		metrics.RecordPersistLoadFailure("decode")
		logger.Warn().Err(err).Int("bytes", len(data)).Msg("Corrupt liked set payload, starting empty")
		return liked
	}

	for _, id := range ids {
		if id = normalizeProductID(id); id != "" {
			liked[id] = struct{}{}
		}
	}
	return liked
}

// normalizeProductID trims surrounding whitespace. Loading, Like and Unlike
// all apply it, so a stored set reloads unchanged.
func normalizeProductID(id string) string {
	return strings.TrimSpace(id)
}

// Like adds productID to the liked set. Liking twice leaves the set
// unchanged but still writes a snapshot.
func (t *Tracker) Like(productID string) error {
	productID = normalizeProductID(productID)
	if productID == "" {
		return ErrEmptyProductID
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.liked[productID] = struct{}{}
	t.persistLocked()
	return nil
}

// Unlike removes productID from the liked set. Removing an absent id leaves
// the set unchanged but still writes a snapshot.
func (t *Tracker) Unlike(productID string) error {
	productID = normalizeProductID(productID)
	if productID == "" {
		return ErrEmptyProductID
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.liked, productID)
	t.persistLocked()
	return nil
}

// IsLiked reports whether productID is in the liked set.
func (t *Tracker) IsLiked(productID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.liked[normalizeProductID(productID)]
	return ok
}

// LikedIDs returns the liked set as a sorted slice.
func (t *Tracker) LikedIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortedLocked()
}

// Len returns the size of the liked set.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.liked)
}

// Flush waits until all mutations made before the call are persisted or dropped.
func (t *Tracker) Flush(ctx context.Context) error {
	return t.persister.flush(ctx)
}

// Close flushes pending writes and stops the background writer. Mutations
// after Close are persisted synchronously by the mutating call.
func (t *Tracker) Close(ctx context.Context) error {
	return t.persister.close(ctx)
}

func (t *Tracker) sortedLocked() []string {
	ids := make([]string, 0, len(t.liked))
	for id := range t.liked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// persistLocked snapshots the set and hands it to the writer. It runs under
// the write lock so snapshots reach the writer in mutation order.
func (t *Tracker) persistLocked() {
	data, err := json.Marshal(t.sortedLocked())
	if err != nil {
		t.logger.Error().Err(err).Msg("Failed to encode liked set")
		return
	}
	t.persister.enqueue(data)
}
