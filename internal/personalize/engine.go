// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/atelier/internal/logging"
	"github.com/tomtom215/atelier/internal/metrics"
)

// CatalogSource yields the current catalog snapshot. Implementations may swap
// the snapshot at any time; the engine reads it once per operation.
type CatalogSource interface {
	Catalog() *Catalog
}

type staticCatalog struct {
	catalog *Catalog
}

func (s staticCatalog) Catalog() *Catalog { return s.catalog }

// StaticCatalog returns a CatalogSource that always yields c.
func StaticCatalog(c *Catalog) CatalogSource {
	return staticCatalog{catalog: c}
}

// Engine is the personalization facade for a single user.
//
// It owns the user's Tracker and derives triggers, content and insights from
// the liked set and the current catalog snapshot. It is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	source  CatalogSource
	tracker *Tracker
	now     func() time.Time

	// mu serializes mutations; active is the trigger after the last one.
	mu     sync.Mutex
	active *Trigger
}

// NewEngine creates an engine and loads the liked set from store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ctx context.Context, cfg *Config, source CatalogSource, store KeyValueStore, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if source == nil {
		source = StaticCatalog(nil)
	}

	logger = logger.With().Str("component", "personalize").Logger()

	tracker, err := NewTracker(ctx, store, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create tracker: %w", err)
	}

	e := &Engine{
		config:  cfg.Clone(),
		logger:  logger,
		source:  source,
		tracker: tracker,
		now:     time.Now,
	}

	// Seed transition tracking silently; a restored set is not a new activation.
	if t, ok := e.EvaluateTrigger(); ok {
		e.active = &t
	}

	return e, nil
}

// Like records a like and re-evaluates the trigger.
func (e *Engine) Like(ctx context.Context, productID string) error {
	return e.mutate(ctx, "like", e.tracker.Like, productID)
}

// Unlike removes a like and re-evaluates the trigger.
func (e *Engine) Unlike(ctx context.Context, productID string) error {
	return e.mutate(ctx, "unlike", e.tracker.Unlike, productID)
}

// mutate applies op and swaps the active trigger in one critical section, so
// transitions are observed in mutation order.
func (e *Engine) mutate(ctx context.Context, operation string, op func(string) error, productID string) error {
	e.mu.Lock()
	if err := op(productID); err != nil {
		e.mu.Unlock()
		return err
	}
	prev := e.active
	next, ok := e.EvaluateTrigger()
	if ok {
		e.active = &next
	} else {
		e.active = nil
	}
	e.mu.Unlock()

	metrics.RecordLikeOperation(operation)
	e.observe(ctx, prev, next, ok)
	return nil
}

// LikedIDs returns the liked set, sorted.
func (e *Engine) LikedIDs() []string {
	return e.tracker.LikedIDs()
}

// IsLiked reports whether productID is liked.
func (e *Engine) IsLiked(productID string) bool {
	return e.tracker.IsLiked(productID)
}

// EvaluateTrigger returns the current trigger, if any.
func (e *Engine) EvaluateTrigger() (Trigger, bool) {
	return Evaluate(e.tracker.LikedIDs(), e.source.Catalog(), e.config)
}

// Compose builds personalized content for the current trigger.
// It returns false when no trigger is active or its collection is unknown
// to the catalog.
func (e *Engine) Compose(ctx context.Context) (*PersonalizedContent, bool) {
	liked := e.tracker.LikedIDs()
	cat := e.source.Catalog()

	trig, ok := Evaluate(liked, cat, e.config)
	if !ok {
		metrics.RecordCompose("no_trigger")
		return nil, false
	}

	content, ok := Compose(trig, liked, cat, e.config, e.now())
	if !ok {
		metrics.RecordCompose("unknown_collection")
		logging.Ctx(ctx).Debug().
			Str("component", "personalize").
			Str("collection", trig.CollectionName.String()).
			Msg("Trigger collection not in catalog, no content composed")
		return nil, false
	}

	metrics.RecordCompose("composed")
	return content, true
}

// Insights summarizes the liked set against the current catalog.
func (e *Engine) Insights() Insights {
	return Summarize(e.tracker.LikedIDs(), e.source.Catalog())
}

// Flush waits for pending liked-set writes.
func (e *Engine) Flush(ctx context.Context) error {
	return e.tracker.Flush(ctx)
}

// Close flushes pending writes and releases the tracker.
func (e *Engine) Close(ctx context.Context) error {
	return e.tracker.Close(ctx)
}

// observe logs and counts the trigger transition from prev to next.
func (e *Engine) observe(ctx context.Context, prev *Trigger, next Trigger, ok bool) {
	requestID := logging.RequestIDFromContext(ctx)
	switch {
	case ok && (prev == nil || prev.CollectionName != next.CollectionName):
		metrics.RecordTriggerActivation(next.CollectionName.String(), next.CollectionName.IsKnown())
		e.logger.Info().
			Str("request_id", requestID).
			Str("collection", next.CollectionName.String()).
			Int("like_count", next.LikeCount).
			Float64("confidence", next.Confidence).
			Msg("Personalization trigger activated")
	case !ok && prev != nil:
		metrics.RecordTriggerDeactivation()
		e.logger.Info().
			Str("request_id", requestID).
			Str("collection", prev.CollectionName.String()).
			Msg("Personalization trigger deactivated")
	}
}
