// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/atelier/internal/metrics"
)

// persister writes liked-set snapshots for one key from a single goroutine.
//
// Pending snapshots coalesce: a newer snapshot replaces an unwritten older
// one, so the store only ever moves forward and writes are never reordered.
type persister struct {
	store  KeyValueStore
	key    string
	cfg    PersistConfig
	logger zerolog.Logger

	mu         sync.Mutex
	pending    []byte
	hasPending bool
	enqueued   uint64 // generation of the newest snapshot handed in
	settled    uint64 // generation of the newest snapshot written or dropped
	settledCh  chan struct{}
	closed     bool

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// lateMu serializes snapshots written after close.
	lateMu sync.Mutex
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newPersister(store KeyValueStore, key string, cfg PersistConfig, logger zerolog.Logger) *persister {
	p := &persister{
		store:     store,
		key:       key,
		cfg:       cfg,
		logger:    logger,
		settledCh: make(chan struct{}),
		wake:      make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go p.run()
	return p
}

// enqueue hands a snapshot to the writer without blocking. After close it
// writes the snapshot on the caller's goroutine instead.
func (p *persister) enqueue(data []byte) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.writeLate(data)
		return
	}
	p.enqueued++
	p.pending = data
	p.hasPending = true
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.stop:
			p.drain()
			return
		}
	}
}

// drain writes pending snapshots until none remain.
func (p *persister) drain() {
	for {
		p.mu.Lock()
		if !p.hasPending {
			p.mu.Unlock()
			return
		}
		data := p.pending
		gen := p.enqueued
		p.pending = nil
		p.hasPending = false
		p.mu.Unlock()

		p.write(data)

		p.mu.Lock()
		p.settled = gen
		close(p.settledCh)
		p.settledCh = make(chan struct{})
		p.mu.Unlock()
	}
}

// write stores data, retrying per configuration. The final failure is dropped.
func (p *persister) write(data []byte) {
	attempts := p.cfg.Retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), p.cfg.Timeout)
		start := time.Now()
		err := p.store.Set(ctx, p.key, data)
		cancel()

		final := attempt == attempts
		metrics.RecordPersistWrite(time.Since(start), err, final)
		if err == nil {
			return
		}

		if final {
			p.logger.Error().Err(err).
				Str("key", p.key).
				Int("attempts", attempts).
				Msg("Failed to persist liked set, snapshot dropped")
			return
		}

		p.logger.Warn().Err(err).
			Str("key", p.key).
			Int("attempt", attempt).
			Dur("retry_in", p.cfg.RetryDelay).
			Msg("Failed to persist liked set, retrying")

		if p.cfg.RetryDelay > 0 {
			time.Sleep(p.cfg.RetryDelay)
		}
	}
}

// writeLate persists a snapshot produced after close. It waits for the writer
// to exit first so an older queued snapshot cannot land after this one.
func (p *persister) writeLate(data []byte) {
	p.lateMu.Lock()
	defer p.lateMu.Unlock()

	<-p.done
	p.logger.Debug().Str("key", p.key).Msg("Liked set changed after close, writing synchronously")
	p.write(data)
}

// flush waits until every snapshot enqueued before the call has settled.
func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.enqueued
	for p.settled < target {
		ch := p.settledCh
		p.mu.Unlock()
		select {
		case <-ch:
		case <-p.done:
			// The writer drains everything before exiting.
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
		p.mu.Lock()
	}
	p.mu.Unlock()
	return nil
}

// close flushes pending snapshots and stops the writer.
func (p *persister) close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.stopOnce.Do(func() { close(p.stop) })

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
