// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SessionSweeper evicts idle sessions. Satisfied by *api.SessionRegistry.
type SessionSweeper interface {
	Sweep() int
}

// SessionSweepService periodically evicts sessions idle past their TTL so
// their liked sets are flushed even when no new session pushes them out.
type SessionSweepService struct {
	sweeper  SessionSweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// DefaultSweepInterval is used when the interval is not positive.
const DefaultSweepInterval = time.Minute

// NewSessionSweepService creates the sweep service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSessionSweepService(sweeper SessionSweeper, interval time.Duration, logger zerolog.Logger) *SessionSweepService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &SessionSweepService{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With().Str("service", "session-sweep").Logger(),
		name:     "session-sweep-service",
	}
}

// Serve implements suture.Service.
func (s *SessionSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if n := s.sweeper.Sweep(); n > 0 {
				s.logger.Debug().Int("evicted", n).Msg("idle sessions evicted")
			}
		}
	}
}

// String returns the service name for logging.
func (s *SessionSweepService) String() string {
	return s.name
}
