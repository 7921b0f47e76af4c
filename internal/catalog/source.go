// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package catalog

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/atelier/internal/personalize"
)

// Source names accepted by Config.Source.
const (
	SourceSeed = "seed"
	SourceFile = "file"
	SourceHTTP = "http"
)

// Config selects and configures the catalog source.
type Config struct {
	Source string `koanf:"source"`

	// Path of the catalog document for the file source.
	Path string `koanf:"path"`

	// BaseURL of the remote catalog API for the http source.
	BaseURL           string        `koanf:"base_url"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	BreakerFailures   uint32        `koanf:"breaker_failures"`
	BreakerTimeout    time.Duration `koanf:"breaker_timeout"`

	// RefreshInterval is how often the snapshot is rebuilt. Zero loads once.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// RefreshTimeout bounds a single refresh.
	RefreshTimeout time.Duration `koanf:"refresh_timeout"`
}

// NewSource builds the CatalogService selected by cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSource(cfg Config, logger zerolog.Logger) (personalize.CatalogService, error) {
	switch cfg.Source {
	case SourceSeed, "":
		return NewSeed(), nil
	case SourceFile:
		return NewFile(cfg.Path)
	case SourceHTTP:
		return NewHTTP(HTTPConfig{
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.RequestTimeout,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
			BreakerFailures:   cfg.BreakerFailures,
			BreakerTimeout:    cfg.BreakerTimeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
