// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"fmt"
	"time"
)

// Config contains all tunables of the personalization engine.
type Config struct {
	// ActivationThreshold is the number of likes a canonical collection
	// needs before a trigger fires.
	ActivationThreshold int `json:"activation_threshold" koanf:"activation_threshold"`

	// ConfidenceSaturation is the like count at which trigger confidence
	// reaches 1.0.
	ConfidenceSaturation float64 `json:"confidence_saturation" koanf:"confidence_saturation"`

	// IntraCollectionLimit caps same-collection recommendations.
	IntraCollectionLimit int `json:"intra_collection_limit" koanf:"intra_collection_limit"`

	// IntraCollectionConfidence is the confidence of same-collection recommendations.
	IntraCollectionConfidence float64 `json:"intra_collection_confidence" koanf:"intra_collection_confidence"`

	// StorageKey is the key under which the liked set is stored.
	StorageKey string `json:"storage_key" koanf:"storage_key"`

	// Persist controls background writes of the liked set.
	Persist PersistConfig `json:"persist" koanf:"persist"`
}

// PersistConfig controls the single-writer persister.
type PersistConfig struct {
	// Retries is the number of extra attempts after a failed write.
	Retries int `json:"retries" koanf:"retries"`

	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration `json:"retry_delay" koanf:"retry_delay"`

	// Timeout bounds a single store write.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() *Config {
	return &Config{
		ActivationThreshold:       4,
		ConfidenceSaturation:      6.0,
		IntraCollectionLimit:      2,
		IntraCollectionConfidence: 0.9,
		StorageKey:                "liked_products",
		Persist: PersistConfig{
			Retries:    1,
			RetryDelay: 250 * time.Millisecond,
			Timeout:    5 * time.Second,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.ActivationThreshold < 1 {
		return fmt.Errorf("%w: activation_threshold must be positive, got %d", ErrInvalidConfig, c.ActivationThreshold)
	}
	if c.ConfidenceSaturation <= 0 {
		return fmt.Errorf("%w: confidence_saturation must be positive, got %f", ErrInvalidConfig, c.ConfidenceSaturation)
	}
	if c.IntraCollectionLimit < 0 {
		return fmt.Errorf("%w: intra_collection_limit must be non-negative, got %d", ErrInvalidConfig, c.IntraCollectionLimit)
	}
	if c.IntraCollectionConfidence < 0 || c.IntraCollectionConfidence > 1 {
		return fmt.Errorf("%w: intra_collection_confidence must be in [0, 1], got %f", ErrInvalidConfig, c.IntraCollectionConfidence)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("%w: storage_key is required", ErrInvalidConfig)
	}
	if c.Persist.Retries < 0 {
		return fmt.Errorf("%w: persist.retries must be non-negative, got %d", ErrInvalidConfig, c.Persist.Retries)
	}
	if c.Persist.RetryDelay < 0 {
		return fmt.Errorf("%w: persist.retry_delay must be non-negative, got %v", ErrInvalidConfig, c.Persist.RetryDelay)
	}
	if c.Persist.Timeout <= 0 {
		return fmt.Errorf("%w: persist.timeout must be positive, got %v", ErrInvalidConfig, c.Persist.Timeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All fields are value types.
	clone := *c
	return &clone
}
