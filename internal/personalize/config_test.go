// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ActivationThreshold != 4 {
		t.Errorf("ActivationThreshold = %d, want 4", cfg.ActivationThreshold)
	}
	if cfg.ConfidenceSaturation != 6.0 {
		t.Errorf("ConfidenceSaturation = %v, want 6", cfg.ConfidenceSaturation)
	}
	if cfg.IntraCollectionLimit != 2 || cfg.IntraCollectionConfidence != 0.9 {
		t.Errorf("intra-collection = %d/%v, want 2/0.9", cfg.IntraCollectionLimit, cfg.IntraCollectionConfidence)
	}
	if cfg.StorageKey != "liked_products" {
		t.Errorf("StorageKey = %q", cfg.StorageKey)
	}
	if cfg.Persist.Retries < 1 {
		t.Errorf("Persist.Retries = %d, want at least one retry", cfg.Persist.Retries)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{name: "valid default", modify: func(c *Config) {}},
		{name: "threshold zero", modify: func(c *Config) { c.ActivationThreshold = 0 }, wantError: true},
		{name: "threshold one", modify: func(c *Config) { c.ActivationThreshold = 1 }},
		{name: "saturation zero", modify: func(c *Config) { c.ConfidenceSaturation = 0 }, wantError: true},
		{name: "negative intra limit", modify: func(c *Config) { c.IntraCollectionLimit = -1 }, wantError: true},
		{name: "zero intra limit", modify: func(c *Config) { c.IntraCollectionLimit = 0 }},
		{name: "confidence above one", modify: func(c *Config) { c.IntraCollectionConfidence = 1.1 }, wantError: true},
		{name: "negative confidence", modify: func(c *Config) { c.IntraCollectionConfidence = -0.1 }, wantError: true},
		{name: "empty storage key", modify: func(c *Config) { c.StorageKey = "" }, wantError: true},
		{name: "negative retries", modify: func(c *Config) { c.Persist.Retries = -1 }, wantError: true},
		{name: "no retries", modify: func(c *Config) { c.Persist.Retries = 0 }},
		{name: "negative retry delay", modify: func(c *Config) { c.Persist.RetryDelay = -time.Second }, wantError: true},
		{name: "zero timeout", modify: func(c *Config) { c.Persist.Timeout = 0 }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want wrapping ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.ActivationThreshold = 10
	clone.Persist.Retries = 5

	if cfg.ActivationThreshold != 4 || cfg.Persist.Retries != 1 {
		t.Error("Clone shares state with original")
	}
}
