// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package kvstore provides the key-value backends used to persist liked sets.
//
// Three backends are available: an in-process map for tests and development,
// BadgerDB for durable single-node storage, and Redis for deployments that
// run several API replicas against shared state.
package kvstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store is a byte-oriented key-value store.
type Store interface {
	// Get returns the value for key or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Backend selects a Store implementation.
type Backend string

const (
	// BackendMemory keeps values in process memory (not persistent).
	BackendMemory Backend = "memory"

	// BackendBadger uses an embedded BadgerDB.
	BackendBadger Backend = "badger"

	// BackendRedis uses a Redis server.
	BackendRedis Backend = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend Backend `koanf:"backend"`

	// Badger settings. An empty path opens an in-memory database.
	BadgerPath string `koanf:"badger_path"`

	// Redis settings.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// KeyPrefix namespaces every key written by this process.
	KeyPrefix string `koanf:"key_prefix"`
}

// Open creates the Store selected by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendBadger:
		return OpenBadger(cfg.BadgerPath, cfg.KeyPrefix)
	case BackendRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
