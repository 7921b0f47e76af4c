// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

/*
Package config provides centralized configuration management for Atelier.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file (CONFIG_PATH, ./config.yaml or /etc/atelier/config.yaml), then
environment variables. Only environment variables listed in the mapping
table are read.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT: request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 15s)
  - ENVIRONMENT: development, staging, production

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Storage:
  - STORAGE_BACKEND: memory, badger, redis (default: badger)
  - BADGER_PATH: BadgerDB directory (default: /data/atelier/badger)
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
  - STORAGE_KEY_PREFIX (default: atelier:)

Catalog:
  - CATALOG_SOURCE: seed, file, http (default: seed)
  - CATALOG_PATH: document path for the file source
  - CATALOG_BASE_URL: API root for the http source
  - CATALOG_REFRESH_INTERVAL: snapshot refresh cadence (default: 15m, 0 loads once)

Personalization:
  - PERSONALIZE_ACTIVATION_THRESHOLD (default: 4)
  - PERSONALIZE_CONFIDENCE_SATURATION (default: 6)
  - PERSONALIZE_STORAGE_KEY (default: liked_products)
  - PERSONALIZE_PERSIST_RETRIES, PERSONALIZE_PERSIST_RETRY_DELAY

Sessions:
  - SESSION_MAX_ACTIVE, SESSION_IDLE_TTL, SESSION_CLOSE_TIMEOUT

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS, TRUSTED_PROXIES (comma-separated)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("failed to load configuration")
	}
	store, err := kvstore.Open(ctx, cfg.Storage)
*/
package config
