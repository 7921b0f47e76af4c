// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package logging provides centralized zerolog-based structured logging for Atelier.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("server starting")
//	logging.Error().Err(err).Msg("catalog refresh failed")
//
// # Context
//
// HTTP middleware stores the request ID and shopper session ID in the request
// context. Ctx builds a logger carrying both, with the session ID masked:
//
//	logging.Ctx(ctx).Info().Str("collection", "Navitimer").Msg("trigger activated")
//	// {"level":"info","request_id":"...","session":"3f2b...4d6e","collection":"Navitimer",...}
//
// Components that own a logger take a zerolog.Logger by value and add a
// component field:
//
//	logger := logging.WithComponent("catalog")
//
// # slog
//
// NewSlogLogger adapts a zerolog.Logger to *slog.Logger for libraries that
// only accept slog, such as the sutureslog event hook.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
