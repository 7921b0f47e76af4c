// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import "errors"

// Common API errors
var (
	// ErrRegistryClosed is returned once the session registry has been drained.
	ErrRegistryClosed = errors.New("session registry is closed")

	// ErrInvalidSessionID is returned for a session id that fails validation.
	ErrInvalidSessionID = errors.New("invalid session id")
)
