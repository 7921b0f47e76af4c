// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import "errors"

var (
	// ErrEmptyProductID is returned by Like and Unlike for a blank product id.
	ErrEmptyProductID = errors.New("product id is empty")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid personalization config")

	// ErrNilStore is returned when a tracker is built without a store.
	ErrNilStore = errors.New("key-value store is nil")
)
