// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

/*
Package catalog provides the product and collection data the personalization
engine reads.

Every source implements personalize.CatalogService:

  - Static: an in-memory document, built from the embedded demo seed
    (NewSeed) or from raw YAML/JSON bytes
  - File: a YAML or JSON document on disk, re-read on every refresh
  - HTTP: a remote catalog API guarded by a circuit breaker and a client-side
    rate limiter

A Snapshotter turns any source into a personalize.CatalogSource. Each
successful Refresh swaps in a new immutable snapshot; a failed refresh keeps
the previous one, and before the first success the snapshot is empty.

# Document Format

	collections:
	  - id: navitimer
	    name: Navitimer
	    established: 1952
	    price_range: {min: 4900, max: 14500, currency: USD}
	products:
	  - id: navitimer-b01-chronograph-43
	    collection: Navitimer B01
	    price: 9250
	    currency: USD

JSON documents use the same field names.
*/
package catalog
