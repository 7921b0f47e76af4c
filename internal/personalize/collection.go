// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Collection is a canonical collection name used for affinity aggregation.
//
// The six known collections are declared as constants. Labels that match none
// of the normalization rules become ad hoc buckets holding the title-cased
// label, so Collection is a string type rather than a closed enum.
type Collection string

// Known canonical collections, in canonical priority order.
const (
	CollectionNavitimer          Collection = "Navitimer"
	CollectionChronomat          Collection = "Chronomat"
	CollectionSuperocean         Collection = "Superocean"
	CollectionSuperoceanHeritage Collection = "Superocean Heritage"
	CollectionPremier            Collection = "Premier"
	CollectionAvenger            Collection = "Avenger"
)

// knownCollections fixes the canonical priority used for deterministic
// tie-breaking. Ad hoc buckets rank after all of these.
var knownCollections = []Collection{
	CollectionNavitimer,
	CollectionChronomat,
	CollectionSuperocean,
	CollectionSuperoceanHeritage,
	CollectionPremier,
	CollectionAvenger,
}

// KnownCollections returns the canonical collections in priority order.
func KnownCollections() []Collection {
	out := make([]Collection, len(knownCollections))
	copy(out, knownCollections)
	return out
}

// String returns the canonical display name.
func (c Collection) String() string {
	return string(c)
}

// IsKnown reports whether c is one of the fixed canonical collections.
func (c Collection) IsKnown() bool {
	return c.priority() < len(knownCollections)
}

// priority returns the tie-break rank of c; ad hoc buckets share the last rank.
func (c Collection) priority() int {
	for i, k := range knownCollections {
		if c == k {
			return i
		}
	}
	return len(knownCollections)
}

// matchRule applies the substring rules to an already lowercased value.
// Order matters: the heritage check must run before the plain superocean check.
func matchRule(lower string) (Collection, bool) {
	switch {
	case strings.Contains(lower, "superocean") && strings.Contains(lower, "heritage"):
		return CollectionSuperoceanHeritage, true
	case strings.Contains(lower, "superocean"):
		return CollectionSuperocean, true
	case strings.Contains(lower, "chronomat"):
		return CollectionChronomat, true
	case strings.Contains(lower, "navitimer"):
		return CollectionNavitimer, true
	case strings.Contains(lower, "avenger"):
		return CollectionAvenger, true
	case strings.Contains(lower, "premier"):
		return CollectionPremier, true
	default:
		return "", false
	}
}

// Normalize maps a raw catalog collection label to its canonical collection.
//
// Matching is case-insensitive substring containment in fixed priority order.
// A label matching no rule becomes an ad hoc bucket named by the title-cased
// label. A blank label yields the empty Collection, which callers treat as
// unattributed.
func Normalize(rawLabel string) Collection {
	trimmed := strings.TrimSpace(rawLabel)
	if trimmed == "" {
		return ""
	}

	if c, ok := matchRule(strings.ToLower(trimmed)); ok {
		return c
	}

	// cases.Caser is stateful and not safe for concurrent use.
	return Collection(cases.Title(language.Und).String(trimmed))
}

// InferFromProductID applies the normalization rules directly to a product id
// that could not be resolved against the catalog. Unlike Normalize there is no
// ad hoc fallback: an id that matches no rule is reported as unattributed.
func InferFromProductID(productID string) (Collection, bool) {
	return matchRule(strings.ToLower(productID))
}
