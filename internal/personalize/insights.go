// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"sort"
	"strings"
)

// Summarize computes aggregate statistics over the liked set.
//
// Dominant collection, price span and materials consider only ids the catalog
// resolves. TotalLikes counts every id. CollectionAffinities mirrors the
// attribution used by Evaluate, including id inference.
func Summarize(likedIDs []string, cat *Catalog) Insights {
	out := Insights{
		TotalLikes:           len(likedIDs),
		PreferredMaterials:   []string{},
		CollectionAffinities: map[Collection]int{},
	}

	resolvedCounts := make(map[Collection]int)
	materials := make(map[string]struct{})
	first := true

	for _, id := range likedIDs {
		p, ok := cat.Product(id)
		if !ok {
			continue
		}

		if first {
			out.MinPrice, out.MaxPrice = p.Price, p.Price
			first = false
		} else {
			if p.Price < out.MinPrice {
				out.MinPrice = p.Price
			}
			if p.Price > out.MaxPrice {
				out.MaxPrice = p.Price
			}
		}

		if c := Normalize(p.Collection); c != "" {
			resolvedCounts[c]++
		}
		if m := strings.TrimSpace(p.Material); m != "" {
			materials[m] = struct{}{}
		}
	}

	if ranked := rankCollections(resolvedCounts); len(ranked) > 0 {
		out.DominantCollection = ranked[0]
		out.HasDominant = true
	}

	for m := range materials {
		out.PreferredMaterials = append(out.PreferredMaterials, m)
	}
	sort.Strings(out.PreferredMaterials)

	tally := attribute(likedIDs, cat)
	out.CollectionAffinities = tally.counts
	out.UnattributedLikes = tally.unattributed

	return out
}
