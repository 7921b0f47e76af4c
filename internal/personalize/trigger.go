// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"fmt"
	"math"
	"sort"
)

// affinityTally is the per-collection attribution of a liked set.
type affinityTally struct {
	counts       map[Collection]int
	unattributed int
}

// attribute assigns every liked id to at most one canonical collection.
//
// Ids resolved by the catalog use their record's label; unresolved ids are
// inferred from the id text. Ids that fit neither are counted as unattributed
// and never contribute to any collection.
func attribute(likedIDs []string, cat *Catalog) affinityTally {
	t := affinityTally{counts: make(map[Collection]int)}
	for _, id := range likedIDs {
		var (
			c  Collection
			ok bool
		)
		if p, found := cat.Product(id); found {
			c = Normalize(p.Collection)
			ok = c != ""
		}
		if !ok {
			c, ok = InferFromProductID(id)
		}
		if !ok {
			t.unattributed++
			continue
		}
		t.counts[c]++
	}
	return t
}

// rankCollections orders collections by count descending, then canonical
// priority, then name.
func rankCollections(counts map[Collection]int) []Collection {
	out := make([]Collection, 0, len(counts))
	for c := range counts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		if pa, pb := a.priority(), b.priority(); pa != pb {
			return pa < pb
		}
		return a < b
	})
	return out
}

// confidence maps a like count to [0, 1].
func confidence(count int, saturation float64) float64 {
	return math.Min(float64(count)/saturation, 1.0)
}

// Evaluate decides whether the liked set activates personalization.
//
// The trigger fires for the top-ranked collection when its count reaches
// cfg.ActivationThreshold. Evaluation is a pure function of its inputs: the
// same liked set and catalog always yield the same trigger.
func Evaluate(likedIDs []string, cat *Catalog, cfg *Config) (Trigger, bool) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tally := attribute(likedIDs, cat)
	ranked := rankCollections(tally.counts)
	if len(ranked) == 0 {
		return Trigger{}, false
	}

	top := ranked[0]
	count := tally.counts[top]
	if count < cfg.ActivationThreshold {
		return Trigger{}, false
	}

	return Trigger{
		CollectionName: top,
		CollectionID:   cat.CollectionID(top),
		LikeCount:      count,
		Confidence:     confidence(count, cfg.ConfidenceSaturation),
		Reasoning: fmt.Sprintf("You've liked %d pieces from the %s collection, suggesting a strong affinity for its design language.",
			count, top),
	}, true
}
