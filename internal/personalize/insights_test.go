// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"reflect"
	"testing"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	liked := []string{"nav-1", "nav-2", "nav-4", "chr-3", "navitimer-inferred", "mystery-piece"}
	got := Summarize(liked, testCatalog())

	if got.TotalLikes != 6 {
		t.Errorf("TotalLikes = %d, want 6", got.TotalLikes)
	}
	if !got.HasDominant || got.DominantCollection != CollectionNavitimer {
		t.Errorf("DominantCollection = (%q, %v), want Navitimer", got.DominantCollection, got.HasDominant)
	}
	if got.MinPrice != 5000 || got.MaxPrice != 14000 {
		t.Errorf("price span = %v..%v, want 5000..14000", got.MinPrice, got.MaxPrice)
	}

	wantMaterials := []string{"18K Red Gold", "Red Gold", "Stainless Steel", "Titanium"}
	if !reflect.DeepEqual(got.PreferredMaterials, wantMaterials) {
		t.Errorf("PreferredMaterials = %v, want %v", got.PreferredMaterials, wantMaterials)
	}

	// Affinities include the inferred id; the mystery id is unattributed.
	if got.CollectionAffinities[CollectionNavitimer] != 4 {
		t.Errorf("Navitimer affinity = %d, want 4", got.CollectionAffinities[CollectionNavitimer])
	}
	if got.CollectionAffinities[CollectionChronomat] != 1 {
		t.Errorf("Chronomat affinity = %d, want 1", got.CollectionAffinities[CollectionChronomat])
	}
	if got.UnattributedLikes != 1 {
		t.Errorf("UnattributedLikes = %d, want 1", got.UnattributedLikes)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	got := Summarize(nil, testCatalog())
	if got.HasDominant {
		t.Errorf("HasDominant = true for empty set (%q)", got.DominantCollection)
	}
	if got.MinPrice != 0 || got.MaxPrice != 0 {
		t.Errorf("price span = %v..%v, want 0..0", got.MinPrice, got.MaxPrice)
	}
	if got.TotalLikes != 0 || len(got.PreferredMaterials) != 0 || len(got.CollectionAffinities) != 0 {
		t.Errorf("unexpected non-zero insights: %+v", got)
	}
	if got.PreferredMaterials == nil || got.CollectionAffinities == nil {
		t.Error("empty insights must use empty, not nil, collections")
	}
}

func TestSummarize_OnlyUnresolvedIDs(t *testing.T) {
	t.Parallel()

	got := Summarize([]string{"navitimer-a", "navitimer-b"}, testCatalog())
	// Dominant collection considers resolved products only.
	if got.HasDominant {
		t.Errorf("HasDominant = true with no resolved products")
	}
	if got.CollectionAffinities[CollectionNavitimer] != 2 {
		t.Errorf("Navitimer affinity = %d, want 2", got.CollectionAffinities[CollectionNavitimer])
	}
}

func TestSummarize_DominantTieBreak(t *testing.T) {
	t.Parallel()

	// Two of each; Chronomat outranks Premier and Avenger by priority.
	liked := []string{"avg-1", "prm-1", "chr-1", "chr-2"}
	cat := testCatalog()
	for i := 0; i < 20; i++ {
		got := Summarize(liked, cat)
		if got.DominantCollection != CollectionChronomat {
			t.Fatalf("DominantCollection = %q, want Chronomat", got.DominantCollection)
		}
	}

	tie := Summarize([]string{"avg-1", "prm-1"}, cat)
	if tie.DominantCollection != CollectionPremier {
		t.Errorf("tie DominantCollection = %q, want Premier", tie.DominantCollection)
	}
}

func TestSummarize_UnresolvableIDOnlyChangesTotal(t *testing.T) {
	t.Parallel()
	cat := testCatalog()

	base := []string{"nav-1", "chr-1"}
	before := Summarize(base, cat)
	after := Summarize(append(append([]string{}, base...), "mystery-piece"), cat)

	if after.TotalLikes != before.TotalLikes+1 {
		t.Errorf("TotalLikes = %d, want %d", after.TotalLikes, before.TotalLikes+1)
	}
	if !reflect.DeepEqual(before.CollectionAffinities, after.CollectionAffinities) {
		t.Errorf("affinities changed: %v -> %v", before.CollectionAffinities, after.CollectionAffinities)
	}
}
