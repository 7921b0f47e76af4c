// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"context"
	"errors"
	"testing"
)

func TestCatalog_Product(t *testing.T) {
	t.Parallel()
	cat := testCatalog()

	p, ok := cat.Product("nav-2")
	if !ok || p.Material != "18K Red Gold" {
		t.Errorf("Product(nav-2) = (%+v, %v)", p, ok)
	}
	if _, ok := cat.Product("missing"); ok {
		t.Error("Product(missing) found a record")
	}
}

func TestCatalog_DuplicateProductsKeepFirst(t *testing.T) {
	t.Parallel()

	cat := NewCatalog([]ProductRecord{
		product("dup", "Navitimer", "Steel", 1),
		product("dup", "Chronomat", "Gold", 2),
		{ID: ""},
	}, nil)

	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	p, _ := cat.Product("dup")
	if p.Collection != "Navitimer" {
		t.Errorf("duplicate replaced first record: %+v", p)
	}
}

func TestCatalog_CollectionFor(t *testing.T) {
	t.Parallel()

	cat := NewCatalog(nil, []CollectionRecord{
		{ID: "col-nav", Name: "Navitimer B01"},
		{ID: "premier", Name: "Premier Collection"},
		{ID: "top time", Name: "Vintage"},
	})

	tests := []struct {
		name   string
		input  Collection
		wantID string
		wantOK bool
	}{
		{name: "by normalized record name", input: CollectionNavitimer, wantID: "col-nav", wantOK: true},
		{name: "by normalized name with suffix", input: CollectionPremier, wantID: "premier", wantOK: true},
		{name: "by record id ignoring case", input: Collection("Top Time"), wantID: "top time", wantOK: true},
		{name: "unknown", input: CollectionAvenger, wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := cat.CollectionFor(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("CollectionFor(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && rec.ID != tt.wantID {
				t.Errorf("CollectionFor(%q).ID = %q, want %q", tt.input, rec.ID, tt.wantID)
			}
		})
	}
}

func TestCatalog_CollectionIDFallback(t *testing.T) {
	t.Parallel()
	cat := testCatalog()

	if got := cat.CollectionID(CollectionSuperoceanHeritage); got != "superocean-heritage" {
		t.Errorf("CollectionID(Superocean Heritage) = %q", got)
	}
	if got := cat.CollectionID(Collection("Top Time")); got != "top time" {
		t.Errorf("CollectionID(Top Time) = %q, want lowercased name", got)
	}
}

func TestCatalog_ProductsIn(t *testing.T) {
	t.Parallel()
	cat := testCatalog()

	got := cat.ProductsIn(CollectionNavitimer)
	if len(got) != 5 {
		t.Fatalf("ProductsIn(Navitimer) returned %d products, want 5", len(got))
	}
	for i, p := range got {
		if want := "nav-" + string(rune('1'+i)); p.ID != want {
			t.Errorf("ProductsIn order[%d] = %q, want %q", i, p.ID, want)
		}
	}

	// Raw label match: heritage products do not leak into plain Superocean.
	for _, p := range cat.ProductsIn(CollectionSuperocean) {
		if p.ID == "soh-1" {
			t.Error("Superocean Heritage product listed under Superocean")
		}
	}
}

func TestCatalog_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var cat *Catalog
	if !cat.IsEmpty() {
		t.Error("nil catalog not empty")
	}
	if _, ok := cat.Product("nav-1"); ok {
		t.Error("nil catalog resolved a product")
	}
	if _, ok := cat.CollectionFor(CollectionNavitimer); ok {
		t.Error("nil catalog resolved a collection")
	}
	if cat.Products() != nil || cat.Collections() != nil {
		t.Error("nil catalog returned records")
	}
	if got := cat.CollectionID(CollectionNavitimer); got != "navitimer" {
		t.Errorf("CollectionID = %q", got)
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := &mockCatalogService{products: testProducts(), collections: testCollections()}
		cat, err := LoadCatalog(ctx, svc)
		if err != nil {
			t.Fatalf("LoadCatalog() error = %v", err)
		}
		if cat.Len() != len(testProducts()) {
			t.Errorf("Len() = %d", cat.Len())
		}
		if len(cat.Collections()) != len(testCollections()) {
			t.Errorf("Collections() = %d", len(cat.Collections()))
		}
	})

	t.Run("product error", func(t *testing.T) {
		want := errors.New("boom")
		_, err := LoadCatalog(ctx, &mockCatalogService{productsErr: want})
		if !errors.Is(err, want) {
			t.Errorf("LoadCatalog() error = %v, want wrapping %v", err, want)
		}
	})

	t.Run("collection error", func(t *testing.T) {
		want := errors.New("boom")
		_, err := LoadCatalog(ctx, &mockCatalogService{collectionsErr: want})
		if !errors.Is(err, want) {
			t.Errorf("LoadCatalog() error = %v, want wrapping %v", err, want)
		}
	})
}
