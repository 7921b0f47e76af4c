// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"context"
	"fmt"
	"strings"
)

// Catalog is an immutable, indexed snapshot of catalog reference data.
//
// A nil *Catalog behaves as an empty catalog: every lookup misses. The engine
// relies on that to degrade when the catalog collaborator is unavailable.
type Catalog struct {
	products    []ProductRecord
	collections []CollectionRecord

	productByID map[string]int

	// Collection indices, built once. byCanonical maps the normalized name of
	// each record; byID and byName are lowercased exact-match fallbacks.
	byCanonical map[Collection]int
	byID        map[string]int
	byName      map[string]int
}

// NewCatalog builds a snapshot from products and collections.
// Later duplicates of a product id or collection key are ignored.
func NewCatalog(products []ProductRecord, collections []CollectionRecord) *Catalog {
	c := &Catalog{
		products:    make([]ProductRecord, 0, len(products)),
		collections: make([]CollectionRecord, 0, len(collections)),
		productByID: make(map[string]int, len(products)),
		byCanonical: make(map[Collection]int, len(collections)),
		byID:        make(map[string]int, len(collections)),
		byName:      make(map[string]int, len(collections)),
	}

	for i := range products {
		p := products[i]
		if p.ID == "" {
			continue
		}
		if _, dup := c.productByID[p.ID]; dup {
			continue
		}
		c.productByID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	for i := range collections {
		rec := collections[i]
		idx := len(c.collections)
		c.collections = append(c.collections, rec)

		if canon := Normalize(rec.Name); canon != "" {
			if _, dup := c.byCanonical[canon]; !dup {
				c.byCanonical[canon] = idx
			}
		}
		if key := strings.ToLower(strings.TrimSpace(rec.ID)); key != "" {
			if _, dup := c.byID[key]; !dup {
				c.byID[key] = idx
			}
		}
		if key := strings.ToLower(strings.TrimSpace(rec.Name)); key != "" {
			if _, dup := c.byName[key]; !dup {
				c.byName[key] = idx
			}
		}
	}

	return c
}

// LoadCatalog fetches products and collections from svc and builds a snapshot.
func LoadCatalog(ctx context.Context, svc CatalogService) (*Catalog, error) {
	products, err := svc.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	collections, err := svc.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return NewCatalog(products, collections), nil
}

// Product returns the product with the given id.
func (c *Catalog) Product(id string) (ProductRecord, bool) {
	if c == nil {
		return ProductRecord{}, false
	}
	idx, ok := c.productByID[id]
	if !ok {
		return ProductRecord{}, false
	}
	return c.products[idx], true
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []ProductRecord {
	if c == nil {
		return nil
	}
	out := make([]ProductRecord, len(c.products))
	copy(out, c.products)
	return out
}

// Collections returns all collections in catalog order.
func (c *Catalog) Collections() []CollectionRecord {
	if c == nil {
		return nil
	}
	out := make([]CollectionRecord, len(c.collections))
	copy(out, c.collections)
	return out
}

// Len returns the number of products in the snapshot.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// IsEmpty reports whether the snapshot has neither products nor collections.
func (c *Catalog) IsEmpty() bool {
	return c == nil || (len(c.products) == 0 && len(c.collections) == 0)
}

// CollectionFor resolves a canonical collection to its catalog record.
// It tries the normalized record names first, then a case-insensitive match
// on record id, then on record name.
func (c *Catalog) CollectionFor(name Collection) (CollectionRecord, bool) {
	if c == nil || name == "" {
		return CollectionRecord{}, false
	}
	if idx, ok := c.byCanonical[name]; ok {
		return c.collections[idx], true
	}
	key := strings.ToLower(string(name))
	if idx, ok := c.byID[key]; ok {
		return c.collections[idx], true
	}
	if idx, ok := c.byName[key]; ok {
		return c.collections[idx], true
	}
	return CollectionRecord{}, false
}

// CollectionID returns the catalog id for a canonical collection, or the
// lowercased canonical name when the catalog has no matching record.
func (c *Catalog) CollectionID(name Collection) string {
	if rec, ok := c.CollectionFor(name); ok && rec.ID != "" {
		return rec.ID
	}
	return strings.ToLower(string(name))
}

// productsLabeled returns products whose raw collection label equals one of
// labels, compared case-insensitively, in catalog order.
func (c *Catalog) productsLabeled(labels ...string) []ProductRecord {
	if c == nil {
		return nil
	}
	want := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			want[l] = struct{}{}
		}
	}

	var out []ProductRecord
	for i := range c.products {
		label := strings.ToLower(strings.TrimSpace(c.products[i].Collection))
		if _, ok := want[label]; ok {
			out = append(out, c.products[i])
		}
	}
	return out
}

// ProductsIn returns products belonging to the canonical collection by raw
// label: the label must equal the canonical name or the matching record's
// name or id, ignoring case.
func (c *Catalog) ProductsIn(name Collection) []ProductRecord {
	labels := []string{string(name)}
	if rec, ok := c.CollectionFor(name); ok {
		labels = append(labels, rec.Name, rec.ID)
	}
	return c.productsLabeled(labels...)
}
