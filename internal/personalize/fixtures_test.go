// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/atelier/internal/kvstore"
)

func product(id, collection, material string, price float64) ProductRecord {
	return ProductRecord{
		ID:         id,
		Name:       "Watch " + id,
		Collection: collection,
		Price:      price,
		Currency:   "USD",
		Material:   material,
		Movement:   "Breitling 01",
		Images:     []string{"/img/" + id + ".jpg"},
	}
}

func testCollections() []CollectionRecord {
	return []CollectionRecord{
		{
			ID:          "navitimer",
			Name:        "Navitimer",
			Tagline:     "The pilot's chronograph",
			Heritage:    "Since 1952 the Navitimer has been the instrument of choice for pilots.",
			HeroImage:   "/img/navitimer-hero.jpg",
			KeyFeatures: []string{"Circular slide rule", "COSC-certified chronometer", "Aviation heritage"},
			Established: 1952,
			PriceRange:  PriceRange{Min: 4500, Max: 12000, Currency: "USD"},
		},
		{
			ID:          "chronomat",
			Name:        "Chronomat",
			Tagline:     "The all-purpose sports watch",
			Heritage:    "Born in 1984 for the Frecce Tricolori.",
			HeroImage:   "/img/chronomat-hero.jpg",
			KeyFeatures: []string{"Rouleaux bracelet", "Rider tabs"},
			Established: 1984,
			PriceRange:  PriceRange{Min: 5000, Max: 15000, Currency: "USD"},
		},
		{
			ID:          "superocean",
			Name:        "Superocean",
			Heritage:    "Professional dive watches since 1957.",
			KeyFeatures: []string{"Unidirectional bezel"},
			Established: 1957,
		},
		{
			ID:          "superocean-heritage",
			Name:        "Superocean Heritage",
			Heritage:    "A tribute to the original 1957 Superocean.",
			Established: 2007,
		},
		{ID: "premier", Name: "Premier", Heritage: "Elegance since the 1940s.", Established: 1943},
		{ID: "avenger", Name: "Avenger", Heritage: "Built for extreme conditions.", Established: 2001},
	}
}

func testProducts() []ProductRecord {
	return []ProductRecord{
		product("nav-1", "Navitimer", "Stainless Steel", 5000),
		product("nav-2", "Navitimer", "18K Red Gold", 12000),
		product("nav-3", "Navitimer", "Stainless Steel", 6000),
		product("nav-4", "Navitimer", "Titanium", 7000),
		product("nav-5", "Navitimer", "Stainless Steel", 8000),
		product("chr-1", "Chronomat", "Stainless Steel", 7500),
		product("chr-2", "Chronomat", "Stainless Steel", 8000),
		product("chr-3", "Chronomat", "Red Gold", 14000),
		product("chr-4", "Chronomat", "Stainless Steel", 7900),
		product("chr-5", "Chronomat", "Stainless Steel", 8100),
		product("so-1", "Superocean", "Stainless Steel", 4500),
		product("soh-1", "Superocean Heritage", "Stainless Steel", 5200),
		product("prm-1", "Premier", "Stainless Steel", 6100),
		product("avg-1", "Avenger", "Titanium", 5800),
		product("top-1", "top time", "Stainless Steel", 4800),
		product("top-2", "top time", "Stainless Steel", 4900),
		product("top-3", "top time", "Stainless Steel", 5000),
		product("top-4", "top time", "Stainless Steel", 5100),
	}
}

func testCatalog() *Catalog {
	return NewCatalog(testProducts(), testCollections())
}

// mockCatalogService serves fixed records or errors.
type mockCatalogService struct {
	products       []ProductRecord
	collections    []CollectionRecord
	productsErr    error
	collectionsErr error
}

func (m *mockCatalogService) ListProducts(context.Context) ([]ProductRecord, error) {
	return m.products, m.productsErr
}

func (m *mockCatalogService) ListCollections(context.Context) ([]CollectionRecord, error) {
	return m.collections, m.collectionsErr
}

// recordingStore is an in-memory store that records every write and can be
// told to fail a number of Set calls.
type recordingStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	writes   [][]byte
	failSets int
	getErr   error
	setCalls int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{data: make(map[string][]byte)}
}

func (s *recordingStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, kvstore.ErrNotFound)
	}
	return v, nil
}

func (s *recordingStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.failSets != 0 {
		if s.failSets > 0 {
			s.failSets--
		}
		return errors.New("store unavailable")
	}
	s.data[key] = append([]byte(nil), value...)
	s.writes = append(s.writes, append([]byte(nil), value...))
	return nil
}

func (s *recordingStore) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return string(v), ok
}

func (s *recordingStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCalls
}

// fastConfig disables retry delays so persistence tests run quickly.
func fastConfig() *Config {
	cfg := DefaultConfig()
	cfg.Persist.RetryDelay = 0
	return cfg
}
