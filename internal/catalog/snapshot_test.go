// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/atelier/internal/metrics"
	"github.com/tomtom215/atelier/internal/personalize"
)

// flakySource serves products until fail is set.
type flakySource struct {
	mu       sync.Mutex
	products []personalize.ProductRecord
	fail     bool
}

func (f *flakySource) set(products []personalize.ProductRecord, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = products
	f.fail = fail
}

func (f *flakySource) ListProducts(ctx context.Context) ([]personalize.ProductRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("catalog unavailable")
	}
	return append([]personalize.ProductRecord(nil), f.products...), nil
}

func (f *flakySource) ListCollections(ctx context.Context) ([]personalize.CollectionRecord, error) {
	return []personalize.CollectionRecord{{ID: "navitimer", Name: "Navitimer"}}, nil
}

func TestSnapshotter_EmptyBeforeFirstRefresh(t *testing.T) {
	t.Parallel()

	s := NewSnapshotter(&flakySource{}, "test", time.Second, zerolog.Nop())
	if s.Ready() {
		t.Error("Ready() = true before any refresh")
	}
	if cat := s.Catalog(); cat == nil || !cat.IsEmpty() {
		t.Errorf("initial Catalog() = %v, want empty snapshot", cat)
	}
	if !s.LastSuccess().IsZero() {
		t.Error("LastSuccess() set before any refresh")
	}
}

func TestSnapshotter_KeepsLastGoodSnapshot(t *testing.T) {
	src := &flakySource{}
	src.set([]personalize.ProductRecord{{ID: "nav-1", Collection: "Navitimer"}}, false)
	s := NewSnapshotter(src, "flaky", time.Second, zerolog.Nop())
	ctx := context.Background()

	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if !s.Ready() || s.Catalog().Len() != 1 {
		t.Fatalf("after success: Ready=%v Len=%d", s.Ready(), s.Catalog().Len())
	}
	good := s.Catalog()

	errorsBefore := testutil.ToFloat64(metrics.CatalogRefreshes.WithLabelValues("flaky", "error"))
	src.set(nil, true)
	if err := s.Refresh(ctx); err == nil {
		t.Fatal("Refresh() with failing source returned nil error")
	}
	if s.Catalog() != good {
		t.Error("failed refresh replaced the snapshot")
	}
	if got := testutil.ToFloat64(metrics.CatalogRefreshes.WithLabelValues("flaky", "error")) - errorsBefore; got != 1 {
		t.Errorf("error refresh delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogProducts); got != 1 {
		t.Errorf("catalog_products = %v, want 1 (unchanged by failure)", got)
	}

	src.set([]personalize.ProductRecord{{ID: "nav-1"}, {ID: "nav-2"}}, false)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if s.Catalog().Len() != 2 {
		t.Errorf("Len() = %d after recovery, want 2", s.Catalog().Len())
	}
}

func TestSnapshotter_FeedsEngine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewSnapshotter(NewSeed(), "seed", time.Second, zerolog.Nop())
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// The snapshotter is a personalize.CatalogSource.
	var source personalize.CatalogSource = s
	liked := []string{
		"chronomat-b01-42", "chronomat-automatic-36", "chronomat-gmt-40", "chronomat-b01-42-bentley",
	}
	trig, ok := personalize.Evaluate(liked, source.Catalog(), nil)
	if !ok || trig.CollectionName != personalize.CollectionChronomat {
		t.Fatalf("Evaluate() = (%+v, %v), want Chronomat", trig, ok)
	}

	content, ok := personalize.Compose(trig, liked, source.Catalog(), nil, time.Now())
	if !ok {
		t.Fatal("Compose() returned no content for seed catalog")
	}
	if len(content.Actions) != 4 {
		t.Errorf("actions = %d, want 4", len(content.Actions))
	}
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default is seed", cfg: Config{}},
		{name: "seed", cfg: Config{Source: SourceSeed}},
		{name: "file", cfg: Config{Source: SourceFile, Path: "/etc/atelier/catalog.yaml"}},
		{name: "file without path", cfg: Config{Source: SourceFile}, wantErr: true},
		{name: "http", cfg: Config{Source: SourceHTTP, BaseURL: "https://catalog.example/api"}},
		{name: "http without url", cfg: Config{Source: SourceHTTP}, wantErr: true},
		{name: "unknown", cfg: Config{Source: "ftp"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource(tt.cfg, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSource() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
