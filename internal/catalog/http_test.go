// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

func newCatalogServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTP_BareArrays(t *testing.T) {
	t.Parallel()

	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/products":
			_, _ = w.Write([]byte(`[{"id":"nav-1","collection":"Navitimer","price":5000,"currency":"USD"}]`))
		case "/v1/collections":
			_, _ = w.Write([]byte(`[{"id":"navitimer","name":"Navitimer","established":1952}]`))
		default:
			http.NotFound(w, r)
		}
	})

	h, err := NewHTTP(HTTPConfig{BaseURL: srv.URL + "/v1/"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHTTP() error = %v", err)
	}

	ctx := context.Background()
	products, err := h.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 1 || products[0].ID != "nav-1" || products[0].Price != 5000 {
		t.Errorf("ListProducts() = %+v", products)
	}

	collections, err := h.ListCollections(ctx)
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(collections) != 1 || collections[0].Established != 1952 {
		t.Errorf("ListCollections() = %+v", collections)
	}
}

func TestHTTP_Envelope(t *testing.T) {
	t.Parallel()

	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"chr-1","collection":"Chronomat"}]}`))
	})
	h, _ := NewHTTP(HTTPConfig{BaseURL: srv.URL}, zerolog.Nop())

	products, err := h.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 1 || products[0].ID != "chr-1" {
		t.Errorf("ListProducts() = %+v", products)
	}
}

func TestHTTP_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
	h, _ := NewHTTP(HTTPConfig{BaseURL: srv.URL}, zerolog.Nop())

	_, err := h.ListProducts(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("ListProducts() error = %v, want ErrUnexpectedStatus", err)
	}
}

func TestHTTP_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	h, _ := NewHTTP(HTTPConfig{BaseURL: srv.URL}, zerolog.Nop())

	if _, err := h.ListCollections(context.Background()); err == nil {
		t.Error("ListCollections() accepted an envelope without data")
	}
}

func TestHTTP_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	h, _ := NewHTTP(HTTPConfig{
		BaseURL:         srv.URL,
		BreakerFailures: 2,
		BreakerTimeout:  time.Minute,
	}, zerolog.Nop())

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := h.ListProducts(ctx); !errors.Is(err, ErrUnexpectedStatus) {
			t.Fatalf("call %d error = %v, want ErrUnexpectedStatus", i, err)
		}
	}

	_, err := h.ListProducts(ctx)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("third call error = %v, want ErrOpenState", err)
	}
	if h.State() != gobreaker.StateOpen {
		t.Errorf("State() = %v, want open", h.State())
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hits = %d, want 2", n)
	}
}

func TestHTTP_RateLimiterHonorsContext(t *testing.T) {
	t.Parallel()

	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	h, _ := NewHTTP(HTTPConfig{BaseURL: srv.URL, RequestsPerSecond: 0.01, Burst: 1}, zerolog.Nop())

	if _, err := h.ListProducts(context.Background()); err != nil {
		t.Fatalf("first call error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := h.ListProducts(ctx); err == nil {
		t.Error("second call within the rate window returned nil error")
	}
}

func TestNewHTTP_InvalidURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://catalog.example", "::bad"} {
		if _, err := NewHTTP(HTTPConfig{BaseURL: raw}, zerolog.Nop()); err == nil {
			t.Errorf("NewHTTP(%q) returned nil error", raw)
		}
	}
}
