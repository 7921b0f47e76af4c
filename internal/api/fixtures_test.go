// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/atelier/internal/catalog"
	"github.com/tomtom215/atelier/internal/config"
	"github.com/tomtom215/atelier/internal/kvstore"
	"github.com/tomtom215/atelier/internal/personalize"
)

// testEnv is a fully wired API over the embedded seed catalog and an
// in-memory store.
type testEnv struct {
	store    *kvstore.Memory
	snapshot *catalog.Snapshotter
	sessions *SessionRegistry
	handler  http.Handler
}

type envOption func(*config.SessionsConfig, *config.SecurityConfig)

func withRateLimit(reqs int) envOption {
	return func(_ *config.SessionsConfig, sec *config.SecurityConfig) {
		sec.RateLimitDisabled = false
		sec.RateLimitReqs = reqs
		sec.RateLimitWindow = time.Minute
	}
}

func fastPersonalizeConfig() *personalize.Config {
	cfg := personalize.DefaultConfig()
	cfg.Persist.RetryDelay = 0
	return cfg
}

func newTestEnv(t *testing.T, loadCatalog bool, opts ...envOption) *testEnv {
	t.Helper()

	sessionsCfg := config.SessionsConfig{MaxActive: 100, IdleTTL: time.Hour, CloseTimeout: 5 * time.Second}
	securityCfg := config.SecurityConfig{RateLimitDisabled: true, CORSOrigins: []string{"*"}}
	for _, opt := range opts {
		opt(&sessionsCfg, &securityCfg)
	}

	store := kvstore.NewMemory()
	snapshot := catalog.NewSnapshotter(catalog.NewSeed(), "seed", 0, zerolog.Nop())
	if loadCatalog {
		if err := snapshot.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}
	}

	sessions, err := NewSessionRegistry(sessionsCfg, fastPersonalizeConfig(), snapshot, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSessionRegistry() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = sessions.Close(ctx)
	})

	router := NewRouter(NewHandler(sessions, snapshot), securityCfg)
	return &testEnv{
		store:    store,
		snapshot: snapshot,
		sessions: sessions,
		handler:  router.SetupChi(),
	}
}

// envelope mirrors APIResponse with Data left raw for per-test decoding.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
	Error    *APIError       `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope %q: %v", body, err)
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return env
}

var seedChronomat = []string{
	"chronomat-b01-42",
	"chronomat-automatic-36",
	"chronomat-gmt-40",
	"chronomat-b01-42-bentley",
}
