// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/atelier/internal/metrics"
	"github.com/tomtom215/atelier/internal/personalize"
)

// ErrUnexpectedStatus is returned when the catalog API answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected catalog response status")

const (
	maxResponseSize  = 32 << 20
	maxErrorBodySize = 1 << 10
)

// HTTPConfig configures the remote catalog client.
type HTTPConfig struct {
	// BaseURL is the API root; requests go to {BaseURL}/products and {BaseURL}/collections.
	BaseURL string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RequestsPerSecond and Burst pace outgoing requests. Zero disables pacing.
	RequestsPerSecond float64
	Burst             int

	// BreakerFailures is the number of consecutive failures that opens the breaker.
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration
}

// HTTP fetches the catalog from a remote API.
//
// Responses may be a bare JSON array or the standard envelope
// {"success": true, "data": [...]}, so one Atelier instance can read
// another's /api/v1/catalog endpoints.
type HTTP struct {
	baseURL *url.URL
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	name    string
	logger  zerolog.Logger
}

// NewHTTP creates a remote catalog client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTP(cfg HTTPConfig, logger zerolog.Logger) (*HTTP, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("catalog base url must be http or https, got %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	openFor := cfg.BreakerTimeout
	if openFor <= 0 {
		openFor = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	h := &HTTP{
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		name:    "catalog-api",
		logger:  logger.With().Str("component", "catalog_http").Str("base_url", base.Redacted()).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(h.name).Set(0)

	h.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        h.name,
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			h.logger.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})

	return h, nil
}

// ListProducts implements personalize.CatalogService.
func (h *HTTP) ListProducts(ctx context.Context) ([]personalize.ProductRecord, error) {
	var out []personalize.ProductRecord
	if err := h.getJSON(ctx, "products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCollections implements personalize.CatalogService.
func (h *HTTP) ListCollections(ctx context.Context) ([]personalize.CollectionRecord, error) {
	var out []personalize.CollectionRecord
	if err := h.getJSON(ctx, "collections", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// State returns the circuit breaker state.
func (h *HTTP) State() gobreaker.State {
	return h.cb.State()
}

func (h *HTTP) getJSON(ctx context.Context, resource string, out any) error {
	if err := h.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("catalog rate limiter: %w", err)
	}

	body, err := h.execute(func() ([]byte, error) {
		return h.fetch(ctx, resource)
	})
	if err != nil {
		return fmt.Errorf("fetch %s: %w", resource, err)
	}
	if err := decodeList(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", resource, err)
	}
	return nil
}

func (h *HTTP) fetch(ctx context.Context, resource string) ([]byte, error) {
	reqURL := h.baseURL.JoinPath(resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
}

func (h *HTTP) execute(fn func() ([]byte, error)) ([]byte, error) {
	body, err := h.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(h.name, "rejected").Inc()
			h.logger.Warn().Err(err).Msg("catalog request rejected by circuit breaker")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(h.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(h.name, "success").Inc()
	return body, nil
}

// decodeList accepts a bare array or an envelope carrying the array in "data".
func decodeList(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return err
		}
		if len(env.Data) == 0 {
			return fmt.Errorf("envelope has no data field")
		}
		trimmed = env.Data
	}
	return json.Unmarshal(trimmed, out)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
