// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/atelier/internal/logging"
	"github.com/tomtom215/atelier/internal/personalize"
)

type sessionParams struct {
	SessionID string `validate:"required,max=128,identifier"`
}

type productParams struct {
	ProductID string `validate:"required,max=128,identifier"`
}

type likesResponse struct {
	SessionID string   `json:"session_id"`
	LikedIDs  []string `json:"liked_ids"`
	Count     int      `json:"count"`
}

// likeMutationResponse is returned by like and unlike so clients can react
// to a trigger change without a second round trip.
type likeMutationResponse struct {
	likesResponse
	Trigger *personalize.Trigger `json:"trigger"`
}

// urlParam returns a chi path parameter, decoded when chi routed on the raw path.
func urlParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}

// SessionContext validates {sessionID} and stores it in the logging context.
func SessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := urlParam(r, "sessionID")
		if err != nil {
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Malformed session id encoding", nil)
			return
		}

		params := sessionParams{SessionID: sessionID}
		if apiErr := validateRequest(&params); apiErr != nil {
			respondAPIError(w, r, http.StatusBadRequest, apiErr)
			return
		}

		ctx := logging.ContextWithSessionID(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// engine resolves the request's session engine, writing the error response on failure.
func (h *Handler) engine(w http.ResponseWriter, r *http.Request) (*personalize.Engine, bool) {
	sessionID := logging.SessionIDFromContext(r.Context())
	engine, err := h.sessions.Engine(r.Context(), sessionID)
	switch {
	case err == nil:
		return engine, true
	case errors.Is(err, ErrRegistryClosed):
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "Service is shutting down", nil)
	case errors.Is(err, ErrInvalidSessionID):
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Invalid session id", nil)
	default:
		respondError(w, r, http.StatusInternalServerError, CodeInternalError, "Failed to open session", err)
	}
	return nil, false
}

func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (string, bool) {
	productID, err := urlParam(r, "productID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Malformed product id encoding", nil)
		return "", false
	}

	params := productParams{ProductID: productID}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return "", false
	}
	return productID, true
}

func newLikesResponse(r *http.Request, liked []string) likesResponse {
	return likesResponse{
		SessionID: logging.SessionIDFromContext(r.Context()),
		LikedIDs:  liked,
		Count:     len(liked),
	}
}

// Likes returns the session's liked product ids, sorted.
func (h *Handler) Likes(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engine(w, r)
	if !ok {
		return
	}
	respondData(w, r, http.StatusOK, newLikesResponse(r, engine.LikedIDs()))
}

// Like adds a product to the session's liked set. Liking twice is a no-op.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	h.mutateLikes(w, r, (*personalize.Engine).Like)
}

// Unlike removes a product from the session's liked set. Removing an absent
// id is a no-op.
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.mutateLikes(w, r, (*personalize.Engine).Unlike)
}

func (h *Handler) mutateLikes(w http.ResponseWriter, r *http.Request, mutate func(*personalize.Engine, context.Context, string) error) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}
	engine, ok := h.engine(w, r)
	if !ok {
		return
	}

	if err := mutate(engine, r.Context(), productID); err != nil {
		if errors.Is(err, personalize.ErrEmptyProductID) {
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Product id is empty", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternalError, "Failed to update likes", err)
		return
	}

	resp := likeMutationResponse{likesResponse: newLikesResponse(r, engine.LikedIDs())}
	if trig, active := engine.EvaluateTrigger(); active {
		resp.Trigger = &trig
	}
	respondData(w, r, http.StatusOK, resp)
}

// Trigger returns the session's current trigger, or null data when none is active.
func (h *Handler) Trigger(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engine(w, r)
	if !ok {
		return
	}

	trig, active := engine.EvaluateTrigger()
	if !active {
		respondData(w, r, http.StatusOK, nil)
		return
	}
	respondData(w, r, http.StatusOK, trig)
}

// Content composes personalized content for the session.
// It answers 204 No Content when there is nothing to show.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engine(w, r)
	if !ok {
		return
	}

	content, ok := engine.Compose(r.Context())
	if !ok {
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondData(w, r, http.StatusOK, content)
}

// Insights summarizes the session's liked set against the catalog.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engine(w, r)
	if !ok {
		return
	}
	respondData(w, r, http.StatusOK, engine.Insights())
}
