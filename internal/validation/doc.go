// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is shared by the API handlers. On top of the
// built-in tags it registers "identifier", which accepts non-blank printable
// strings that contain no '/'. Session ids and product ids must satisfy it
// because both appear as URL path segments and as storage key suffixes.
//
//	type likeParams struct {
//	    SessionID string `validate:"required,max=128,identifier"`
//	    ProductID string `validate:"required,max=128,identifier"`
//	}
//
//	if verr := validation.ValidateStruct(&params); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// Failures convert to an APIError with code VALIDATION_FAILED. A single failure
// carries {"field", "tag"} details; several failures carry a "fields" list.
package validation
