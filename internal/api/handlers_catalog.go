// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package api

import (
	"net/http"

	"github.com/tomtom215/atelier/internal/personalize"
)

type productsResponse struct {
	Products []personalize.ProductRecord `json:"products"`
	Count    int                         `json:"count"`
}

type collectionsResponse struct {
	Collections []personalize.CollectionRecord `json:"collections"`
	Count       int                            `json:"count"`
}

// CatalogProducts lists the products in the current catalog snapshot.
func (h *Handler) CatalogProducts(w http.ResponseWriter, r *http.Request) {
	products := h.snapshot().Products()
	if products == nil {
		products = []personalize.ProductRecord{}
	}
	respondData(w, r, http.StatusOK, productsResponse{Products: products, Count: len(products)})
}

// CatalogCollections lists the collections in the current catalog snapshot.
func (h *Handler) CatalogCollections(w http.ResponseWriter, r *http.Request) {
	collections := h.snapshot().Collections()
	if collections == nil {
		collections = []personalize.CollectionRecord{}
	}
	respondData(w, r, http.StatusOK, collectionsResponse{Collections: collections, Count: len(collections)})
}

func (h *Handler) snapshot() *personalize.Catalog {
	if h.catalog == nil {
		return nil
	}
	return h.catalog.Catalog()
}
