// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/atelier/internal/personalize"
)

//go:embed seed.yaml
var seedYAML []byte

// document is the serialized catalog layout shared by every source.
type document struct {
	Collections []personalize.CollectionRecord `json:"collections" yaml:"collections"`
	Products    []personalize.ProductRecord    `json:"products" yaml:"products"`
}

// Static serves a fixed catalog document from memory.
type Static struct {
	doc document
}

// NewStatic returns a Static source over copies of the given records.
func NewStatic(products []personalize.ProductRecord, collections []personalize.CollectionRecord) *Static {
	return &Static{doc: document{
		Products:    append([]personalize.ProductRecord(nil), products...),
		Collections: append([]personalize.CollectionRecord(nil), collections...),
	}}
}

// NewSeed returns the embedded demo catalog.
func NewSeed() *Static {
	s, err := ParseYAML(seedYAML)
	if err != nil {
		// The seed is compiled in; a parse failure is a build defect.
		panic(fmt.Sprintf("catalog: invalid embedded seed: %v", err))
	}
	return s
}

// ParseYAML decodes a YAML catalog document.
func ParseYAML(data []byte) (*Static, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml catalog: %w", err)
	}
	return &Static{doc: doc}, nil
}

// ParseJSON decodes a JSON catalog document.
func ParseJSON(data []byte) (*Static, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json catalog: %w", err)
	}
	return &Static{doc: doc}, nil
}

// ListProducts implements personalize.CatalogService.
func (s *Static) ListProducts(ctx context.Context) ([]personalize.ProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]personalize.ProductRecord(nil), s.doc.Products...), nil
}

// ListCollections implements personalize.CatalogService.
func (s *Static) ListCollections(ctx context.Context) ([]personalize.CollectionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]personalize.CollectionRecord(nil), s.doc.Collections...), nil
}
