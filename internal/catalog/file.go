// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomtom215/atelier/internal/personalize"
)

// File reads a catalog document from disk on every call, so edits are
// picked up by the next snapshot refresh.
//
// Files ending in .json are decoded as JSON, anything else as YAML.
type File struct {
	path string
}

// NewFile returns a File source for path.
func NewFile(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("catalog file path is required")
	}
	return &File{path: filepath.Clean(path)}, nil
}

// Path returns the catalog file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) load(ctx context.Context) (*Static, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(f.path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// ListProducts implements personalize.CatalogService.
func (f *File) ListProducts(ctx context.Context) ([]personalize.ProductRecord, error) {
	s, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListProducts(ctx)
}

// ListCollections implements personalize.CatalogService.
func (f *File) ListCollections(ctx context.Context) ([]personalize.CollectionRecord, error) {
	s, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListCollections(ctx)
}
