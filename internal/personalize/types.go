// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"context"
	"time"
)

// ProductRecord is read-only catalog data for a single product.
type ProductRecord struct {
	// ID is the unique product identifier.
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// Collection is the collection label as stored in the catalog.
	// It is not normalized; see Normalize.
	Collection string `json:"collection" yaml:"collection"`

	// Price is the list price in Currency units.
	Price float64 `json:"price" yaml:"price"`

	// Currency is the ISO 4217 currency code.
	Currency string `json:"currency" yaml:"currency"`

	// Material is the case material (e.g. "stainless steel").
	Material string `json:"material" yaml:"material"`

	// Movement is the calibre or movement type.
	Movement string `json:"movement" yaml:"movement"`

	// Functions lists the complications.
	Functions []string `json:"functions,omitempty" yaml:"functions"`

	// Images lists image URLs, first is the primary image.
	Images []string `json:"images,omitempty" yaml:"images"`
}

// PriceRange is the price span of a collection.
type PriceRange struct {
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Currency string  `json:"currency" yaml:"currency"`
}

// CollectionRecord is read-only catalog data for a collection.
type CollectionRecord struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Tagline     string     `json:"tagline" yaml:"tagline"`
	Heritage    string     `json:"heritage" yaml:"heritage"`
	HeroImage   string     `json:"hero_image" yaml:"hero_image"`
	KeyFeatures []string   `json:"key_features,omitempty" yaml:"key_features"`
	Established int        `json:"established" yaml:"established"`
	PriceRange  PriceRange `json:"price_range" yaml:"price_range"`
}

// Trigger signals that personalized content should be shown for a collection.
// It is derived on every evaluation and never persisted.
type Trigger struct {
	// CollectionName is the canonical collection that crossed the threshold.
	CollectionName Collection `json:"collection_name"`

	// CollectionID is the catalog id of the collection, or the lowercased
	// canonical name when the catalog has no matching record.
	CollectionID string `json:"collection_id"`

	// LikeCount is the aggregated like count for the collection.
	LikeCount int `json:"like_count"`

	// Confidence is min(LikeCount/saturation, 1).
	Confidence float64 `json:"confidence"`

	// Reasoning is a human-readable explanation.
	Reasoning string `json:"reasoning"`
}

// InsightCategory tags an insight.
type InsightCategory string

// Insight categories.
const (
	InsightHeritage  InsightCategory = "heritage"
	InsightTechnical InsightCategory = "technical"
	InsightDesign    InsightCategory = "design"
	InsightLifestyle InsightCategory = "lifestyle"
)

// Insight is a narrative card about the triggering collection.
type Insight struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Image        string          `json:"image,omitempty"`
	CollectionID string          `json:"collection_id"`
	Category     InsightCategory `json:"category"`
	Confidence   float64         `json:"confidence"`
}

// RecommendationType classifies why a product is recommended.
type RecommendationType string

// Recommendation types.
const (
	RecommendSimilarStyle         RecommendationType = "similar_style"
	RecommendCollectionComplement RecommendationType = "collection_complement"
	RecommendPricePoint           RecommendationType = "price_point"
	RecommendTrending             RecommendationType = "trending"
)

// Recommendation suggests a product the user has not liked yet.
type Recommendation struct {
	ID         string             `json:"id"`
	Product    ProductRecord      `json:"product"`
	Reason     string             `json:"reason"`
	Confidence float64            `json:"confidence"`
	Type       RecommendationType `json:"recommendation_type"`

	// Priority orders recommendations for display; lower is more important.
	Priority int `json:"priority"`
}

// ActionType identifies a call-to-action.
type ActionType string

// Action types, in the order they appear in composed content.
const (
	ActionExploreCollection    ActionType = "explore_collection"
	ActionScheduleConsultation ActionType = "schedule_consultation"
	ActionJoinNewsletter       ActionType = "join_newsletter"
	ActionRequestCatalog       ActionType = "request_catalog"
)

// Action is a call-to-action parameterized with collection details.
type Action struct {
	ID           string            `json:"id"`
	Type         ActionType        `json:"type"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	CollectionID string            `json:"collection_id"`
	Parameters   map[string]string `json:"parameters"`
}

// ContentMetadata describes how a content package was generated.
type ContentMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	LikedCount  int       `json:"liked_count"`
	Threshold   int       `json:"threshold"`
}

// PersonalizedContent is the package assembled for an active trigger.
// It is built per request and never cached.
type PersonalizedContent struct {
	ID              string           `json:"id"`
	Trigger         Trigger          `json:"trigger"`
	Collection      CollectionRecord `json:"collection"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	Actions         []Action         `json:"actions"`
	Metadata        ContentMetadata  `json:"metadata"`
}

// Insights holds aggregate statistics over the liked set.
type Insights struct {
	// DominantCollection is the canonical collection with the most resolved likes.
	// Only meaningful when HasDominant is true.
	DominantCollection Collection `json:"dominant_collection,omitempty"`
	HasDominant        bool       `json:"has_dominant"`

	// MinPrice and MaxPrice span the resolved liked products (0/0 when none).
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`

	// PreferredMaterials is the sorted, de-duplicated set of case materials.
	PreferredMaterials []string `json:"preferred_materials"`

	// TotalLikes counts every liked id, resolvable or not.
	TotalLikes int `json:"total_likes"`

	// CollectionAffinities is the per-collection tally used by the trigger.
	CollectionAffinities map[Collection]int `json:"collection_affinities"`

	// UnattributedLikes counts ids excluded from every collection tally.
	UnattributedLikes int `json:"unattributed_likes"`
}

// CatalogService supplies catalog reference data.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]ProductRecord, error)
	ListCollections(ctx context.Context) ([]CollectionRecord, error)
}

// KeyValueStore persists the serialized liked set.
// Get must return an error wrapping kvstore.ErrNotFound for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
