// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Compose assembles the personalized content package for trig.
//
// It returns false when the trigger's collection cannot be resolved against
// the catalog. Recommendations never include a liked product and never
// repeat a product. The returned package is freshly built on every call.
func Compose(trig Trigger, likedIDs []string, cat *Catalog, cfg *Config, now time.Time) (*PersonalizedContent, bool) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	rec, ok := cat.CollectionFor(trig.CollectionName)
	if !ok {
		return nil, false
	}

	collectionID := rec.ID
	if collectionID == "" {
		collectionID = trig.CollectionID
	}

	liked := make(map[string]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}

	return &PersonalizedContent{
		ID:              uuid.NewString(),
		Trigger:         trig,
		Collection:      rec,
		Insights:        composeInsights(trig, rec, collectionID),
		Recommendations: composeRecommendations(trig, cat, cfg, liked),
		Actions:         composeActions(rec, collectionID),
		Metadata: ContentMetadata{
			GeneratedAt: now,
			LikedCount:  len(likedIDs),
			Threshold:   cfg.ActivationThreshold,
		},
	}, true
}

func composeInsights(trig Trigger, rec CollectionRecord, collectionID string) []Insight {
	insights := make([]Insight, 0, 4)

	insights = append(insights, Insight{
		ID:           collectionID + "-heritage",
		Title:        fmt.Sprintf("The %s Heritage", rec.Name),
		Description:  rec.Heritage,
		Image:        rec.HeroImage,
		CollectionID: collectionID,
		Category:     InsightHeritage,
		Confidence:   trig.Confidence,
	})

	if len(rec.KeyFeatures) > 0 {
		features := rec.KeyFeatures
		if len(features) > 2 {
			features = features[:2]
		}
		insights = append(insights, Insight{
			ID:    collectionID + "-technical",
			Title: "Technical Mastery",
			Description: fmt.Sprintf("Your appreciation for the %s reflects an eye for %s.",
				rec.Name, strings.ToLower(strings.Join(features, " and "))),
			Image:        rec.HeroImage,
			CollectionID: collectionID,
			Category:     InsightTechnical,
			Confidence:   trig.Confidence,
		})
	}

	for _, n := range narratives[trig.CollectionName] {
		insights = append(insights, Insight{
			ID:           collectionID + "-" + n.key,
			Title:        n.title,
			Description:  n.description,
			Image:        rec.HeroImage,
			CollectionID: collectionID,
			Category:     n.category,
			Confidence:   trig.Confidence,
		})
	}

	return insights
}

func composeRecommendations(trig Trigger, cat *Catalog, cfg *Config, liked map[string]struct{}) []Recommendation {
	recs := make([]Recommendation, 0, cfg.IntraCollectionLimit+1)
	seen := make(map[string]struct{})

	for _, p := range cat.ProductsIn(trig.CollectionName) {
		if len(recs) >= cfg.IntraCollectionLimit {
			break
		}
		if _, ok := liked[p.ID]; ok {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		recs = append(recs, Recommendation{
			ID:         "rec-" + p.ID,
			Product:    p,
			Reason:     intraReason(p, trig.CollectionName),
			Confidence: cfg.IntraCollectionConfidence,
			Type:       RecommendCollectionComplement,
			Priority:   len(recs) + 1,
		})
	}

	adj, ok := adjacencies[trig.CollectionName]
	if !ok {
		return recs
	}
	for _, p := range cat.ProductsIn(adj.target) {
		if _, ok := liked[p.ID]; ok {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		recs = append(recs, Recommendation{
			ID:         "rec-" + p.ID,
			Product:    p,
			Reason:     adj.reason,
			Confidence: adj.confidence,
			Type:       adj.kind,
			Priority:   crossCollectionPriority,
		})
		break
	}

	return recs
}

func intraReason(p ProductRecord, c Collection) string {
	var details []string
	if p.Movement != "" {
		details = append(details, p.Movement+" movement")
	}
	if p.Material != "" {
		details = append(details, strings.ToLower(p.Material)+" case")
	}
	if len(details) == 0 {
		return fmt.Sprintf("Completes your %s collection.", c)
	}
	return fmt.Sprintf("Completes your %s collection with its %s.", c, strings.Join(details, " and "))
}

func composeActions(rec CollectionRecord, collectionID string) []Action {
	params := func() map[string]string {
		return map[string]string{
			"collection_id":   collectionID,
			"collection_name": rec.Name,
			"established":     strconv.Itoa(rec.Established),
			"heritage":        rec.Heritage,
			"price_range":     formatPriceRange(rec.PriceRange),
		}
	}

	return []Action{
		{
			ID:           collectionID + "-explore",
			Type:         ActionExploreCollection,
			Title:        fmt.Sprintf("Explore the %s Collection", rec.Name),
			Description:  rec.Tagline,
			CollectionID: collectionID,
			Parameters:   params(),
		},
		{
			ID:           collectionID + "-consultation",
			Type:         ActionScheduleConsultation,
			Title:        "Book a Boutique Consultation",
			Description:  fmt.Sprintf("Discover the %s range (%s) with a specialist.", rec.Name, formatPriceRange(rec.PriceRange)),
			CollectionID: collectionID,
			Parameters:   params(),
		},
		{
			ID:           collectionID + "-newsletter",
			Type:         ActionJoinNewsletter,
			Title:        fmt.Sprintf("Join the %s Circle", rec.Name),
			Description:  fmt.Sprintf("Receive stories and new releases from the %s collection.", rec.Name),
			CollectionID: collectionID,
			Parameters:   params(),
		},
		{
			ID:           collectionID + "-catalog",
			Type:         ActionRequestCatalog,
			Title:        "Request the Heritage Catalogue",
			Description:  fmt.Sprintf("A printed history of the %s since %d.", rec.Name, rec.Established),
			CollectionID: collectionID,
			Parameters:   params(),
		},
	}
}

// formatPriceRange renders a range like "USD 4,500 - 12,000".
func formatPriceRange(pr PriceRange) string {
	if pr.Min == 0 && pr.Max == 0 {
		return "Price on request"
	}
	p := message.NewPrinter(language.English)
	lo := int64(math.Round(pr.Min))
	hi := int64(math.Round(pr.Max))
	if pr.Currency == "" {
		return p.Sprintf("%d - %d", lo, hi)
	}
	return p.Sprintf("%s %d - %d", pr.Currency, lo, hi)
}
