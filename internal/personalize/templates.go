// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package personalize

// narrative is a collection-specific insight template.
type narrative struct {
	key         string
	title       string
	description string
	category    InsightCategory
}

// narratives holds the editorial copy per canonical collection. Ad hoc
// buckets have no entry and receive only the generic insights.
var narratives = map[Collection][]narrative{
	CollectionNavitimer: {{
		key:         "aviation",
		title:       "Born in the Cockpit",
		description: "The circular slide rule has guided pilots since 1952. Your selections show a taste for instruments built to be read at altitude.",
		category:    InsightLifestyle,
	}},
	CollectionChronomat: {{
		key:         "versatility",
		title:       "Built for Every Mission",
		description: "Rouleaux bracelet, onion crown and rider tabs: the Chronomat moves from the runway to the boardroom without changing character.",
		category:    InsightDesign,
	}},
	CollectionSuperocean: {{
		key:         "adventure",
		title:       "Made for the Deep",
		description: "Water resistance to serious depths and legible dials under pressure. You are drawn to watches that welcome adventure.",
		category:    InsightLifestyle,
	}},
	CollectionSuperoceanHeritage: {{
		key:         "vintage",
		title:       "A Vintage Soul",
		description: "Mesh bracelets and domed crystals echo the dive watches of 1957. Your picks favour heritage lines with modern reliability.",
		category:    InsightDesign,
	}},
	CollectionPremier: {{
		key:         "elegance",
		title:       "Understated Elegance",
		description: "Clean dials and refined proportions define the Premier. Your taste leans toward quiet sophistication.",
		category:    InsightDesign,
	}},
	CollectionAvenger: {{
		key:         "performance",
		title:       "Engineered for Performance",
		description: "Oversized cases and grip-ready bezels built for extreme conditions. You value tools that perform when it matters.",
		category:    InsightTechnical,
	}},
}

// adjacency points a collection to a neighbour worth exploring next.
type adjacency struct {
	target     Collection
	confidence float64
	kind       RecommendationType
	reason     string
}

// adjacencies is the cross-collection table. A collection without an entry
// gets no cross-collection recommendation.
var adjacencies = map[Collection]adjacency{
	CollectionNavitimer: {
		target:     CollectionChronomat,
		confidence: 0.75,
		kind:       RecommendSimilarStyle,
		reason:     "Navitimer collectors often add a Chronomat for everyday versatility with the same aviation roots.",
	},
	CollectionChronomat: {
		target:     CollectionAvenger,
		confidence: 0.7,
		kind:       RecommendSimilarStyle,
		reason:     "The Avenger takes the Chronomat's sporty character into rugged, oversized territory.",
	},
	CollectionSuperocean: {
		target:     CollectionSuperoceanHeritage,
		confidence: 0.8,
		kind:       RecommendCollectionComplement,
		reason:     "Superocean Heritage pairs your love of dive watches with a vintage-inspired design.",
	},
}

// crossCollectionPriority is the display priority of the adjacency pick.
const crossCollectionPriority = 3
