// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package personalize turns a user's liked watches into collection affinity,
// activation triggers and personalized content.
//
// # Components
//
//   - Tracker: the persisted set of liked product ids
//   - Normalize: maps raw catalog labels to canonical collections
//   - Evaluate: fires a Trigger once a collection reaches the threshold
//   - Compose: builds insights, recommendations and actions for a Trigger
//   - Summarize: aggregate statistics over the liked set
//   - Engine: facade tying the above to a catalog snapshot
//
// Evaluate, Compose and Summarize are pure functions of the liked set, the
// catalog snapshot and the configuration.
//
// # Attribution
//
// Each liked id counts toward at most one canonical collection. Ids found in
// the catalog use their record's collection label; unknown ids are matched by
// the same substring rules applied to the id itself. Ids matching neither are
// unattributed and never count toward a collection.
//
// # Tie-breaking
//
// Collections rank by like count, then by canonical priority (Navitimer,
// Chronomat, Superocean, Superocean Heritage, Premier, Avenger), then by
// name. The same ranking selects the trigger and the dominant collection.
//
// # Usage
//
//	store := kvstore.NewMemory()
//	cat, _ := personalize.LoadCatalog(ctx, catalog.NewSeed())
//	engine, err := personalize.NewEngine(ctx, nil, personalize.StaticCatalog(cat), store, logger)
//	if err != nil {
//	    return err
//	}
//	defer engine.Close(ctx)
//
//	_ = engine.Like(ctx, "navitimer-b01-chronograph-43")
//	if content, ok := engine.Compose(ctx); ok {
//	    render(content)
//	}
package personalize
