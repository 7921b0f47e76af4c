// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

/*
Package cache provides a generic, thread-safe LRU cache with idle expiry.

The API layer keeps one personalization engine per shopper session. Sessions
are bounded by count and by idleness, and an engine that leaves the cache must
be closed so its pending liked-set write reaches storage. LRU covers all three
needs:

  - capacity bound with O(1) least-recently-used eviction
  - idle TTL: Get and Add push an entry's deadline forward
  - an eviction callback run outside the cache lock

Usage:

	sessions := cache.NewLRU[*personalize.Engine](10000, 30*time.Minute,
	    cache.WithEvictFunc(func(id string, e *personalize.Engine, why cache.EvictReason) {
	        _ = e.Close(context.Background())
	    }))

	sessions.Add("s-1", engine)
	if e, ok := sessions.Get("s-1"); ok {
	    _ = e.Like("navitimer-b01-chronograph-43")
	}

	// periodic sweep
	sessions.CleanupExpired()

	// shutdown: take ownership of everything still cached
	for _, entry := range sessions.Drain() {
	    _ = entry.Value.Close(ctx)
	}

Expired entries are removed lazily on Get and eagerly by CleanupExpired. Drain
and Remove never invoke the callback; the caller owns the returned values.
*/
package cache
