// Atelier - Collection Affinity Personalization Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package testinfra provides container helpers for integration tests.
//
// Containers are managed with testcontainers-go. Every file carries the
// integration build tag, so the package only compiles for
//
//	go test -tags integration ./...
//
// # Redis Container
//
//	func TestRedisStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    redis, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, redis)
//
//	    store, err := kvstore.OpenRedis(ctx, kvstore.RedisOptions{Addr: redis.Addr})
//	    ...
//	}
package testinfra
