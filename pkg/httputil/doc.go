// Package httputil provides HTTP utilities for catalog API clients.
//
// # Overview
//
// This package provides infrastructure used by the clients that fetch
// product data from upstream services:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/rackplan/)
// with configurable TTL. Product specs change rarely, so caching them
// locally speeds up repeated runs and keeps upstream request volume low.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	var spec productRecord
//	ok, _ := cache.Get("cloud:marantz/sr6015", &spec) // Check cache
//	if !ok {
//	    spec = fetchFromAPI()
//	    cache.Set("cloud:marantz/sr6015", spec) // Store for later
//	}
//
// Cache keys should be namespaced by source to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Wrap transient errors with [RetryableError] so Retry knows to attempt
// the operation again; anything else is returned immediately.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/rackplan/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `rackplan cache clear` or by deleting
// the cache directory.
package httputil
