// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline execution, cache operations, and catalog
// lookups.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnIngestStart(ctx, path)
//	// ... parse the proposal ...
//	observability.Pipeline().OnIngestComplete(ctx, path, products, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the planning pipeline.
type PipelineHooks interface {
	// Ingest events
	OnIngestStart(ctx context.Context, path string)
	OnIngestComplete(ctx context.Context, path string, products int, duration time.Duration, err error)

	// Enrich events
	OnEnrichStart(ctx context.Context, products int)
	OnEnrichComplete(ctx context.Context, products, resolved, skipped int, duration time.Duration, err error)

	// Arrange events
	OnArrangeStart(ctx context.Context, items int)
	OnArrangeComplete(ctx context.Context, layouts int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Catalog Hooks
// =============================================================================

// CatalogHooks receives events from catalog source lookups.
type CatalogHooks interface {
	// OnLookup records a single-product lookup against one source.
	OnLookup(ctx context.Context, source, query string, duration time.Duration, err error)

	// OnBatch records a batched lookup against one source.
	OnBatch(ctx context.Context, source string, queries int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnIngestStart(context.Context, string) {}
func (NoopPipelineHooks) OnIngestComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnEnrichStart(context.Context, int)                                 {}
func (NoopPipelineHooks) OnEnrichComplete(context.Context, int, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnArrangeStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnArrangeComplete(context.Context, int, time.Duration, error)       {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopCatalogHooks is a no-op implementation of CatalogHooks.
type NoopCatalogHooks struct{}

func (NoopCatalogHooks) OnLookup(context.Context, string, string, time.Duration, error) {}
func (NoopCatalogHooks) OnBatch(context.Context, string, int, time.Duration, error)     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	catalogHooks  CatalogHooks  = NoopCatalogHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetCatalogHooks registers custom catalog hooks.
// This should be called once at application startup before any catalog lookups.
func SetCatalogHooks(h CatalogHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		catalogHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Catalog returns the registered catalog hooks.
func Catalog() CatalogHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return catalogHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	catalogHooks = NoopCatalogHooks{}
}
