package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnIngestStart(ctx, "proposal.csv")
	p.OnIngestComplete(ctx, "proposal.csv", 12, time.Second, nil)
	p.OnEnrichStart(ctx, 12)
	p.OnEnrichComplete(ctx, 12, 10, 2, time.Second, nil)
	p.OnArrangeStart(ctx, 10)
	p.OnArrangeComplete(ctx, 2, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "spec")
	c.OnCacheMiss(ctx, "spec")
	c.OnCacheSet(ctx, "spec", 1024)

	// Catalog hooks
	cat := NoopCatalogHooks{}
	cat.OnLookup(ctx, "postgres", "marantz sr6015", time.Second, nil)
	cat.OnBatch(ctx, "ai", 5, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Catalog().(NoopCatalogHooks); !ok {
		t.Error("Catalog() should return NoopCatalogHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customCatalog := &testCatalogHooks{}
	SetCatalogHooks(customCatalog)
	if Catalog() != customCatalog {
		t.Error("SetCatalogHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testCatalogHooks struct{ NoopCatalogHooks }
