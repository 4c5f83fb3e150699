package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/racklabs/rackplan/pkg/cache"
	"github.com/racklabs/rackplan/pkg/observability"
)

// ResolverOptions configure a Resolver.
type ResolverOptions struct {
	// Cache holds resolved specs between runs. Nil disables caching.
	Cache cache.Cache

	// Keyer derives cache keys. Nil uses the default keyer.
	Keyer cache.Keyer

	// TTL bounds the life of cached specs. Zero means entries never
	// expire, which suits specs: a receiver does not change height.
	TTL time.Duration

	// Refresh bypasses cached entries. Fresh results are still written
	// back, so one refreshed run repopulates the cache.
	Refresh bool
}

// Resolver answers spec queries by consulting sources in order. A source
// that cannot answer, whether it does not know the product or the lookup
// itself failed, is skipped and the next one is tried. Only when every
// source has passed does Resolve report ErrNotFound.
//
// Chain order is the caller's cost ordering: local catalogs first, then
// remote ones, then the AI, then estimates. Resolved specs are cached so
// repeat runs over the same proposal skip the expensive tail entirely.
type Resolver struct {
	sources []Source
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	refresh bool
	group   singleflight.Group
}

// NewResolver creates a Resolver consulting the given sources in order.
func NewResolver(opts ResolverOptions, sources ...Source) *Resolver {
	keyer := opts.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Resolver{
		sources: sources,
		cache:   opts.Cache,
		keyer:   keyer,
		ttl:     opts.TTL,
		refresh: opts.Refresh,
	}
}

// Sources returns the names of the configured sources in consultation
// order.
func (r *Resolver) Sources() []string {
	names := make([]string, len(r.sources))
	for i, src := range r.sources {
		names[i] = src.Name()
	}
	return names
}

// Resolve answers a single query. Concurrent resolutions of the same
// product share one chain walk.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*Spec, error) {
	v, err, _ := r.group.Do(r.keyer.SpecKey(q.Brand, q.Model), func() (interface{}, error) {
		return r.resolve(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Spec), nil
}

func (r *Resolver) resolve(ctx context.Context, q Query) (*Spec, error) {
	if spec, ok := r.cacheGet(ctx, q); ok {
		return spec, nil
	}
	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		spec, err := src.Lookup(ctx, q)
		observability.Catalog().OnLookup(ctx, src.Name(), q.Key(), time.Since(start), err)
		if err != nil {
			continue
		}
		r.store(ctx, q, spec)
		return spec, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, q.Key())
}

// ResolveAll answers many queries at once, deduplicated by [Query.Key].
// Cached specs are served first; the remaining misses walk the source
// chain together, so a batch-capable source like the AI sees all of them
// in one call. Products no source could answer are absent from the
// returned map. The only error is context cancellation.
func (r *Resolver) ResolveAll(ctx context.Context, queries []Query) (map[string]*Spec, error) {
	resolved := make(map[string]*Spec)
	misses := r.fromCache(ctx, dedupe(queries), resolved)

	for _, src := range r.sources {
		if len(misses) == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return resolved, err
		}
		misses = r.consult(ctx, src, misses, resolved)
	}
	return resolved, nil
}

// Cached reports how many of the queries, deduplicated by [Query.Key],
// the response cache can already answer, along with the deduplicated
// total. With Refresh set the hit count is always zero, since refreshed
// runs bypass the cache. The count is advisory: entries can expire
// between this check and a later ResolveAll.
func (r *Resolver) Cached(ctx context.Context, queries []Query) (hits, total int) {
	unique := dedupe(queries)
	if r.cache == nil || r.refresh {
		return 0, len(unique)
	}
	for _, q := range unique {
		data, ok, err := r.cache.Get(ctx, r.keyer.SpecKey(q.Brand, q.Model))
		if err != nil || !ok {
			continue
		}
		var spec Spec
		if json.Unmarshal(data, &spec) == nil {
			hits++
		}
	}
	return hits, len(unique)
}

// consult asks one source about every pending query and returns the
// queries it could not answer.
func (r *Resolver) consult(ctx context.Context, src Source, queries []Query, resolved map[string]*Spec) []Query {
	if batch, ok := src.(BatchSource); ok {
		return r.consultBatch(ctx, batch, queries, resolved)
	}

	var misses []Query
	for i, q := range queries {
		if ctx.Err() != nil {
			return append(misses, queries[i:]...)
		}
		start := time.Now()
		spec, err := src.Lookup(ctx, q)
		observability.Catalog().OnLookup(ctx, src.Name(), q.Key(), time.Since(start), err)
		if err != nil {
			misses = append(misses, q)
			continue
		}
		resolved[q.Key()] = spec
		r.store(ctx, q, spec)
	}
	return misses
}

func (r *Resolver) consultBatch(ctx context.Context, src BatchSource, queries []Query, resolved map[string]*Spec) []Query {
	start := time.Now()
	specs, err := src.LookupBatch(ctx, queries)
	observability.Catalog().OnBatch(ctx, src.Name(), len(queries), time.Since(start), err)
	if err != nil {
		return queries
	}

	var misses []Query
	for _, q := range queries {
		spec, ok := specs[q.Key()]
		if !ok {
			misses = append(misses, q)
			continue
		}
		resolved[q.Key()] = spec
		r.store(ctx, q, spec)
	}
	return misses
}

// fromCache serves whatever the cache already knows and returns the
// queries that still need a source.
func (r *Resolver) fromCache(ctx context.Context, queries []Query, resolved map[string]*Spec) []Query {
	if r.cache == nil || r.refresh {
		return queries
	}
	var misses []Query
	for _, q := range queries {
		spec, ok := r.cacheGet(ctx, q)
		if !ok {
			misses = append(misses, q)
			continue
		}
		resolved[q.Key()] = spec
	}
	return misses
}

func (r *Resolver) cacheGet(ctx context.Context, q Query) (*Spec, bool) {
	if r.cache == nil || r.refresh {
		return nil, false
	}
	data, ok, err := r.cache.Get(ctx, r.keyer.SpecKey(q.Brand, q.Model))
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, "spec")
		return nil, false
	}
	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		observability.Cache().OnCacheMiss(ctx, "spec")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "spec")
	return &spec, true
}

// store writes a resolved spec back to the cache. Estimates are not
// cached: they cost nothing to recompute and a cached guess would shadow
// a real catalog answer added later.
func (r *Resolver) store(ctx context.Context, q Query, spec *Spec) {
	if r.cache == nil || spec.Source == "estimate" {
		return
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, r.keyer.SpecKey(q.Brand, q.Model), data, r.ttl); err != nil {
		return
	}
	observability.Cache().OnCacheSet(ctx, "spec", len(data))
}

func dedupe(queries []Query) []Query {
	seen := make(map[string]struct{}, len(queries))
	out := make([]Query, 0, len(queries))
	for _, q := range queries {
		key := q.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out
}
