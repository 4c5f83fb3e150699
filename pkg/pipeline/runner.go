package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/racklabs/rackplan/pkg/cache"
	"github.com/racklabs/rackplan/pkg/catalog"
	apperrors "github.com/racklabs/rackplan/pkg/errors"
	"github.com/racklabs/rackplan/pkg/observability"
	"github.com/racklabs/rackplan/pkg/proposal"
	"github.com/racklabs/rackplan/pkg/rack"
)

// Sources groups the catalog sources the enrich stage draws from. Any
// field may be nil; the consultation order is fixed: local catalog,
// then remote, then cloud, then AI, with estimates as the terminal
// fallback.
type Sources struct {
	Local    catalog.Source
	Remote   catalog.Source
	Cloud    catalog.Source
	AI       catalog.Source
	Estimate catalog.Source
}

// Chain assembles the consultation order for one run, honoring the
// run's catalog and AI toggles.
func (s Sources) Chain(opts Options) []catalog.Source {
	var srcs []catalog.Source
	add := func(src catalog.Source) {
		if src != nil {
			srcs = append(srcs, src)
		}
	}
	if opts.UseCatalog() {
		add(s.Local)
		add(s.Remote)
		add(s.Cloud)
	}
	if opts.UseAI() {
		add(s.AI)
	}
	add(s.Estimate)
	return srcs
}

// Runner encapsulates pipeline execution with spec caching.
// Both CLI and API can use this to avoid duplicating resolution logic.
//
// The Runner is stateless except for the sources, cache, and logger -
// it doesn't store pipeline results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Sources Sources
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger

	// Splitter overrides the keyword lists used to divide equipment
	// between AV and network racks. Nil uses the built-in lists.
	Splitter *rack.Splitter
}

// NewRunner creates a runner with the given sources and cache.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(sources Sources, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Sources: sources,
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
	}
}

// Execute runs the complete ingest → enrich → arrange pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Ingest
	ingestStart := time.Now()
	products, summary, err := r.Ingest(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	result.Products = products
	result.Summary = summary
	result.Stats.Products = len(products)
	result.Stats.IngestTime = time.Since(ingestStart)

	r.Logger.Info("parsed proposal",
		"products", len(products),
		"racks", summary.TotalCount,
		"duration", result.Stats.IngestTime)

	// Stage 2: Enrich
	enrichStart := time.Now()
	items, skipped, cacheInfo, err := r.Enrich(ctx, opts, products)
	if err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}
	result.Skipped = skipped
	result.CacheInfo = cacheInfo
	result.Stats.Skipped = len(skipped)
	result.Stats.Items = expandedCount(items)
	result.Stats.EnrichTime = time.Since(enrichStart)

	r.Logger.Info("resolved specs",
		"items", result.Stats.Items,
		"skipped", len(skipped),
		"cached", fmt.Sprintf("%d/%d", cacheInfo.SpecHits, cacheInfo.SpecQueries),
		"duration", result.Stats.EnrichTime)

	// Stage 3: Arrange
	arrangeStart := time.Now()
	plan, err := r.Arrange(ctx, opts, items, summary)
	if err != nil {
		return nil, fmt.Errorf("arrange: %w", err)
	}
	result.Plan = plan
	result.Stats.ArrangeTime = time.Since(arrangeStart)

	r.Logger.Info("arranged racks",
		"layouts", len(plan.Layouts),
		"duration", result.Stats.ArrangeTime)

	return result, nil
}

// Ingest parses the proposal CSV, consolidates duplicate rows into
// quantities, and summarizes any rack enclosures the client ordered.
func (r *Runner) Ingest(ctx context.Context, opts Options) ([]proposal.Product, proposal.Summary, error) {
	if err := opts.ValidateForIngest(); err != nil {
		return nil, proposal.Summary{}, err
	}

	start := time.Now()
	observability.Pipeline().OnIngestStart(ctx, opts.CSVPath)
	products, summary, err := r.ingest(opts)
	observability.Pipeline().OnIngestComplete(ctx, opts.CSVPath, len(products), time.Since(start), err)
	return products, summary, err
}

func (r *Runner) ingest(opts Options) ([]proposal.Product, proposal.Summary, error) {
	data, err := os.ReadFile(opts.CSVPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, proposal.Summary{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err,
				"proposal file not found: %s", opts.CSVPath)
		}
		return nil, proposal.Summary{}, err
	}

	products, err := proposal.Parse(data, proposal.Options{Location: opts.Location})
	if err != nil {
		return nil, proposal.Summary{}, err
	}
	products = proposal.Consolidate(products)
	if len(products) == 0 {
		if opts.Location != "" {
			return nil, proposal.Summary{}, apperrors.New(apperrors.ErrCodeInvalidInput,
				"no products at location %q; check the proposal's location column", opts.Location)
		}
		return nil, proposal.Summary{}, apperrors.New(apperrors.ErrCodeInvalidInput,
			"no rack-candidate products in proposal")
	}

	enclosures, err := proposal.DetectEnclosures(data)
	if err != nil {
		return nil, proposal.Summary{}, err
	}
	return products, proposal.Summarize(enclosures), nil
}

// Enrich resolves a physical spec for every product and converts the
// resolvable ones into rack items. Products that are clearly not rack
// equipment are skipped before any source is consulted; the rest walk
// the source chain assembled from the run's toggles.
func (r *Runner) Enrich(ctx context.Context, opts Options, products []proposal.Product) ([]rack.Item, []catalog.Skip, CacheInfo, error) {
	start := time.Now()
	observability.Pipeline().OnEnrichStart(ctx, len(products))

	kept := make([]proposal.Product, 0, len(products))
	var skipped []catalog.Skip
	for _, p := range products {
		if catalog.ClearlyNotRackMountable(p) {
			skipped = append(skipped, catalog.Skip{Product: p, Reason: "clearly not rack-mountable"})
			r.Logger.Debug("pre-filter skip", "brand", p.Brand, "model", p.Model, "name", p.Name)
			continue
		}
		kept = append(kept, p)
	}

	queries := make([]catalog.Query, len(kept))
	for i, p := range kept {
		queries[i] = catalog.QueryFromProduct(p)
	}

	resolver := catalog.NewResolver(catalog.ResolverOptions{
		Cache:   r.Cache,
		Keyer:   r.Keyer,
		TTL:     cache.TTLSpec,
		Refresh: opts.Refresh,
	}, r.Sources.Chain(opts)...)

	hits, total := resolver.Cached(ctx, queries)
	info := CacheInfo{SpecHits: hits, SpecQueries: total}

	specs, err := resolver.ResolveAll(ctx, queries)
	if err != nil {
		observability.Pipeline().OnEnrichComplete(ctx, len(products), 0, len(skipped), time.Since(start), err)
		return nil, nil, info, err
	}

	items, buildSkips := catalog.BuildItems(kept, specs)
	skipped = append(skipped, buildSkips...)
	for _, s := range buildSkips {
		r.Logger.Debug("skipped", "name", s.Product.Name, "model", s.Product.Model, "reason", s.Reason)
	}

	observability.Pipeline().OnEnrichComplete(ctx, len(products), len(items), len(skipped), time.Since(start), nil)
	return items, skipped, info, nil
}

// Arrange places the items into one or more racks. The rack size comes
// from the options, falling back to the size detected from the
// proposal's enclosures; detected AV and network sizes apply to their
// racks after a split regardless of the override.
func (r *Runner) Arrange(ctx context.Context, opts Options, items []rack.Item, summary proposal.Summary) (*rack.Plan, error) {
	if err := opts.ValidateForArrange(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnArrangeStart(ctx, expandedCount(items))

	capacity := opts.Capacity
	if capacity == 0 {
		capacity = summary.DefaultSize
	}

	plan, err := rack.BuildPlan(items, rack.PlanOptions{
		Project:         opts.Project,
		Capacity:        capacity,
		AVCapacity:      summary.AVSize,
		NetworkCapacity: summary.NetworkSize,
		SplitMargin:     opts.Margin,
		ForceSplit:      opts.ForceSplit,
		NoSplit:         opts.NoSplit,
		UpgradeCapacity: opts.UpgradeCapacity,
		Splitter:        r.Splitter,
		Arrange: rack.Options{
			TopBuffer:    opts.TopBuffer,
			BottomBuffer: opts.BottomBuffer,
			VentInterval: opts.VentInterval,
		},
	})

	layouts := 0
	if plan != nil {
		layouts = len(plan.Layouts)
	}
	observability.Pipeline().OnArrangeComplete(ctx, layouts, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	for _, l := range plan.Layouts {
		if l.Overflows() {
			r.Logger.Warn("rack overflows",
				"name", l.Name,
				"capacity", l.Capacity,
				"excess", -l.FreeUnits())
		}
	}
	return plan, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// expandedCount is the number of rack slots the items will claim once
// quantities are expanded.
func expandedCount(items []rack.Item) int {
	total := 0
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		total += qty
	}
	return total
}
