// Package pkg provides the core libraries for Rackplan rack planning.
//
// # Overview
//
// Rackplan turns an AV integrator's equipment proposal into physically
// valid rack elevations: every piece of gear gets a slot, heavy items sink
// toward the bottom, and ventilation panels are inserted wherever the
// density allows. The pkg directory is organized into four main areas:
//
//  1. [rack] - The layout engine (quantity expansion, AV/network splitting, placement)
//  2. [proposal] / [catalog] - Proposal ingestion and physical spec enrichment
//  3. [cache] - Resolved-spec caching (file, Redis, null backends)
//  4. [pipeline] - Orchestration (ingest → enrich → arrange)
//
// # Architecture
//
// The typical data flow through Rackplan:
//
//	Proposal CSV
//	     ↓
//	[proposal] package (detect column format, consolidate duplicate rows)
//	     ↓
//	[catalog] package (resolve rack units, weight, BTU per product)
//	     ↓
//	[rack] package (expand quantities, split when over capacity, place items)
//	     ↓
//	JSON plan / CLI elevation listing
//
// # Quick Start
//
// Run the complete pipeline against a proposal export:
//
//	import (
//	    "context"
//
//	    "github.com/racklabs/rackplan/pkg/cache"
//	    "github.com/racklabs/rackplan/pkg/catalog"
//	    "github.com/racklabs/rackplan/pkg/pipeline"
//	)
//
//	sources := pipeline.Sources{Estimate: catalog.NewEstimateSource()}
//	runner := pipeline.NewRunner(sources, cache.NewNullCache(), nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    CSVPath: "proposal.csv",
//	    Project: "Smith Residence",
//	})
//	if err != nil {
//	    return err
//	}
//	for _, l := range result.Plan.Layouts {
//	    fmt.Printf("%s: %d items, %dU free\n", l.Name, len(l.Items), l.FreeUnits())
//	}
//
// Or drive the layout engine directly when specs are already known:
//
//	items := rack.Expand([]rack.Item{
//	    {Kind: rack.KindEquipment, Name: "Denon AVR-X3800H", Units: 2, Weight: 24.3, Quantity: 2},
//	    {Kind: rack.KindEquipment, Name: "Araknis AN-310", Units: 1, Weight: 7.5, Quantity: 1},
//	})
//	layout, err := rack.Arrange(items, 42, rack.Options{})
//
// # Main Packages
//
// ## Layout Engine
//
// [rack] - The core domain. Items (equipment, vents, blanks) are placed
// into fixed-capacity layouts by one of three density strategies: tight
// packs contiguously, moderate inserts vents between groups, sparse
// spreads items with breathing room. [rack.BuildPlan] adds quantity
// expansion and the AV/network split on top of single-rack [rack.Arrange].
//
// ## Ingestion and Enrichment
//
// [proposal] - CSV parsing for integrator proposal exports. Detects which
// of the known column formats a file uses, consolidates duplicate line
// items into quantities, and spots any rack enclosures the client ordered
// so the pipeline can infer a capacity.
//
// [catalog] - Physical spec resolution. A [catalog.Resolver] consults an
// ordered chain of sources (Mongo document catalog, Postgres catalog,
// hosted HTTP catalog, AI inference, heuristic estimation) and caches
// what it learns. Sources that also implement [catalog.Importer] accept
// bulk CSV imports.
//
// ## Infrastructure
//
// [cache] - Resolved-spec caching with file, Redis, and null backends
// behind one interface. A [cache.Keyer] scopes keys so multiple
// deployments can share a Redis instance.
//
// [pipeline] - The ingest → enrich → arrange orchestration shared by the
// CLI and the HTTP API, so both entry points behave identically.
//
// [io] - JSON import/export: finished plans out, bare item lists in.
//
// [errors] - Coded application errors that map cleanly onto CLI exit
// paths and HTTP status codes.
//
// [httputil] - Shared HTTP client construction with the retry and timeout
// conventions used by the hosted catalog and AI sources.
//
// [observability] - Lightweight counters and timers the pipeline reports
// through structured logs.
//
// [buildinfo] - Version metadata stamped at build time.
//
// # Common Workflows
//
// Parse a proposal without arranging:
//
//	products, err := proposal.ParseFile("proposal.csv", proposal.Options{})
//
// Resolve one product's specs:
//
//	resolver := catalog.NewResolver(catalog.ResolverOptions{Cache: c}, sources...)
//	spec, err := resolver.Resolve(ctx, catalog.Query{Brand: "Denon", Model: "AVR-X3800H"})
//
// Force separate AV and network racks:
//
//	plan, err := rack.BuildPlan(items, rack.PlanOptions{
//	    Project:    "Smith Residence",
//	    Capacity:   42,
//	    ForceSplit: true,
//	})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/rack/...      # Layout engine only
//	go test -run Example        # Examples only
//
// [rack]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/rack
// [rack.Arrange]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/rack#Arrange
// [rack.BuildPlan]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/rack#BuildPlan
// [proposal]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/proposal
// [catalog]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/catalog
// [catalog.Resolver]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/catalog#Resolver
// [catalog.Importer]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/catalog#Importer
// [cache]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/cache
// [cache.Keyer]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/cache#Keyer
// [pipeline]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/io
// [errors]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/racklabs/rackplan/pkg/buildinfo
package pkg
