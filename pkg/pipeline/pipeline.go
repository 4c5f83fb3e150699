// Package pipeline provides the core planning pipeline for Rackplan.
//
// This package implements the complete ingest → enrich → arrange flow
// shared by the CLI and API. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Ingest: Parse the proposal CSV and detect rack enclosures
//  2. Enrich: Resolve physical specs through the catalog source chain
//  3. Arrange: Place the enriched items into one or more racks
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(sources, cache, nil, logger)
//	opts := pipeline.Options{
//	    CSVPath: "proposal.csv",
//	    Project: "Smith Residence",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, layout := range result.Plan.Layouts {
//	    fmt.Println(layout.Name)
//	}
//
// Run individual stages:
//
//	// Ingest only (e.g. to let the user pick an enclosure first)
//	products, summary, err := runner.Ingest(ctx, opts)
//
//	// Enrich with existing products
//	items, skips, cacheInfo, err := runner.Enrich(ctx, opts, products)
//
//	// Arrange with existing items
//	plan, err := runner.Arrange(ctx, opts, items, summary)
package pipeline

import (
	"time"

	"github.com/racklabs/rackplan/pkg/catalog"
	apperrors "github.com/racklabs/rackplan/pkg/errors"
	"github.com/racklabs/rackplan/pkg/proposal"
	"github.com/racklabs/rackplan/pkg/rack"
)

// DefaultProject labels plans when the caller does not name the job.
const DefaultProject = "AV System"

// Options contains all configuration for the planning pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Ingest options
	CSVPath  string `json:"csv_path"`
	Location string `json:"location,omitempty"` // restrict to one install location

	// Enrich options
	NoCatalog bool `json:"no_catalog,omitempty"` // skip local/remote/cloud catalogs
	NoAI      bool `json:"no_ai,omitempty"`      // skip AI inference
	Refresh   bool `json:"refresh,omitempty"`    // bypass cached specs

	// Arrange options
	Project    string `json:"project,omitempty"`
	Capacity   int    `json:"capacity,omitempty"` // 0 uses the detected enclosure size
	Margin     int    `json:"margin,omitempty"`   // free-unit reserve before splitting
	ForceSplit bool   `json:"force_split,omitempty"`
	NoSplit    bool   `json:"no_split,omitempty"`

	// Arrangement geometry, zero for the engine defaults.
	TopBuffer       int `json:"top_buffer,omitempty"`
	BottomBuffer    int `json:"bottom_buffer,omitempty"`
	VentInterval    int `json:"vent_interval,omitempty"`
	UpgradeCapacity int `json:"upgrade_capacity,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the arranged output.
	Plan *rack.Plan

	// Products are the unique rack-candidate products from the proposal.
	Products []proposal.Product

	// Skipped lists the products excluded from the rack and why.
	Skipped []catalog.Skip

	// Summary is the enclosure detection outcome.
	Summary proposal.Summary

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks how much of the enrichment came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Products    int // unique products ingested
	Items       int // expanded items placed into racks
	Skipped     int // products excluded from the rack
	IngestTime  time.Duration
	EnrichTime  time.Duration
	ArrangeTime time.Duration
}

// CacheInfo tracks spec cache effectiveness for the enrich stage.
type CacheInfo struct {
	SpecHits    int // unique queries answered from the response cache
	SpecQueries int // unique queries issued
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForIngest(); err != nil {
		return err
	}
	if err := o.ValidateForArrange(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForIngest checks required fields for proposal ingestion.
func (o *Options) ValidateForIngest() error {
	if o.CSVPath == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "csv path is required")
	}
	return nil
}

// ValidateForArrange validates and sets defaults for arrangement.
func (o *Options) ValidateForArrange() error {
	if o.Capacity < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidCapacity, "capacity must be positive, got %d", o.Capacity)
	}
	if o.Margin < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "margin must be non-negative, got %d", o.Margin)
	}
	if o.TopBuffer < 0 || o.BottomBuffer < 0 || o.VentInterval < 0 || o.UpgradeCapacity < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "arrangement geometry must be non-negative")
	}
	o.SetArrangeDefaults()
	return nil
}

// SetArrangeDefaults sets default values for arrangement.
func (o *Options) SetArrangeDefaults() {
	if o.Project == "" {
		o.Project = DefaultProject
	}
}

// UseCatalog returns whether catalog sources should be consulted.
func (o *Options) UseCatalog() bool {
	return !o.NoCatalog
}

// UseAI returns whether AI inference should be consulted.
func (o *Options) UseAI() bool {
	return !o.NoAI
}
