package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/racklabs/rackplan/pkg/cache"
	"github.com/racklabs/rackplan/pkg/catalog"
	apperrors "github.com/racklabs/rackplan/pkg/errors"
	"github.com/racklabs/rackplan/pkg/pipeline"
)

// catalogCommand groups spec catalog operations.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query and maintain the product spec catalog",
	}

	cmd.AddCommand(c.catalogLookupCommand())
	cmd.AddCommand(c.catalogImportCommand())

	return cmd
}

// catalogLookupCommand creates the "catalog lookup" subcommand.
func (c *CLI) catalogLookupCommand() *cobra.Command {
	var (
		partNumber string
		noAI       bool
		noCache    bool
		refresh    bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <brand> <model>",
		Short: "Resolve one product's rack spec",
		Long: `Resolve a product's rack spec through the configured catalog chain.
Unlike arrangement, lookups never fall back to physical estimation, so
a product no source knows reports as not found.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := catalog.Query{Brand: args[0], Model: args[1], PartNumber: partNumber}
			return c.runCatalogLookup(cmd.Context(), q, noAI, noCache, refresh, asJSON)
		},
	}

	cmd.Flags().StringVar(&partNumber, "part", "", "part number, when the model alone is ambiguous")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "skip AI spec inference")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the spec cache entirely")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-resolve, bypassing cached results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the spec as JSON")

	return cmd
}

func (c *CLI) runCatalogLookup(ctx context.Context, q catalog.Query, noAI, noCache, refresh, asJSON bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	// The estimate source always answers; excluding it keeps a miss a miss.
	lookup := runner.Sources
	lookup.Estimate = nil

	resolver := catalog.NewResolver(catalog.ResolverOptions{
		Cache:   runner.Cache,
		Keyer:   runner.Keyer,
		TTL:     cache.TTLSpec,
		Refresh: refresh,
	}, lookup.Chain(pipeline.Options{NoAI: noAI})...)

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Looking up %s %s...", q.Brand, q.Model))
	spin.Start()

	spec, err := resolver.Resolve(ctx, q)
	if err != nil {
		spin.StopWithError("Lookup failed")
		return err
	}
	spin.Stop()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(spec)
	}

	printSuccess("%s %s", q.Brand, q.Model)
	printKeyValue("Rack units", formatUnits(spec.Units))
	printKeyValue("Weight", fmt.Sprintf("%.1f lb", spec.Weight))
	printKeyValue("BTU", fmt.Sprintf("%.0f", spec.EffectiveBTU()))
	if spec.Subsystem != "" {
		printKeyValue("Subsystem", spec.Subsystem)
	}
	if !spec.RackMountable {
		printKeyValue("Mountable", "no")
	}
	printKeyValue("Source", spec.Source)

	return nil
}

// formatUnits renders a possibly fractional rack height.
func formatUnits(u float64) string {
	if u == math.Trunc(u) {
		return fmt.Sprintf("%dU", int(u))
	}
	return fmt.Sprintf("%.1fU", u)
}

// catalogImportCommand creates the "catalog import" subcommand.
func (c *CLI) catalogImportCommand() *cobra.Command {
	var sample bool

	cmd := &cobra.Command{
		Use:   "import [catalog.csv]",
		Short: "Import spec entries into the catalog backends",
		Long: `Import a CSV of product specs into every configured writable catalog
backend. Column names are matched against common aliases, so exports
from different spreadsheet tools import without editing.

With --sample, a small built-in starter set is imported instead of a
file, enough to plan the demo proposal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.runCatalogImport(cmd.Context(), path, sample)
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "import the built-in starter entries")

	return cmd
}

func (c *CLI) runCatalogImport(ctx context.Context, path string, sample bool) error {
	var entries []catalog.Entry
	switch {
	case sample && path != "":
		return apperrors.New(apperrors.ErrCodeInvalidInput, "--sample does not take a csv path")
	case sample:
		entries = catalog.SampleEntries()
	case path == "":
		return apperrors.New(apperrors.ErrCodeInvalidInput, "a csv path or --sample is required")
	default:
		var err error
		entries, err = catalog.ReadEntriesFile(path)
		if err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	imported := false
	for _, target := range []catalog.Source{runner.Sources.Local, runner.Sources.Remote} {
		imp, ok := target.(catalog.Importer)
		if !ok {
			continue
		}
		n, err := imp.Import(ctx, entries)
		if err != nil {
			return fmt.Errorf("import into %s: %w", target.Name(), err)
		}
		printSuccess("Imported %d entries into the %s catalog", n, target.Name())
		imported = true
	}
	if !imported {
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"no writable catalog configured; set mongo_uri or postgres_url")
	}

	printNewline()
	printNextStep("Plan a proposal", "rackplan arrange <proposal.csv>")
	return nil
}
