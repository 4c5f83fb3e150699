package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/racklabs/rackplan/pkg/pipeline"
)

// arrangeCommand creates the arrange command, the full planning pipeline.
func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		output  string
		asJSON  bool
		noCache bool
		noInput bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "arrange <proposal.csv>",
		Short: "Plan rack layouts from a proposal export",
		Long: `Plan rack layouts from a proposal export.

The arrange command reads the CSV, consolidates duplicate products,
resolves each product's rack spec through the configured catalog chain
(local, remote, cloud, then AI inference, with physical estimation as
the last resort), and arranges the equipment into one rack, or into
separate AV and network racks when it does not fit.

When the proposal lists more than one rack enclosure and --capacity is
not given, an interactive picker asks which rack to plan for; --no-input
skips the prompt and uses the largest detected rack.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.CSVPath = args[0]
			c.applyConfig(cmd, &opts)
			return c.runArrange(cmd.Context(), opts, output, asJSON, noCache, noInput)
		},
	}

	cmd.Flags().StringVarP(&opts.Project, "project", "p", "",
		`project name for the plan (default "`+pipeline.DefaultProject+`")`)
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "rack size in units (default: detected from the proposal)")
	cmd.Flags().StringVar(&opts.Location, "location", "", "only include equipment from one install location")
	cmd.Flags().IntVar(&opts.Margin, "margin", 0, "free units to reserve before splitting into two racks")
	cmd.Flags().BoolVar(&opts.ForceSplit, "split", false, "always split into AV and network racks")
	cmd.Flags().BoolVar(&opts.NoSplit, "no-split", false, "never split, even when the equipment does not fit")
	cmd.MarkFlagsMutuallyExclusive("split", "no-split")
	cmd.Flags().BoolVar(&opts.NoCatalog, "no-catalog", false, "skip catalog lookups")
	cmd.Flags().BoolVar(&opts.NoAI, "no-ai", false, "skip AI spec inference")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-resolve specs, bypassing cached results")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the spec cache entirely")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the plan as JSON to a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON instead of an elevation")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "never prompt; use the largest detected rack")

	return cmd
}

// runArrange executes the full pipeline with interactive trimmings: a
// rack picker when the proposal is ambiguous and a spinner while specs
// resolve.
func (c *CLI) runArrange(ctx context.Context, opts pipeline.Options, output string, asJSON, noCache, noInput bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	products, summary, err := runner.Ingest(ctx, opts)
	if err != nil {
		return err
	}

	if opts.Capacity == 0 && len(summary.Enclosures) > 0 {
		if len(summary.Enclosures) > 1 && !noInput {
			chosen, err := pickEnclosure(summary.Enclosures)
			if err != nil {
				return err
			}
			if chosen != nil {
				opts.Capacity = chosen.SizeU
				printInfo("Planning for the %s rack",
					StyleHighlight.Render(fmt.Sprintf("%dU %s", chosen.SizeU, chosen.Kind)))
			}
		}
		if opts.Capacity == 0 {
			printInfo("Using detected rack size: %s",
				StyleHighlight.Render(fmt.Sprintf("%dU", summary.DefaultSize)))
		}
	}

	prog := newProgress(c.Logger)

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving specs for %d products...", len(products)))
	spin.Start()

	items, skipped, cacheInfo, err := runner.Enrich(ctx, opts, products)
	if err != nil {
		spin.StopWithError("Spec resolution failed")
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Resolved %d of %d products", len(items), len(products)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	plan, err := runner.Arrange(ctx, opts, items, summary)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Planned %d racks for %d items", len(plan.Layouts), len(items)))

	if asJSON {
		return emitPlan(plan, output, true)
	}

	if len(skipped) > 0 {
		printWarning("%d products left out of the rack", len(skipped))
		for _, s := range skipped {
			printDetail("%s: %s", s.Product.Query(), s.Reason)
		}
	}

	printNewline()
	if err := emitPlan(plan, output, false); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Plan saved")
		printFile(output)
	}

	parts := []string{
		fmt.Sprintf("%d products", len(products)),
		fmt.Sprintf("%d items", len(items)),
	}
	if len(skipped) > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", len(skipped)))
	}
	if badge := cacheBadge(cacheInfo); badge != "" {
		parts = append(parts, badge)
	}
	printStats(parts...)

	if output == "" {
		printNewline()
		printNextStep("Save the plan", fmt.Sprintf("rackplan arrange %s --output plan.json", opts.CSVPath))
	}

	return nil
}
