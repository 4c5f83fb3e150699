package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/racklabs/rackplan/pkg/cache"
	rackio "github.com/racklabs/rackplan/pkg/io"
	"github.com/racklabs/rackplan/pkg/pipeline"
	"github.com/racklabs/rackplan/pkg/proposal"
)

// itemsCommand creates the items command for arranging a prepared list.
func (c *CLI) itemsCommand() *cobra.Command {
	var (
		output string
		asJSON bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "items <items.json>",
		Short: "Arrange an already-resolved equipment list",
		Long: `Arrange equipment whose rack dimensions are already known, skipping
proposal ingestion and spec resolution. The input is the same JSON
document the API accepts:

  {"items": [{"label": "Denon AVR", "units": 2, "weight": 24.3}]}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runItems(cmd.Context(), args[0], opts, output, asJSON)
		},
	}

	cmd.Flags().StringVarP(&opts.Project, "project", "p", "",
		`project name for the plan (default "`+pipeline.DefaultProject+`")`)
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "rack size in units")
	cmd.Flags().IntVar(&opts.Margin, "margin", 0, "free units to reserve before splitting into two racks")
	cmd.Flags().BoolVar(&opts.ForceSplit, "split", false, "always split into AV and network racks")
	cmd.Flags().BoolVar(&opts.NoSplit, "no-split", false, "never split, even when the equipment does not fit")
	cmd.MarkFlagsMutuallyExclusive("split", "no-split")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the plan as JSON to a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON instead of an elevation")

	return cmd
}

// runItems arranges a prepared item list. No catalog, cache, or
// enclosure detection is involved, so the runner is a bare one.
func (c *CLI) runItems(ctx context.Context, input string, opts pipeline.Options, output string, asJSON bool) error {
	items, err := rackio.ReadItemsFile(input)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(pipeline.Sources{}, cache.NewNullCache(), nil, c.Logger)
	runner.Splitter = c.cfg.Splitter()
	defer runner.Close()

	plan, err := runner.Arrange(ctx, opts, items, proposal.Summary{})
	if err != nil {
		return err
	}

	if asJSON {
		return emitPlan(plan, output, true)
	}

	if err := emitPlan(plan, output, false); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Plan saved")
		printFile(output)
	}
	printStats(fmt.Sprintf("%d items", len(items)), fmt.Sprintf("%d racks", len(plan.Layouts)))

	return nil
}
