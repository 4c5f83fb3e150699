package rack

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Orchestration defaults.
const (
	// DefaultSplitMargin is the free-unit reserve below which a single
	// rack is abandoned in favor of an AV/network split.
	DefaultSplitMargin = 3
	// DefaultUpgradeCapacity is the rack size a crowded AV rack is
	// promoted to.
	DefaultUpgradeCapacity = 48
	// upgradeHeadroom is the minimum slack the projected AV height must
	// leave before an upgrade is considered unnecessary.
	upgradeHeadroom = 4
)

// Plan is the arranged output for a whole project: one rack, or an AV
// and a network rack when the equipment justifies splitting.
type Plan struct {
	Project string    `json:"project,omitempty"`
	Layouts []*Layout `json:"layouts"`
}

// TotalItems returns the number of placed items across all layouts,
// filler panels included.
func (p *Plan) TotalItems() int {
	total := 0
	for _, l := range p.Layouts {
		total += len(l.Items)
	}
	return total
}

// Overflows reports whether any layout in the plan exceeds its
// capacity.
func (p *Plan) Overflows() bool {
	for _, l := range p.Layouts {
		if l.Overflows() {
			return true
		}
	}
	return false
}

// PlanOptions control multi-rack orchestration. The zero value arranges
// a single default-size rack and splits automatically when the
// equipment would crowd it.
type PlanOptions struct {
	// Project labels the plan and its layouts.
	Project string
	// Capacity is the rack size in units. Zero selects
	// [DefaultCapacity].
	Capacity int
	// AVCapacity overrides Capacity for the AV rack after a split,
	// typically from enclosure detection. Zero falls back to Capacity.
	AVCapacity int
	// NetworkCapacity overrides Capacity for the network rack after a
	// split. Zero falls back to Capacity.
	NetworkCapacity int
	// SplitMargin is the free-unit reserve used by the automatic split
	// decision. Zero selects [DefaultSplitMargin].
	SplitMargin int
	// ForceSplit always produces separate AV and network racks.
	ForceSplit bool
	// NoSplit keeps everything in a single rack regardless of fit. It
	// wins over ForceSplit.
	NoSplit bool
	// UpgradeCapacity is the size a crowded AV rack grows to. Zero
	// selects [DefaultUpgradeCapacity].
	UpgradeCapacity int
	// Splitter classifies equipment after a split decision. Nil selects
	// [DefaultSplitter].
	Splitter *Splitter
	// Arrange tunes the per-rack arrangement geometry.
	Arrange Options
}

// withDefaults fills unset fields with the orchestration defaults.
func (o PlanOptions) withDefaults() PlanOptions {
	if o.Capacity == 0 {
		o.Capacity = DefaultCapacity
	}
	if o.SplitMargin <= 0 {
		o.SplitMargin = DefaultSplitMargin
	}
	if o.UpgradeCapacity <= 0 {
		o.UpgradeCapacity = DefaultUpgradeCapacity
	}
	if o.Splitter == nil {
		o.Splitter = DefaultSplitter
	}
	return o
}

// BuildPlan arranges a full project. Quantities are expanded first, so
// the input may still carry multi-quantity items. A single rack is kept
// when the equipment fits with [PlanOptions.SplitMargin] units to
// spare; otherwise (or when forced) the items are classified into AV
// and network groups and each non-empty group gets its own rack.
//
// A crowded AV group is promoted to a larger rack when its projected
// height, equipment plus roughly one spacer per two items, leaves less
// than four units of headroom. The network rack keeps its configured
// size.
//
// The groups are arranged concurrently; [Arrange] is stateless so the
// layouts are identical to sequential runs. The input slice is never
// modified.
func BuildPlan(items []Item, opts PlanOptions) (*Plan, error) {
	opts = opts.withDefaults()
	if opts.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, opts.Capacity)
	}

	expanded := Expand(items)

	split := false
	switch {
	case opts.NoSplit:
	case opts.ForceSplit:
		split = true
	default:
		split = NeedsSplit(expanded, opts.Capacity, opts.SplitMargin)
	}

	if !split {
		layout, err := Arrange(expanded, opts.Capacity, opts.Arrange)
		if err != nil {
			return nil, err
		}
		layout.Name = opts.Project
		return &Plan{Project: opts.Project, Layouts: []*Layout{layout}}, nil
	}

	av, network := opts.Splitter.Split(expanded)

	avCapacity := opts.AVCapacity
	if avCapacity <= 0 {
		avCapacity = opts.Capacity
	}
	networkCapacity := opts.NetworkCapacity
	if networkCapacity <= 0 {
		networkCapacity = opts.Capacity
	}

	if projectedUnits(av) > avCapacity-upgradeHeadroom && avCapacity < opts.UpgradeCapacity {
		avCapacity = opts.UpgradeCapacity
	}

	var avLayout, networkLayout *Layout
	var g errgroup.Group
	if len(av) > 0 {
		g.Go(func() error {
			var err error
			avLayout, err = Arrange(av, avCapacity, opts.Arrange)
			if err != nil {
				return err
			}
			avLayout.Name = groupName(opts.Project, "AV Rack", avCapacity)
			return nil
		})
	}
	if len(network) > 0 {
		g.Go(func() error {
			var err error
			networkLayout, err = Arrange(network, networkCapacity, opts.Arrange)
			if err != nil {
				return err
			}
			networkLayout.Name = groupName(opts.Project, "Network Rack", networkCapacity)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := &Plan{Project: opts.Project}
	if avLayout != nil {
		plan.Layouts = append(plan.Layouts, avLayout)
	}
	if networkLayout != nil {
		plan.Layouts = append(plan.Layouts, networkLayout)
	}
	return plan, nil
}

// projectedUnits estimates the arranged height of a group: its
// equipment units plus roughly one spacer for every two items.
func projectedUnits(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Units
	}
	return total + len(items)/2
}

// groupName labels a split rack, e.g. "Smith Residence - AV Rack (42U)".
func groupName(project, group string, capacity int) string {
	if project == "" {
		return fmt.Sprintf("%s (%dU)", group, capacity)
	}
	return fmt.Sprintf("%s - %s (%dU)", project, group, capacity)
}
