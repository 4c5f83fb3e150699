package rack

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidCapacity is returned by [Arrange] and [BuildPlan] when the
// rack capacity is zero or negative. This is the only fatal input for
// arrangement; equipment that does not fit produces an overflowing
// layout instead of an error.
var ErrInvalidCapacity = errors.New("rack capacity must be positive")

// Default arrangement geometry in rack units.
const (
	// DefaultCapacity is the height of a typical floor-standing rack.
	DefaultCapacity = 42
	// DefaultTopBuffer is left empty at the top of the rack.
	DefaultTopBuffer = 1
	// DefaultBottomBuffer is left empty at the bottom of the rack.
	DefaultBottomBuffer = 1
	// DefaultVentInterval is the number of equipment items between
	// forced vents in a tightly packed rack.
	DefaultVentInterval = 3
)

// Fill ratio thresholds selecting the packing strategy.
const (
	tightFillRatio    = 0.85
	moderateFillRatio = 0.5
)

// Options tunes the arrangement geometry. The zero value selects the
// defaults; fields are only honored when positive.
type Options struct {
	// TopBuffer is the number of units left empty at the top.
	TopBuffer int
	// BottomBuffer is the number of units left empty at the bottom.
	BottomBuffer int
	// VentInterval is the number of equipment items between forced
	// vents when the rack is tightly packed.
	VentInterval int
}

// withDefaults fills unset fields with the default geometry.
func (o Options) withDefaults() Options {
	if o.TopBuffer <= 0 {
		o.TopBuffer = DefaultTopBuffer
	}
	if o.BottomBuffer <= 0 {
		o.BottomBuffer = DefaultBottomBuffer
	}
	if o.VentInterval <= 0 {
		o.VentInterval = DefaultVentInterval
	}
	return o
}

// Arrange places equipment into a rack of the given capacity and
// returns the finished layout. Heavier items sink to the bottom (the
// sort is stable, so equal weights keep their input order), buffer
// units stay empty at both ends, and filler panels are inserted by a
// fill-ratio dependent strategy:
//
//   - fill >= 85%: vents squeezed between hot equipment ([StrategyTight])
//   - fill >= 50%: a vent between each pair, blanks on top ([StrategyModerate])
//   - below 50%: equipment spread evenly with blank fill ([StrategySparse])
//
// Equipment is expected to be quantity-expanded beforehand (see
// [Expand]); each element is placed exactly once regardless of its
// Quantity field. Equipment exceeding the available space is still
// placed and reported through [Layout.FreeUnits]; the only error is a
// non-positive capacity.
//
// Arrange never modifies its input and is deterministic: the same
// equipment and capacity always produce the same layout.
func Arrange(equipment []Item, capacity int, opts Options) (*Layout, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	opts = opts.withDefaults()

	layout := &Layout{Capacity: capacity}
	if len(equipment) == 0 {
		return layout, nil
	}

	sorted := slices.Clone(equipment)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	available := capacity - opts.TopBuffer - opts.BottomBuffer
	total := 0
	for _, it := range sorted {
		total += it.Units
	}

	remaining := available - total
	if remaining <= 0 {
		layout.Strategy = StrategyStack
		layout.Items = stackItems(sorted, opts.BottomBuffer)
		return layout, nil
	}

	p := placement{
		capacity:  capacity,
		available: available,
		remaining: remaining,
		bottom:    opts.BottomBuffer,
		interval:  opts.VentInterval,
	}

	strat := strategyFor(float64(total) / float64(available))
	layout.Strategy = strat.name()
	layout.Items = strat.place(sorted, p)
	return layout, nil
}

// stackItems places equipment sequentially from the bottom buffer with
// no filler. Used when no spacer room remains.
func stackItems(equipment []Item, bottom int) []Item {
	items := make([]Item, 0, len(equipment))
	pos := bottom + 1
	for _, it := range equipment {
		it.Position = pos
		items = append(items, it)
		pos += it.Units
	}
	return items
}
