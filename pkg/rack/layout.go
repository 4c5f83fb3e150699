package rack

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnplacedItem is returned by [Layout.Validate] when an item has a
	// position below 1. All items in a finished layout occupy a 1-based
	// slot.
	ErrUnplacedItem = errors.New("item has no valid position")

	// ErrOverlappingItems is returned by [Layout.Validate] when two items
	// claim overlapping unit ranges. Every rack unit holds at most one
	// item.
	ErrOverlappingItems = errors.New("items occupy overlapping rack units")
)

// Strategy identifies the packing strategy used to produce a layout.
type Strategy string

const (
	// StrategyStack places equipment sequentially from the bottom with no
	// filler. Used when no spacer room remains.
	StrategyStack Strategy = "stack"
	// StrategyTight inserts single vents between hot equipment in a
	// nearly full rack.
	StrategyTight Strategy = "tight"
	// StrategyModerate alternates equipment and vents, topping off with
	// blanks.
	StrategyModerate Strategy = "moderate"
	// StrategySparse spreads equipment evenly through the rack with
	// blanks filling the gaps.
	StrategySparse Strategy = "sparse"
)

// Layout is a fully arranged rack: a fixed capacity in rack units and
// the placed items inside it. Layouts are produced by [Arrange] and
// should be treated as immutable afterwards; all aggregate metrics are
// derived from the items on demand.
//
// A layout can legally be overfilled. [Layout.FreeUnits] going negative
// is the overflow signal callers report to the user; it is never an
// error from the arrangement itself.
type Layout struct {
	Capacity int      `json:"capacity"`
	Name     string   `json:"name,omitempty"`
	Strategy Strategy `json:"strategy,omitempty"`
	Items    []Item   `json:"items"`
}

// EquipmentUnits returns the rack units occupied by equipment items.
func (l *Layout) EquipmentUnits() int {
	total := 0
	for _, it := range l.Items {
		if it.IsEquipment() {
			total += it.Units
		}
	}
	return total
}

// FillerUnits returns the rack units occupied by vents and blanks.
func (l *Layout) FillerUnits() int {
	total := 0
	for _, it := range l.Items {
		if !it.IsEquipment() {
			total += it.Units
		}
	}
	return total
}

// UsedUnits returns the rack units occupied by all items.
func (l *Layout) UsedUnits() int {
	total := 0
	for _, it := range l.Items {
		total += it.Units
	}
	return total
}

// FreeUnits returns the unoccupied rack units. A negative value means
// the layout overflows its capacity.
func (l *Layout) FreeUnits() int { return l.Capacity - l.UsedUnits() }

// Overflows reports whether the placed items exceed the rack capacity.
func (l *Layout) Overflows() bool { return l.FreeUnits() < 0 }

// TotalWeight returns the combined weight of all items in pounds,
// including filler panels.
func (l *Layout) TotalWeight() float64 {
	total := 0.0
	for _, it := range l.Items {
		total += it.Weight
	}
	return total
}

// TotalBTU returns the combined heat output of all items.
func (l *Layout) TotalBTU() float64 {
	total := 0.0
	for _, it := range l.Items {
		total += it.BTU
	}
	return total
}

// Equipment returns the equipment items in placement order, excluding
// filler panels. The returned slice is freshly allocated.
func (l *Layout) Equipment() []Item {
	var items []Item
	for _, it := range l.Items {
		if it.IsEquipment() {
			items = append(items, it)
		}
	}
	return items
}

// ItemsTopDown returns all items sorted by position descending, the
// order an elevation view is read in. The layout itself is unchanged.
func (l *Layout) ItemsTopDown() []Item {
	items := slices.Clone(l.Items)
	slices.SortStableFunc(items, func(a, b Item) int { return b.Position - a.Position })
	return items
}

// Validate checks the structural integrity of the layout: every item
// must have a 1-based position and no two items may overlap.
//
// Returns ErrUnplacedItem or ErrOverlappingItems wrapped with the
// offending item's label. Exceeding the capacity is not a validation
// failure; overflow is reported through [Layout.FreeUnits] instead.
func (l *Layout) Validate() error {
	occupied := make(map[int]string, l.UsedUnits())
	for _, it := range l.Items {
		if it.Position < 1 {
			return fmt.Errorf("%q at %d: %w", it.DisplayName(), it.Position, ErrUnplacedItem)
		}
		for u := it.Position; u <= it.Top(); u++ {
			if prev, taken := occupied[u]; taken {
				return fmt.Errorf("%q and %q both claim U%d: %w", prev, it.DisplayName(), u, ErrOverlappingItems)
			}
			occupied[u] = it.DisplayName()
		}
	}
	return nil
}
