// Package rack arranges AV and network equipment into equipment racks.
//
// # Overview
//
// Rackplan turns a pile of equipment into a physically sensible rack
// elevation: heavy gear sinks to the bottom, hot gear gets ventilation,
// and the leftover space is dressed with vent and blank panels the way
// a professional integrator would finish a rack. This package is the
// deterministic core of that process; it performs no I/O and keeps no
// state between calls.
//
// # Basic Usage
//
// Describe equipment as [Item] values, expand quantities, and arrange
// them into a rack of a given capacity:
//
//	items := []rack.Item{
//	    {Name: "AV Receiver", Brand: "Marantz", Model: "SR6015", Units: 3, Weight: 25, BTU: 400},
//	    {Name: "Switch", Brand: "Araknis", Model: "AN-110-SW-R-24", Units: 1, Weight: 5, BTU: 30, Quantity: 2},
//	}
//	layout, err := rack.Arrange(rack.Expand(items), 42, rack.Options{})
//
// The returned [Layout] carries every item with a 1-based Position
// (1 = bottom of the rack) and derives its aggregate metrics on demand:
// [Layout.EquipmentUnits], [Layout.FreeUnits], [Layout.TotalWeight],
// [Layout.TotalBTU].
//
// # Packing Strategies
//
// The arrangement adapts to how full the rack is. With the buffers
// subtracted, the ratio of equipment units to available units selects
// one of three strategies:
//
//   - [StrategyTight] (fill >= 85%): single vents squeezed into the
//     gaps after hot equipment, then at regular intervals.
//   - [StrategyModerate] (fill >= 50%): a vent between each pair of
//     items, leftover space blanked off at the top.
//   - [StrategySparse] (below 50%): equipment spread evenly through the
//     rack with vents near gear and blanks filling the gaps.
//
// When no spacer room remains at all, equipment is simply stacked from
// the bottom ([StrategyStack]).
//
// # Overflow
//
// Equipment that does not fit is still placed. The layout reports the
// condition through a negative [Layout.FreeUnits] so callers can warn
// the user or rerun with a bigger rack; it is deliberately not an
// error. The only fatal input is a non-positive capacity
// ([ErrInvalidCapacity]).
//
// # Multi-Rack Plans
//
// [BuildPlan] orchestrates whole projects: it expands quantities,
// decides whether the equipment needs separate AV and network racks
// (see [Splitter]), promotes a crowded AV rack to a larger size, and
// arranges each group. The result is a [Plan] holding one layout per
// rack.
//
// # Concurrency
//
// Arrangement is pure: inputs are never modified and identical inputs
// produce identical layouts. Callers may arrange any number of racks
// concurrently; [BuildPlan] does exactly that for the AV and network
// groups.
package rack
