package catalog

import (
	"math"

	"github.com/racklabs/rackplan/pkg/proposal"
	"github.com/racklabs/rackplan/pkg/rack"
)

// Skip records a product left out of the rack and why. Skips are part of
// the plan output: an installer reviewing the layout needs to know what
// was excluded, not just what made it in.
type Skip struct {
	Product proposal.Product `json:"product"`
	Reason  string           `json:"reason"`
}

// BuildItems turns resolved products into rack items. Products whose
// spec is missing, marked not rack-mountable, or zero height become
// skips instead. Fractional heights round up: a half-unit device still
// blocks a full slot.
//
// The specs map is keyed by [Query.Key], as returned by
// [Resolver.ResolveAll].
func BuildItems(products []proposal.Product, specs map[string]*Spec) ([]rack.Item, []Skip) {
	items := make([]rack.Item, 0, len(products))
	var skips []Skip

	for _, p := range products {
		spec := specs[QueryFromProduct(p).Key()]
		if spec == nil {
			skips = append(skips, Skip{Product: p, Reason: "no spec resolved"})
			continue
		}
		if !spec.RackMountable {
			skips = append(skips, Skip{Product: p, Reason: "not rack-mountable"})
			continue
		}

		units := 0
		if spec.Units > 0 {
			units = int(math.Ceil(spec.Units))
		}
		if units == 0 {
			skips = append(skips, Skip{Product: p, Reason: "zero rack units"})
			continue
		}

		btu := spec.EffectiveBTU()
		if btu == 0 {
			btu = p.CalculatedBTU
		}

		items = append(items, rack.Item{
			Kind:      rack.KindEquipment,
			Name:      p.Name,
			Brand:     p.Brand,
			Model:     DisplayModel(p.Model),
			Units:     units,
			Weight:    spec.Weight,
			BTU:       btu,
			Quantity:  p.Quantity,
			Subsystem: spec.Subsystem,
		})
	}
	return items, skips
}
