package proposal

import "strings"

// Product is a line item read from a client proposal export. It carries
// whatever the export knew about the product; physical specs (units,
// weight, BTU) come later from the catalog.
type Product struct {
	// Name is the display name from the export. For part-number based
	// exports this is the part number itself.
	Name string `json:"name"`

	// Brand and Model identify the product for catalog lookups. Brand may
	// be empty when the export only carries part numbers.
	Brand string `json:"brand"`
	Model string `json:"model"`

	// PartNumber is set for exports that key items by part number.
	PartNumber string `json:"part_number,omitempty"`

	// Category is the export's own grouping (e.g. "Audio", "Network & WiFi").
	Category string `json:"category"`

	// Quantity is how many of this product the proposal includes.
	Quantity int `json:"quantity"`

	// Location is the install location from the export.
	Location string `json:"location"`

	// System is the subsystem tag from the export, used later to route
	// items between AV and network racks.
	System string `json:"system"`

	// Description is the short description column, when present.
	Description string `json:"description,omitempty"`

	// CalculatedBTU is the export's own BTU figure, when present. Zero
	// means unknown.
	CalculatedBTU float64 `json:"calculated_btu,omitempty"`
}

// Key returns the identity used for consolidation: the part number when
// present, otherwise brand+model. Comparison is case-insensitive.
func (p Product) Key() string {
	if p.PartNumber != "" {
		return strings.ToLower(p.PartNumber)
	}
	return strings.ToLower(p.Brand) + "\x00" + strings.ToLower(p.Model)
}

// Query returns the lookup string for catalog resolution.
func (p Product) Query() string {
	if p.Brand != "" && p.Model != "" {
		return p.Brand + " " + p.Model
	}
	if p.PartNumber != "" {
		return p.PartNumber
	}
	return p.Name
}

// Consolidate merges duplicate products, summing their quantities.
// Proposals often list the same product once per room; the rack only
// cares about totals. Order of first appearance is preserved.
func Consolidate(products []Product) []Product {
	merged := make([]Product, 0, len(products))
	index := make(map[string]int)

	for _, p := range products {
		key := p.Key()
		if i, ok := index[key]; ok {
			merged[i].Quantity += p.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, p)
	}
	return merged
}
