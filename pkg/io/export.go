package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/racklabs/rackplan/pkg/rack"
)

var kindToString = map[rack.Kind]string{
	rack.KindVent:  "vent",
	rack.KindBlank: "blank",
}

type planDocument struct {
	Project  string         `json:"project,omitempty"`
	Layouts  []layoutRecord `json:"layouts"`
	Warnings []string       `json:"warnings,omitempty"`
}

type layoutRecord struct {
	Name           string       `json:"name,omitempty"`
	Capacity       int          `json:"capacity"`
	Strategy       string       `json:"strategy,omitempty"`
	EquipmentUnits int          `json:"equipment_units"`
	FillerUnits    int          `json:"filler_units"`
	UsedUnits      int          `json:"used_units"`
	FreeUnits      int          `json:"free_units"`
	TotalWeight    float64      `json:"total_weight"`
	TotalBTU       float64      `json:"total_btu"`
	Overflow       bool         `json:"overflow,omitempty"`
	Items          []itemRecord `json:"items"`
}

type itemRecord struct {
	Kind      string  `json:"kind,omitempty"`
	Label     string  `json:"label,omitempty"`
	Name      string  `json:"name,omitempty"`
	Brand     string  `json:"brand,omitempty"`
	Model     string  `json:"model,omitempty"`
	Units     int     `json:"units"`
	Weight    float64 `json:"weight,omitempty"`
	BTU       float64 `json:"btu,omitempty"`
	Quantity  *int    `json:"quantity,omitempty"`
	Subsystem string  `json:"subsystem,omitempty"`
	Position  int     `json:"position,omitempty"`
}

// WritePlan encodes an arranged plan as JSON and writes it to w.
// The output includes every layout with its positioned items, filler
// panels included, plus the derived aggregates and an overflow warning
// for each layout that exceeds its capacity. The items inside each
// layout can be re-imported with [ReadItems] for round-trip processing.
func WritePlan(p *rack.Plan, w io.Writer) error {
	out := planDocument{
		Project: p.Project,
		Layouts: make([]layoutRecord, len(p.Layouts)),
	}
	for i, l := range p.Layouts {
		out.Layouts[i] = newLayoutRecord(l)
		if l.Overflows() {
			out.Warnings = append(out.Warnings, overflowWarning(l))
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportPlanFile writes a plan to a JSON file at path.
// This is a convenience wrapper around [WritePlan] for file-based output.
func ExportPlanFile(p *rack.Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePlan(p, f)
}

func newLayoutRecord(l *rack.Layout) layoutRecord {
	rec := layoutRecord{
		Name:           l.Name,
		Capacity:       l.Capacity,
		Strategy:       string(l.Strategy),
		EquipmentUnits: l.EquipmentUnits(),
		FillerUnits:    l.FillerUnits(),
		UsedUnits:      l.UsedUnits(),
		FreeUnits:      l.FreeUnits(),
		TotalWeight:    l.TotalWeight(),
		TotalBTU:       l.TotalBTU(),
		Overflow:       l.Overflows(),
		Items:          make([]itemRecord, len(l.Items)),
	}
	for i, it := range l.Items {
		rec.Items[i] = newItemRecord(it)
	}
	return rec
}

func newItemRecord(it rack.Item) itemRecord {
	rec := itemRecord{
		Kind:      kindToString[it.Kind],
		Label:     it.DisplayName(),
		Name:      it.Name,
		Brand:     it.Brand,
		Model:     it.Model,
		Units:     it.Units,
		Weight:    it.Weight,
		BTU:       it.BTU,
		Subsystem: it.Subsystem,
		Position:  it.Position,
	}
	if it.Quantity > 1 {
		qty := it.Quantity
		rec.Quantity = &qty
	}
	return rec
}

// overflowWarning describes one overfilled layout, e.g.
// "AV Rack (42U): items exceed capacity by 3U".
func overflowWarning(l *rack.Layout) string {
	name := l.Name
	if name == "" {
		name = fmt.Sprintf("%dU rack", l.Capacity)
	}
	return fmt.Sprintf("%s: items exceed capacity by %dU", name, -l.FreeUnits())
}
