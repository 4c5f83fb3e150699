package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/racklabs/rackplan/pkg/rack"
)

// placedLayout builds a small hand-positioned layout: an AVR at the
// bottom, a vent above it, then a switch and a blank cap.
func placedLayout() *rack.Layout {
	return &rack.Layout{
		Capacity: 12,
		Name:     "Test Rack (12U)",
		Strategy: rack.StrategyModerate,
		Items: []rack.Item{
			{Kind: rack.KindEquipment, Brand: "Denon", Model: "AVR-X3800H", Units: 2, Weight: 28.2, BTU: 840, Quantity: 1, Position: 1},
			{Kind: rack.KindVent, Name: "1U Vent Panel", Units: 1, Weight: 0.25, Quantity: 1, Position: 3},
			{Kind: rack.KindEquipment, Brand: "Araknis", Model: "AN-310-SW-16", Units: 1, Weight: 8, BTU: 100, Quantity: 1, Subsystem: "Network", Position: 4},
			{Kind: rack.KindBlank, Name: "1U Blank Panel", Units: 1, Weight: 0.25, Quantity: 1, Position: 5},
		},
	}
}

func TestWritePlan(t *testing.T) {
	plan := &rack.Plan{Project: "Smith Residence", Layouts: []*rack.Layout{placedLayout()}}

	var buf bytes.Buffer
	if err := WritePlan(plan, &buf); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}

	var doc planDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	if doc.Project != "Smith Residence" {
		t.Errorf("project = %q, want Smith Residence", doc.Project)
	}
	if len(doc.Layouts) != 1 {
		t.Fatalf("len(layouts) = %d, want 1", len(doc.Layouts))
	}

	l := doc.Layouts[0]
	if l.Capacity != 12 || l.Strategy != "moderate" {
		t.Errorf("layout = %dU/%q, want 12U/moderate", l.Capacity, l.Strategy)
	}
	if l.EquipmentUnits != 3 || l.FillerUnits != 2 || l.UsedUnits != 5 || l.FreeUnits != 7 {
		t.Errorf("aggregates = %d/%d/%d/%d, want 3/2/5/7", l.EquipmentUnits, l.FillerUnits, l.UsedUnits, l.FreeUnits)
	}
	if l.TotalWeight != 36.7 {
		t.Errorf("total_weight = %g, want 36.7", l.TotalWeight)
	}
	if l.TotalBTU != 940 {
		t.Errorf("total_btu = %g, want 940", l.TotalBTU)
	}
	if l.Overflow {
		t.Error("overflow = true, want false")
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", doc.Warnings)
	}

	items := l.Items
	if len(items) != 4 {
		t.Fatalf("len(items) = %d, want 4", len(items))
	}
	if items[0].Kind != "" {
		t.Errorf("equipment kind = %q, want omitted", items[0].Kind)
	}
	if items[1].Kind != "vent" || items[3].Kind != "blank" {
		t.Errorf("filler kinds = %q/%q, want vent/blank", items[1].Kind, items[3].Kind)
	}
	if items[0].Label != "Denon AVR-X3800H" {
		t.Errorf("items[0].Label = %q, want Denon AVR-X3800H", items[0].Label)
	}
	if items[0].Position != 1 || items[2].Position != 4 {
		t.Errorf("positions = %d/%d, want 1/4", items[0].Position, items[2].Position)
	}
	if items[0].Quantity != nil {
		t.Errorf("items[0].Quantity = %d, want omitted for single copies", *items[0].Quantity)
	}
}

func TestWritePlanOverflowWarning(t *testing.T) {
	layout := &rack.Layout{
		Capacity: 2,
		Items: []rack.Item{
			{Kind: rack.KindEquipment, Name: "Amp", Units: 4, Quantity: 1, Position: 1},
		},
	}
	plan := &rack.Plan{Layouts: []*rack.Layout{layout}}

	var buf bytes.Buffer
	if err := WritePlan(plan, &buf); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}

	var doc planDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	if !doc.Layouts[0].Overflow {
		t.Error("overflow = false, want true")
	}
	if doc.Layouts[0].FreeUnits != -2 {
		t.Errorf("free_units = %d, want -2", doc.Layouts[0].FreeUnits)
	}
	if len(doc.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", doc.Warnings)
	}
	// An unnamed layout is identified by its capacity.
	want := "2U rack: items exceed capacity by 2U"
	if doc.Warnings[0] != want {
		t.Errorf("warnings[0] = %q, want %q", doc.Warnings[0], want)
	}
}

func TestWritePlanEmitsQuantityAboveOne(t *testing.T) {
	layout := &rack.Layout{
		Capacity: 12,
		Items: []rack.Item{
			{Kind: rack.KindEquipment, Name: "Shelf Unit", Units: 1, Quantity: 3, Position: 1},
		},
	}

	var buf bytes.Buffer
	if err := WritePlan(&rack.Plan{Layouts: []*rack.Layout{layout}}, &buf); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}

	var doc planDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	qty := doc.Layouts[0].Items[0].Quantity
	if qty == nil || *qty != 3 {
		t.Errorf("quantity = %v, want 3", qty)
	}
}

func TestExportPlanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	plan := &rack.Plan{Project: "Export", Layouts: []*rack.Layout{placedLayout()}}

	if err := ExportPlanFile(plan, path); err != nil {
		t.Fatalf("ExportPlanFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc planDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decoding exported file: %v", err)
	}
	if doc.Project != "Export" || len(doc.Layouts) != 1 {
		t.Errorf("exported doc = %q with %d layouts, want Export with 1", doc.Project, len(doc.Layouts))
	}
}

func TestExportPlanFileBadPath(t *testing.T) {
	err := ExportPlanFile(&rack.Plan{}, filepath.Join(t.TempDir(), "missing", "plan.json"))
	if err == nil {
		t.Fatal("ExportPlanFile() error = nil, want create error")
	}
	if !strings.Contains(err.Error(), "create") {
		t.Errorf("ExportPlanFile() error = %q, want create context", err)
	}
}

// Exported layout items must round-trip through the items format so a
// plan's equipment can be extracted and re-arranged.
func TestWritePlanItemsRoundTrip(t *testing.T) {
	const source = `{"items": [
	  {"brand": "Denon", "model": "AVR-X3800H", "units": 2, "weight": 28.2, "btu": 840, "quantity": 2},
	  {"brand": "Araknis", "model": "AN-310-SW-16", "units": 1, "weight": 8, "btu": 100, "subsystem": "Network"}
	]}`

	items, err := ReadItems(strings.NewReader(source))
	if err != nil {
		t.Fatalf("ReadItems() error = %v", err)
	}
	plan, err := rack.BuildPlan(items, rack.PlanOptions{Capacity: 12, NoSplit: true})
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WritePlan(plan, &buf); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}
	var doc planDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	reencoded, err := json.Marshal(itemsDocument{Items: doc.Layouts[0].Items})
	if err != nil {
		t.Fatal(err)
	}
	back, err := ReadItems(bytes.NewReader(reencoded))
	if err != nil {
		t.Fatalf("ReadItems(exported layout items) error = %v", err)
	}

	equipment := 0
	for _, it := range back {
		if it.IsEquipment() {
			equipment++
		}
	}
	if equipment != 3 {
		t.Errorf("round-tripped equipment count = %d, want 3 (quantity two expands)", equipment)
	}
}
