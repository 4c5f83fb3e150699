package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/racklabs/rackplan/pkg/rack"
)

func placedLayout() *rack.Layout {
	return &rack.Layout{
		Capacity: 12,
		Name:     "Smith Residence - AV Rack (12U)",
		Items: []rack.Item{
			{Kind: rack.KindEquipment, Brand: "Denon", Model: "AVR-X3800H", Units: 2, Weight: 24.3, BTU: 410, Quantity: 1, Position: 2},
			{Kind: rack.KindVent, Name: "1U Vent Panel", Units: 1, Quantity: 1, Position: 4},
			{Kind: rack.KindEquipment, Brand: "Araknis", Model: "AN-310-SW-R-24", Units: 1, Weight: 7.5, BTU: 120, Quantity: 1, Position: 5},
		},
	}
}

func TestUnitRange(t *testing.T) {
	tests := []struct {
		name string
		item rack.Item
		want string
	}{
		{"single unit", rack.Item{Units: 1, Position: 7}, "U07"},
		{"span", rack.Item{Units: 2, Position: 7}, "U07-08"},
		{"tall span", rack.Item{Units: 4, Position: 39}, "U39-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unitRange(tt.item); got != tt.want {
				t.Errorf("unitRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderLayout(t *testing.T) {
	out := renderLayout(placedLayout())

	for _, want := range []string{
		"Smith Residence - AV Rack (12U)",
		"Capacity: 12U",
		"Total Weight: 31.8 lbs",
		"Denon AVR-X3800H",
		"1U Vent Panel",
		"U02-03",
		"U05",
		"24.3 lb",
		"410",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered layout should contain %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "exceed capacity") {
		t.Errorf("layout within capacity should not warn:\n%s", out)
	}
}

func TestRenderLayoutTopDown(t *testing.T) {
	out := renderLayout(placedLayout())

	// The switch sits above the receiver, so it must render first.
	switchAt := strings.Index(out, "Araknis")
	receiverAt := strings.Index(out, "Denon")
	if switchAt == -1 || receiverAt == -1 {
		t.Fatalf("both items should render:\n%s", out)
	}
	if switchAt > receiverAt {
		t.Error("elevation should list the highest position first")
	}
}

func TestRenderLayoutOverflow(t *testing.T) {
	l := &rack.Layout{
		Capacity: 4,
		Strategy: rack.StrategyStack,
		Items: []rack.Item{
			{Kind: rack.KindEquipment, Name: "Amp Stack", Units: 8, Quantity: 1, Position: 1},
		},
	}

	out := renderLayout(l)
	if !strings.Contains(out, "exceed capacity by 4U") {
		t.Errorf("overflowing layout should warn:\n%s", out)
	}
}

func TestRenderLayoutUnnamed(t *testing.T) {
	out := renderLayout(&rack.Layout{Capacity: 42})
	if !strings.Contains(out, "42U Rack") {
		t.Errorf("unnamed layout should fall back to a size title:\n%s", out)
	}
}

func TestRenderPlan(t *testing.T) {
	p := &rack.Plan{
		Project: "Smith Residence",
		Layouts: []*rack.Layout{
			{Capacity: 42, Name: "Smith Residence - AV Rack (42U)"},
			{Capacity: 12, Name: "Smith Residence - Network Rack (12U)"},
		},
	}

	out := renderPlan(p)
	if !strings.Contains(out, "AV Rack (42U)") || !strings.Contains(out, "Network Rack (12U)") {
		t.Errorf("plan render should include every layout:\n%s", out)
	}
}

func TestEmitPlanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	p := &rack.Plan{Project: "Job", Layouts: []*rack.Layout{placedLayout()}}

	if err := emitPlan(p, path, true); err != nil {
		t.Fatalf("emitPlan: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported plan: %v", err)
	}
	if !strings.Contains(string(data), `"project": "Job"`) {
		t.Errorf("exported plan should carry the project name:\n%s", data)
	}
}
