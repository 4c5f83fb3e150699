package rack

import "testing"

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		fillRatio float64
		want      Strategy
	}{
		{1.0, StrategyTight},
		{0.85, StrategyTight},
		{0.84, StrategyModerate},
		{0.5, StrategyModerate},
		{0.49, StrategySparse},
		{0.1, StrategySparse},
		{0.0, StrategySparse},
	}

	for _, tt := range tests {
		if got := strategyFor(tt.fillRatio).name(); got != tt.want {
			t.Errorf("strategyFor(%v) = %q, want %q", tt.fillRatio, got, tt.want)
		}
	}
}

func TestTightVentBudgetIsBestEffort(t *testing.T) {
	// Two hot gaps but a spacer budget of one: both hot gaps still get
	// a vent, eating into the top buffer.
	equipment := []Item{
		{Kind: KindEquipment, Name: "Amp A", Units: 3, Weight: 30, BTU: 300},
		{Kind: KindEquipment, Name: "Amp B", Units: 3, Weight: 20, BTU: 300},
		{Kind: KindEquipment, Name: "Amp C", Units: 3, Weight: 10, BTU: 300},
	}

	layout, err := Arrange(equipment, 12, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategyTight {
		t.Fatalf("Strategy = %q, want %q", layout.Strategy, StrategyTight)
	}

	vents := 0
	for _, it := range layout.Items {
		if it.Kind == KindVent {
			vents++
		}
	}
	if vents != 2 {
		t.Errorf("vents = %d, want 2 (one per hot gap)", vents)
	}
	// The rack is packed to the very top but not beyond.
	if got := layout.FreeUnits(); got != 1 {
		t.Errorf("FreeUnits() = %d, want 1", got)
	}
	if err := layout.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestTightSingleItem(t *testing.T) {
	// A single item has no gaps, so no vents fit even though the
	// budget asks for one.
	equipment := []Item{
		{Kind: KindEquipment, Name: "Amp", Units: 9, Weight: 30, BTU: 500},
	}

	layout, err := Arrange(equipment, 12, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategyTight {
		t.Fatalf("Strategy = %q, want %q", layout.Strategy, StrategyTight)
	}
	if got := layout.FillerUnits(); got != 0 {
		t.Errorf("FillerUnits() = %d, want 0", got)
	}
}

func TestModerateSingleItem(t *testing.T) {
	// No pairs means no vents; the whole budget becomes top blanks.
	equipment := []Item{
		{Kind: KindEquipment, Name: "Amp", Units: 6, Weight: 30, BTU: 100},
	}

	layout, err := Arrange(equipment, 12, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategyModerate {
		t.Fatalf("Strategy = %q, want %q", layout.Strategy, StrategyModerate)
	}

	vents, blanks := 0, 0
	for _, it := range layout.Items {
		switch it.Kind {
		case KindVent:
			vents++
		case KindBlank:
			blanks++
		}
	}
	if vents != 0 {
		t.Errorf("vents = %d, want 0", vents)
	}
	if blanks != 4 {
		t.Errorf("blanks = %d, want 4", blanks)
	}
}

func TestSparseWarmItemGetsVent(t *testing.T) {
	equipment := []Item{
		{Kind: KindEquipment, Name: "Warm Amp", Units: 2, Weight: 20, BTU: 150},
		{Kind: KindEquipment, Name: "Cool Switch", Units: 1, Weight: 5, BTU: 30},
	}

	layout, err := Arrange(equipment, 20, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategySparse {
		t.Fatalf("Strategy = %q, want %q", layout.Strategy, StrategySparse)
	}

	// The warm amp sits at U2-3; a trailing vent lands at U4.
	foundVent := false
	for _, it := range layout.Items {
		if it.Kind == KindVent && it.Position == 4 {
			foundVent = true
		}
	}
	if !foundVent {
		t.Error("no vent directly above the warm amp")
	}
}

func TestSparseFillsToTop(t *testing.T) {
	equipment := []Item{
		{Kind: KindEquipment, Name: "Switch", Units: 1, Weight: 5, BTU: 30},
	}

	layout, err := Arrange(equipment, 12, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategySparse {
		t.Fatalf("Strategy = %q, want %q", layout.Strategy, StrategySparse)
	}

	// Sparse blanks every unit above the gear, top buffer included.
	topmost := 0
	for _, it := range layout.Items {
		if it.Top() > topmost {
			topmost = it.Top()
		}
	}
	if topmost != layout.Capacity {
		t.Errorf("topmost occupied unit = %d, want %d", topmost, layout.Capacity)
	}
	if got := layout.FreeUnits(); got != 1 {
		t.Errorf("FreeUnits() = %d, want 1 (only the bottom buffer)", got)
	}
}
