package rack

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

// sampleEquipment is a typical small install: 11U of gear for a 42U
// rack, which lands in sparse territory.
func sampleEquipment() []Item {
	return []Item{
		{Kind: KindEquipment, Name: "Savant Host", Brand: "Savant", Model: "SVR-5200S-00", Units: 2, Weight: 15, BTU: 200},
		{Kind: KindEquipment, Name: "WattBox Power", Brand: "WattBox", Model: "WB-800-IPVM-12", Units: 2, Weight: 12, BTU: 50},
		{Kind: KindEquipment, Name: "AV Receiver", Brand: "Marantz", Model: "SR6015", Units: 3, Weight: 25, BTU: 400},
		{Kind: KindEquipment, Name: "Network Switch", Brand: "Araknis", Model: "AN-110-SW-R-24", Units: 1, Weight: 5, BTU: 30},
		{Kind: KindEquipment, Name: "Subwoofer Amp", Brand: "B&K", Model: "SA250 MK2", Units: 2, Weight: 20, BTU: 800},
		{Kind: KindEquipment, Name: "MOTU Switch", Brand: "MOTU", Model: "AVB SWITCH", Units: 1, Weight: 3, BTU: 20},
	}
}

func TestArrangeInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -5} {
		_, err := Arrange(sampleEquipment(), capacity, Options{})
		if !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("Arrange(capacity=%d) error = %v, want ErrInvalidCapacity", capacity, err)
		}
	}
}

func TestArrangeEmpty(t *testing.T) {
	layout, err := Arrange(nil, 42, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Capacity != 42 {
		t.Errorf("Capacity = %d, want 42", layout.Capacity)
	}
	if len(layout.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(layout.Items))
	}
	if layout.FreeUnits() != 42 {
		t.Errorf("FreeUnits() = %d, want 42", layout.FreeUnits())
	}
}

func TestArrangeSparse(t *testing.T) {
	layout, err := Arrange(sampleEquipment(), 42, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategySparse {
		t.Fatalf("Strategy = %q, want %q", layout.Strategy, StrategySparse)
	}
	if err := layout.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := layout.EquipmentUnits(); got != 11 {
		t.Errorf("EquipmentUnits() = %d, want 11", got)
	}

	// Equipment spreads onto ideal slot boundaries, heaviest first.
	equipment := layout.Equipment()
	if len(equipment) != 6 {
		t.Fatalf("len(Equipment()) = %d, want 6", len(equipment))
	}
	wantPositions := []struct {
		model    string
		position int
	}{
		{"SR6015", 2},
		{"SA250 MK2", 8},
		{"SVR-5200S-00", 15},
		{"WB-800-IPVM-12", 22},
		{"AN-110-SW-R-24", 28},
		{"AVB SWITCH", 35},
	}
	for i, want := range wantPositions {
		if equipment[i].Model != want.model {
			t.Errorf("equipment[%d].Model = %q, want %q", i, equipment[i].Model, want.model)
		}
		if equipment[i].Position != want.position {
			t.Errorf("equipment[%d] (%s) Position = %d, want %d", i, want.model, equipment[i].Position, want.position)
		}
	}

	// Sparse blanks off everything up to the very top.
	if got := layout.FreeUnits(); got != 1 {
		t.Errorf("FreeUnits() = %d, want 1 (only the bottom buffer)", got)
	}
	for _, it := range layout.Items {
		if it.Top() > layout.Capacity {
			t.Errorf("%q ends at U%d, beyond capacity %d", it.DisplayName(), it.Top(), layout.Capacity)
		}
	}
}

func TestArrangeTight(t *testing.T) {
	// 36U of cool-running gear in a 42U rack: fill ratio 0.9.
	var equipment []Item
	for i := 0; i < 9; i++ {
		equipment = append(equipment, Item{
			Kind:   KindEquipment,
			Name:   "Amp",
			Units:  4,
			Weight: float64(9 - i),
			BTU:    50,
		})
	}

	layout, err := Arrange(equipment, 42, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategyTight {
		t.Fatalf("Strategy = %q, want %q", layout.Strategy, StrategyTight)
	}
	if err := layout.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
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
	// Interval placement yields a vent after every third item.
	if vents != 2 {
		t.Errorf("vents = %d, want 2", vents)
	}
	if blanks != 0 {
		t.Errorf("blanks = %d, want 0 (tight packing never uses blanks)", blanks)
	}
	if got := layout.FreeUnits(); got != 4 {
		t.Errorf("FreeUnits() = %d, want 4", got)
	}
}

func TestArrangeTightHotItems(t *testing.T) {
	// Three of the heaviest items run hot; their gaps get vents first.
	var equipment []Item
	for i := 0; i < 9; i++ {
		btu := 50.0
		if i < 3 {
			btu = 300
		}
		equipment = append(equipment, Item{
			Kind:   KindEquipment,
			Name:   "Amp",
			Units:  4,
			Weight: float64(9 - i),
			BTU:    btu,
		})
	}

	layout, err := Arrange(equipment, 42, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategyTight {
		t.Fatalf("Strategy = %q, want %q", layout.Strategy, StrategyTight)
	}

	// Vents after the three hot items plus one interval vent.
	var ventPositions []int
	for _, it := range layout.Items {
		if it.Kind == KindVent {
			ventPositions = append(ventPositions, it.Position)
		}
	}
	want := []int{6, 11, 16, 29}
	if !reflect.DeepEqual(ventPositions, want) {
		t.Errorf("vent positions = %v, want %v", ventPositions, want)
	}
	if err := layout.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestArrangeModerate(t *testing.T) {
	// 24U in a 42U rack: fill ratio 0.6.
	var equipment []Item
	for i := 0; i < 6; i++ {
		equipment = append(equipment, Item{
			Kind:   KindEquipment,
			Name:   "Amp",
			Units:  4,
			Weight: float64(6 - i),
			BTU:    50,
		})
	}

	layout, err := Arrange(equipment, 42, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategyModerate {
		t.Fatalf("Strategy = %q, want %q", layout.Strategy, StrategyModerate)
	}
	if err := layout.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	vents, blanks := 0, 0
	var topBlank int
	for _, it := range layout.Items {
		switch it.Kind {
		case KindVent:
			vents++
		case KindBlank:
			blanks++
			if it.Position > topBlank {
				topBlank = it.Position
			}
		}
	}
	// A vent between each pair, the leftover budget blanked on top.
	if vents != 5 {
		t.Errorf("vents = %d, want 5", vents)
	}
	if blanks != 11 {
		t.Errorf("blanks = %d, want 11", blanks)
	}
	if topBlank != 41 {
		t.Errorf("topmost blank at U%d, want U41", topBlank)
	}
	if got := layout.FreeUnits(); got != 2 {
		t.Errorf("FreeUnits() = %d, want 2 (both buffers)", got)
	}
}

func TestArrangeOverflow(t *testing.T) {
	equipment := []Item{
		{Kind: KindEquipment, Name: "Big Amp", Units: 6, Weight: 40},
		{Kind: KindEquipment, Name: "Bigger Amp", Units: 6, Weight: 50},
	}

	layout, err := Arrange(equipment, 10, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v, overflow must not fail", err)
	}
	if layout.Strategy != StrategyStack {
		t.Errorf("Strategy = %q, want %q", layout.Strategy, StrategyStack)
	}
	if got := layout.FreeUnits(); got != -2 {
		t.Errorf("FreeUnits() = %d, want -2", got)
	}
	if !layout.Overflows() {
		t.Error("Overflows() = false, want true")
	}
	// Overflowing layouts still obey ordering and non-overlap.
	if err := layout.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if layout.Items[0].Name != "Bigger Amp" || layout.Items[0].Position != 2 {
		t.Errorf("heaviest item = %q at U%d, want \"Bigger Amp\" at U2", layout.Items[0].Name, layout.Items[0].Position)
	}
}

func TestArrangeExactFit(t *testing.T) {
	// Equipment exactly fills the available space: plain stack, no filler.
	equipment := []Item{
		{Kind: KindEquipment, Name: "A", Units: 6, Weight: 10},
		{Kind: KindEquipment, Name: "B", Units: 4, Weight: 5},
	}

	layout, err := Arrange(equipment, 12, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategyStack {
		t.Errorf("Strategy = %q, want %q", layout.Strategy, StrategyStack)
	}
	if got := layout.FillerUnits(); got != 0 {
		t.Errorf("FillerUnits() = %d, want 0", got)
	}
	if got := layout.FreeUnits(); got != 2 {
		t.Errorf("FreeUnits() = %d, want 2", got)
	}
}

func TestArrangeStableSort(t *testing.T) {
	equipment := []Item{
		{Kind: KindEquipment, Name: "First", Units: 1, Weight: 5},
		{Kind: KindEquipment, Name: "Second", Units: 1, Weight: 5},
		{Kind: KindEquipment, Name: "Heavy", Units: 1, Weight: 9},
	}

	layout, err := Arrange(equipment, 42, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	got := make([]string, 0, 3)
	for _, it := range layout.Equipment() {
		got = append(got, it.Name)
	}
	want := []string{"Heavy", "First", "Second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("equipment order = %v, want %v (equal weights keep input order)", got, want)
	}
}

func TestArrangeDeterministic(t *testing.T) {
	first, err := Arrange(sampleEquipment(), 42, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	second, err := Arrange(sampleEquipment(), 42, Options{})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different layouts")
	}
}

func TestArrangeDoesNotModifyInput(t *testing.T) {
	equipment := sampleEquipment()
	original := slices.Clone(equipment)

	if _, err := Arrange(equipment, 42, Options{}); err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if !reflect.DeepEqual(equipment, original) {
		t.Error("Arrange() modified its input slice")
	}
}

func TestArrangeCustomBuffers(t *testing.T) {
	equipment := []Item{
		{Kind: KindEquipment, Name: "A", Units: 4, Weight: 10},
		{Kind: KindEquipment, Name: "B", Units: 4, Weight: 5},
	}

	// Buffers of 2 shift the first position to U3 and shrink the
	// available space to 8, forcing a plain stack.
	layout, err := Arrange(equipment, 12, Options{TopBuffer: 2, BottomBuffer: 2})
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}
	if layout.Strategy != StrategyStack {
		t.Errorf("Strategy = %q, want %q", layout.Strategy, StrategyStack)
	}
	if layout.Items[0].Position != 3 {
		t.Errorf("first position = %d, want 3", layout.Items[0].Position)
	}
}

func TestArrangeNonOverlap(t *testing.T) {
	// Every strategy must produce non-overlapping unit ranges.
	cases := []struct {
		name     string
		capacity int
		units    []int
		btus     []float64
	}{
		{"sparse", 42, []int{2, 2, 3, 1, 2, 1}, []float64{200, 50, 400, 30, 800, 20}},
		{"moderate", 42, []int{4, 4, 4, 4, 4, 4}, []float64{50, 50, 50, 50, 50, 50}},
		{"tight", 42, []int{4, 4, 4, 4, 4, 4, 4, 4, 4}, []float64{300, 300, 50, 50, 50, 50, 50, 50, 50}},
		{"stack", 10, []int{6, 6}, []float64{0, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var equipment []Item
			for i, u := range tc.units {
				equipment = append(equipment, Item{
					Kind:   KindEquipment,
					Name:   "Item",
					Units:  u,
					Weight: float64(len(tc.units) - i),
					BTU:    tc.btus[i],
				})
			}
			layout, err := Arrange(equipment, tc.capacity, Options{})
			if err != nil {
				t.Fatalf("Arrange() error = %v", err)
			}
			if err := layout.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}
