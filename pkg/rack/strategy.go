package rack

// Heat thresholds in BTU/hr that earn an item a trailing vent.
const (
	tightVentBTU  = 200
	sparseVentBTU = 100
)

// placement carries the geometry shared by every packing strategy.
// All values are in rack units.
type placement struct {
	capacity  int // full rack height
	available int // capacity minus both buffers
	remaining int // available minus total equipment units
	bottom    int // bottom buffer height
	interval  int // equipment items between forced vents in tight packing
}

// strategy places weight-sorted equipment into a rack, inserting filler
// panels. Implementations position every element they return and never
// modify the input slice.
type strategy interface {
	name() Strategy
	place(equipment []Item, p placement) []Item
}

// strategyFor selects the packing strategy for a fill ratio.
func strategyFor(fillRatio float64) strategy {
	switch {
	case fillRatio >= tightFillRatio:
		return tightStrategy{}
	case fillRatio >= moderateFillRatio:
		return moderateStrategy{}
	default:
		return sparseStrategy{}
	}
}

// =============================================================================
// Tight packing
// =============================================================================

// tightStrategy handles nearly full racks. Only single vents are
// inserted, prioritizing the gaps after hot equipment, then gaps at
// regular intervals until the vent budget runs out. At most one vent
// goes into each gap, so the budget is best effort: a rack can end up
// with fewer vents than requested, or with more when many hot items
// each claim one.
type tightStrategy struct{}

func (tightStrategy) name() Strategy { return StrategyTight }

func (tightStrategy) place(equipment []Item, p placement) []Item {
	n := len(equipment)

	minVents := max(1, (n-1)/p.interval)
	ventsToAdd := max(p.remaining, minVents)

	// Hot items claim their gap first. The last item vents into the top
	// buffer anyway, so it never gets one.
	ventAfter := make(map[int]bool, n)
	for i, it := range equipment[:n-1] {
		if it.BTU > tightVentBTU {
			ventAfter[i] = true
		}
	}

	itemsSinceVent := 0
	for i := 0; i < n-1; i++ {
		itemsSinceVent++
		if itemsSinceVent >= p.interval && !ventAfter[i] && len(ventAfter) < ventsToAdd {
			ventAfter[i] = true
			itemsSinceVent = 0
		}
		if ventAfter[i] {
			itemsSinceVent = 0
		}
	}

	items := make([]Item, 0, n+len(ventAfter))
	pos := p.bottom + 1
	for i, it := range equipment {
		it.Position = pos
		items = append(items, it)
		pos += it.Units

		if ventAfter[i] {
			vent := NewVent(1)
			vent.Position = pos
			items = append(items, vent)
			pos++
		}
	}
	return items
}

// =============================================================================
// Moderate packing
// =============================================================================

// moderateStrategy handles half-full racks: one vent between each pair
// of equipment items, capped by the spacer budget, with the leftover
// budget stacked on top as blank panels.
type moderateStrategy struct{}

func (moderateStrategy) name() Strategy { return StrategyModerate }

func (moderateStrategy) place(equipment []Item, p placement) []Item {
	n := len(equipment)

	ventsNeeded := 0
	if n > 1 {
		ventsNeeded = n - 1
	}
	vents := min(ventsNeeded, p.remaining)
	blanks := p.remaining - vents

	items := make([]Item, 0, n+p.remaining)
	pos := p.bottom + 1
	for i, it := range equipment {
		it.Position = pos
		items = append(items, it)
		pos += it.Units

		if i < n-1 && vents > 0 {
			vent := NewVent(1)
			vent.Position = pos
			items = append(items, vent)
			pos++
			vents--
		}
	}

	for ; blanks > 0; blanks-- {
		blank := NewBlank(1)
		blank.Position = pos
		items = append(items, blank)
		pos++
	}
	return items
}

// =============================================================================
// Sparse packing
// =============================================================================

// sparseStrategy handles mostly empty racks, spreading equipment evenly
// so the elevation looks deliberate instead of bottom-heavy. Each item
// starts at its ideal slot boundary, with vents bridging short gaps and
// blanks bridging long ones. Warm items get a trailing vent, and
// everything above the last item is blanked off to the very top.
type sparseStrategy struct{}

func (sparseStrategy) name() Strategy { return StrategySparse }

func (sparseStrategy) place(equipment []Item, p placement) []Item {
	n := len(equipment)
	spacePerSlot := float64(p.available) / float64(n)

	var items []Item
	pos := p.bottom + 1
	for i, it := range equipment {
		idealStart := p.bottom + 1 + int(float64(i)*spacePerSlot)
		for pos < idealStart {
			var spacer Item
			if idealStart-pos <= 2 {
				spacer = NewVent(1)
			} else {
				spacer = NewBlank(1)
			}
			spacer.Position = pos
			items = append(items, spacer)
			pos++
		}

		it.Position = pos
		items = append(items, it)
		pos += it.Units

		if i < n-1 && it.BTU > sparseVentBTU && pos < p.capacity {
			vent := NewVent(1)
			vent.Position = pos
			items = append(items, vent)
			pos++
		}
	}

	for ; pos <= p.capacity; pos++ {
		blank := NewBlank(1)
		blank.Position = pos
		items = append(items, blank)
	}
	return items
}
