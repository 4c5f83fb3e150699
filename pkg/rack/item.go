package rack

import "fmt"

// Kind distinguishes equipment from the filler panels inserted during
// arrangement.
type Kind int

const (
	// KindEquipment represents a real device from the proposal.
	KindEquipment Kind = iota
	// KindVent represents a ventilation panel inserted for cooling.
	KindVent
	// KindBlank represents a blank filler panel inserted for spacing.
	KindBlank
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEquipment:
		return "equipment"
	case KindVent:
		return "vent"
	case KindBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Filler panel weights in pounds. Vent panels weigh a quarter pound per
// unit of height, blank panels the same.
const (
	ventWeightPerUnit  = 0.25
	blankWeightPerUnit = 0.25
)

// Item is a single entry in a rack: either a piece of equipment or a
// filler panel (vent or blank). Equipment items come from proposals and
// catalogs; filler items are created by the arrangement strategies.
//
// Position is 1-based and refers to the lowest rack unit the item
// occupies (1 = bottom of the rack). A Position of 0 means the item has
// not been placed yet. Items are plain values: copying an Item copies
// all of its fields.
type Item struct {
	Kind      Kind    `json:"kind"`
	Name      string  `json:"name,omitempty"`
	Brand     string  `json:"brand,omitempty"`
	Model     string  `json:"model,omitempty"`
	Units     int     `json:"units"`
	Weight    float64 `json:"weight,omitempty"`
	BTU       float64 `json:"btu,omitempty"`
	Quantity  int     `json:"quantity,omitempty"`
	Subsystem string  `json:"subsystem,omitempty"`
	Position  int     `json:"position,omitempty"`
}

// IsEquipment reports whether the item is real equipment rather than a
// filler panel.
func (it Item) IsEquipment() bool { return it.Kind == KindEquipment }

// Top returns the highest rack unit the item occupies. For an unplaced
// item this is not meaningful.
func (it Item) Top() int { return it.Position + it.Units - 1 }

// DisplayName returns a human-readable label for the item. Equipment
// items are labeled "Brand Model", falling back to Name when both are
// empty. Filler panels are labeled by their size and kind.
func (it Item) DisplayName() string {
	switch it.Kind {
	case KindVent:
		return fmt.Sprintf("%dU Vent Panel", it.Units)
	case KindBlank:
		return fmt.Sprintf("%dU Blank Panel", it.Units)
	default:
		name := it.Brand
		if it.Model != "" {
			if name != "" {
				name += " "
			}
			name += it.Model
		}
		if name == "" {
			name = it.Name
		}
		return name
	}
}

// NewVent creates an unplaced vent panel of the given height. Heights
// below one unit are clamped to one.
func NewVent(units int) Item {
	if units < 1 {
		units = 1
	}
	return Item{
		Kind:     KindVent,
		Name:     fmt.Sprintf("%dU Vent Panel", units),
		Units:    units,
		Weight:   ventWeightPerUnit * float64(units),
		Quantity: 1,
	}
}

// NewBlank creates an unplaced blank panel of the given height. Heights
// below one unit are clamped to one.
func NewBlank(units int) Item {
	if units < 1 {
		units = 1
	}
	return Item{
		Kind:     KindBlank,
		Name:     fmt.Sprintf("%dU Blank Panel", units),
		Units:    units,
		Weight:   blankWeightPerUnit * float64(units),
		Quantity: 1,
	}
}
