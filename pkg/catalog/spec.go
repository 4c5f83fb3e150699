package catalog

// btuPerWatt converts electrical draw to heat output. Catalog rows that
// carry a wattage figure but no BTU rating are converted at this rate.
const btuPerWatt = 3.41

// Spec describes the rack-relevant characteristics of one product:
// how tall it is, how much it weighs, how much heat it puts out, and
// which subsystem it belongs to.
//
// Units may be fractional; half-unit devices exist (rail-mounted
// repeaters, for example). Heights are rounded up to whole units when
// specs are turned into rack items.
type Spec struct {
	Units         float64 `json:"rack_units"`
	Weight        float64 `json:"weight"`
	BTU           float64 `json:"btu"`
	Watts         float64 `json:"watts,omitempty"`
	Subsystem     string  `json:"subsystem,omitempty"`
	RackMountable bool    `json:"is_rack_mountable"`
	Connections   string  `json:"connections,omitempty"`
	Source        string  `json:"source,omitempty"`
}

// EffectiveBTU returns the spec's heat output, deriving it from the
// wattage draw when the catalog row has watts but no BTU figure.
func (s *Spec) EffectiveBTU() float64 {
	if s.BTU > 0 {
		return s.BTU
	}
	if s.Watts > 0 {
		return s.Watts * btuPerWatt
	}
	return 0
}

// Entry is one row of a product catalog: the fields identifying a
// product plus the spec stored for it. Entries are the unit of catalog
// imports.
type Entry struct {
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Name       string `json:"name,omitempty"`
	PartNumber string `json:"part_number,omitempty"`
	Category   string `json:"category,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Spec       Spec   `json:"spec"`
}
