package rack

import "strings"

// Default keyword lists for classifying equipment into AV and network
// groups when no subsystem tag is present. Brand keywords match the
// Brand field; model keywords match both Model and Name.
var (
	defaultNetworkBrands = []string{"ubiquiti", "pakedge", "araknis", "cisco", "netgear", "access networks"}
	defaultNetworkModels = []string{"usw-", "udm-", "uap-", "an-", "ss42", "switch", "router", "gateway"}

	defaultAVBrands = []string{
		"savant", "lutron", "sonance", "james", "anthem", "marantz", "denon",
		"crown", "bowers", "b&k", "b & k", "sonos", "control4",
	}
	defaultAVModels = []string{
		"pav-", "ssc-", "svr-", "rck-", "rmb-", "cli-", "pkg-", "hqp", "hqr",
		"amp", "receiver", "processor",
	}
)

// Splitter classifies equipment into a primary (AV) and secondary
// (network) group. Classification checks the Subsystem tag first and
// falls back to brand and model keyword matching. Items matching
// neither group land in the primary group, which also collects power
// conditioning and miscellaneous gear.
//
// The zero value is not usable; call [NewSplitter] or use
// [DefaultSplitter].
type Splitter struct {
	NetworkBrands []string
	NetworkModels []string
	AVBrands      []string
	AVModels      []string
}

// NewSplitter returns a Splitter with the default keyword lists.
// Callers may replace any list before use, e.g. from configuration.
func NewSplitter() *Splitter {
	return &Splitter{
		NetworkBrands: defaultNetworkBrands,
		NetworkModels: defaultNetworkModels,
		AVBrands:      defaultAVBrands,
		AVModels:      defaultAVModels,
	}
}

// DefaultSplitter classifies with the built-in keyword lists.
var DefaultSplitter = NewSplitter()

// Split divides items into the primary (AV) and secondary (network)
// groups. Order within each group follows input order and the input
// slice is never modified. Either group may come back empty; splitting
// never fails.
//
// Per-item precedence:
//  1. Subsystem tag containing "network" or "net" selects the network
//     group; "av", "audio" or "video" selects the AV group.
//  2. Otherwise brand/model keywords decide. An item matching network
//     keywords but no AV keywords goes to the network group.
//  3. Everything else goes to the AV group.
func (s *Splitter) Split(items []Item) (av, network []Item) {
	for _, it := range items {
		if s.isNetwork(it) {
			network = append(network, it)
		} else {
			av = append(av, it)
		}
	}
	return av, network
}

// isNetwork reports whether the item belongs in the network group.
func (s *Splitter) isNetwork(it Item) bool {
	subsystem := strings.ToLower(it.Subsystem)
	if subsystem != "" {
		if strings.Contains(subsystem, "network") || strings.Contains(subsystem, "net") {
			return true
		}
		if strings.Contains(subsystem, "av") || strings.Contains(subsystem, "audio") || strings.Contains(subsystem, "video") {
			return false
		}
	}

	brand := strings.ToLower(it.Brand)
	model := strings.ToLower(it.Model)
	name := strings.ToLower(it.Name)

	isNetwork := containsAny(brand, s.NetworkBrands) ||
		containsAny(model, s.NetworkModels) ||
		containsAny(name, s.NetworkModels)

	isAV := containsAny(brand, s.AVBrands) ||
		containsAny(model, s.AVModels) ||
		containsAny(name, s.AVModels)

	// Ambiguous items stay in the AV group, the more common case.
	return isNetwork && !isAV
}

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// NeedsSplit reports whether the combined equipment height justifies
// splitting into separate AV and network racks. A margin of free units
// is reserved so a single rack is only kept when it closes comfortably.
func NeedsSplit(items []Item, capacity, margin int) bool {
	total := 0
	for _, it := range items {
		total += it.Units
	}
	return total > capacity-margin
}
