package catalog

import (
	"strings"
	"unicode"

	"github.com/racklabs/rackplan/pkg/proposal"
)

// displayNameOverrides maps opaque part numbers to readable names.
// Keyed by lowercased, trimmed model.
var displayNameOverrides = map[string]string{
	"pkg-macunlimited-3pfl-02": "Savant Pro Host 5200",
	"pkg-macunlimited":         "Savant Pro Host 5200",
	"pkg-s2rem-40":             "Savant Smart Host",
	"pkg-s2rem":                "Savant Smart Host",
	"rck-5000":                 "Savant Rack Mount Kit",
	"ssl-evomace-1yr":          "Savant License (1yr)",
	"ssc-0012":                 "Savant Expansion Module",
}

// DisplayModel returns the human-readable name for a model when an
// override exists, otherwise the model unchanged.
func DisplayModel(model string) string {
	if name, ok := displayNameOverrides[strings.ToLower(strings.TrimSpace(model))]; ok {
		return name
	}
	return model
}

// Location keywords. Items assigned to a room go in local closets, not
// the main rack; items assigned to an equipment area stay.
var (
	equipmentAreaLocations = []string{"equipment closet", "equipment room", "systems:", "mdf", "idf", "rack"}

	roomLocations = []string{
		"kitchen", "den", "suite", "bedroom", "bathroom", "living", "dining",
		"office", "garage", "basement", "attic", "patio", "pool", "theater",
		"media room", "gym", "wine", "laundry", "entry", "foyer", "hallway",
	}
)

// alwaysRackEquipment overrides the room check: these get assigned to
// rooms for logical grouping but physically live in the rack.
var alwaysRackEquipment = []string{
	"amplifier", "amp", "receiver", "avr", "processor", "preamp",
	"sonos amp", "denon", "marantz avr", "anthem", "arcam",
	"sony str", "straz", "yamaha rx", "onkyo",
	"pkg-s2rem", "s2rem", "rack mount smart host",
}

// accessoryPatterns match cables, connectors, SFP modules and drives
// that ship alongside rack gear but occupy no rack units themselves.
var accessoryPatterns = []string{
	"uacc-",
	"sfp", "sfp+", "sfp28",
	"-hdd-",
	"uplink",
	"-cm-",
	"rj45-mg",
	"data-sfp",
	"conn-",
	"data-lan",
}

// wifiAPPatterns match access points, which mount on ceilings and walls.
// Patterns with spaces or dashes rely on the model being wrapped in
// spaces before matching.
var wifiAPPatterns = []string{
	"u6-", "u7-",
	"uap-",
	" e7", "-e7",
	"e7 campus",
	"wifi ap", "wi-fi ap",
	"9u1-t310",
	"9u1-t350",
	"9u1-r",
	"t310", "t350", "t610", "t710",
	"901-r",
	"access point",
}

// lutronNonRack matches Lutron lighting devices. They live in electrical
// panels, wall boxes or on DIN rail, never in a 19" rack.
var lutronNonRack = []string{
	"lqse-",
	"pdw-",
	"pd8-", "pd10-",
	"qs-wlb",
	"hqr-",
	"qsps-",
	"hwnw-kp",
	"ebb-",
	"hqp",
	"rrd-pro",
	"rrd-6",
	"rrd-8",
	"rr-aux",
	"rr-main",
	"rr-sel",
	"rrd-w",
}

// nonPhysicalItems match licenses, subscriptions and mounting kits.
var nonPhysicalItems = []string{
	"ssl-",
	"-1yr", "-2yr", "-3yr",
	"license",
	"rck-",
	"ssc-",
	"rmb-",
}

// climateDevices match thermostats and HVAC controllers, which install
// at the HVAC unit or on a wall.
var climateDevices = []string{
	"cli-thfm",
	"cli-8000",
	"thfm",
	"sensor",
	"thermostat",
	"hvac",
}

// rackAccessories match the rack itself and its structure: shelves,
// panels, casters. Structure is not equipment occupying rack units.
var rackAccessories = []string{
	"equipment rack",
	"sa-20",
	"sa-10",
	"shelf",
	"caster",
	"side panel",
	"door",
	"fan kit",
	"sr-cust-",
	"sr-rack",
	"sr-fs-system",
	"-pkg",
	"rack system",
}

// doorbellDevices match Ring and similar door or wall mounted cameras.
var doorbellDevices = []string{
	"ring ",
	"8ssxe",
	"8spps",
	"8sn1s",
	"doorbell",
	"video doorbell",
	"ring alarm",
	"ring cam",
}

// verticalPowerStrips mount on the side of the rack and occupy no front
// rack units.
var verticalPowerStrips = []string{
	"wb-800vps",
	"800vps",
	"vps-ipvm",
	"vertical power",
}

// keepBrands are network equipment makers whose gear is kept once the
// accessory checks above have run.
var keepBrands = []string{"araknis", "ubiquiti", "cisco", "netgear", "pakedge", "access networks", "motu"}

// skipKeywords match in the combined name and category text.
var skipKeywords = []string{
	"pre-wire", "prewire", "pre wire",
	"cable", "wire ", " wire", "wiring",
	"in-wall", "in-ceiling", "in wall", "in ceiling",
	"outdoor speaker", "outdoor monitor",
	"screen", "projector mount", "tv mount",
	"wallplate", "wall plate", "faceplate",
	"keypad", "dimmer",
	"sensor", "slab sensor",
	"back box", "backbox", "junction",
	"allowance", "labor", "installation",
	"ice cable", "ice ", "14-2cs", "16-2cs", "cat 6a", "rg-6",
	"wirepath", "wp-cat", "rj45-",
	"carlon", "sc100a",
	"projector", "vpl-", "vplvw", "epson",
	"severtson", "seymour", "if169", "2f120",
	"isw4", "isw-4",
	"cwm7", "cwm 7", "cwm-7",
	"ccm",
	"am-1",
	"marine",
	"sa63", "sa-63",
	"sa250",
	"triad", "44406", "44408",
	"sonance", "vp64", "vpxt6", "vp-64", "vpxt-6",
	"sst-temp", "sst-",
	"cli-slab", "slab",
	"rd-rd",
	"pmk", "bracket", "mount",
	"iport", "luxe", "wallstation", "lx case",
	"shade", "motorized window",
	"marantz", "sr6015",
	"turntable", "victrola",
	"itp-e",
}

// skipCategories are export categories that never hold rack equipment.
var skipCategories = []string{
	"speakers > in-wall", "speakers > in-ceiling", "speakers > outdoor",
	"projection screens", "mounts", "wire and cable",
	"lighting > keypads", "lighting > dimmers", "lighting > switches",
	"motorized window treatments",
}

// ClearlyNotRackMountable reports whether a proposal line can be skipped
// without consulting any catalog: cables and accessories, wall and
// ceiling mounted devices, room-assigned gear, and the rack structure
// itself. Anything it keeps still goes through spec resolution, which
// has its own mountability verdict.
func ClearlyNotRackMountable(p proposal.Product) bool {
	if p.Model == "" && p.PartNumber == "" {
		return true
	}

	// Exports sneak zero-width and smart-quote characters into fields,
	// which silently break substring matches.
	name := normalizeField(p.Name)
	category := normalizeField(p.Category)
	model := normalizeField(p.Model)
	partNumber := normalizeField(p.PartNumber)
	brand := normalizeField(p.Brand)
	location := normalizeField(p.Location)

	alwaysRack := containsAny(name, alwaysRackEquipment) ||
		containsAny(model, alwaysRackEquipment) ||
		containsAny(category, alwaysRackEquipment)

	roomLocation := containsAny(location, roomLocations)
	equipmentArea := containsAny(location, equipmentAreaLocations)
	if roomLocation && !equipmentArea && !alwaysRack {
		return true
	}

	if containsAny(model, accessoryPatterns) || containsAny(partNumber, accessoryPatterns) {
		return true
	}

	// Wrap the model in spaces so word-boundary patterns like " e7" hit.
	if containsAny(" "+model+" ", wifiAPPatterns) || containsAny(partNumber, wifiAPPatterns) {
		return true
	}
	if model == "e7" || model == "e7 campus" {
		return true
	}

	if containsAny(model, lutronNonRack) || containsAny(partNumber, lutronNonRack) {
		return true
	}
	if containsAny(model, nonPhysicalItems) || containsAny(partNumber, nonPhysicalItems) {
		return true
	}
	if containsAny(model, climateDevices) || containsAny(partNumber, climateDevices) {
		return true
	}
	if containsAny(model, rackAccessories) || containsAny(name, rackAccessories) {
		return true
	}
	if containsAny(model, doorbellDevices) || containsAny(name, doorbellDevices) || containsAny(partNumber, doorbellDevices) {
		return true
	}
	if containsAny(model, verticalPowerStrips) || containsAny(partNumber, verticalPowerStrips) {
		return true
	}

	// Network gear survives the keyword sweep below; its accessories
	// were already rejected above.
	if containsAny(brand, keepBrands) {
		return false
	}
	if strings.Contains(category, "networking") || strings.Contains(category, "switches") {
		return false
	}

	if containsAny(name+" "+category, skipKeywords) {
		return true
	}
	if containsAny(category, skipCategories) {
		return true
	}
	return false
}

// normalizeField strips non-ASCII characters, lowercases and trims.
func normalizeField(s string) string {
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
