package proposal

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/racklabs/rackplan/pkg/errors"
)

// Kind classifies an enclosure by what it houses.
type Kind string

const (
	KindAV      Kind = "AV"
	KindNetwork Kind = "Network"
)

// Enclosure is a physical rack found in a proposal export, as opposed to
// the equipment mounted in one.
type Enclosure struct {
	// Model is the part number or name that identified the rack.
	Model string `json:"model"`

	// SizeU is the rack height in units, extracted from the model number
	// when possible. Defaults to 42 when no size marker is found.
	SizeU int `json:"size_u"`

	// Quantity is how many of this rack the proposal includes.
	Quantity int `json:"quantity"`

	// Location is the install location from the export.
	Location string `json:"location"`

	// Kind is AV or Network, inferred from location and system tags.
	Kind Kind `json:"kind"`
}

// DefaultEnclosureSize is assumed when a rack row carries no size marker.
const DefaultEnclosureSize = 42

// Names that identify a rack row rather than rack-mounted equipment.
var enclosureKeywords = []string{
	"equipment rack", "av rack", "network rack", "server rack", "data rack",
}

// Model fragments that identify rack hardware lines. Mostly Middle
// Atlantic series plus generic NNU size markers.
var enclosureModelMarkers = []string{
	"ERK-", "SSRK-", "RK-", "SR-", "WRK-", "CFR-", "QUIK-", "MRK-", "AXS-",
	"42U", "48U", "24U", "18U", "12U",
	"RE42-", "CMS-",
}

// Size extraction patterns, tried in order against the part number first
// and the name second. A match outside the 8..52U range is ignored and
// the next pattern is tried.
var enclosureSizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{2})U`),
	regexp.MustCompile(`(?i)ERK-(\d{2})`),
	regexp.MustCompile(`(?i)SSRK-(\d{2})`),
	regexp.MustCompile(`(?i)RK-(\d{2})`),
	regexp.MustCompile(`(?i)SR-(\d{2})`),
	regexp.MustCompile(`(?i)MRK-(\d{2})`),
	regexp.MustCompile(`(?i)CFR-(\d{1,2})`),
	regexp.MustCompile(`(?i)WRK-(\d{1,2})`),
	regexp.MustCompile(`(?i)-(\d{2})[-\s]?U`),
	regexp.MustCompile(`(?i)(\d{2})[-\s]?RU`),
}

// DetectEnclosures scans a proposal export for rows that are racks
// themselves. It works across both export layouts by falling back from
// SI/AVC column names to standard ones.
func DetectEnclosures(data []byte) ([]Enclosure, error) {
	rows, err := readRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	t := newTable(rows[0])
	var enclosures []Enclosure

	for _, row := range rows[1:] {
		partNumber := t.get(row, "part number")
		if partNumber == "" {
			partNumber = t.get(row, "model")
		}
		name := t.get(row, "name")
		if name == "" {
			name = partNumber
		}
		location := t.get(row, "locationpath")
		if location == "" {
			location = t.get(row, "location")
		}
		system := t.get(row, "system")
		if system == "" {
			system = t.get(row, "category")
		}

		if strings.HasPrefix(partNumber, "~") || strings.HasPrefix(name, "~") {
			continue
		}

		if !isEnclosure(partNumber, name) {
			continue
		}

		// Empty or unparseable quantities count as one rack.
		quantity := 1
		if q := t.get(row, "quantity"); q != "" {
			if f, err := strconv.ParseFloat(q, 64); err == nil {
				quantity = int(f)
			}
		}

		model := partNumber
		if model == "" {
			model = name
		}

		enclosures = append(enclosures, Enclosure{
			Model:    model,
			SizeU:    extractSize(partNumber, name),
			Quantity: quantity,
			Location: location,
			Kind:     enclosureKind(location, system),
		})
	}
	return enclosures, nil
}

// DetectEnclosuresFile reads the proposal export at path and scans it for
// rack rows.
func DetectEnclosuresFile(path string) ([]Enclosure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "proposal file not found: %s", path)
		}
		return nil, err
	}
	return DetectEnclosures(data)
}

func isEnclosure(partNumber, name string) bool {
	partLower := strings.ToLower(partNumber)
	nameLower := strings.ToLower(name)

	if containsAnyOf(partLower+" "+nameLower, enclosureKeywords) {
		return true
	}
	for _, marker := range enclosureModelMarkers {
		m := strings.ToLower(marker)
		if strings.Contains(partLower, m) || strings.Contains(nameLower, m) {
			return true
		}
	}
	return false
}

// extractSize pulls the unit height out of a rack model number. Markers
// like ERK-4425 encode height in the leading digits; generic ones look
// like 42U or 42RU.
func extractSize(partNumber, name string) int {
	for _, re := range enclosureSizePatterns {
		match := re.FindStringSubmatch(partNumber)
		if match == nil {
			match = re.FindStringSubmatch(name)
		}
		if match == nil {
			continue
		}
		if size, err := strconv.Atoi(match[1]); err == nil && size >= 8 && size <= 52 {
			return size
		}
	}
	return DefaultEnclosureSize
}

func enclosureKind(location, system string) Kind {
	locationLower := strings.ToLower(location)
	systemLower := strings.ToLower(system)

	if strings.Contains(locationLower, "network") || strings.Contains(systemLower, "network") {
		return KindNetwork
	}
	if strings.Contains(locationLower, "server") || strings.Contains(systemLower, "data") {
		return KindNetwork
	}
	return KindAV
}

// Summary aggregates the racks detected in a proposal.
type Summary struct {
	// Enclosures are the detected rack rows.
	Enclosures []Enclosure `json:"enclosures"`

	// TotalCount is the number of physical racks, counting quantities.
	TotalCount int `json:"total_count"`

	// AVSize and NetworkSize are the detected sizes for each rack kind,
	// or 0 when the proposal has no rack of that kind.
	AVSize      int `json:"av_size"`
	NetworkSize int `json:"network_size"`

	// DefaultSize is the largest detected size, or 42 when the proposal
	// specifies no racks at all.
	DefaultSize int `json:"default_size"`
}

// Summarize reduces detected enclosures to the figures the planner needs:
// how many racks the client ordered and what size each group should use.
func Summarize(enclosures []Enclosure) Summary {
	s := Summary{
		Enclosures:  enclosures,
		DefaultSize: DefaultEnclosureSize,
	}
	if len(enclosures) == 0 {
		return s
	}

	// With racks present, the default follows the largest one, smaller
	// than 42U or not.
	s.DefaultSize = 0

	for _, e := range enclosures {
		s.TotalCount += e.Quantity
		s.DefaultSize = max(s.DefaultSize, e.SizeU)

		switch {
		case e.Kind == KindNetwork && s.NetworkSize == 0:
			s.NetworkSize = e.SizeU
		case e.Kind == KindAV && s.AVSize == 0:
			s.AVSize = e.SizeU
		}
	}
	return s
}
