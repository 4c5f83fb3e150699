package catalog

import (
	"bytes"
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	apperrors "github.com/racklabs/rackplan/pkg/errors"
)

// ReadEntries parses a catalog CSV into entries ready for an [Importer].
// Column names are matched case-insensitively against common aliases
// ("Brand" or "Manufacturer", "Height (U)" or "RU", and so on), so
// spreadsheets exported from different tools import without editing.
// Rows without a model number are dropped.
func ReadEntries(data []byte) ([]Entry, error) {
	rows, err := readCatalogRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "catalog csv is empty")
	}

	t := newColumns(rows[0])
	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		model := t.first(row, "Model", "Model Number", "Part Number", "PartNumber", "SKU")
		if model == "" {
			continue
		}

		brand := t.first(row, "Brand", "Manufacturer", "Mfr", "Make")
		name := t.first(row, "Name", "Description", "Product Name", "ProductName", "Title")
		explicit := t.first(row, "Subsystem", "System", "Category", "Type", "Department")

		e := Entry{
			Brand:      brand,
			Model:      model,
			Name:       name,
			PartNumber: t.first(row, "Part Number", "PartNumber", "SKU", "Item Number"),
			Category:   t.first(row, "Category", "Type", "System"),
			Notes:      t.first(row, "Notes", "Comments", "Description"),
			Spec: Spec{
				Units:         parseNumber(t.first(row, "Height (U)", "Rack Units", "RU", "U", "Height", "Size")),
				Watts:         parseNumber(t.first(row, "Watts", "Power", "Wattage", "Power (W)", "W")),
				BTU:           parseNumber(t.first(row, "BTU", "BTU/hr", "Heat")),
				Weight:        parseNumber(t.first(row, "Weight", "Weight (lbs)", "Weight (lb)", "Lbs")),
				Subsystem:     categorizeSubsystem(explicit, brand, model, name),
				RackMountable: true,
			},
		}
		if e.Spec.BTU == 0 && e.Spec.Watts > 0 {
			e.Spec.BTU = e.Spec.Watts * btuPerWatt
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ReadEntriesFile reads the catalog CSV at path.
func ReadEntriesFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "catalog file not found: %s", path)
		}
		return nil, err
	}
	return ReadEntries(data)
}

// SampleEntries returns a starter catalog of common residential AV and
// network equipment for seeding an empty catalog.
func SampleEntries() []Entry {
	s := func(brand, model, name string, units, watts, weight float64, subsystem string) Entry {
		return Entry{
			Brand: brand,
			Model: model,
			Name:  name,
			Spec: Spec{
				Units:         units,
				Watts:         watts,
				Weight:        weight,
				Subsystem:     subsystem,
				RackMountable: true,
			},
		}
	}
	return []Entry{
		s("Savant", "SSC-0012-00", "Smart Controller 12", 1, 25, 0, "AV"),
		s("Savant", "SSA-3220-00", "Smart Audio Soundbar", 2, 200, 0, "AV"),
		s("Savant", "PAV-SHC1S-00", "Host Controller", 1, 15, 0, "AV"),
		s("Lutron", "HQP7-2", "HomeWorks QSX Processor", 2, 50, 0, "AV"),
		s("Lutron", "RR-MAIN-REP-WH", "RadioRA Main Repeater", 1, 10, 0, "AV"),
		s("Ubiquiti", "USW-Pro-48-POE", "UniFi Pro 48 PoE Switch", 1, 700, 0, "Network"),
		s("Ubiquiti", "UDM-Pro", "Dream Machine Pro", 1, 35, 0, "Network"),
		s("Araknis", "AN-310-SW-24-POE", "310 Series 24-Port PoE Switch", 1, 400, 0, "Network"),
		s("Sonance", "DSP 8-130", "8-Channel DSP Amplifier", 2, 1040, 0, "AV"),
		s("Marantz", "SR8015", "11.2 Channel AV Receiver", 7, 250, 45, "AV"),
		s("Furman", "M-8X2", "Merit Series Power Conditioner", 1, 15, 0, "Power"),
		s("APC", "SMT1500RM2U", "Smart-UPS 1500VA", 2, 1000, 65, "Power"),
	}
}

// Subsystem keyword hints, checked in order: explicit column first, then
// brand and model text.
var (
	networkSubsystemHints = []string{"network", "net", "switch", "router", "wifi"}
	powerSubsystemHints   = []string{"power", "ups", "pdu", "surge"}
	avSubsystemHints      = []string{"av", "audio", "video", "control", "lighting"}

	networkBrandHints = []string{"ubiquiti", "unifi", "cisco", "netgear", "aruba", "pakedge", "araknis"}
	powerBrandHints   = []string{"apc", "cyberpower", "tripp", "furman", "panamax"}
)

// categorizeSubsystem decides AV, Network or Power for an imported row.
func categorizeSubsystem(explicit, brand, model, name string) string {
	if explicit != "" {
		s := strings.ToLower(explicit)
		switch {
		case containsAny(s, networkSubsystemHints):
			return "Network"
		case containsAny(s, powerSubsystemHints):
			return "Power"
		case containsAny(s, avSubsystemHints):
			return "AV"
		}
	}

	combined := strings.ToLower(brand + " " + model + " " + name)
	switch {
	case containsAny(combined, networkBrandHints):
		return "Network"
	case containsAny(combined, powerBrandHints):
		return "Power"
	}
	return "AV"
}

// parseNumber reads a float out of spreadsheet cells like "2U", "45 lbs"
// or "700W" by keeping only digits and the decimal point. Unparseable
// cells count as zero.
func parseNumber(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// readCatalogRows decodes and parses the raw CSV. Like proposal exports,
// catalog spreadsheets arrive in UTF-8 or Windows-1252.
func readCatalogRows(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err == nil {
			data = decoded
		}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "reading catalog csv")
	}
	return rows, nil
}

// columns resolves header aliases to row indices, case-insensitively.
type columns struct {
	index map[string]int
}

func newColumns(header []string) columns {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	return columns{index: index}
}

// first returns the first non-empty cell among the aliased columns.
func (c columns) first(row []string, aliases ...string) string {
	for _, alias := range aliases {
		i, ok := c.index[strings.ToLower(alias)]
		if !ok || i >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
	}
	return ""
}
