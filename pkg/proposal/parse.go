package proposal

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

// Options controls proposal parsing.
type Options struct {
	// Location restricts parsing to items installed at one location.
	// Standard exports match the column exactly; SI/AVC exports match by
	// substring, since their LocationPath is hierarchical ("House > Base >
	// Equipment Closet"). Empty keeps every row.
	Location string
}

// Parse reads a proposal export and returns its rack-relevant products.
// The column layout is detected from the header row.
func Parse(data []byte, opts Options) ([]Product, error) {
	rows, err := readRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "proposal is empty")
	}

	header := rows[0]
	switch DetectFormat(header) {
	case FormatStandard:
		return parseStandard(newTable(header), rows[1:], opts), nil
	case FormatSIAVC:
		return parseSIAVC(newTable(header), rows[1:], opts), nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat,
			"unrecognized proposal layout: need Brand+Model or Part Number+LocationPath columns")
	}
}

// ParseFile reads the proposal export at path.
func ParseFile(path string, opts Options) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "proposal file not found: %s", path)
		}
		return nil, err
	}
	return Parse(data, opts)
}

// parseStandard handles D-Tools / portal style exports. Rows with a zero,
// negative, or unparseable quantity are dropped.
func parseStandard(t table, rows [][]string, opts Options) []Product {
	var products []Product
	for _, row := range rows {
		location := t.get(row, "location")
		if opts.Location != "" && location != opts.Location {
			continue
		}

		quantity, err := strconv.Atoi(t.get(row, "quantity"))
		if err != nil || quantity <= 0 {
			continue
		}

		btu, err := strconv.ParseFloat(t.get(row, "calculated_btu"), 64)
		if err != nil {
			btu = 0
		}

		products = append(products, Product{
			Name:          t.get(row, "name"),
			Brand:         t.get(row, "brand"),
			Model:         t.get(row, "model"),
			Category:      t.get(row, "category"),
			Quantity:      quantity,
			Location:      location,
			System:        t.get(row, "system"),
			Description:   t.get(row, "short description"),
			CalculatedBTU: btu,
		})
	}
	return products
}

// Location keywords that mark an equipment area in SI/AVC exports.
var equipmentAreaKeywords = []string{
	"equipment closet", "equipment room", "rack", "av closet",
	"network closet", "mdf", "idf",
}

// Systems that typically contain rack-mounted equipment.
var rackSystemKeywords = []string{
	"network & wifi", "equipment racks", "lighting control", "hvac",
}

// Part-number prefixes for bulk material and placeholder rows that never
// belong in a rack.
var skipPrefixes = []string{
	"BRKT:", "PLATE:", "CONN-", "DATA-", "VIDEO-", "AUDIO-", "CONTROL -",
	"DEVICE -", "NETWORK ", "UI -", "IP ", "AMP-", "SPEAKER ", "INTERFACE -",
	"SPACESAVER", "CAT6", "RG6", "14/", "16/", "LUTRON-GRN",
}

// parseSIAVC handles SI/AVC style exports. These key items by part number
// and carry a hierarchical LocationPath instead of Brand/Model columns.
func parseSIAVC(t table, rows [][]string, opts Options) []Product {
	var products []Product
	for _, row := range rows {
		location := t.get(row, "locationpath")
		system := t.get(row, "system")
		partNumber := t.get(row, "part number")

		if partNumber == "" || strings.HasPrefix(partNumber, "~") || partNumber == "CABLE MODEM" {
			continue
		}
		if hasAnyPrefix(strings.ToUpper(partNumber), skipPrefixes) {
			continue
		}

		locationLower := strings.ToLower(location)
		systemLower := strings.ToLower(system)
		if opts.Location != "" {
			if !strings.Contains(locationLower, strings.ToLower(opts.Location)) {
				continue
			}
		} else {
			// No filter given: keep rows from equipment areas or from
			// systems that normally hold rack gear.
			if !containsAnyOf(locationLower, equipmentAreaKeywords) &&
				!containsAnyOf(systemLower, rackSystemKeywords) {
				continue
			}
		}

		// Quantities arrive as "3" or "3.0" depending on the exporter.
		quantity, ok := parseQuantity(t.get(row, "quantity"))
		if !ok || quantity <= 0 {
			continue
		}

		products = append(products, Product{
			Name:       partNumber,
			Brand:      brandFromPartNumber(partNumber),
			Model:      partNumber,
			PartNumber: partNumber,
			Category:   system,
			Quantity:   quantity,
			Location:   location,
			System:     system,
		})
	}
	return products
}

// parseQuantity reads an integer quantity that may be formatted as a
// float. An empty cell counts as zero.
func parseQuantity(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// brandPrefixes maps part-number prefixes to the brands that use them.
// Order matters: earlier entries win.
var brandPrefixes = []struct {
	prefix string
	brand  string
}{
	{"USW-", "Ubiquiti"},
	{"UDM-", "Ubiquiti"},
	{"UAP-", "Ubiquiti"},
	{"UA-", "Ubiquiti"},
	{"UACC-", "Ubiquiti"},
	{"E7", "Ubiquiti"},
	{"PAV-", "Savant"},
	{"SSC-", "Savant"},
	{"SVR-", "Savant"},
	{"REM-", "Savant"},
	{"SSL-", "Savant"},
	{"RCK-", "Savant"},
	{"LCB-", "Savant"},
	{"PKG-", "Savant"},
	{"CLI-", "Savant"},
	{"PWR-", "Savant"},
	{"RMB-", "Savant"},
	{"WB-", "WattBox"},
	{"OVRC-", "WattBox"},
	{"HQP", "Lutron"},
	{"HQR", "Lutron"},
	{"LQSE-", "Lutron"},
	{"PD8-", "Lutron"},
	{"PD10-", "Lutron"},
	{"PDW-", "Lutron"},
	{"QS-", "Lutron"},
	{"QSPS-", "Lutron"},
	{"HW", "Lutron"},
	{"QN", "Samsung"},
	{"SA-", "Middle Atlantic"},
	{"SS42", "Pakedge"},
	{"AN-", "Araknis"},
	{"BR1", "Middle Atlantic"},
	{"IS8", "James Loudspeaker"},
	{"IS-", "James Loudspeaker"},
	{"SPL", "Sonance"},
	{"BIJOU", "Anthem"},
	{"RM-", "Middle Atlantic"},
	{"PS", "Sanus"},
	{"UB", "Sanus"},
	{"OV", "Origin Acoustics"},
	{"RZ", "SunBrite"},
}

// brandFromPartNumber guesses the brand from well-known part number
// prefixes. Returns "" when no prefix matches.
func brandFromPartNumber(partNumber string) string {
	upper := strings.ToUpper(partNumber)
	for _, bp := range brandPrefixes {
		if strings.HasPrefix(upper, bp.prefix) {
			return bp.brand
		}
	}
	return ""
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAnyOf(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// ====================================================================
// CSV plumbing
// ====================================================================

// readRows decodes and parses the raw export. Exports arrive in UTF-8
// (with or without a BOM) or, from older Windows tooling, Windows-1252.
func readRows(data []byte) ([][]string, error) {
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
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "reading proposal csv")
	}
	return rows, nil
}

// table maps column names to indices so rows can be read by header.
// Lookups are case-insensitive.
type table struct {
	index map[string]int
}

func newTable(header []string) table {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return table{index: index}
}

// get returns the trimmed cell under the named column, or "" when the
// column is missing or the row is short.
func (t table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
