package proposal

import "strings"

// Format identifies the column layout of a proposal export.
type Format string

const (
	// FormatStandard is the D-Tools / portal style export with explicit
	// Brand and Model columns.
	FormatStandard Format = "standard"

	// FormatSIAVC is the SI/AVC style export keyed by Part Number with a
	// LocationPath column.
	FormatSIAVC Format = "si_avc"

	// FormatUnknown means the header row matched no known layout.
	FormatUnknown Format = "unknown"
)

// DetectFormat inspects a header row and reports which export layout it
// belongs to. Header comparison is case-insensitive.
func DetectFormat(headers []string) Format {
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[strings.ToLower(strings.TrimSpace(h))] = true
	}

	switch {
	case seen["brand"] && seen["model"]:
		return FormatStandard
	case seen["part number"] && seen["locationpath"]:
		return FormatSIAVC
	default:
		return FormatUnknown
	}
}
