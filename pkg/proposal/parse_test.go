package proposal

import (
	"strings"
	"testing"

	apperrors "github.com/racklabs/rackplan/pkg/errors"
)

const standardCSV = `Name,Brand,Model,Category,Quantity,Location,System,Short Description,Calculated_BTU
AV Receiver,Marantz,SR6015,Audio,1,Equipment Closet,Audio Video,9.2ch receiver,664
Power Amp,Sonance,SA250 MK2,Audio,2,Equipment Closet,Audio Video,2ch amp,307
Network Switch,Araknis,AN-110-SW-R-24,Network,1,Equipment Closet,Networking,24 port switch,100
In-Ceiling Speaker,Sonance,VP66R,Audio,8,Living Room,Audio Video,6.5 inch speaker,0
Zero Qty Item,Acme,ZQ-1,Misc,0,Equipment Closet,Misc,,0
Bad Qty Item,Acme,BQ-1,Misc,abc,Equipment Closet,Misc,,0
`

func TestParseStandard(t *testing.T) {
	products, err := Parse([]byte(standardCSV), Options{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	// Zero and unparseable quantities are dropped, everything else kept.
	if len(products) != 4 {
		t.Fatalf("got %d products, want 4", len(products))
	}

	first := products[0]
	if first.Brand != "Marantz" || first.Model != "SR6015" {
		t.Errorf("got %s %s, want Marantz SR6015", first.Brand, first.Model)
	}
	if first.Quantity != 1 {
		t.Errorf("got quantity %d, want 1", first.Quantity)
	}
	if first.CalculatedBTU != 664 {
		t.Errorf("got BTU %v, want 664", first.CalculatedBTU)
	}
	if first.System != "Audio Video" {
		t.Errorf("got system %q, want %q", first.System, "Audio Video")
	}
	if first.Description != "9.2ch receiver" {
		t.Errorf("got description %q", first.Description)
	}
}

func TestParseStandardLocationFilter(t *testing.T) {
	products, err := Parse([]byte(standardCSV), Options{Location: "Equipment Closet"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	for _, p := range products {
		if p.Location != "Equipment Closet" {
			t.Errorf("location filter leaked %q", p.Location)
		}
	}
	// The living room speakers are filtered out.
	if len(products) != 3 {
		t.Errorf("got %d products, want 3", len(products))
	}
}

const siavcCSV = `Quantity,Part Number,Cost Price,Sell Price,TotalLaborHours,Time (hrs),Phase,LocationPath,System
1,USW-PRO-24-POE,450,600,1,1,Trim,House > Basement > Equipment Closet,Network & WiFi
2.0,PAV-SMS3000,900,1200,2,2,Trim,House > Basement > Equipment Closet,Equipment Racks
1,CAT6-500,120,180,0,0,Rough,House > Basement > Equipment Closet,Network & WiFi
1,BRKT:SHELF,20,30,0,0,Trim,House > Basement > Equipment Closet,Equipment Racks
1,~PLACEHOLDER,0,0,0,0,Trim,House > Basement > Equipment Closet,Equipment Racks
3,SPL-AMP2,700,950,1,1,Trim,House > Living Room,Whole House Audio
1,HQP6-2,1500,2000,2,2,Trim,House > Basement > Equipment Closet,Lighting Control
`

func TestParseSIAVC(t *testing.T) {
	products, err := Parse([]byte(siavcCSV), Options{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	// CAT6 and BRKT: match skip prefixes, ~PLACEHOLDER is a placeholder,
	// and the living room amp is outside any equipment area.
	want := map[string]bool{"USW-PRO-24-POE": true, "PAV-SMS3000": true, "HQP6-2": true}
	if len(products) != len(want) {
		names := make([]string, 0, len(products))
		for _, p := range products {
			names = append(names, p.PartNumber)
		}
		t.Fatalf("got %v, want 3 of %v", names, want)
	}
	for _, p := range products {
		if !want[p.PartNumber] {
			t.Errorf("unexpected product %q", p.PartNumber)
		}
	}
}

func TestParseSIAVCBrandExtraction(t *testing.T) {
	products, err := Parse([]byte(siavcCSV), Options{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	brands := make(map[string]string)
	for _, p := range products {
		brands[p.PartNumber] = p.Brand
	}

	if brands["USW-PRO-24-POE"] != "Ubiquiti" {
		t.Errorf("USW- prefix: got %q, want Ubiquiti", brands["USW-PRO-24-POE"])
	}
	if brands["PAV-SMS3000"] != "Savant" {
		t.Errorf("PAV- prefix: got %q, want Savant", brands["PAV-SMS3000"])
	}
	if brands["HQP6-2"] != "Lutron" {
		t.Errorf("HQP prefix: got %q, want Lutron", brands["HQP6-2"])
	}
}

func TestParseSIAVCFloatQuantity(t *testing.T) {
	products, err := Parse([]byte(siavcCSV), Options{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	for _, p := range products {
		if p.PartNumber == "PAV-SMS3000" && p.Quantity != 2 {
			t.Errorf("got quantity %d, want 2", p.Quantity)
		}
	}
}

func TestParseSIAVCLocationFilterIsSubstring(t *testing.T) {
	products, err := Parse([]byte(siavcCSV), Options{Location: "equipment closet"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	// Substring match against the hierarchical path, case-insensitive.
	if len(products) != 3 {
		t.Errorf("got %d products, want 3", len(products))
	}
}

func TestParseUnknownFormat(t *testing.T) {
	csv := "Foo,Bar\n1,2\n"
	_, err := Parse([]byte(csv), Options{})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}

func TestParseBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(standardCSV)...)
	products, err := Parse(data, Options{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(products) != 4 {
		t.Errorf("got %d products, want 4", len(products))
	}
}

func TestParseWindows1252(t *testing.T) {
	// 0xE9 is e-acute in Windows-1252 and invalid UTF-8 on its own.
	csv := "Name,Brand,Model,Category,Quantity,Location,System\n" +
		"Caf\xe9 Amp,Sonance,SA250,Audio,1,Closet,Audio,\n"
	products, err := Parse([]byte(csv), Options{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if !strings.Contains(products[0].Name, "Café") {
		t.Errorf("got name %q, want decoded Café", products[0].Name)
	}
}

func TestParseRaggedRows(t *testing.T) {
	csv := "Name,Brand,Model,Category,Quantity,Location,System\n" +
		"Amp,Sonance,SA250,Audio,1\n" + // short row
		"Switch,Araknis,AN-110,Network,1,Closet,Networking,extra,cells\n"
	products, err := Parse([]byte(csv), Options{})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Location != "" {
		t.Errorf("short row should read missing cells as empty, got %q", products[0].Location)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    Format
	}{
		{"standard", []string{"Name", "Brand", "Model", "Quantity"}, FormatStandard},
		{"standardLowercase", []string{"brand", "model"}, FormatStandard},
		{"siavc", []string{"Quantity", "Part Number", "LocationPath", "System"}, FormatSIAVC},
		{"unknown", []string{"SKU", "Price"}, FormatUnknown},
		{"empty", nil, FormatUnknown},
		{"brandWithoutModel", []string{"Brand", "Quantity"}, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.headers); got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConsolidate(t *testing.T) {
	products := []Product{
		{Brand: "Sonance", Model: "SA250", Quantity: 1},
		{Brand: "Araknis", Model: "AN-110", Quantity: 1},
		{Brand: "sonance", Model: "sa250", Quantity: 2}, // same product, different case
		{PartNumber: "USW-PRO", Name: "USW-PRO", Quantity: 1},
		{PartNumber: "usw-pro", Name: "usw-pro", Quantity: 3},
	}

	merged := Consolidate(products)
	if len(merged) != 3 {
		t.Fatalf("got %d products, want 3", len(merged))
	}
	if merged[0].Quantity != 3 {
		t.Errorf("got quantity %d, want 3", merged[0].Quantity)
	}
	if merged[2].Quantity != 4 {
		t.Errorf("got quantity %d, want 4", merged[2].Quantity)
	}
	// First appearance order is kept.
	if merged[1].Model != "AN-110" {
		t.Errorf("got %q in slot 1, want AN-110", merged[1].Model)
	}
}

func TestBrandFromPartNumber(t *testing.T) {
	tests := []struct {
		part string
		want string
	}{
		{"USW-PRO-24", "Ubiquiti"},
		{"usw-lite-8", "Ubiquiti"},
		{"PAV-SMS3000", "Savant"},
		{"WB-800-IPVM-12", "WattBox"},
		{"HQP6-2", "Lutron"},
		{"AN-310-SW", "Araknis"},
		{"SS42-EU", "Pakedge"},
		{"XYZ-123", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := brandFromPartNumber(tt.part); got != tt.want {
			t.Errorf("brandFromPartNumber(%q) = %q, want %q", tt.part, got, tt.want)
		}
	}
}
