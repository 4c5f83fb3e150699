package catalog

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	queries := []Query{
		{Brand: "Marantz", Model: "SR6015", Category: "Audio", Name: "AV Receiver"},
		{Brand: "Ubiquiti", Model: "USW-Pro-24", Category: "Network", Name: "Switch Pro 24"},
	}
	prompt := buildPrompt(queries)

	if !strings.Contains(prompt, "1. Marantz SR6015 - Audio - AV Receiver") {
		t.Error("first product line missing or misnumbered")
	}
	if !strings.Contains(prompt, "2. Ubiquiti USW-Pro-24 - Network - Switch Pro 24") {
		t.Error("second product line missing or misnumbered")
	}

	// The guidance examples keep the model honest about unusual heights
	// and about gear that never goes in a rack.
	if !strings.Contains(prompt, "Lutron HomeWorks Processors (HQP6, HQP7): 6-7U") {
		t.Error("rack-mountable guidance missing")
	}
	if !strings.Contains(prompt, "NOT RACK-MOUNTABLE") {
		t.Error("exclusion guidance missing")
	}
	if !strings.Contains(prompt, `"products"`) {
		t.Error("response shape example missing")
	}
}

func TestParseSpecsResponse(t *testing.T) {
	content := `{"products": [
		{"brand": "Marantz", "model": "SR6015", "rack_units": 4, "weight": 27.5,
		 "btu": 664, "is_rack_mountable": true, "connections": {"hdmi_in": 6, "hdmi_out": 1}},
		{"brand": "Acme", "model": "X1"}
	]}`

	specs, err := parseSpecsResponse(content)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("got %d specs, want 2", len(specs))
	}

	full := specs["marantz sr6015"]
	if full == nil {
		t.Fatal("marantz sr6015 missing")
	}
	if full.Units != 4 || full.Weight != 27.5 || full.BTU != 664 {
		t.Errorf("got %+v", full)
	}
	if !strings.Contains(full.Connections, "hdmi_in") {
		t.Errorf("connections not kept: %q", full.Connections)
	}
	if full.Source != "ai" {
		t.Errorf("source: got %q", full.Source)
	}

	// Omitted fields fall back to the defaults.
	defaulted := specs["acme x1"]
	if defaulted == nil {
		t.Fatal("acme x1 missing")
	}
	if defaulted.Units != 1 || defaulted.Weight != 10.0 || defaulted.BTU != 100 {
		t.Errorf("defaults not applied: %+v", defaulted)
	}
	if !defaulted.RackMountable {
		t.Error("default mountability should be true")
	}
	if defaulted.Connections != "" {
		t.Errorf("connections should be empty, got %q", defaulted.Connections)
	}
}

func TestParseSpecsResponseExplicitZeros(t *testing.T) {
	// An explicit zero is an answer, not an omission.
	content := `{"products": [{"brand": "B&W", "model": "CWM7.3",
		"rack_units": 0, "is_rack_mountable": false}]}`

	specs, err := parseSpecsResponse(content)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	spec := specs["b&w cwm7.3"]
	if spec == nil {
		t.Fatal("spec missing")
	}
	if spec.Units != 0 {
		t.Errorf("units: got %v, want 0", spec.Units)
	}
	if spec.RackMountable {
		t.Error("mountability: got true, want false")
	}
}

func TestParseSpecsResponseNullConnections(t *testing.T) {
	content := `{"products": [{"brand": "A", "model": "M1", "connections": null}]}`
	specs, err := parseSpecsResponse(content)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if got := specs["a m1"].Connections; got != "" {
		t.Errorf("null connections kept: %q", got)
	}
}

func TestParseSpecsResponseBadJSON(t *testing.T) {
	if _, err := parseSpecsResponse("I couldn't find those products."); err == nil {
		t.Error("want error for non-JSON content")
	}
}
