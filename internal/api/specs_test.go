package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/racklabs/rackplan/pkg/catalog"
	"github.com/racklabs/rackplan/pkg/pipeline"
)

func TestSpecLookup(t *testing.T) {
	local := &stubSource{name: "local", specs: map[string]*catalog.Spec{
		"denon avr-x3800h": {Units: 2, Weight: 28.2, BTU: 840, RackMountable: true, Source: "local"},
	}}
	s := testServer(t, pipeline.Sources{Local: local})

	w := do(t, s, "GET", "/api/v1/catalog/specs?brand=Denon&model=AVR-X3800H", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var spec catalog.Spec
	if err := json.NewDecoder(w.Body).Decode(&spec); err != nil {
		t.Fatalf("Failed to decode spec: %v", err)
	}
	if spec.Units != 2 || spec.Source != "local" {
		t.Errorf("Spec = %+v, want 2 units from local", spec)
	}
}

func TestSpecLookupCachesResult(t *testing.T) {
	local := &stubSource{name: "local", specs: map[string]*catalog.Spec{
		"denon avr-x3800h": {Units: 2, RackMountable: true, Source: "local"},
	}}
	s := testServer(t, pipeline.Sources{Local: local})

	for i := 0; i < 2; i++ {
		if w := do(t, s, "GET", "/api/v1/catalog/specs?brand=Denon&model=AVR-X3800H", nil); w.Code != http.StatusOK {
			t.Fatalf("Lookup %d: expected status 200, got %d", i, w.Code)
		}
	}

	if local.calls != 1 {
		t.Errorf("Source consulted %d times, want 1 (second lookup cached)", local.calls)
	}
}

func TestSpecLookupRefreshBypassesCache(t *testing.T) {
	local := &stubSource{name: "local", specs: map[string]*catalog.Spec{
		"denon avr-x3800h": {Units: 2, RackMountable: true, Source: "local"},
	}}
	s := testServer(t, pipeline.Sources{Local: local})

	do(t, s, "GET", "/api/v1/catalog/specs?brand=Denon&model=AVR-X3800H", nil)
	do(t, s, "GET", "/api/v1/catalog/specs?brand=Denon&model=AVR-X3800H&refresh=true", nil)

	if local.calls != 2 {
		t.Errorf("Source consulted %d times, want 2 with refresh", local.calls)
	}
}

func TestSpecLookupNotFound(t *testing.T) {
	s := testServer(t, pipeline.Sources{Local: &stubSource{name: "local"}})

	w := do(t, s, "GET", "/api/v1/catalog/specs?brand=Nobody&model=NOPE-1", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	code, _ := decodeError(t, w)
	if code != "PRODUCT_NOT_FOUND" {
		t.Errorf("Expected PRODUCT_NOT_FOUND, got %q", code)
	}
}

func TestSpecLookupNeverEstimates(t *testing.T) {
	// The arranging pipeline falls back to estimates, but a catalog
	// lookup must miss honestly.
	s := testServer(t, pipeline.Sources{
		Local:    &stubSource{name: "local"},
		Estimate: catalog.NewEstimateSource(),
	})

	w := do(t, s, "GET", "/api/v1/catalog/specs?brand=Nobody&model=NOPE-1", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSpecLookupRequiresBrandAndModel(t *testing.T) {
	s := testServer(t, pipeline.Sources{})

	for _, target := range []string{
		"/api/v1/catalog/specs",
		"/api/v1/catalog/specs?brand=Denon",
		"/api/v1/catalog/specs?model=AVR-X3800H",
	} {
		w := do(t, s, "GET", target, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", target, w.Code)
			continue
		}
		code, _ := decodeError(t, w)
		if code != "INVALID_INPUT" {
			t.Errorf("%s: expected INVALID_INPUT, got %q", target, code)
		}
	}
}
