package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/racklabs/rackplan/pkg/rack"
)

var (
	// ErrUnknownKind is returned by [ReadItems] for a kind other than
	// "equipment", "vent", or "blank".
	ErrUnknownKind = errors.New("unknown item kind")

	// ErrInvalidUnits is returned by [ReadItems] for an item whose
	// height is missing, zero, or negative. Every rack item occupies at
	// least one unit.
	ErrInvalidUnits = errors.New("item units must be at least 1")

	// ErrInvalidQuantity is returned by [ReadItems] for an explicit
	// quantity below 1. Omitting the field places a single copy.
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")

	// ErrNegativeMetric is returned by [ReadItems] for a negative
	// weight or btu value.
	ErrNegativeMetric = errors.New("item weight and btu must be non-negative")

	// ErrNoLabel is returned by [ReadItems] for an equipment item with
	// no name, brand, or model. Unlabeled equipment cannot appear in an
	// elevation listing.
	ErrNoLabel = errors.New("item has no name, brand, or model")
)

var kindFromString = map[string]rack.Kind{
	"":          rack.KindEquipment,
	"equipment": rack.KindEquipment,
	"vent":      rack.KindVent,
	"blank":     rack.KindBlank,
}

type itemsDocument struct {
	Items []itemRecord `json:"items"`
}

// ReadItems decodes an equipment list from r.
//
// The input must be a JSON object with an "items" array:
//
//	{
//	  "items": [
//	    {"brand": "Denon", "model": "AVR-X3800H", "units": 2, "weight": 28.2, "btu": 840}
//	  ]
//	}
//
// Each item must have a positive "units" field. Optional fields:
//   - name, brand, model: display identity (equipment needs at least one)
//   - weight, btu: non-negative metrics (default to 0)
//   - quantity: copies to place (defaults to 1)
//   - subsystem: category tag used by the AV/network split
//   - kind: "equipment" (the default), "vent", or "blank"
//
// ReadItems returns an error if:
//   - The JSON is malformed or invalid
//   - An item violates the input contract (units below 1, negative
//     weight or btu, explicit quantity below 1)
//   - An equipment item carries no display identity at all
//
// Errors are wrapped with the index of the item that caused the
// problem. Use errors.Is to check for specific validation errors such
// as [ErrInvalidUnits] or [ErrNoLabel].
//
// The returned slice is independent of r and can be modified safely
// after ReadItems returns. ReadItems does not close r.
func ReadItems(r io.Reader) ([]rack.Item, error) {
	var doc itemsDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	items := make([]rack.Item, 0, len(doc.Items))
	for i, rec := range doc.Items {
		it, err := itemFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// ReadItemsFile reads a JSON file at path and returns the decoded
// equipment list.
//
// ReadItemsFile opens the file, decodes it using [ReadItems], and
// closes the file. If the file cannot be opened, or if decoding fails,
// ReadItemsFile returns an error describing the failure. The error
// wraps the underlying cause with the file path for context.
//
// ReadItemsFile returns the same validation errors as [ReadItems] for
// malformed documents or contract violations.
func ReadItemsFile(path string) ([]rack.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadItems(f)
}

// itemFromRecord converts one wire record into a rack item, enforcing
// the engine's input contract.
func itemFromRecord(rec itemRecord) (rack.Item, error) {
	kind, ok := kindFromString[rec.Kind]
	if !ok {
		return rack.Item{}, fmt.Errorf("%w %q", ErrUnknownKind, rec.Kind)
	}
	if rec.Units < 1 {
		return rack.Item{}, fmt.Errorf("%w: got %d", ErrInvalidUnits, rec.Units)
	}
	if rec.Weight < 0 || rec.BTU < 0 {
		return rack.Item{}, fmt.Errorf("%w: weight %g, btu %g", ErrNegativeMetric, rec.Weight, rec.BTU)
	}
	qty := 1
	if rec.Quantity != nil {
		if *rec.Quantity < 1 {
			return rack.Item{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, *rec.Quantity)
		}
		qty = *rec.Quantity
	}

	it := rack.Item{
		Kind:      kind,
		Name:      rec.Name,
		Brand:     rec.Brand,
		Model:     rec.Model,
		Units:     rec.Units,
		Weight:    rec.Weight,
		BTU:       rec.BTU,
		Quantity:  qty,
		Subsystem: rec.Subsystem,
		Position:  rec.Position,
	}
	if kind == rack.KindEquipment && it.DisplayName() == "" {
		return rack.Item{}, ErrNoLabel
	}
	return it, nil
}
