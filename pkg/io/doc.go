// Package io provides JSON import and export for equipment lists and
// arranged rack plans.
//
// # Overview
//
// This package is the wire boundary of the layout engine. It reads the
// enriched equipment lists the engine consumes and writes the finished
// plans that downstream tools render. The formats are designed for:
//
//   - Feeding pre-enriched equipment into the engine without a proposal
//     CSV or catalog lookups
//   - Integration with external tools that produce or consume rack data
//   - Archiving finished plans alongside the generated documentation
//
// # Items Format
//
// The input format has a single top-level array:
//
//	{
//	  "items": [
//	    {"brand": "Denon", "model": "AVR-X3800H", "units": 2, "weight": 28.2, "btu": 840},
//	    {"brand": "Araknis", "model": "AN-310-SW-16", "units": 1, "subsystem": "Network"}
//	  ]
//	}
//
// Required per item:
//   - units: Height in rack units (at least 1)
//
// Optional:
//   - name, brand, model: Display identity (equipment needs at least one)
//   - weight: Pounds (non-negative, defaults to 0)
//   - btu: Heat output in BTU/hr (non-negative, defaults to 0)
//   - quantity: Copies to place (at least 1, defaults to 1)
//   - subsystem: Category tag, e.g. "AV" or "Network"
//   - kind: "equipment" (default), "vent", or "blank"
//
// # Import
//
// Use [ReadItemsFile] to read an equipment list from a file path, or
// [ReadItems] to read from any io.Reader:
//
//	items, err := io.ReadItemsFile("items.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plan, err := rack.BuildPlan(items, rack.PlanOptions{})
//
// Both functions validate every item against the engine's input
// contract. Errors are wrapped with the index of the item that caused
// the problem; use errors.Is to check for specific validation errors
// such as [ErrInvalidUnits].
//
// # Plan Format
//
// The output format carries the arranged layouts with their positioned
// items and the derived aggregates renderers need:
//
//	{
//	  "project": "Smith Residence",
//	  "layouts": [
//	    {
//	      "name": "Smith Residence - AV Rack (42U)",
//	      "capacity": 42,
//	      "strategy": "moderate",
//	      "equipment_units": 18,
//	      "filler_units": 9,
//	      "used_units": 27,
//	      "free_units": 15,
//	      "total_weight": 342.5,
//	      "total_btu": 5120,
//	      "items": [
//	        {"label": "Denon AVR-X3800H", "brand": "Denon", "model": "AVR-X3800H",
//	         "units": 2, "weight": 28.2, "btu": 840, "position": 3}
//	      ]
//	    }
//	  ],
//	  "warnings": []
//	}
//
// Positions are 1-based from the bottom of the rack. Filler panels
// appear as items with kind "vent" or "blank". A layout that exceeds
// its capacity reports "overflow": true and a negative "free_units",
// and the plan carries a matching entry in "warnings"; consumers must
// treat overflow as a display case, not a failure.
//
// # Export
//
// Use [ExportPlanFile] to write a plan to a file, or [WritePlan] to
// write to any io.Writer:
//
//	err := io.ExportPlanFile(plan, "plan.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The export includes every placed item, filler panels included, with
// all aggregates precomputed so consumers never re-derive them. The
// items inside an exported layout are themselves valid against the
// items format, so a plan's equipment can be extracted and re-arranged.
//
// # Concurrency
//
// All functions are safe to call concurrently as long as the plan or
// item slice is not modified while being written. [ReadItems] and
// [ReadItemsFile] return independent slices that can be modified freely
// after import.
package io
