// Package proposal reads client proposal CSV exports and extracts the
// equipment that belongs in a rack.
//
// # Formats
//
// Integrators export proposals from different tools, so the column layout
// varies. [DetectFormat] recognizes two layouts from the header row:
//
//   - [FormatStandard]: D-Tools / portal exports with Brand, Model,
//     Category, Quantity, Location, System and Calculated_BTU columns.
//   - [FormatSIAVC]: SI/AVC exports keyed by Part Number, with a
//     hierarchical LocationPath and no brand column. Brands are guessed
//     from part-number prefixes where possible.
//
// Anything else fails with an invalid-format error. Exports may be UTF-8
// (with or without a BOM) or Windows-1252.
//
// # Filtering
//
// Proposals list everything sold for the job: speakers, cable, brackets,
// wall plates. Only a fraction of it is rack gear. The SI/AVC parser
// keeps rows from equipment areas (closets, MDF/IDF, rack locations) and
// from systems that normally hold rack gear, and drops known bulk
// material part numbers. The standard parser defers that judgement to
// the catalog stage and only filters by location and quantity.
//
// # Racks in the proposal
//
// Proposals usually include the racks themselves. [DetectEnclosures]
// finds those rows, extracts sizes from model numbers like ERK-4425 or
// "42U", and classifies each as an AV or network rack. [Summarize] turns
// the result into the sizes the planner uses for each group.
package proposal
