// Package catalog resolves physical specs (rack units, weight, heat) for
// the products in a proposal.
//
// A [Resolver] consults [Source] implementations in order until one
// answers:
//
//   - [MongoSource]: local product catalog
//   - [PostgresSource]: shared team catalog
//   - [CloudSource]: hosted catalog HTTP API
//   - [AISource]: chat-model inference for products no catalog knows
//   - [EstimateSource]: keyword heuristics, never fails
//
// Resolved specs are cached between runs (see package cache) so a repeat
// run over the same proposal skips the expensive tail of the chain.
// [BuildItems] then turns products plus specs into rack items, recording
// a [Skip] for everything that cannot go in a rack.
//
// [ClearlyNotRackMountable] runs before any resolution and drops cables,
// wall-mounted devices and other obvious non-rack lines so the chain
// never pays for them.
package catalog
