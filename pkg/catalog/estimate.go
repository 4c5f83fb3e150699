package catalog

import (
	"context"
	"strings"
)

// EstimateSource guesses specs from the product name and category when
// every real catalog has come up empty. It never returns ErrNotFound, so
// it belongs at the end of a resolution chain: anything that reaches it
// gets a workable placeholder instead of being dropped.
type EstimateSource struct{}

// NewEstimateSource returns the heuristic source.
func NewEstimateSource() *EstimateSource { return &EstimateSource{} }

// Name identifies the source as "estimate".
func (s *EstimateSource) Name() string { return "estimate" }

// Lookup estimates units, weight and heat from keywords in the product
// name and category. The guesses skew toward common residential AV gear.
func (s *EstimateSource) Lookup(ctx context.Context, q Query) (*Spec, error) {
	desc := strings.ToLower(q.Name + " " + q.Category)
	return &Spec{
		Units:         estimateUnits(desc),
		Weight:        estimateWeight(desc),
		BTU:           estimateBTU(desc),
		RackMountable: true,
		Source:        "estimate",
	}, nil
}

func estimateUnits(desc string) float64 {
	switch {
	case strings.Contains(desc, "receiver"), strings.Contains(desc, "surround"):
		return 3
	case strings.Contains(desc, "amp"):
		return 2
	case strings.Contains(desc, "switch"):
		return 1
	case strings.Contains(desc, "controller"), strings.Contains(desc, "processor"):
		return 2
	case strings.Contains(desc, "power"):
		return 2
	default:
		return 1
	}
}

func estimateWeight(desc string) float64 {
	switch {
	case strings.Contains(desc, "receiver"), strings.Contains(desc, "surround"):
		return 25.0
	case strings.Contains(desc, "amp"):
		return 20.0
	case strings.Contains(desc, "power"):
		return 12.0
	case strings.Contains(desc, "switch"):
		return 5.0
	default:
		return 8.0
	}
}

func estimateBTU(desc string) float64 {
	switch {
	case strings.Contains(desc, "receiver"), strings.Contains(desc, "surround"):
		return 400
	case strings.Contains(desc, "amp"):
		return 600
	case strings.Contains(desc, "power"):
		return 50
	case strings.Contains(desc, "switch"):
		return 30
	default:
		return 100
	}
}

var _ Source = (*EstimateSource)(nil)
