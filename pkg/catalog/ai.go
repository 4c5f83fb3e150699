package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// aiSystemPrompt primes the model for the product-spec task. The answer
// must be machine-parseable, hence the JSON-only instruction.
const aiSystemPrompt = "You are an expert AV systems integrator with deep knowledge of " +
	"professional audio/video equipment specifications. Always respond with valid JSON only."

// aiPromptTemplate carries the rackmount guidance that keeps the model
// from inventing heights for wall-mounted gear. The %s slot receives
// the numbered product list.
const aiPromptTemplate = `You are an expert AV systems integrator. I need specifications for rack-mountable AV equipment.

For each product below, provide:
1. rack_units: Height in rack units (U). Standard rack unit is 1.75 inches.
2. weight: Approximate weight in pounds (lbs)
3. btu: Heat output in BTU/hour (roughly watts × 3.41)
4. connections: Object with input/output connection types

Products to analyze:
%s

IMPORTANT - RACK-MOUNTABLE EQUIPMENT (is_rack_mountable: true):
- Network switches (Ubiquiti, Araknis, Pakedge, Cisco): 1-2U
- AV receivers and processors: 2-4U
- Amplifiers (Savant PAV, Sonance, Crown): 1-3U
- Power conditioners/UPS (WattBox, Furman, Panamax): 1-3U
- Lutron HomeWorks Processors (HQP6, HQP7): 6-7U (these are LARGE!)
- Lutron repeaters (HQR-REP): 0.5U (mounts on rail)
- Savant Smart Controllers (SSC): 1U (with rack mount kit)
- Savant Climate Controllers (CLI-8000): 1U
- Savant Servers (SVR): 2U
- Savant Rack Mount Brackets (RCK, RMB): 2U
- Control4 controllers: 1U
- Routers and firewalls: 1U
- Patch panels: 1-2U
- Middle Atlantic shelves, blanks, vents (SA, BR, UMS): 1-2U

NOT RACK-MOUNTABLE (is_rack_mountable: false, rack_units: 0):
- Speakers, subwoofers, soundbars
- Cables, connectors, wire
- Keypads, touchscreens (wall-mounted)
- TVs, projectors, screens
- Wireless access points (E7, UAP - ceiling/wall mounted)
- Thermostats (CLI-THFM1 - wall mounted)
- Hard drives (UACC-HDD) - they go IN a device
- SFP modules (UACC-UPLINK) - they plug INTO a switch
- Software licenses (SSL)
- Power supplies (PWR, QSPS) - they go with dimmers, not rack

Be INCLUSIVE - if equipment CAN be rack mounted with appropriate brackets, include it.

Respond with ONLY valid JSON in this exact format:
{
  "products": [
    {
      "brand": "Brand Name",
      "model": "Model Number",
      "rack_units": 2,
      "weight": 15.0,
      "btu": 200,
      "is_rack_mountable": true,
      "connections": {
        "hdmi_in": 4,
        "hdmi_out": 2,
        "audio_out": "7.1 analog",
        "network": "RJ45"
      }
    }
  ]
}
`

// AIOptions configure an AISource.
type AIOptions struct {
	APIKey string
	Model  string // defaults to gpt-4o
}

// AISource infers specs for products no catalog knows about by asking a
// chat model. Lookups are batched: one completion covers any number of
// products, and the response is a single JSON document.
//
// The model decides whether a product is rack-mountable at all, so an
// AISource answer with RackMountable false is still a successful
// resolution.
type AISource struct {
	client *openai.Client
	model  shared.ChatModel
}

// NewAISource creates an AISource using the given API key.
func NewAISource(opts AIOptions) *AISource {
	client := openai.NewClient(option.WithAPIKey(opts.APIKey))
	model := shared.ChatModelGPT4o
	if opts.Model != "" {
		model = shared.ChatModel(opts.Model)
	}
	return &AISource{client: &client, model: model}
}

// Name identifies the source as "ai".
func (s *AISource) Name() string { return "ai" }

// Lookup resolves a single product. It is a batch of one; prefer
// [AISource.LookupBatch] when resolving many products.
func (s *AISource) Lookup(ctx context.Context, q Query) (*Spec, error) {
	specs, err := s.LookupBatch(ctx, []Query{q})
	if err != nil {
		return nil, err
	}
	spec, ok := specs[q.Key()]
	if !ok {
		return nil, ErrNotFound
	}
	return spec, nil
}

// LookupBatch sends every query in one completion and returns the specs
// keyed by [Query.Key]. Products the model leaves out of its answer are
// absent from the map.
func (s *AISource) LookupBatch(ctx context.Context, queries []Query) (map[string]*Spec, error) {
	if len(queries) == 0 {
		return map[string]*Spec{}, nil
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(aiSystemPrompt),
			openai.UserMessage(buildPrompt(queries)),
		},
		Temperature: openai.Float(0.1),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrNetwork)
	}
	return parseSpecsResponse(resp.Choices[0].Message.Content)
}

// buildPrompt numbers the products and slots them into the guidance
// template.
func buildPrompt(queries []Query) string {
	lines := make([]string, len(queries))
	for i, q := range queries {
		lines[i] = fmt.Sprintf("%d. %s %s - %s - %s", i+1, q.Brand, q.Model, q.Category, q.Name)
	}
	return fmt.Sprintf(aiPromptTemplate, strings.Join(lines, "\n"))
}

// aiProduct mirrors one product object in the model's JSON answer.
// Pointer fields distinguish absent values from explicit zeros so the
// defaults below apply only when the model omits a field.
type aiProduct struct {
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Units         *float64        `json:"rack_units"`
	Weight        *float64        `json:"weight"`
	BTU           *float64        `json:"btu"`
	RackMountable *bool           `json:"is_rack_mountable"`
	Connections   json.RawMessage `json:"connections"`
}

// parseSpecsResponse decodes the {"products": [...]} document. Missing
// fields fall back to 1U, 10 lbs, 100 BTU, rack-mountable.
func parseSpecsResponse(content string) (map[string]*Spec, error) {
	var payload struct {
		Products []aiProduct `json:"products"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse ai response: %w", err)
	}

	specs := make(map[string]*Spec, len(payload.Products))
	for _, p := range payload.Products {
		key := strings.ToLower(strings.TrimSpace(p.Brand + " " + p.Model))
		spec := &Spec{
			Units:         1,
			Weight:        10.0,
			BTU:           100,
			RackMountable: true,
			Source:        "ai",
		}
		if p.Units != nil {
			spec.Units = *p.Units
		}
		if p.Weight != nil {
			spec.Weight = *p.Weight
		}
		if p.BTU != nil {
			spec.BTU = *p.BTU
		}
		if p.RackMountable != nil {
			spec.RackMountable = *p.RackMountable
		}
		if len(p.Connections) > 0 && string(p.Connections) != "null" {
			spec.Connections = string(p.Connections)
		}
		specs[key] = spec
	}
	return specs, nil
}

var _ BatchSource = (*AISource)(nil)
