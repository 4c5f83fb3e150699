package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/racklabs/rackplan/pkg/proposal"
)

var (
	// ErrNotFound is returned when no source knows the product.
	ErrNotFound = errors.New("product not found")

	// ErrNetwork is returned for HTTP and API failures (timeouts,
	// connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Query identifies one product to look up. Brand and Model form the
// canonical identity; PartNumber, Category, and Name give sources extra
// signal when the model alone is ambiguous.
type Query struct {
	Brand      string
	Model      string
	PartNumber string
	Category   string
	Name       string
}

// QueryFromProduct builds the lookup query for a parsed proposal row.
func QueryFromProduct(p proposal.Product) Query {
	return Query{
		Brand:      p.Brand,
		Model:      p.Model,
		PartNumber: p.PartNumber,
		Category:   p.Category,
		Name:       p.Name,
	}
}

// Key returns the canonical lookup key, "brand model" lowercased and
// trimmed. Resolved specs are keyed by this value.
func (q Query) Key() string {
	return strings.ToLower(strings.TrimSpace(q.Brand + " " + q.Model))
}

// ModelNumber returns the identifier used for catalog lookups: the part
// number when present, the model otherwise.
func (q Query) ModelNumber() string {
	if q.PartNumber != "" {
		return q.PartNumber
	}
	return q.Model
}

// Source resolves product specs from one backing store. Implementations
// return [ErrNotFound] when the product is unknown to them; any other
// error means the source itself failed and the caller should move on to
// the next one.
//
// Sources must be safe for concurrent use.
type Source interface {
	// Lookup resolves the spec for a single product.
	Lookup(ctx context.Context, q Query) (*Spec, error)

	// Name identifies the source in logs, hooks, and Spec.Source.
	Name() string
}

// BatchSource is implemented by sources that can resolve many products
// in one round trip. The returned map is keyed by [Query.Key]; products
// the source does not know are simply absent.
type BatchSource interface {
	Source
	LookupBatch(ctx context.Context, queries []Query) (map[string]*Spec, error)
}

// Importer is implemented by writable catalog sources. Import upserts
// entries keyed by brand and model and reports how many were written.
type Importer interface {
	Import(ctx context.Context, entries []Entry) (int, error)
}
