package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/racklabs/rackplan/pkg/cache"
	"github.com/racklabs/rackplan/pkg/catalog"
	apperrors "github.com/racklabs/rackplan/pkg/errors"
	"github.com/racklabs/rackplan/pkg/pipeline"
)

// handleSpecLookup answers a single catalog query.
//
//	GET /api/v1/catalog/specs?brand=Denon&model=AVR-X3800H
//
// Optional parameters: part_number adds lookup signal, refresh=true
// bypasses cached specs, no_ai=true restricts the lookup to catalogs.
// Unknown products return 404; the estimate fallback only applies when
// arranging, never here, so a miss stays a miss.
func (s *Server) handleSpecLookup(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := catalog.Query{
		Brand:      strings.TrimSpace(params.Get("brand")),
		Model:      strings.TrimSpace(params.Get("model")),
		PartNumber: strings.TrimSpace(params.Get("part_number")),
	}
	if q.Brand == "" || q.Model == "" {
		s.respondError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "brand and model query parameters are required"))
		return
	}

	lookup := s.runner.Sources
	lookup.Estimate = nil
	resolver := catalog.NewResolver(catalog.ResolverOptions{
		Cache:   s.runner.Cache,
		Keyer:   s.runner.Keyer,
		TTL:     cache.TTLSpec,
		Refresh: params.Get("refresh") == "true",
	}, lookup.Chain(pipeline.Options{NoAI: params.Get("no_ai") == "true"})...)

	spec, err := resolver.Resolve(r.Context(), q)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeProductNotFound, err, "no spec for %s %s", q.Brand, q.Model))
			return
		}
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeCatalog, err, "spec lookup failed"))
		return
	}
	writeJSON(w, http.StatusOK, spec)
}
