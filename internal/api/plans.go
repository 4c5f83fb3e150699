package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/racklabs/rackplan/pkg/errors"
	rackio "github.com/racklabs/rackplan/pkg/io"
	"github.com/racklabs/rackplan/pkg/pipeline"
	"github.com/racklabs/rackplan/pkg/proposal"
)

// maxPlanBody caps plan request bodies. Even a proposal with hundreds
// of items is a few kilobytes of JSON.
const maxPlanBody = 1 << 20

// planRequest carries the arrangement knobs for one plan. The request
// body also holds an "items" array in the interchange format, decoded
// separately.
type planRequest struct {
	Project         string `json:"project,omitempty"`
	Capacity        int    `json:"capacity,omitempty"`
	Margin          int    `json:"margin,omitempty"`
	ForceSplit      bool   `json:"force_split,omitempty"`
	NoSplit         bool   `json:"no_split,omitempty"`
	TopBuffer       int    `json:"top_buffer,omitempty"`
	BottomBuffer    int    `json:"bottom_buffer,omitempty"`
	VentInterval    int    `json:"vent_interval,omitempty"`
	UpgradeCapacity int    `json:"upgrade_capacity,omitempty"`
}

// handleCreatePlan arranges the posted items into racks and returns
// the plan in the export format, overflow warnings included.
//
//	POST /api/v1/plans
//	{"project": "Smith Residence", "capacity": 42, "items": [...]}
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPlanBody))
	if err != nil {
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	var req planRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "malformed plan request"))
		return
	}
	items, err := rackio.ReadItems(bytes.NewReader(body))
	if err != nil {
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidItem, err, "invalid items"))
		return
	}
	if len(items) == 0 {
		s.respondError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "plan request has no items"))
		return
	}

	opts := pipeline.Options{
		Project:         req.Project,
		Capacity:        req.Capacity,
		Margin:          req.Margin,
		ForceSplit:      req.ForceSplit,
		NoSplit:         req.NoSplit,
		TopBuffer:       req.TopBuffer,
		BottomBuffer:    req.BottomBuffer,
		VentInterval:    req.VentInterval,
		UpgradeCapacity: req.UpgradeCapacity,
	}

	plan, err := s.runner.Arrange(r.Context(), opts, items, proposal.Summary{})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Buffer the document so an encoding failure can still become a
	// proper error response.
	var buf bytes.Buffer
	if err := rackio.WritePlan(plan, &buf); err != nil {
		s.respondError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode plan"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
