package http

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/waichung/safetyhub"
)

// SubmitInspectionRequest is the request payload for submitting an
// inspection record. A non-empty ID edits the existing record in place.
type SubmitInspectionRequest struct {
	ID            string              `json:"id"`
	Date          string              `json:"date" validate:"required"`
	Location      string              `json:"location" validate:"required"`
	InspectorName string              `json:"inspectorName" validate:"required"`
	Items         []safetyhub.Finding `json:"items" validate:"required,min=1"`
	Summary       string              `json:"summary"`
}

func (s *Server) handleListInspections(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	records, err := s.inspectionService.FindInspections(ctx)
	if err != nil {
		return err
	}
	return RespondOK(c, records)
}

func (s *Server) handleGetInspection(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	record, err := s.inspectionService.FindInspectionByID(ctx, id)
	if err != nil {
		return err
	}
	return RespondOK(c, record)
}

func (s *Server) handleSubmitInspection(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req SubmitInspectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	date, err := parseDate(req.Date, "inspection date")
	if err != nil {
		return err
	}

	record, err := s.inspectionService.SubmitInspection(ctx, safetyhub.SubmitInspectionParams{
		ID:            req.ID,
		Date:          date,
		Location:      req.Location,
		InspectorName: req.InspectorName,
		Items:         req.Items,
		Summary:       req.Summary,
		Language:      language(c),
	})
	if err != nil {
		return err
	}

	s.log(c).Info("inspection record submitted",
		slog.String("record_id", record.ID),
		slog.String("risk_level", string(record.RiskLevel)))

	if req.ID == "" {
		return RespondCreated(c, record)
	}
	return RespondOK(c, record)
}

func (s *Server) handleDeleteInspection(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.inspectionService.DeleteInspection(ctx, id); err != nil {
		return err
	}
	return RespondNoContent(c)
}

// PatchFindingRequest updates exactly one aspect of a finding: either the
// remedial action status or the proposed target date. An explicit null
// target date clears it, which is why the field is kept raw.
type PatchFindingRequest struct {
	ActionStatus *safetyhub.ActionStatus `json:"actionStatus,omitempty"`
	TargetDate   json.RawMessage         `json:"targetDate,omitempty"`
}

func (req *PatchFindingRequest) patch() (safetyhub.FindingPatch, error) {
	if req.ActionStatus != nil && req.TargetDate != nil {
		return nil, safetyhub.Invalid("Patch exactly one of actionStatus or targetDate")
	}
	if req.ActionStatus != nil {
		return safetyhub.ActionStatusPatch{Status: *req.ActionStatus}, nil
	}
	if req.TargetDate != nil {
		if bytes.Equal(bytes.TrimSpace(req.TargetDate), []byte("null")) {
			return safetyhub.TargetDatePatch{}, nil
		}
		var raw string
		if err := json.Unmarshal(req.TargetDate, &raw); err != nil {
			return nil, safetyhub.Invalid("Invalid target date")
		}
		date, err := parseDate(raw, "target date")
		if err != nil {
			return nil, err
		}
		return safetyhub.TargetDatePatch{Date: &date}, nil
	}
	return nil, safetyhub.Invalid("Patch requires actionStatus or targetDate")
}

func (s *Server) handlePatchFinding(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	recordID, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	findingID, err := requireParam(c, "findingId")
	if err != nil {
		return err
	}

	var req PatchFindingRequest
	if err := c.Bind(&req); err != nil {
		return safetyhub.Invalid("Invalid request body")
	}

	patch, err := req.patch()
	if err != nil {
		return err
	}

	record, err := s.inspectionService.PatchFinding(ctx, recordID, findingID, patch)
	if err != nil {
		return err
	}
	return RespondOK(c, record)
}
