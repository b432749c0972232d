package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/waichung/safetyhub"
)

// assistTimeout bounds one narrative generation round-trip. Model calls
// are far slower than store reads.
const assistTimeout = 30 * time.Second

// AssistRiskRequest asks for a risk note and remedial action suggestion
// for one observation.
type AssistRiskRequest struct {
	Observation string `json:"observation" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// AssistSummaryRequest asks for an executive summary narrative of one
// week's inspections.
type AssistSummaryRequest struct {
	WeekStart string `json:"weekStart" validate:"required"`
}

// AssistSummaryResponse carries the generated narrative.
type AssistSummaryResponse struct {
	Summary string `json:"summary"`

	// Fallback is true when generation failed and Summary holds the
	// locale-appropriate placeholder instead of model output.
	Fallback bool `json:"fallback,omitempty"`
}

// AssistRiskResponse carries the generated assessment.
type AssistRiskResponse struct {
	safetyhub.RiskAssessment

	Fallback bool `json:"fallback,omitempty"`
}

func (s *Server) handleAssistRisk(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), assistTimeout)
	defer cancel()

	var req AssistRiskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lang := language(c)
	assessment, err := s.narrativeService.GenerateRiskAssessment(ctx, req.Observation, req.Category, lang)
	if err != nil {
		// The assist never blocks the form: serve the placeholder and let
		// the inspector type over it.
		s.log(c).Warn("risk assist fell back",
			slog.String("error", err.Error()))
		return RespondOK(c, AssistRiskResponse{
			RiskAssessment: *safetyhub.FallbackRiskAssessment(lang),
			Fallback:       true,
		})
	}

	return RespondOK(c, AssistRiskResponse{RiskAssessment: *assessment})
}

func (s *Server) handleAssistWeeklySummary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), assistTimeout)
	defer cancel()

	var req AssistSummaryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	weekStart, err := parseDate(req.WeekStart, "week start")
	if err != nil {
		return err
	}

	view, err := s.reportService.BuildView(ctx, weekStart)
	if err != nil {
		return err
	}
	if view.TotalInspections == 0 {
		return safetyhub.Invalid("No inspections recorded for that week")
	}

	lang := language(c)
	summary, err := s.narrativeService.GenerateWeeklySummary(ctx, view.Inspections, lang)
	if err != nil {
		s.log(c).Warn("weekly summary assist fell back",
			slog.String("week_start", view.Week.Key()),
			slog.String("error", err.Error()))
		return RespondOK(c, AssistSummaryResponse{
			Summary:  safetyhub.FallbackWeeklySummary(lang),
			Fallback: true,
		})
	}

	return RespondOK(c, AssistSummaryResponse{Summary: summary})
}
