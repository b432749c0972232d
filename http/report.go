package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/waichung/safetyhub"
)

// SaveReportRequest is the request payload for saving a weekly report.
// An empty ID derives the deterministic week-start id.
type SaveReportRequest struct {
	ID              string `json:"id"`
	WeekStart       string `json:"weekStart" validate:"required"`
	WeekEnd         string `json:"weekEnd" validate:"required"`
	ReportDate      string `json:"reportDate"`
	PreparedBy      string `json:"preparedBy" validate:"required"`
	PreparedByTitle string `json:"preparedByTitle"`
	EndorsedBy      string `json:"endorsedBy"`
	Summary         string `json:"summary"`
	Status          string `json:"status" validate:"required,oneof=Draft Submitted"`
}

func (s *Server) handleListReports(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	reports, err := s.reportService.FindReports(ctx)
	if err != nil {
		return err
	}
	return RespondOK(c, reports)
}

func (s *Server) handleGetReport(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	report, err := s.reportService.FindReportByID(ctx, id)
	if err != nil {
		return err
	}
	return RespondOK(c, report)
}

func (s *Server) handlePendingWeeks(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	pending, err := s.reportService.PendingWeeks(ctx)
	if err != nil {
		return err
	}
	return RespondOK(c, pending)
}

func (s *Server) handleReportView(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	weekStartParam := c.QueryParam("weekStart")
	if weekStartParam == "" {
		return safetyhub.Invalid("weekStart query parameter is required")
	}
	weekStart, err := parseDate(weekStartParam, "week start")
	if err != nil {
		return err
	}

	view, err := s.reportService.BuildView(ctx, weekStart)
	if err != nil {
		return err
	}
	return RespondOK(c, view)
}

func (s *Server) handleSaveReport(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req SaveReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	weekStart, err := parseDate(req.WeekStart, "week start")
	if err != nil {
		return err
	}
	weekEnd, err := parseDate(req.WeekEnd, "week end")
	if err != nil {
		return err
	}

	var reportDate time.Time
	if req.ReportDate != "" {
		if reportDate, err = parseDate(req.ReportDate, "report date"); err != nil {
			return err
		}
	}

	report, err := s.reportService.SaveReport(ctx, safetyhub.SaveReportParams{
		ID:              req.ID,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		ReportDate:      reportDate,
		PreparedBy:      req.PreparedBy,
		PreparedByTitle: req.PreparedByTitle,
		EndorsedBy:      req.EndorsedBy,
		Summary:         req.Summary,
		Status:          safetyhub.ReportStatus(req.Status),
	})
	if err != nil {
		return err
	}

	// Notify after the save landed. A failed email never fails the save;
	// the report is already persisted.
	if report.Status == safetyhub.ReportSubmitted && len(s.reportRecipients) > 0 {
		s.notifyReportSubmitted(c, report)
	}

	return RespondOK(c, report)
}

func (s *Server) notifyReportSubmitted(c echo.Context, report *safetyhub.WeeklyReport) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), DefaultTimeout)
	defer cancel()

	reportURL := fmt.Sprintf("%s/reports/%s", s.reportBaseURL, report.ID)
	if err := s.emailService.SendReportSubmitted(ctx, s.reportRecipients, report, reportURL); err != nil {
		s.log(c).Error("report submission notice failed",
			slog.String("report_id", report.ID),
			slog.String("error", err.Error()))
	}
}

func (s *Server) handleDeleteReport(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.reportService.DeleteReport(ctx, id); err != nil {
		return err
	}
	return RespondNoContent(c)
}
