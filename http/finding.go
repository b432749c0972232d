package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/internal/export"
)

// collectFindings flattens the At-Risk findings across the whole record
// collection, optionally filtered by remedial action status and a free-text
// search. The status filter accepts "open" (anything not completed) or an
// exact status value; the search matches observation, remedial action,
// location, and category, case-insensitively.
func (s *Server) collectFindings(c echo.Context, statusFilter, search string) ([]safetyhub.FindingEntry, error) {
	ctx, cancel := withTimeout(c)
	defer cancel()

	records, err := s.inspectionService.FindInspections(ctx)
	if err != nil {
		return nil, err
	}

	entries := safetyhub.FlattenAtRiskFindings(records)
	if statusFilter == "" && search == "" {
		return entries, nil
	}

	search = strings.ToLower(strings.TrimSpace(search))
	filtered := make([]safetyhub.FindingEntry, 0, len(entries))
	for _, entry := range entries {
		status := safetyhub.ActionPending
		if entry.Remediation != nil {
			status = entry.Remediation.Status
		}
		switch {
		case statusFilter == "":
		case statusFilter == "open" && status.IsOpen():
		case safetyhub.ActionStatus(statusFilter) == status:
		default:
			continue
		}
		if search != "" && !matchesSearch(entry, search) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered, nil
}

func matchesSearch(entry safetyhub.FindingEntry, search string) bool {
	for _, field := range []string{entry.Observation, entry.RemedialAction, entry.Location, entry.Category} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (s *Server) handleListFindings(c echo.Context) error {
	entries, err := s.collectFindings(c, c.QueryParam("status"), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return RespondOK(c, entries)
}

func (s *Server) handleExportFindings(c echo.Context) error {
	entries, err := s.collectFindings(c, c.QueryParam("status"), c.QueryParam("q"))
	if err != nil {
		return err
	}

	body := export.FollowUpCSV(entries, language(c))

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, export.Filename(time.Now())))
	return c.Blob(http.StatusOK, export.CSVContentType, body)
}
