package safetyhub

import (
	"context"
	"strings"
	"time"
)

// ReportStatus represents the authoring state of a weekly report.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "Draft"
	ReportSubmitted ReportStatus = "Submitted"
)

// IsValid returns true if the status is a recognized value.
func (s ReportStatus) IsValid() bool {
	return s == ReportDraft || s == ReportSubmitted
}

// WeeklyReport holds the authored, persisted fields of a weekly compliance
// report. The inspection list and findings log for its week are never
// stored; they are recomputed from the live record collection on every
// read, so a submitted report always reflects later edits to its week's
// data. "Submitted" is a status flag, not a data freeze.
type WeeklyReport struct {
	ID              string       `json:"id"`
	WeekStart       time.Time    `json:"weekStart"` // Monday
	WeekEnd         time.Time    `json:"weekEnd"`   // Saturday
	ReportDate      time.Time    `json:"reportDate"`
	PreparedBy      string       `json:"preparedBy"`
	PreparedByTitle string       `json:"preparedByTitle,omitempty"`
	EndorsedBy      string       `json:"endorsedBy"`
	Summary         string       `json:"summary"`
	Status          ReportStatus `json:"status"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// NewReportID derives the report id deterministically from its week start,
// e.g. "WR-20231023". At most one report per week start is representable,
// but coverage detection matches on week start, not on id.
func NewReportID(weekStart time.Time) string {
	return "WR-" + weekStart.Format("20060102")
}

// Week returns the report's week window.
func (r *WeeklyReport) Week() Week {
	return Week{Start: DateOnly(r.WeekStart), End: DateOnly(r.WeekEnd)}
}

// PendingWeek is a week with inspection activity but no covering report.
type PendingWeek struct {
	Week

	// InspectionCount is the number of records bucketed into the week.
	InspectionCount int `json:"inspectionCount"`
}

// WeeklyReportView joins a report's persisted fields with the live,
// window-filtered projection of the record collection.
type WeeklyReportView struct {
	// Report is nil when the view is materialized for a pending week that
	// has no saved report yet.
	Report *WeeklyReport `json:"report,omitempty"`

	Week        Week                `json:"week"`
	Inspections []*InspectionRecord `json:"inspections"`

	// Findings is the flattened log of At-Risk findings in the window,
	// ordered by inspection date ascending.
	Findings []FindingEntry `json:"findings"`

	TotalInspections int `json:"totalInspections"`
	AtRiskFindings   int `json:"atRiskFindings"`
}

// SaveReportParams carries the authored fields of a report save.
// An empty ID derives the deterministic week-start id.
type SaveReportParams struct {
	ID              string
	WeekStart       time.Time
	WeekEnd         time.Time
	ReportDate      time.Time
	PreparedBy      string
	PreparedByTitle string
	EndorsedBy      string
	Summary         string
	Status          ReportStatus
}

// Validate rejects a save before any persistence is attempted.
func (p *SaveReportParams) Validate() error {
	if p.WeekStart.IsZero() || p.WeekEnd.IsZero() {
		return Invalid("Report week window is required")
	}
	if DateOnly(p.WeekEnd).Before(DateOnly(p.WeekStart)) {
		return Invalid("Report week end precedes week start")
	}
	if strings.TrimSpace(p.PreparedBy) == "" {
		return Invalid("Preparer name is required")
	}
	if !p.Status.IsValid() {
		return Invalid("Invalid report status %q", p.Status)
	}
	return nil
}

// WeeklyReportService defines operations for weekly compliance reports.
type WeeklyReportService interface {
	// FindReports returns all reports ordered by week start descending.
	FindReports(ctx context.Context) ([]*WeeklyReport, error)

	// FindReportByID retrieves a report by its id.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*WeeklyReport, error)

	// PendingWeeks recomputes the set of weeks that have inspection
	// activity but no report whose week start matches exactly, ordered
	// by week start descending. The result reflects the record and
	// report collections as of this call; nothing is cached.
	PendingWeeks(ctx context.Context) ([]PendingWeek, error)

	// BuildView materializes the live window projection for a week,
	// attaching the saved report when one covers it.
	BuildView(ctx context.Context, weekStart time.Time) (*WeeklyReportView, error)

	// SaveReport persists the authored fields with the given status.
	// Saving a draft is repeatable; submitting is terminal for the normal
	// flow but the report stays editable.
	SaveReport(ctx context.Context, params SaveReportParams) (*WeeklyReport, error)

	// DeleteReport removes a report, making its week pending again.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportStore is the persistence contract for weekly reports.
type ReportStore interface {
	// PutReport inserts or replaces a report by id.
	PutReport(ctx context.Context, report *WeeklyReport) error

	// GetAllReports returns every report ordered by week start
	// descending. Ordering is the store's responsibility.
	GetAllReports(ctx context.Context) ([]*WeeklyReport, error)

	// DeleteReport removes a report by id. Deleting a missing id is not
	// an error at the store level.
	DeleteReport(ctx context.Context, id string) error
}
