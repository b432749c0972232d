package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/mock"
)

// week of Mon 2023-10-23 .. Sat 2023-10-28
var (
	week1Monday = time.Date(2023, 10, 23, 0, 0, 0, 0, time.UTC)
	week2Monday = time.Date(2023, 10, 30, 0, 0, 0, 0, time.UTC)
)

func newReportFixture(t *testing.T) (safetyhub.WeeklyReportService, safetyhub.InspectionService, *mock.ReportStore) {
	t.Helper()
	reportStore := mock.NewReportStore()
	inspections := NewInspectionService(mock.NewInspectionStore(), testLogger())
	reports := NewWeeklyReportService(reportStore, inspections, testLogger())
	return reports, inspections, reportStore
}

func submitOn(t *testing.T, svc safetyhub.InspectionService, date time.Time, findings ...safetyhub.Finding) *safetyhub.InspectionRecord {
	t.Helper()
	if len(findings) == 0 {
		findings = []safetyhub.Finding{safeFinding("1")}
	}
	record, err := svc.SubmitInspection(context.Background(), safetyhub.SubmitInspectionParams{
		Date:          date,
		Location:      "生產線 A",
		InspectorName: "陳大文",
		Items:         findings,
	})
	require.NoError(t, err)
	return record
}

func TestReportService_SaveReport(t *testing.T) {
	ctx := context.Background()

	t.Run("DerivesWeekStartID", func(t *testing.T) {
		reports, _, store := newReportFixture(t)

		report, err := reports.SaveReport(ctx, safetyhub.SaveReportParams{
			WeekStart:  week1Monday,
			WeekEnd:    week1Monday.AddDate(0, 0, 5),
			PreparedBy: "陳大文",
			EndorsedBy: "陳經理",
			Status:     safetyhub.ReportDraft,
		})
		require.NoError(t, err)

		assert.Equal(t, "WR-20231023", report.ID)
		assert.False(t, report.ReportDate.IsZero(), "report date defaults to today")
		require.NotNil(t, store.Get("WR-20231023"))
	})

	t.Run("ResaveKeepsCreatedAt", func(t *testing.T) {
		reports, _, _ := newReportFixture(t)

		draft, err := reports.SaveReport(ctx, safetyhub.SaveReportParams{
			WeekStart:  week1Monday,
			WeekEnd:    week1Monday.AddDate(0, 0, 5),
			PreparedBy: "陳大文",
			Status:     safetyhub.ReportDraft,
		})
		require.NoError(t, err)

		submitted, err := reports.SaveReport(ctx, safetyhub.SaveReportParams{
			ID:         draft.ID,
			WeekStart:  week1Monday,
			WeekEnd:    week1Monday.AddDate(0, 0, 5),
			PreparedBy: "陳大文",
			Summary:    "Final summary",
			Status:     safetyhub.ReportSubmitted,
		})
		require.NoError(t, err)

		assert.Equal(t, draft.ID, submitted.ID)
		assert.True(t, submitted.CreatedAt.Equal(draft.CreatedAt))
		assert.Equal(t, safetyhub.ReportSubmitted, submitted.Status)

		all, err := reports.FindReports(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("RejectsMissingPreparer", func(t *testing.T) {
		reports, _, _ := newReportFixture(t)

		_, err := reports.SaveReport(ctx, safetyhub.SaveReportParams{
			WeekStart: week1Monday,
			WeekEnd:   week1Monday.AddDate(0, 0, 5),
			Status:    safetyhub.ReportDraft,
		})
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(err))
	})
}

func TestReportService_PendingWeeks(t *testing.T) {
	ctx := context.Background()
	reports, inspections, _ := newReportFixture(t)

	// Two records in week 1, one in week 2.
	submitOn(t, inspections, week1Monday)
	submitOn(t, inspections, week1Monday.AddDate(0, 0, 3))
	submitOn(t, inspections, week2Monday.AddDate(0, 0, 1))

	pending, err := reports.PendingWeeks(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	// Week start descending.
	assert.True(t, pending[0].Start.Equal(week2Monday))
	assert.Equal(t, 1, pending[0].InspectionCount)
	assert.True(t, pending[1].Start.Equal(week1Monday))
	assert.Equal(t, 2, pending[1].InspectionCount)

	// Saving a report for week 1 removes it from the pending set.
	report, err := reports.SaveReport(ctx, safetyhub.SaveReportParams{
		WeekStart:  week1Monday,
		WeekEnd:    week1Monday.AddDate(0, 0, 5),
		PreparedBy: "陳大文",
		Status:     safetyhub.ReportSubmitted,
	})
	require.NoError(t, err)

	pending, err = reports.PendingWeeks(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Start.Equal(week2Monday))

	// Deleting the report makes its week pending again.
	require.NoError(t, reports.DeleteReport(ctx, report.ID))
	pending, err = reports.PendingWeeks(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestReportService_PendingWeeksSundayBucketsBack(t *testing.T) {
	ctx := context.Background()
	reports, inspections, _ := newReportFixture(t)

	// Sunday 2023-10-29 belongs to the week that started Monday 2023-10-23.
	sunday := time.Date(2023, 10, 29, 0, 0, 0, 0, time.UTC)
	submitOn(t, inspections, sunday)

	pending, err := reports.PendingWeeks(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Start.Equal(week1Monday))
}

func TestReportService_BuildView(t *testing.T) {
	ctx := context.Background()
	reports, inspections, _ := newReportFixture(t)

	early := submitOn(t, inspections, week1Monday,
		atRiskFinding("a", "Missing guard", safetyhub.LikelihoodLikely, safetyhub.SeverityMajor))
	late := submitOn(t, inspections, week1Monday.AddDate(0, 0, 4),
		atRiskFinding("b", "Oil spill", safetyhub.LikelihoodPossible, safetyhub.SeverityMinor),
		safeFinding("c"))
	submitOn(t, inspections, week2Monday) // outside the window

	t.Run("PendingWeek", func(t *testing.T) {
		view, err := reports.BuildView(ctx, week1Monday)
		require.NoError(t, err)

		assert.Nil(t, view.Report, "no saved report yet")
		assert.Equal(t, 2, view.TotalInspections)
		assert.Equal(t, 2, view.AtRiskFindings)
		require.Len(t, view.Inspections, 2)
		assert.Equal(t, early.ID, view.Inspections[0].ID, "chronological within the week")
		assert.Equal(t, late.ID, view.Inspections[1].ID)

		require.Len(t, view.Findings, 2)
		assert.Equal(t, "a", view.Findings[0].ID, "findings log ordered by inspection date ascending")
		assert.Equal(t, "b", view.Findings[1].ID)
	})

	t.Run("CoveredWeekReflectsLaterEdits", func(t *testing.T) {
		_, err := reports.SaveReport(ctx, safetyhub.SaveReportParams{
			WeekStart:  week1Monday,
			WeekEnd:    week1Monday.AddDate(0, 0, 5),
			PreparedBy: "陳大文",
			Status:     safetyhub.ReportSubmitted,
		})
		require.NoError(t, err)

		// Close out one finding after submission.
		_, err = inspections.PatchFinding(ctx, early.ID, "a", safetyhub.ActionStatusPatch{
			Status: safetyhub.ActionCompleted,
		})
		require.NoError(t, err)

		view, err := reports.BuildView(ctx, week1Monday)
		require.NoError(t, err)

		require.NotNil(t, view.Report)
		assert.Equal(t, "WR-20231023", view.Report.ID)

		// The view is computed live, so the patched status shows through
		// even though the report was already submitted.
		require.Len(t, view.Findings, 2)
		assert.Equal(t, safetyhub.ActionCompleted, view.Findings[0].Remediation.Status)
	})

	t.Run("AnyDateInWeekResolvesSameView", func(t *testing.T) {
		fromWednesday, err := reports.BuildView(ctx, week1Monday.AddDate(0, 0, 2))
		require.NoError(t, err)
		assert.True(t, fromWednesday.Week.Start.Equal(week1Monday))
		assert.Equal(t, 2, fromWednesday.TotalInspections)
	})
}

func TestReportService_DeleteReport(t *testing.T) {
	ctx := context.Background()
	reports, _, store := newReportFixture(t)

	report, err := reports.SaveReport(ctx, safetyhub.SaveReportParams{
		WeekStart:  week1Monday,
		WeekEnd:    week1Monday.AddDate(0, 0, 5),
		PreparedBy: "陳大文",
		Status:     safetyhub.ReportDraft,
	})
	require.NoError(t, err)

	require.NoError(t, reports.DeleteReport(ctx, report.ID))
	assert.Nil(t, store.Get(report.ID))

	err = reports.DeleteReport(ctx, report.ID)
	assert.Equal(t, safetyhub.ENOTFOUND, safetyhub.ErrorCode(err))
}
