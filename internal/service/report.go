package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/waichung/safetyhub"
)

// reportService implements safetyhub.WeeklyReportService.
//
// Pending weeks and report views are never cached: both are recomputed
// from the live inspection collection on every call, so a submitted report
// always reflects later edits to its week's records.
type reportService struct {
	store       safetyhub.ReportStore
	inspections safetyhub.InspectionService
	logger      *slog.Logger
	now         func() time.Time

	mu      sync.RWMutex
	reports []*safetyhub.WeeklyReport // week start descending
	loaded  bool
}

// NewWeeklyReportService creates a weekly report service backed by the
// given store. Views draw their inspection data from the inspection
// service so both layers observe the same collection.
func NewWeeklyReportService(store safetyhub.ReportStore, inspections safetyhub.InspectionService, logger *slog.Logger) safetyhub.WeeklyReportService {
	return &reportService{
		store:       store,
		inspections: inspections,
		logger:      logger,
		now:         time.Now,
	}
}

// FindReports returns all reports ordered by week start descending.
func (s *reportService) FindReports(ctx context.Context) ([]*safetyhub.WeeklyReport, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*safetyhub.WeeklyReport, len(s.reports))
	for i, r := range s.reports {
		dup := *r
		out[i] = &dup
	}
	return out, nil
}

// FindReportByID retrieves a report by its id.
func (s *reportService) FindReportByID(ctx context.Context, id string) (*safetyhub.WeeklyReport, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if r := s.findLocked(id); r != nil {
		dup := *r
		return &dup, nil
	}
	return nil, safetyhub.NotFound("Weekly report not found")
}

// PendingWeeks recomputes the weeks that have inspection activity but no
// report whose week start matches exactly, ordered by week start descending.
func (s *reportService) PendingWeeks(ctx context.Context) ([]safetyhub.PendingWeek, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	records, err := s.inspections.FindInspections(ctx)
	if err != nil {
		return nil, err
	}

	// Bucket records into weeks by week-start key.
	weeks := make(map[string]*safetyhub.PendingWeek)
	for _, rec := range records {
		week := safetyhub.WeekOf(rec.Date)
		key := week.Key()
		if pw, ok := weeks[key]; ok {
			pw.InspectionCount++
			continue
		}
		weeks[key] = &safetyhub.PendingWeek{Week: week, InspectionCount: 1}
	}

	// A week is covered only by a report whose week start matches exactly;
	// overlapping or adjacent reports do not count.
	s.mu.RLock()
	for _, r := range s.reports {
		delete(weeks, r.Week().Key())
	}
	s.mu.RUnlock()

	out := make([]safetyhub.PendingWeek, 0, len(weeks))
	for _, pw := range weeks {
		out = append(out, *pw)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.After(out[j].Start)
	})
	return out, nil
}

// BuildView materializes the live window projection for a week, attaching
// the saved report when one covers it.
func (s *reportService) BuildView(ctx context.Context, weekStart time.Time) (*safetyhub.WeeklyReportView, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	week := safetyhub.WeekOf(weekStart)

	records, err := s.inspections.FindInspections(ctx)
	if err != nil {
		return nil, err
	}

	var inWindow []*safetyhub.InspectionRecord
	atRisk := 0
	for _, rec := range records {
		if !week.Contains(rec.Date) {
			continue
		}
		inWindow = append(inWindow, rec)
		atRisk += rec.AtRiskCount()
	}
	// Oldest first: the rendered report walks the week chronologically.
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].Date.Before(inWindow[j].Date)
	})

	view := &safetyhub.WeeklyReportView{
		Week:             week,
		Inspections:      inWindow,
		Findings:         safetyhub.FlattenAtRiskFindings(inWindow),
		TotalInspections: len(inWindow),
		AtRiskFindings:   atRisk,
	}

	s.mu.RLock()
	for _, r := range s.reports {
		if r.Week().Key() == week.Key() {
			dup := *r
			view.Report = &dup
			break
		}
	}
	s.mu.RUnlock()

	return view, nil
}

// SaveReport persists the authored fields with the given status. An empty
// id derives the deterministic week-start id; saving the same week twice
// replaces the earlier report.
func (s *reportService) SaveReport(ctx context.Context, params safetyhub.SaveReportParams) (*safetyhub.WeeklyReport, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	report := &safetyhub.WeeklyReport{
		ID:              params.ID,
		WeekStart:       safetyhub.DateOnly(params.WeekStart),
		WeekEnd:         safetyhub.DateOnly(params.WeekEnd),
		ReportDate:      safetyhub.DateOnly(params.ReportDate),
		PreparedBy:      params.PreparedBy,
		PreparedByTitle: params.PreparedByTitle,
		EndorsedBy:      params.EndorsedBy,
		Summary:         params.Summary,
		Status:          params.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if report.ID == "" {
		report.ID = safetyhub.NewReportID(report.WeekStart)
	}
	if report.ReportDate.IsZero() {
		report.ReportDate = safetyhub.DateOnly(now)
	}

	if existing := s.findLocked(report.ID); existing != nil {
		report.CreatedAt = existing.CreatedAt
	}

	if err := s.store.PutReport(ctx, report); err != nil {
		return nil, safetyhub.Internal("could not save weekly report", err)
	}

	s.replaceLocked(report)
	s.sortLocked()

	s.logger.Info("weekly report saved",
		slog.String("report_id", report.ID),
		slog.String("week_start", report.Week().Key()),
		slog.String("status", string(report.Status)))

	dup := *report
	return &dup, nil
}

// DeleteReport removes a report, making its week pending again.
func (s *reportService) DeleteReport(ctx context.Context, id string) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(id) == nil {
		return safetyhub.NotFound("Weekly report not found")
	}

	if err := s.store.DeleteReport(ctx, id); err != nil {
		return safetyhub.Internal("could not delete weekly report", err)
	}

	for i, r := range s.reports {
		if r.ID == id {
			s.reports = append(s.reports[:i], s.reports[i+1:]...)
			break
		}
	}

	s.logger.Info("weekly report deleted", slog.String("report_id", id))
	return nil
}

func (s *reportService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	reports, err := s.store.GetAllReports(ctx)
	if err != nil {
		return safetyhub.Internal("could not load weekly reports", err)
	}
	s.reports = reports
	s.sortLocked()
	s.loaded = true
	return nil
}

func (s *reportService) findLocked(id string) *safetyhub.WeeklyReport {
	if id == "" {
		return nil
	}
	for _, r := range s.reports {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *reportService) replaceLocked(report *safetyhub.WeeklyReport) {
	for i, r := range s.reports {
		if r.ID == report.ID {
			s.reports[i] = report
			return
		}
	}
	s.reports = append(s.reports, report)
}

func (s *reportService) sortLocked() {
	sort.SliceStable(s.reports, func(i, j int) bool {
		return s.reports[i].WeekStart.After(s.reports[j].WeekStart)
	})
}
