package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/waichung/safetyhub"
)

// Compile-time interface checks
var (
	_ safetyhub.WeeklyReportService = (*WeeklyReportService)(nil)
	_ safetyhub.ReportStore         = (*ReportStore)(nil)
)

// WeeklyReportService is a mock implementation of safetyhub.WeeklyReportService.
type WeeklyReportService struct {
	FindReportsFn    func(ctx context.Context) ([]*safetyhub.WeeklyReport, error)
	FindReportByIDFn func(ctx context.Context, id string) (*safetyhub.WeeklyReport, error)
	PendingWeeksFn   func(ctx context.Context) ([]safetyhub.PendingWeek, error)
	BuildViewFn      func(ctx context.Context, weekStart time.Time) (*safetyhub.WeeklyReportView, error)
	SaveReportFn     func(ctx context.Context, params safetyhub.SaveReportParams) (*safetyhub.WeeklyReport, error)
	DeleteReportFn   func(ctx context.Context, id string) error
}

func (s *WeeklyReportService) FindReports(ctx context.Context) ([]*safetyhub.WeeklyReport, error) {
	if s.FindReportsFn != nil {
		return s.FindReportsFn(ctx)
	}
	return []*safetyhub.WeeklyReport{}, nil
}

func (s *WeeklyReportService) FindReportByID(ctx context.Context, id string) (*safetyhub.WeeklyReport, error) {
	if s.FindReportByIDFn != nil {
		return s.FindReportByIDFn(ctx, id)
	}
	return nil, safetyhub.NotFound("Weekly report not found")
}

func (s *WeeklyReportService) PendingWeeks(ctx context.Context) ([]safetyhub.PendingWeek, error) {
	if s.PendingWeeksFn != nil {
		return s.PendingWeeksFn(ctx)
	}
	return []safetyhub.PendingWeek{}, nil
}

func (s *WeeklyReportService) BuildView(ctx context.Context, weekStart time.Time) (*safetyhub.WeeklyReportView, error) {
	if s.BuildViewFn != nil {
		return s.BuildViewFn(ctx, weekStart)
	}
	return &safetyhub.WeeklyReportView{
		Week:        safetyhub.WeekOf(weekStart),
		Inspections: []*safetyhub.InspectionRecord{},
		Findings:    []safetyhub.FindingEntry{},
	}, nil
}

func (s *WeeklyReportService) SaveReport(ctx context.Context, params safetyhub.SaveReportParams) (*safetyhub.WeeklyReport, error) {
	if s.SaveReportFn != nil {
		return s.SaveReportFn(ctx, params)
	}
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
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if report.ID == "" {
		report.ID = safetyhub.NewReportID(report.WeekStart)
	}
	return report, nil
}

func (s *WeeklyReportService) DeleteReport(ctx context.Context, id string) error {
	if s.DeleteReportFn != nil {
		return s.DeleteReportFn(ctx, id)
	}
	return safetyhub.NotFound("Weekly report not found")
}

// ReportStore is an in-memory safetyhub.ReportStore for service tests.
type ReportStore struct {
	mu      sync.Mutex
	reports map[string]*safetyhub.WeeklyReport

	PutErr    error
	GetErr    error
	DeleteErr error
}

// NewReportStore creates an empty in-memory store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]*safetyhub.WeeklyReport),
	}
}

func (s *ReportStore) PutReport(ctx context.Context, report *safetyhub.WeeklyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	dup := *report
	s.reports[report.ID] = &dup
	return nil
}

func (s *ReportStore) GetAllReports(ctx context.Context) ([]*safetyhub.WeeklyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	out := make([]*safetyhub.WeeklyReport, 0, len(s.reports))
	for _, r := range s.reports {
		dup := *r
		out = append(out, &dup)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeekStart.After(out[j].WeekStart)
	})
	return out, nil
}

func (s *ReportStore) DeleteReport(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.reports, id)
	return nil
}

// Get returns the stored report by id, or nil. Test helper.
func (s *ReportStore) Get(id string) *safetyhub.WeeklyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reports[id]; ok {
		dup := *r
		return &dup
	}
	return nil
}
