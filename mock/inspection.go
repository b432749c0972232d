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
	_ safetyhub.InspectionService = (*InspectionService)(nil)
	_ safetyhub.InspectionStore   = (*InspectionStore)(nil)
)

// InspectionService is a mock implementation of safetyhub.InspectionService.
type InspectionService struct {
	FindInspectionsFn    func(ctx context.Context) ([]*safetyhub.InspectionRecord, error)
	FindInspectionByIDFn func(ctx context.Context, id string) (*safetyhub.InspectionRecord, error)
	SubmitInspectionFn   func(ctx context.Context, params safetyhub.SubmitInspectionParams) (*safetyhub.InspectionRecord, error)
	PatchFindingFn       func(ctx context.Context, recordID, findingID string, patch safetyhub.FindingPatch) (*safetyhub.InspectionRecord, error)
	DeleteInspectionFn   func(ctx context.Context, id string) error
}

func (s *InspectionService) FindInspections(ctx context.Context) ([]*safetyhub.InspectionRecord, error) {
	if s.FindInspectionsFn != nil {
		return s.FindInspectionsFn(ctx)
	}
	return []*safetyhub.InspectionRecord{}, nil
}

func (s *InspectionService) FindInspectionByID(ctx context.Context, id string) (*safetyhub.InspectionRecord, error) {
	if s.FindInspectionByIDFn != nil {
		return s.FindInspectionByIDFn(ctx, id)
	}
	return nil, safetyhub.NotFound("Inspection record not found")
}

func (s *InspectionService) SubmitInspection(ctx context.Context, params safetyhub.SubmitInspectionParams) (*safetyhub.InspectionRecord, error) {
	if s.SubmitInspectionFn != nil {
		return s.SubmitInspectionFn(ctx, params)
	}
	record := &safetyhub.InspectionRecord{
		ID:            params.ID,
		Date:          safetyhub.DateOnly(params.Date),
		Location:      params.Location,
		InspectorName: params.InspectorName,
		Status:        safetyhub.InspectionCompleted,
		Items:         params.Items,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if record.ID == "" {
		record.ID = safetyhub.NewInspectionID(time.Now())
	}
	record.RiskLevel = record.OverallRiskLevel()
	return record, nil
}

func (s *InspectionService) PatchFinding(ctx context.Context, recordID, findingID string, patch safetyhub.FindingPatch) (*safetyhub.InspectionRecord, error) {
	if s.PatchFindingFn != nil {
		return s.PatchFindingFn(ctx, recordID, findingID, patch)
	}
	return nil, safetyhub.NotFound("Inspection record not found")
}

func (s *InspectionService) DeleteInspection(ctx context.Context, id string) error {
	if s.DeleteInspectionFn != nil {
		return s.DeleteInspectionFn(ctx, id)
	}
	return safetyhub.NotFound("Inspection record not found")
}

// InspectionStore is an in-memory safetyhub.InspectionStore for service
// tests. PutErr and GetErr force the next corresponding call to fail.
type InspectionStore struct {
	mu      sync.Mutex
	records map[string]*safetyhub.InspectionRecord

	PutErr    error
	GetErr    error
	DeleteErr error
}

// NewInspectionStore creates an empty in-memory store.
func NewInspectionStore() *InspectionStore {
	return &InspectionStore{
		records: make(map[string]*safetyhub.InspectionRecord),
	}
}

func (s *InspectionStore) PutInspection(ctx context.Context, record *safetyhub.InspectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	s.records[record.ID] = record.Clone()
	return nil
}

func (s *InspectionStore) GetAllInspections(ctx context.Context) ([]*safetyhub.InspectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	out := make([]*safetyhub.InspectionRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *InspectionStore) DeleteInspection(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.records, id)
	return nil
}

// Get returns the stored record by id, or nil. Test helper.
func (s *InspectionStore) Get(id string) *safetyhub.InspectionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[id]; ok {
		return rec.Clone()
	}
	return nil
}
