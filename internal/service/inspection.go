// Package service contains the business logic layer.
//
// Services keep the working set in memory, mirroring the persistent store:
// reads are served from the in-memory collection, writes go through the
// store and the collection is updated on success. The store stays the
// source of truth; after a failed write the collection is reloaded from it
// rather than patched by hand.
package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/waichung/safetyhub"
)

// inspectionService implements safetyhub.InspectionService.
type inspectionService struct {
	store  safetyhub.InspectionStore
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	records []*safetyhub.InspectionRecord // inspection date descending
	loaded  bool
}

// NewInspectionService creates an inspection service backed by the given
// store. The in-memory collection is loaded lazily on first use.
func NewInspectionService(store safetyhub.InspectionStore, logger *slog.Logger) safetyhub.InspectionService {
	return &inspectionService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// FindInspections returns all records ordered by inspection date descending.
func (s *inspectionService) FindInspections(ctx context.Context) ([]*safetyhub.InspectionRecord, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*safetyhub.InspectionRecord, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Clone()
	}
	return out, nil
}

// FindInspectionByID retrieves a record by its id.
func (s *inspectionService) FindInspectionByID(ctx context.Context, id string) (*safetyhub.InspectionRecord, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec := s.findLocked(id); rec != nil {
		return rec.Clone(), nil
	}
	return nil, safetyhub.NotFound("Inspection record not found")
}

// SubmitInspection validates and persists a record, deriving the overall
// risk level and the default summary. The record only enters the in-memory
// collection after the store accepted it.
func (s *inspectionService) SubmitInspection(ctx context.Context, params safetyhub.SubmitInspectionParams) (*safetyhub.InspectionRecord, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	record := &safetyhub.InspectionRecord{
		ID:            params.ID,
		Date:          safetyhub.DateOnly(params.Date),
		Location:      params.Location,
		InspectorName: params.InspectorName,
		Status:        safetyhub.InspectionCompleted,
		Items:         params.Items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	record.RiskLevel = record.OverallRiskLevel()

	record.OverallSummary = params.Summary
	if record.OverallSummary == "" {
		record.OverallSummary = safetyhub.DefaultSummary(record.Location, record.AtRiskCount(), params.Language)
	}

	existing := s.findLocked(params.ID)
	if record.ID == "" {
		record.ID = safetyhub.NewInspectionID(now)
		// Two submissions in the same millisecond would collide; bump
		// until the id is free so one record never shadows another.
		for bump := 1; s.findLocked(record.ID) != nil; bump++ {
			record.ID = safetyhub.NewInspectionID(now.Add(time.Duration(bump) * time.Millisecond))
		}
	}
	if existing != nil {
		record.CreatedAt = existing.CreatedAt
	}

	if err := s.store.PutInspection(ctx, record); err != nil {
		return nil, safetyhub.Internal("could not save inspection record", err)
	}

	if existing != nil {
		s.replaceLocked(record)
	} else {
		s.records = append([]*safetyhub.InspectionRecord{record}, s.records...)
	}
	s.sortLocked()

	s.logger.Info("inspection submitted",
		slog.String("record_id", record.ID),
		slog.String("location", record.Location),
		slog.Int("findings", len(record.Items)),
		slog.Int("at_risk", record.AtRiskCount()),
		slog.Bool("edit", existing != nil))

	return record.Clone(), nil
}

// PatchFinding applies a targeted edit to one finding and round-trips the
// whole record to the store. The collection is updated optimistically so a
// burst of status clicks observes its own writes; a failed persist reloads
// the collection from the store.
func (s *inspectionService) PatchFinding(ctx context.Context, recordID, findingID string, patch safetyhub.FindingPatch) (*safetyhub.InspectionRecord, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findLocked(recordID)
	if existing == nil {
		return nil, safetyhub.NotFound("Inspection record not found")
	}

	updated := existing.Clone()
	finding := updated.FindItem(findingID)
	if finding == nil {
		return nil, safetyhub.NotFound("Finding not found on record %s", recordID)
	}

	if err := patch.Apply(finding); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.now()

	s.replaceLocked(updated)

	if err := s.store.PutInspection(ctx, updated); err != nil {
		s.logger.Error("finding patch persist failed, reloading from store",
			slog.String("record_id", recordID),
			slog.String("finding_id", findingID),
			slog.String("error", err.Error()))
		if reloadErr := s.reloadLocked(ctx); reloadErr != nil {
			s.loaded = false
		}
		return nil, safetyhub.Internal("could not save finding update", err)
	}

	s.logger.Info("finding patched",
		slog.String("record_id", recordID),
		slog.String("finding_id", findingID))

	return updated.Clone(), nil
}

// DeleteInspection removes a record and its findings.
func (s *inspectionService) DeleteInspection(ctx context.Context, id string) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(id) == nil {
		return safetyhub.NotFound("Inspection record not found")
	}

	if err := s.store.DeleteInspection(ctx, id); err != nil {
		return safetyhub.Internal("could not delete inspection record", err)
	}

	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}

	s.logger.Info("inspection deleted", slog.String("record_id", id))
	return nil
}

func (s *inspectionService) ensureLoaded(ctx context.Context) error {
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
	return s.reloadLocked(ctx)
}

func (s *inspectionService) reloadLocked(ctx context.Context) error {
	records, err := s.store.GetAllInspections(ctx)
	if err != nil {
		return safetyhub.Internal("could not load inspection records", err)
	}
	s.records = records
	s.sortLocked()
	s.loaded = true
	return nil
}

func (s *inspectionService) findLocked(id string) *safetyhub.InspectionRecord {
	if id == "" {
		return nil
	}
	for _, rec := range s.records {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

func (s *inspectionService) replaceLocked(record *safetyhub.InspectionRecord) {
	for i, rec := range s.records {
		if rec.ID == record.ID {
			s.records[i] = record
			return
		}
	}
	s.records = append(s.records, record)
}

func (s *inspectionService) sortLocked() {
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Date.After(s.records[j].Date)
	})
}
