package safetyhub

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// InspectionStatus represents the lifecycle state of an inspection record.
// Records are only ever persisted after the walk-through is finished, so
// completed is currently the sole state; the type exists so stored records
// keep a stable shape if an in-progress flow is added later.
type InspectionStatus string

const (
	InspectionCompleted InspectionStatus = "Completed"
)

// InspectionRecord is one dated, located inspection visit comprising one or
// more findings. Finding order is insertion order and drives numbering in
// rendered reports.
type InspectionRecord struct {
	ID             string           `json:"id"`
	Date           time.Time        `json:"date"`
	Location       string           `json:"location"`
	InspectorName  string           `json:"inspectorName"`
	Status         InspectionStatus `json:"status"`
	Items          []Finding        `json:"items"`
	RiskLevel      RiskLevel        `json:"riskLevel"`
	OverallSummary string           `json:"overallSummary"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// NewInspectionID returns a time-derived record id token, e.g. "INS-1715421000".
func NewInspectionID(now time.Time) string {
	return "INS-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// AtRiskCount returns the number of At-Risk findings on the record.
func (r *InspectionRecord) AtRiskCount() int {
	n := 0
	for i := range r.Items {
		if r.Items[i].Status == ComplianceAtRisk {
			n++
		}
	}
	return n
}

// OverallRiskLevel derives the record-level band: the highest band present
// among At-Risk findings, or Low when the record has none.
func (r *InspectionRecord) OverallRiskLevel() RiskLevel {
	levels := make([]RiskLevel, 0, len(r.Items))
	for i := range r.Items {
		if r.Items[i].Status == ComplianceAtRisk {
			levels = append(levels, r.Items[i].RiskLevelOrLow())
		}
	}
	return MaxRiskLevel(levels)
}

// FindItem returns the finding with the given id, or nil.
func (r *InspectionRecord) FindItem(findingID string) *Finding {
	for i := range r.Items {
		if r.Items[i].ID == findingID {
			return &r.Items[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the record. Services hand out clones so
// callers can never mutate the in-memory collection behind the lock.
func (r *InspectionRecord) Clone() *InspectionRecord {
	dup := *r
	dup.Items = make([]Finding, len(r.Items))
	for i := range r.Items {
		item := r.Items[i]
		if item.Risk != nil {
			risk := *item.Risk
			item.Risk = &risk
		}
		if item.Remediation != nil {
			rem := *item.Remediation
			if rem.TargetDate != nil {
				d := *rem.TargetDate
				rem.TargetDate = &d
			}
			item.Remediation = &rem
		}
		dup.Items[i] = item
	}
	return &dup
}

// DefaultSummary is the templated fallback narrative for a record. An
// authored or AI-generated summary replaces it when present.
func DefaultSummary(location string, atRiskCount int, lang Language) string {
	if lang == LangChinese {
		return fmt.Sprintf("地點：%s。發現 %d 項違規事項。", location, atRiskCount)
	}
	return fmt.Sprintf("Location: %s. Found %d non-compliance items.", location, atRiskCount)
}

// SubmitInspectionParams carries a validated inspection submission.
// A non-empty ID marks an edit-in-place of an existing record.
type SubmitInspectionParams struct {
	ID            string
	Date          time.Time
	Location      string
	InspectorName string
	Items         []Finding

	// Summary overrides the templated default when non-empty.
	Summary string

	// Language selects the default summary template.
	Language Language
}

// Validate rejects a submission before any persistence is attempted.
func (p *SubmitInspectionParams) Validate() error {
	if len(p.Items) == 0 {
		return Invalid("Inspection requires at least one finding")
	}
	if strings.TrimSpace(p.Location) == "" {
		return Invalid("Location is required")
	}
	if strings.TrimSpace(p.InspectorName) == "" {
		return Invalid("Inspector name is required")
	}
	if p.Date.IsZero() {
		return Invalid("Inspection date is required")
	}
	for i := range p.Items {
		if err := p.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InspectionService defines operations for managing inspection records.
type InspectionService interface {
	// FindInspections returns all records ordered by inspection date
	// descending (most recent first).
	FindInspections(ctx context.Context) ([]*InspectionRecord, error)

	// FindInspectionByID retrieves a record by its id.
	// Returns ENOTFOUND if the record does not exist.
	FindInspectionByID(ctx context.Context, id string) (*InspectionRecord, error)

	// SubmitInspection validates and persists a record, deriving the
	// overall risk level and default summary. A params.ID matching an
	// existing record replaces it in place; otherwise a new id is
	// assigned. Returns EINVALID for an empty finding list.
	SubmitInspection(ctx context.Context, params SubmitInspectionParams) (*InspectionRecord, error)

	// PatchFinding replaces a single finding's remediation status or
	// target date, leaving sibling findings and record fields untouched,
	// and round-trips the whole record to the store.
	// Returns ENOTFOUND if the record or finding does not exist.
	PatchFinding(ctx context.Context, recordID, findingID string, patch FindingPatch) (*InspectionRecord, error)

	// DeleteInspection removes a record and its findings.
	// Returns ENOTFOUND if the record does not exist.
	DeleteInspection(ctx context.Context, id string) error
}

// InspectionStore is the persistence contract for inspection records: a
// keyed document store with whole-record writes. Stores have no partial
// update primitive; every mutation writes the full record.
type InspectionStore interface {
	// PutInspection inserts or replaces a record by id.
	PutInspection(ctx context.Context, record *InspectionRecord) error

	// GetAllInspections returns every record ordered by inspection date
	// descending. Ordering is the store's responsibility.
	GetAllInspections(ctx context.Context) ([]*InspectionRecord, error)

	// DeleteInspection removes a record by id. Deleting a missing id is
	// not an error at the store level.
	DeleteInspection(ctx context.Context, id string) error
}

// FindingEntry is a finding flattened with its parent record's context, used
// by the follow-up view, the weekly findings log, and the CSV export.
type FindingEntry struct {
	Finding

	InspectionID   string    `json:"inspectionId"`
	InspectionDate time.Time `json:"inspectionDate"`
	Location       string    `json:"location"`
	InspectorName  string    `json:"inspectorName"`
}

// FlattenAtRiskFindings flattens the At-Risk findings of the given records,
// ordered by inspection date ascending and by finding position within a
// record.
func FlattenAtRiskFindings(records []*InspectionRecord) []FindingEntry {
	var entries []FindingEntry
	for _, rec := range records {
		for i := range rec.Items {
			if rec.Items[i].Status != ComplianceAtRisk {
				continue
			}
			entries = append(entries, FindingEntry{
				Finding:        rec.Items[i],
				InspectionID:   rec.ID,
				InspectionDate: rec.Date,
				Location:       rec.Location,
				InspectorName:  rec.InspectorName,
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].InspectionDate.Before(entries[j].InspectionDate)
	})
	return entries
}
