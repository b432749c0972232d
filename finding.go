package safetyhub

import (
	"strconv"
	"time"
)

// ComplianceStatus records whether an observed condition was compliant.
type ComplianceStatus string

const (
	ComplianceSafe   ComplianceStatus = "Safe"
	ComplianceAtRisk ComplianceStatus = "At Risk"
)

// IsValid returns true if the status is a recognized value.
func (s ComplianceStatus) IsValid() bool {
	return s == ComplianceSafe || s == ComplianceAtRisk
}

// ActionStatus tracks a remedial action to closure.
type ActionStatus string

const (
	ActionPending   ActionStatus = "Pending"
	ActionFollowUp  ActionStatus = "Follow-up"
	ActionCompleted ActionStatus = "Completed"
)

// IsValid returns true if the status is a recognized value.
func (s ActionStatus) IsValid() bool {
	return s == ActionPending || s == ActionFollowUp || s == ActionCompleted
}

// IsOpen returns true if the remedial action still needs attention.
func (s ActionStatus) IsOpen() bool {
	return s != ActionCompleted
}

// FindingRisk is the risk-matrix sub-record of an At-Risk finding.
type FindingRisk struct {
	Likelihood Likelihood `json:"likelihood"`
	Severity   Severity   `json:"severity"`
	Level      RiskLevel  `json:"level"`
}

// FindingRemediation is the action-tracking sub-record of an At-Risk finding.
type FindingRemediation struct {
	Status ActionStatus `json:"status"`

	// TargetDate is the proposed completion date, nil when not yet set.
	TargetDate *time.Time `json:"targetDate,omitempty"`
}

// Finding is one observed condition recorded during an inspection.
//
// The risk and remediation sub-records exist if and only if the finding is
// At Risk; a Safe finding carries neither. Evidence is either an external
// photo URL or an embedded base64 payload, never required to be both.
type Finding struct {
	ID             string           `json:"id"`
	Category       string           `json:"category"`
	Description    string           `json:"description"`
	Status         ComplianceStatus `json:"status"`
	Observation    string           `json:"observation"`
	RemedialAction string           `json:"remedialAction"`
	PhotoURL       string           `json:"photoUrl,omitempty"`
	PhotoData      string           `json:"photoData,omitempty"`

	Risk        *FindingRisk        `json:"risk,omitempty"`
	Remediation *FindingRemediation `json:"remediation,omitempty"`
}

// NewFindingID returns a client-assigned, time-based finding id.
func NewFindingID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// RiskLevelOrLow returns the finding's risk band, or Low for a Safe finding.
func (f *Finding) RiskLevelOrLow() RiskLevel {
	if f.Risk != nil {
		return f.Risk.Level
	}
	return RiskLevelLow
}

// Validate checks the finding's structural invariants.
func (f *Finding) Validate() error {
	if f.Category == "" {
		return Invalid("Finding category is required")
	}
	if f.Observation == "" {
		return Invalid("Finding observation is required")
	}
	if !f.Status.IsValid() {
		return Invalid("Invalid compliance status %q", f.Status)
	}
	switch f.Status {
	case ComplianceAtRisk:
		if f.Risk == nil || f.Remediation == nil {
			return Invalid("At-Risk finding requires risk and remediation details")
		}
		if !f.Risk.Likelihood.IsValid() || !f.Risk.Severity.IsValid() {
			return Invalid("Invalid risk matrix position")
		}
		if !f.Remediation.Status.IsValid() {
			return Invalid("Invalid remedial action status %q", f.Remediation.Status)
		}
	case ComplianceSafe:
		if f.Risk != nil || f.Remediation != nil {
			return Invalid("Safe finding must not carry risk or remediation details")
		}
	}
	return nil
}

// FindingPatch is a targeted edit to a single finding. Implementations form
// a closed set so each operation's required fields are statically enforced.
type FindingPatch interface {
	// Apply mutates the finding in place. The finding must be At Risk;
	// Safe findings have no remediation sub-record to edit.
	Apply(f *Finding) error

	findingPatch()
}

// ActionStatusPatch updates the remedial action status of a finding.
type ActionStatusPatch struct {
	Status ActionStatus
}

func (p ActionStatusPatch) findingPatch() {}

// Apply implements FindingPatch.
func (p ActionStatusPatch) Apply(f *Finding) error {
	if !p.Status.IsValid() {
		return Invalid("Invalid remedial action status %q", p.Status)
	}
	if f.Remediation == nil {
		return Invalid("Finding %s has no remediation tracking", f.ID)
	}
	f.Remediation.Status = p.Status
	return nil
}

// TargetDatePatch updates the proposed completion date of a finding.
// A nil date clears the target.
type TargetDatePatch struct {
	Date *time.Time
}

func (p TargetDatePatch) findingPatch() {}

// Apply implements FindingPatch.
func (p TargetDatePatch) Apply(f *Finding) error {
	if f.Remediation == nil {
		return Invalid("Finding %s has no remediation tracking", f.ID)
	}
	f.Remediation.TargetDate = p.Date
	return nil
}
