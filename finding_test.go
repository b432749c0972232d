package safetyhub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waichung/safetyhub"
)

func atRiskFinding(id string) safetyhub.Finding {
	return safetyhub.Finding{
		ID:             id,
		Category:       "Machinery",
		Status:         safetyhub.ComplianceAtRisk,
		Observation:    "Guard removed from press",
		RemedialAction: "Refit guard before next shift",
		Risk: &safetyhub.FindingRisk{
			Likelihood: safetyhub.LikelihoodLikely,
			Severity:   safetyhub.SeverityMajor,
			Level:      safetyhub.RiskLevelExtreme,
		},
		Remediation: &safetyhub.FindingRemediation{Status: safetyhub.ActionPending},
	}
}

func safeFinding(id string) safetyhub.Finding {
	return safetyhub.Finding{
		ID:          id,
		Category:    "Fire Safety",
		Status:      safetyhub.ComplianceSafe,
		Observation: "Exits clear",
	}
}

func TestFindingValidate(t *testing.T) {
	t.Run("AtRiskComplete", func(t *testing.T) {
		f := atRiskFinding("f1")
		assert.NoError(t, f.Validate())
	})

	t.Run("AtRiskMissingRisk", func(t *testing.T) {
		f := atRiskFinding("f1")
		f.Risk = nil
		err := f.Validate()
		require.Error(t, err)
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(err))
	})

	t.Run("AtRiskMissingRemediation", func(t *testing.T) {
		f := atRiskFinding("f1")
		f.Remediation = nil
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(f.Validate()))
	})

	t.Run("SafeMustNotCarryRisk", func(t *testing.T) {
		f := safeFinding("f1")
		f.Risk = &safetyhub.FindingRisk{
			Likelihood: safetyhub.LikelihoodRare,
			Severity:   safetyhub.SeverityMinor,
			Level:      safetyhub.RiskLevelLow,
		}
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(f.Validate()))
	})

	t.Run("BadMatrixPosition", func(t *testing.T) {
		f := atRiskFinding("f1")
		f.Risk.Likelihood = "Sometimes"
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(f.Validate()))
	})

	t.Run("MissingObservation", func(t *testing.T) {
		f := safeFinding("f1")
		f.Observation = ""
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(f.Validate()))
	})
}

func TestActionStatusPatch(t *testing.T) {
	t.Run("UpdatesStatus", func(t *testing.T) {
		f := atRiskFinding("f1")
		patch := safetyhub.ActionStatusPatch{Status: safetyhub.ActionCompleted}
		require.NoError(t, patch.Apply(&f))
		assert.Equal(t, safetyhub.ActionCompleted, f.Remediation.Status)
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		f := atRiskFinding("f1")
		patch := safetyhub.ActionStatusPatch{Status: "Done"}
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(patch.Apply(&f)))
	})

	t.Run("RejectsSafeFinding", func(t *testing.T) {
		f := safeFinding("f1")
		patch := safetyhub.ActionStatusPatch{Status: safetyhub.ActionCompleted}
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(patch.Apply(&f)))
	})
}

func TestTargetDatePatch(t *testing.T) {
	t.Run("SetsDate", func(t *testing.T) {
		f := atRiskFinding("f1")
		target := time.Date(2023, time.November, 6, 0, 0, 0, 0, time.UTC)
		patch := safetyhub.TargetDatePatch{Date: &target}
		require.NoError(t, patch.Apply(&f))
		require.NotNil(t, f.Remediation.TargetDate)
		assert.True(t, f.Remediation.TargetDate.Equal(target))
	})

	t.Run("NilClearsDate", func(t *testing.T) {
		f := atRiskFinding("f1")
		target := time.Date(2023, time.November, 6, 0, 0, 0, 0, time.UTC)
		f.Remediation.TargetDate = &target

		require.NoError(t, safetyhub.TargetDatePatch{}.Apply(&f))
		assert.Nil(t, f.Remediation.TargetDate)
	})

	t.Run("RejectsSafeFinding", func(t *testing.T) {
		f := safeFinding("f1")
		assert.Equal(t, safetyhub.EINVALID, safetyhub.ErrorCode(safetyhub.TargetDatePatch{}.Apply(&f)))
	})
}

func TestActionStatusIsOpen(t *testing.T) {
	assert.True(t, safetyhub.ActionPending.IsOpen())
	assert.True(t, safetyhub.ActionFollowUp.IsOpen())
	assert.False(t, safetyhub.ActionCompleted.IsOpen())
}

func TestNewFindingID(t *testing.T) {
	now := time.Date(2023, time.October, 23, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "1698051600000", safetyhub.NewFindingID(now))
}
