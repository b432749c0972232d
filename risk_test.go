package safetyhub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waichung/safetyhub"
)

func TestCalculateRiskLevel(t *testing.T) {
	tests := []struct {
		name       string
		likelihood safetyhub.Likelihood
		severity   safetyhub.Severity
		want       safetyhub.RiskLevel
	}{
		{"MinimumCorner", safetyhub.LikelihoodRare, safetyhub.SeverityNegligible, safetyhub.RiskLevelLow},
		{"LowUpperBound", safetyhub.LikelihoodPossible, safetyhub.SeverityNegligible, safetyhub.RiskLevelLow},
		{"MediumLowerBound", safetyhub.LikelihoodRare, safetyhub.SeverityMajor, safetyhub.RiskLevelMedium},
		{"MediumUpperBound", safetyhub.LikelihoodUnlikely, safetyhub.SeverityModerate, safetyhub.RiskLevelMedium},
		{"HighLowerBound", safetyhub.LikelihoodAlmostCertain, safetyhub.SeverityNegligible, safetyhub.RiskLevelMedium},
		{"HighUpperBound", safetyhub.LikelihoodPossible, safetyhub.SeverityMajor, safetyhub.RiskLevelHigh},
		{"ExtremeLowerBound", safetyhub.LikelihoodLikely, safetyhub.SeverityMajor, safetyhub.RiskLevelExtreme},
		{"MaximumCorner", safetyhub.LikelihoodAlmostCertain, safetyhub.SeverityCatastrophic, safetyhub.RiskLevelExtreme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := safetyhub.CalculateRiskLevel(tt.likelihood, tt.severity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRiskLevelForScore_Cutoffs(t *testing.T) {
	// Cutoffs are inclusive: <=3 Low, <=6 Medium, <=12 High, else Extreme.
	assert.Equal(t, safetyhub.RiskLevelLow, safetyhub.RiskLevelForScore(3))
	assert.Equal(t, safetyhub.RiskLevelMedium, safetyhub.RiskLevelForScore(4))
	assert.Equal(t, safetyhub.RiskLevelMedium, safetyhub.RiskLevelForScore(6))
	assert.Equal(t, safetyhub.RiskLevelHigh, safetyhub.RiskLevelForScore(7))
	assert.Equal(t, safetyhub.RiskLevelHigh, safetyhub.RiskLevelForScore(12))
	assert.Equal(t, safetyhub.RiskLevelExtreme, safetyhub.RiskLevelForScore(15))
}

func TestRiskScore(t *testing.T) {
	assert.Equal(t, 1, safetyhub.RiskScore(safetyhub.LikelihoodRare, safetyhub.SeverityNegligible))
	assert.Equal(t, 12, safetyhub.RiskScore(safetyhub.LikelihoodPossible, safetyhub.SeverityMajor))
	assert.Equal(t, 25, safetyhub.RiskScore(safetyhub.LikelihoodAlmostCertain, safetyhub.SeverityCatastrophic))

	// Unknown values rank as zero, so the score collapses to zero too.
	assert.Equal(t, 0, safetyhub.RiskScore(safetyhub.Likelihood("Sometimes"), safetyhub.SeverityMajor))
}

func TestMaxRiskLevel(t *testing.T) {
	t.Run("EmptyDefaultsToLow", func(t *testing.T) {
		assert.Equal(t, safetyhub.RiskLevelLow, safetyhub.MaxRiskLevel(nil))
	})

	t.Run("HighestBandWins", func(t *testing.T) {
		levels := []safetyhub.RiskLevel{
			safetyhub.RiskLevelMedium,
			safetyhub.RiskLevelExtreme,
			safetyhub.RiskLevelLow,
		}
		assert.Equal(t, safetyhub.RiskLevelExtreme, safetyhub.MaxRiskLevel(levels))
	})
}

func TestScaleRanks(t *testing.T) {
	assert.Equal(t, 1, safetyhub.LikelihoodRare.Rank())
	assert.Equal(t, 5, safetyhub.LikelihoodAlmostCertain.Rank())
	assert.Equal(t, 0, safetyhub.Likelihood("").Rank())
	assert.False(t, safetyhub.Likelihood("Often").IsValid())

	assert.Equal(t, 1, safetyhub.SeverityNegligible.Rank())
	assert.Equal(t, 5, safetyhub.SeverityCatastrophic.Rank())
	assert.False(t, safetyhub.Severity("Fatal").IsValid())
}
