package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/waichung/safetyhub"
)

// MockService is a deterministic implementation for development and
// testing. It never calls out to a model API.
type MockService struct {
	logger *slog.Logger
}

// NewMockService creates a mock narrative service.
func NewMockService(logger *slog.Logger) *MockService {
	return &MockService{
		logger: logger,
	}
}

// GenerateRiskAssessment returns a canned assessment built from the
// observation text.
func (s *MockService) GenerateRiskAssessment(ctx context.Context, observation, category string, lang safetyhub.Language) (*safetyhub.RiskAssessment, error) {
	s.logger.Info("🤖 MOCK AI: generating risk assessment",
		slog.String("category", category),
		slog.Int("observation_length", len(observation)))

	if lang == safetyhub.LangChinese {
		return &safetyhub.RiskAssessment{
			RiskNote: fmt.Sprintf("「%s」類別的觀察事項可能導致人員受傷或違反法例第59章的要求。", category),
			Action:   "立即隔離危險區域，安排合資格人員跟進，並於完成後覆檢。",
		}, nil
	}
	return &safetyhub.RiskAssessment{
		RiskNote: fmt.Sprintf("The observed condition in the %q category may lead to personal injury and non-compliance with Cap. 59 requirements.", category),
		Action:   "Isolate the hazard area immediately, assign a competent person to follow up, and re-inspect on completion.",
	}, nil
}

// GenerateWeeklySummary returns a short canned narrative mentioning the
// inspection count and locations.
func (s *MockService) GenerateWeeklySummary(ctx context.Context, records []*safetyhub.InspectionRecord, lang safetyhub.Language) (string, error) {
	s.logger.Info("🤖 MOCK AI: generating weekly summary",
		slog.Int("records", len(records)))

	seen := make(map[string]bool)
	var locations []string
	var atRisk int
	for _, record := range records {
		if !seen[record.Location] {
			seen[record.Location] = true
			locations = append(locations, record.Location)
		}
		atRisk += record.AtRiskCount()
	}

	if lang == safetyhub.LangChinese {
		return fmt.Sprintf(
			"本週共完成 %d 次安全巡查，涵蓋 %s。期間共發現 %d 項違規事項，已安排跟進。整體而言，廠房運作符合法例第59章的要求，安全文化維持良好。",
			len(records), strings.Join(locations, "、"), atRisk), nil
	}
	return fmt.Sprintf(
		"A total of %d safety inspections were completed this week, covering %s. %d non-compliance items were identified and follow-up actions have been assigned. Overall, operations remain compliant with Cap. 59 requirements and the safety culture is in good standing.",
		len(records), strings.Join(locations, ", "), atRisk), nil
}
