package mock

import (
	"context"

	"github.com/waichung/safetyhub"
)

// Compile-time interface check
var _ safetyhub.NarrativeService = (*NarrativeService)(nil)

// NarrativeService is a mock implementation of safetyhub.NarrativeService.
type NarrativeService struct {
	GenerateRiskAssessmentFn func(ctx context.Context, observation, category string, lang safetyhub.Language) (*safetyhub.RiskAssessment, error)
	GenerateWeeklySummaryFn  func(ctx context.Context, records []*safetyhub.InspectionRecord, lang safetyhub.Language) (string, error)
}

func (s *NarrativeService) GenerateRiskAssessment(ctx context.Context, observation, category string, lang safetyhub.Language) (*safetyhub.RiskAssessment, error) {
	if s.GenerateRiskAssessmentFn != nil {
		return s.GenerateRiskAssessmentFn(ctx, observation, category, lang)
	}
	return &safetyhub.RiskAssessment{
		RiskNote: "mock risk note",
		Action:   "mock remedial action",
	}, nil
}

func (s *NarrativeService) GenerateWeeklySummary(ctx context.Context, records []*safetyhub.InspectionRecord, lang safetyhub.Language) (string, error) {
	if s.GenerateWeeklySummaryFn != nil {
		return s.GenerateWeeklySummaryFn(ctx, records, lang)
	}
	return "mock weekly summary", nil
}
