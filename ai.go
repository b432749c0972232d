package safetyhub

import "context"

// NarrativeService defines operations for AI-assisted narrative text.
//
// The service is a boundary collaborator: it only ever fills text fields
// and must be treated as slow or unavailable. Callers substitute the
// locale-appropriate fallback strings on failure; a generator outage never
// blocks saving and never corrupts the entity being edited.
type NarrativeService interface {
	// GenerateRiskAssessment produces a risk note and suggested remedial
	// action for one observation.
	GenerateRiskAssessment(ctx context.Context, observation, category string, lang Language) (*RiskAssessment, error)

	// GenerateWeeklySummary produces an executive summary narrative for a
	// week's worth of inspection records.
	GenerateWeeklySummary(ctx context.Context, records []*InspectionRecord, lang Language) (string, error)
}

// RiskAssessment is the fixed-shape response of the per-finding assist.
type RiskAssessment struct {
	RiskNote string `json:"risk"`
	Action   string `json:"action"`
}

// FallbackRiskAssessment is returned to the user when the generator fails;
// the finding being edited is left untouched.
func FallbackRiskAssessment(lang Language) *RiskAssessment {
	if lang == LangChinese {
		return &RiskAssessment{
			RiskNote: "生成評估時發生錯誤",
			Action:   "請手動輸入",
		}
	}
	return &RiskAssessment{
		RiskNote: "Error generating assessment",
		Action:   "Please enter manually",
	}
}

// FallbackWeeklySummary is the placeholder narrative when summary
// generation fails. An absent summary is a valid persisted state.
func FallbackWeeklySummary(lang Language) string {
	if lang == LangChinese {
		return "生成週報摘要時發生錯誤。請檢查網絡連接。"
	}
	return "Error generating weekly summary. Check connection."
}

// NarrativeConfig holds configuration for narrative generation.
type NarrativeConfig struct {
	// Provider is the generator provider ("mock" or "claude").
	Provider string

	// Claude-specific configuration
	ClaudeAPIKey string
	ClaudeModel  string

	MaxTokens   int
	Temperature float64
}

// DefaultNarrativeConfig returns the default narrative configuration.
func DefaultNarrativeConfig() NarrativeConfig {
	return NarrativeConfig{
		Provider:    "mock",
		ClaudeModel: "claude-sonnet-4-20250514",
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}
