package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/internal/middleware"
)

// claudeService implements safetyhub.NarrativeService using Claude.
type claudeService struct {
	client      *anthropic.Client
	logger      *slog.Logger
	model       string
	maxTokens   int
	temperature float64
}

func newClaudeService(logger *slog.Logger, config safetyhub.NarrativeConfig) *claudeService {
	client := anthropic.NewClient(
		option.WithAPIKey(config.ClaudeAPIKey),
	)

	return &claudeService{
		client:      &client,
		logger:      logger,
		model:       config.ClaudeModel,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
	}
}

// GenerateRiskAssessment asks the model for a risk note and a suggested
// remedial action for one observation. The response must be a JSON object
// with "risk" and "action" string fields.
func (s *claudeService) GenerateRiskAssessment(ctx context.Context, observation, category string, lang safetyhub.Language) (*safetyhub.RiskAssessment, error) {
	start := time.Now()

	systemPrompt := riskAssessmentSystemPrompt(lang)
	userPrompt := riskAssessmentUserPrompt(observation, category, lang)

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
		Temperature: anthropic.Float(s.temperature),
	})
	middleware.RecordNarrativeMetrics("risk_assessment", time.Since(start), err)

	if err != nil {
		s.logger.Error("risk assessment generation failed",
			slog.String("error", err.Error()))
		return nil, safetyhub.Unavailable("risk assessment generation failed", err)
	}

	responseText := messageText(message)

	s.logger.Info("risk assessment generated",
		slog.Int("input_tokens", int(message.Usage.InputTokens)),
		slog.Int("output_tokens", int(message.Usage.OutputTokens)))

	var assessment safetyhub.RiskAssessment
	if err := json.Unmarshal([]byte(extractJSON(responseText)), &assessment); err != nil {
		s.logger.Error("risk assessment response is not valid JSON",
			slog.String("error", err.Error()),
			slog.String("response", responseText))
		return nil, safetyhub.Unavailable("risk assessment response could not be parsed", err)
	}
	if assessment.RiskNote == "" || assessment.Action == "" {
		return nil, safetyhub.Unavailable("risk assessment response is incomplete", nil)
	}

	return &assessment, nil
}

// GenerateWeeklySummary asks the model for an executive summary narrative
// of a week's inspection records.
func (s *claudeService) GenerateWeeklySummary(ctx context.Context, records []*safetyhub.InspectionRecord, lang safetyhub.Language) (string, error) {
	start := time.Now()

	dataSummary, err := weeklyDataSummary(records)
	if err != nil {
		return "", safetyhub.Internal("could not marshal inspection data", err)
	}

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(weeklySummaryPrompt(dataSummary, lang))),
		},
		Temperature: anthropic.Float(s.temperature),
	})
	middleware.RecordNarrativeMetrics("weekly_summary", time.Since(start), err)

	if err != nil {
		s.logger.Error("weekly summary generation failed",
			slog.String("error", err.Error()))
		return "", safetyhub.Unavailable("weekly summary generation failed", err)
	}

	summary := strings.TrimSpace(messageText(message))
	if summary == "" {
		return "", safetyhub.Unavailable("weekly summary response is empty", nil)
	}

	s.logger.Info("weekly summary generated",
		slog.Int("input_tokens", int(message.Usage.InputTokens)),
		slog.Int("output_tokens", int(message.Usage.OutputTokens)))

	return summary, nil
}

// riskAssessmentSystemPrompt frames the model as a registered safety
// officer working under the Hong Kong Factories and Industrial
// Undertakings Ordinance (Cap. 59).
func riskAssessmentSystemPrompt(lang safetyhub.Language) string {
	var sb strings.Builder

	sb.WriteString("You are a senior registered safety officer working under the Hong Kong Factories and Industrial Undertakings Ordinance (Cap. 59). ")
	sb.WriteString("You review factory safety observations and produce concise risk assessments with practical remedial actions.\n\n")

	if lang == safetyhub.LangChinese {
		sb.WriteString("Respond in Traditional Chinese using Hong Kong professional safety terminology.\n\n")
	} else {
		sb.WriteString("Respond in English using professional safety terminology.\n\n")
	}

	sb.WriteString("Respond ONLY with a JSON object with these fields:\n")
	sb.WriteString(`{"risk": "the potential hazard or risk", "action": "the recommended remedial actions"}`)

	return sb.String()
}

func riskAssessmentUserPrompt(observation, category string, lang safetyhub.Language) string {
	var sb strings.Builder

	sb.WriteString("Analyze the following factory safety observation:\n\n")
	sb.WriteString(fmt.Sprintf("Category: %s\n", category))
	sb.WriteString(fmt.Sprintf("Observation: %q\n\n", observation))

	if lang == safetyhub.LangChinese {
		sb.WriteString("Output MUST be in Traditional Chinese.")
	} else {
		sb.WriteString("Output MUST be in English.")
	}

	return sb.String()
}

// weeklyDataSummary reduces records to the fields the summary prompt
// needs, to keep the token count down.
func weeklyDataSummary(records []*safetyhub.InspectionRecord) (string, error) {
	type entry struct {
		Date        string   `json:"date"`
		Location    string   `json:"location"`
		Risks       []string `json:"risks"`
		OverallRisk string   `json:"overallRisk"`
	}

	entries := make([]entry, 0, len(records))
	for _, record := range records {
		e := entry{
			Date:        record.Date.Format("2006-01-02"),
			Location:    record.Location,
			Risks:       []string{},
			OverallRisk: string(record.RiskLevel),
		}
		for _, item := range record.Items {
			if item.Status == safetyhub.ComplianceAtRisk {
				e.Risks = append(e.Risks, item.Observation)
			}
		}
		entries = append(entries, e)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func weeklySummaryPrompt(dataSummary string, lang safetyhub.Language) string {
	langContext := "English"
	if lang == safetyhub.LangChinese {
		langContext = "Traditional Chinese"
	}

	var sb strings.Builder

	sb.WriteString("You are the safety manager of a factory. ")
	sb.WriteString(fmt.Sprintf("Write a professional weekly safety executive summary for the factory director, in %s. ", langContext))
	sb.WriteString("The summary must be formal and, where appropriate, reference compliance with the Hong Kong Factories and Industrial Undertakings Ordinance (Cap. 59).\n\n")
	sb.WriteString("This week's inspection data:\n")
	sb.WriteString(dataSummary)
	sb.WriteString("\n\nThe summary should:\n")
	sb.WriteString("1. Highlight the total number of inspections and the main locations.\n")
	sb.WriteString("2. Summarize the key hazards found, if any.\n")
	sb.WriteString("3. Summarize the overall safety culture this week.\n")
	sb.WriteString("4. Be around 150-200 words.\n\n")
	sb.WriteString("Respond with the summary text only, no preamble.")

	return sb.String()
}

// messageText concatenates the text blocks of a Claude response.
func messageText(message *anthropic.Message) string {
	var text string
	for _, content := range message.Content {
		if content.Type == "text" {
			text += content.Text
		}
	}
	return text
}

// extractJSON strips a markdown code fence if the model wrapped its JSON
// response in one.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
		response = strings.TrimSuffix(response, "```")
		response = strings.TrimSpace(response)
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
		response = strings.TrimSuffix(response, "```")
		response = strings.TrimSpace(response)
	}

	return response
}
