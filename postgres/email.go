package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/keighl/postmark"

	"github.com/waichung/safetyhub"
)

// Compile-time interface checks
var (
	_ safetyhub.EmailService = (*MockEmailService)(nil)
	_ safetyhub.EmailService = (*PostmarkEmailService)(nil)
)

// NewEmailService creates an email service based on the provider
// configuration.
func NewEmailService(logger *slog.Logger, cfg safetyhub.EmailConfig) safetyhub.EmailService {
	switch cfg.Provider {
	case "postmark":
		return &PostmarkEmailService{
			client: postmark.NewClient(cfg.PostmarkServerToken, ""),
			logger: logger,
			cfg:    cfg,
		}
	default:
		return &MockEmailService{logger: logger, cfg: cfg}
	}
}

// MockEmailService logs instead of sending emails.
type MockEmailService struct {
	logger *slog.Logger
	cfg    safetyhub.EmailConfig
}

// SendReportSubmitted logs the submission notice instead of sending it.
func (s *MockEmailService) SendReportSubmitted(ctx context.Context, to []string, report *safetyhub.WeeklyReport, reportURL string) error {
	s.logger.Info("MOCK EMAIL: Weekly report submitted",
		slog.Any("to", to),
		slog.String("report_id", report.ID),
		slog.String("week_start", report.Week().Key()),
		slog.String("report_url", reportURL))
	return nil
}

// PostmarkEmailService sends emails through Postmark.
type PostmarkEmailService struct {
	client *postmark.Client
	logger *slog.Logger
	cfg    safetyhub.EmailConfig
}

// SendReportSubmitted notifies the endorser that a weekly report was
// submitted and is awaiting review.
func (s *PostmarkEmailService) SendReportSubmitted(ctx context.Context, to []string, report *safetyhub.WeeklyReport, reportURL string) error {
	subject := fmt.Sprintf("Weekly Safety Report %s submitted for review", report.ID)

	textBody := fmt.Sprintf(
		"Weekly safety report %s (week of %s) was submitted by %s and is awaiting your review.\n\nView the report: %s\n",
		report.ID, report.Week().Key(), report.PreparedBy, reportURL)

	_, err := s.client.SendEmail(postmark.Email{
		From:     fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromAddress),
		To:       strings.Join(to, ","),
		Subject:  subject,
		TextBody: textBody,
		Tag:      "report-submitted",
	})
	if err != nil {
		s.logger.Error("postmark send failed",
			slog.String("report_id", report.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("sending report email: %w", err)
	}

	s.logger.Info("report submission email sent",
		slog.Any("to", to),
		slog.String("report_id", report.ID))
	return nil
}
