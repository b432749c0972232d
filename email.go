package safetyhub

import "context"

// EmailService defines operations for sending notification emails.
type EmailService interface {
	// SendReportSubmitted notifies the endorser that a weekly report was
	// submitted and is awaiting their review.
	SendReportSubmitted(ctx context.Context, to []string, report *WeeklyReport, reportURL string) error
}

// EmailConfig holds configuration for email services.
type EmailConfig struct {
	// Provider is the email provider ("mock" or "postmark").
	Provider string

	// FromAddress is the sender email address.
	FromAddress string

	// FromName is the sender display name.
	FromName string

	// ReportBaseURL is the base URL for report links in notifications.
	ReportBaseURL string

	// Postmark-specific configuration
	PostmarkServerToken string
}
