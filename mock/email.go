package mock

import (
	"context"

	"github.com/waichung/safetyhub"
)

// Compile-time interface check
var _ safetyhub.EmailService = (*EmailService)(nil)

// EmailService is a mock implementation of safetyhub.EmailService.
type EmailService struct {
	SendReportSubmittedFn func(ctx context.Context, to []string, report *safetyhub.WeeklyReport, reportURL string) error
}

func (s *EmailService) SendReportSubmitted(ctx context.Context, to []string, report *safetyhub.WeeklyReport, reportURL string) error {
	if s.SendReportSubmittedFn != nil {
		return s.SendReportSubmittedFn(ctx, to, report, reportURL)
	}
	return nil
}
