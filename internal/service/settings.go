package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/waichung/safetyhub"
)

// settingsService implements safetyhub.SettingsService.
type settingsService struct {
	store  safetyhub.SettingsStore
	logger *slog.Logger
}

// NewSettingsService creates a settings service backed by the given store.
func NewSettingsService(store safetyhub.SettingsStore, logger *slog.Logger) safetyhub.SettingsService {
	return &settingsService{
		store:  store,
		logger: logger,
	}
}

// GetList returns the saved list, falling back to the defaults when
// nothing has been saved yet.
func (s *settingsService) GetList(ctx context.Context, kind safetyhub.ListKind) ([]string, error) {
	if !kind.IsValid() {
		return nil, safetyhub.Invalid("Unknown option list %q", kind)
	}

	items, err := s.store.GetList(ctx, kind)
	if err != nil {
		return nil, safetyhub.Internal("could not load option list", err)
	}
	if items == nil {
		return safetyhub.DefaultList(kind), nil
	}
	return items, nil
}

// PutList replaces the list wholesale. Blank entries are dropped; entry
// order is preserved because the first entry doubles as the default pick.
func (s *settingsService) PutList(ctx context.Context, kind safetyhub.ListKind, items []string) error {
	if !kind.IsValid() {
		return safetyhub.Invalid("Unknown option list %q", kind)
	}

	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return safetyhub.Invalid("Option list must keep at least one entry")
	}

	if err := s.store.PutList(ctx, kind, cleaned); err != nil {
		return safetyhub.Internal("could not save option list", err)
	}

	s.logger.Info("option list replaced",
		slog.String("kind", string(kind)),
		slog.Int("entries", len(cleaned)))
	return nil
}
