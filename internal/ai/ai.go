// Package ai provides narrative text generation for inspections and
// weekly reports, backed by Claude or a deterministic mock.
package ai

import (
	"fmt"
	"log/slog"

	"github.com/waichung/safetyhub"
)

// NewNarrativeService creates a narrative service based on the configured
// provider. Supported providers: "claude", "mock".
func NewNarrativeService(logger *slog.Logger, config safetyhub.NarrativeConfig) (safetyhub.NarrativeService, error) {
	switch config.Provider {
	case "claude":
		if config.ClaudeAPIKey == "" {
			return nil, fmt.Errorf("claude provider requires an API key")
		}
		return newClaudeService(logger, config), nil
	case "mock", "":
		return NewMockService(logger), nil
	default:
		return nil, fmt.Errorf("unknown narrative provider: %s", config.Provider)
	}
}
