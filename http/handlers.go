package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/waichung/safetyhub"
)

// withTimeout creates a context with the default timeout for handler
// operations.
func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), DefaultTimeout)
}

// requireParam extracts a required route parameter, returning error if empty.
func requireParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", safetyhub.Invalid("%s is required", name)
	}
	return value, nil
}

// parseDate parses a calendar date in 2006-01-02 form.
func parseDate(value, field string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, safetyhub.Invalid("Invalid %s, expected YYYY-MM-DD", field)
	}
	return d, nil
}

// language returns the negotiated display language for the request.
func language(c echo.Context) safetyhub.Language {
	return safetyhub.LanguageFromContext(c.Request().Context())
}

// bind binds the request body to a struct and validates it.
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return safetyhub.Invalid("Invalid request body")
	}
	if err := c.Validate(v); err != nil {
		return safetyhub.Invalid("%s", err.Error())
	}
	return nil
}

// log returns the request-scoped logger.
func (s *Server) log(c echo.Context) *slog.Logger {
	return s.getRequestLogger(c)
}

// Health handlers

func (s *Server) handleHealthCheck(c echo.Context) error {
	return RespondOK(c, map[string]string{"status": "ok"})
}

func (s *Server) handleLivenessCheck(c echo.Context) error {
	return RespondOK(c, map[string]string{"status": "alive"})
}

func (s *Server) handleReadinessCheck(c echo.Context) error {
	return RespondOK(c, map[string]string{"status": "ready"})
}
