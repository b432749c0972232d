package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/waichung/safetyhub"
)

// errorStatusCode maps domain error codes to HTTP status codes.
func errorStatusCode(code string) int {
	switch code {
	case safetyhub.ENOTFOUND:
		return http.StatusNotFound
	case safetyhub.EINVALID:
		return http.StatusBadRequest
	case safetyhub.ECONFLICT:
		return http.StatusConflict
	case safetyhub.ERATELIMIT:
		return http.StatusTooManyRequests
	case safetyhub.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse represents the JSON error response format.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HandleError converts domain errors to appropriate HTTP responses.
// It logs internal errors and returns user-safe messages.
func HandleError(c echo.Context, logger *slog.Logger, err error) error {
	code := safetyhub.ErrorCode(err)
	message := safetyhub.ErrorMessage(err)
	fields := safetyhub.ErrorFields(err)
	status := errorStatusCode(code)

	if code == safetyhub.EINTERNAL {
		logger.Error("internal error",
			slog.String("error", err.Error()),
			slog.String("path", c.Path()),
			slog.String("method", c.Request().Method),
		)
		// Don't expose internal error details to clients
		message = "An internal error occurred."
	}

	return c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
		Fields:  fields,
	})
}
