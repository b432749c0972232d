package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/internal/i18n"
	"github.com/waichung/safetyhub/internal/middleware"
)

// DefaultTimeout bounds store round-trips per handler. Narrative assists
// use a longer budget, see assistTimeout.
const DefaultTimeout = 5 * time.Second

// registerMiddleware sets up all middleware for the server.
func (s *Server) registerMiddleware() {
	s.echo.Use(echomw.Recover())

	s.echo.Use(middleware.RequestIDMiddleware(s.logger))
	s.echo.Use(s.requestLoggerMiddleware())
	s.echo.Use(middleware.MetricsMiddleware())
	s.echo.Use(s.localeMiddleware())
	s.echo.Use(s.rateLimiter.Middleware())

	s.echo.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	s.echo.HTTPErrorHandler = s.httpErrorHandler
}

// localeMiddleware negotiates the display language from the lang query
// parameter and the Accept-Language header and attaches it, along with the
// request id, to the request context so services see both.
func (s *Server) localeMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := i18n.Negotiate(c.QueryParam("lang"), c.Request().Header.Get("Accept-Language"))

			ctx := safetyhub.NewContextWithLanguage(c.Request().Context(), lang)
			if requestID := middleware.GetRequestID(c); requestID != "" {
				ctx = safetyhub.NewContextWithRequestID(ctx, requestID)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// requestLoggerMiddleware logs each request with its request-scoped logger.
func (s *Server) requestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			logger := middleware.GetRequestLogger(c).With(
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
			)
			c.Set("logger", logger)

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			logAttrs := []any{
				slog.Int("status", status),
				slog.Duration("duration", duration),
			}

			if err != nil {
				logAttrs = append(logAttrs, slog.String("error", err.Error()))
				logger.Error("request failed", logAttrs...)
			} else if status >= 500 {
				logger.Error("request completed with server error", logAttrs...)
			} else if status >= 400 {
				logger.Warn("request completed with client error", logAttrs...)
			} else {
				logger.Info("request completed", logAttrs...)
			}

			return err
		}
	}
}

// httpErrorHandler handles errors and returns appropriate responses.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		_ = c.JSON(he.Code, map[string]any{"error": he.Message})
		return
	}

	_ = HandleError(c, s.logger, err)
}

// getRequestLogger retrieves the request-scoped logger from context.
func (s *Server) getRequestLogger(c echo.Context) *slog.Logger {
	if logger, ok := c.Get("logger").(*slog.Logger); ok {
		return logger
	}
	return s.logger
}
