// Package http provides the Echo-based HTTP transport.
package http

import (
	"context"
	"log/slog"
	"net"

	"github.com/labstack/echo/v4"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/internal/middleware"
	"github.com/waichung/safetyhub/internal/validation"
)

// Server represents the HTTP server with all its dependencies.
type Server struct {
	echo   *echo.Echo
	ln     net.Listener
	logger *slog.Logger

	// Configuration
	Addr   string
	Domain string

	// Recipients for report submission notices and the base URL report
	// links point at.
	reportRecipients []string
	reportBaseURL    string

	// Domain services
	inspectionService safetyhub.InspectionService
	reportService     safetyhub.WeeklyReportService
	settingsService   safetyhub.SettingsService

	// External services
	narrativeService safetyhub.NarrativeService
	fileStorage      safetyhub.FileStorage
	emailService     safetyhub.EmailService

	rateLimiter *middleware.RateLimiter
}

// Config holds the configuration for creating a new Server.
type Config struct {
	Addr   string
	Domain string
	Logger *slog.Logger

	ReportRecipients []string
	ReportBaseURL    string

	// Domain services
	InspectionService safetyhub.InspectionService
	ReportService     safetyhub.WeeklyReportService
	SettingsService   safetyhub.SettingsService

	// External services
	NarrativeService safetyhub.NarrativeService
	FileStorage      safetyhub.FileStorage
	EmailService     safetyhub.EmailService

	// RateLimitConfig overrides the default limits when non-zero.
	RateLimitConfig *middleware.RateLimitConfig
}

// NewServer creates a new HTTP server with the given configuration.
func NewServer(cfg Config) *Server {
	s := &Server{
		Addr:              cfg.Addr,
		Domain:            cfg.Domain,
		logger:            cfg.Logger,
		reportRecipients:  cfg.ReportRecipients,
		reportBaseURL:     cfg.ReportBaseURL,
		inspectionService: cfg.InspectionService,
		reportService:     cfg.ReportService,
		settingsService:   cfg.SettingsService,
		narrativeService:  cfg.NarrativeService,
		fileStorage:       cfg.FileStorage,
		emailService:      cfg.EmailService,
	}

	middleware.InitMetrics()

	rateCfg := middleware.DefaultRateLimitConfig()
	if cfg.RateLimitConfig != nil {
		rateCfg = *cfg.RateLimitConfig
	}
	s.rateLimiter = middleware.NewRateLimiter(s.logger, rateCfg)

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Validator = validation.NewValidator()

	s.registerMiddleware()
	s.registerRoutes()

	return s
}

// Echo returns the underlying Echo instance.
// Use sparingly - prefer registering routes through Server methods.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Open starts the HTTP server.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.echo.Server.Serve(s.ln); err != nil {
			s.logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	s.logger.Info("server started", slog.String("addr", s.Addr))
	return nil
}

// Close gracefully shuts down the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.rateLimiter.Shutdown()
	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// URL returns the base URL of the server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}
