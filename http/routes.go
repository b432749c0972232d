package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes sets up all routes for the server.
// All routes are defined in this single file for easy navigation.
func (s *Server) registerRoutes() {
	// Health check routes (public)
	s.echo.GET("/health", s.handleHealthCheck)
	s.echo.GET("/health/live", s.handleLivenessCheck)
	s.echo.GET("/health/ready", s.handleReadinessCheck)

	// Prometheus metrics
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	// Inspection records
	api.GET("/inspections", s.handleListInspections)
	api.POST("/inspections", s.handleSubmitInspection)
	api.GET("/inspections/:id", s.handleGetInspection)
	api.DELETE("/inspections/:id", s.handleDeleteInspection)
	api.PATCH("/inspections/:id/findings/:findingId", s.handlePatchFinding)

	// Follow-up findings log
	api.GET("/findings", s.handleListFindings)
	api.GET("/findings/export.csv", s.handleExportFindings)

	// Weekly reports
	api.GET("/reports", s.handleListReports)
	api.POST("/reports", s.handleSaveReport)
	api.GET("/reports/pending-weeks", s.handlePendingWeeks)
	api.GET("/reports/view", s.handleReportView)
	api.GET("/reports/:id", s.handleGetReport)
	api.DELETE("/reports/:id", s.handleDeleteReport)

	// AI assists carry their own stricter rate limit: each call is a paid
	// model round-trip.
	assist := api.Group("/assist")
	assist.Use(s.rateLimiter.AssistMiddleware())
	assist.POST("/risk", s.handleAssistRisk)
	assist.POST("/weekly-summary", s.handleAssistWeeklySummary)

	// Evidence photos
	api.POST("/photos", s.handleUploadPhoto)
	api.DELETE("/photos/:key", s.handleDeletePhoto)

	// Option lists
	api.GET("/settings/:kind", s.handleGetOptionList)
	api.PUT("/settings/:kind", s.handlePutOptionList)
}
