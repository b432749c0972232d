package main

import (
	"context"
	"log/slog"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/internal/ai"
	"github.com/waichung/safetyhub/internal/service"
	"github.com/waichung/safetyhub/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Services holds all application services.
type Services struct {
	InspectionService safetyhub.InspectionService
	ReportService     safetyhub.WeeklyReportService
	SettingsService   safetyhub.SettingsService
	NarrativeService  safetyhub.NarrativeService
	FileStorage       safetyhub.FileStorage
	EmailService      safetyhub.EmailService
}

// initServices initializes all application services.
func initServices(ctx context.Context, pool *pgxpool.Pool, cfg *Config, logger *slog.Logger) (*Services, error) {
	// Initialize database-backed stores
	db := postgres.NewDB(pool)
	logger.Info("database stores initialized")

	// Domain services sit on top of the stores. The report service reads
	// inspections through the inspection service so both see one cache.
	inspectionService := service.NewInspectionService(db.InspectionStore, logger)
	reportService := service.NewWeeklyReportService(db.ReportStore, inspectionService, logger)
	settingsService := service.NewSettingsService(db.SettingsStore, logger)
	logger.Info("domain services initialized")

	// Initialize file storage
	fileStorage, err := initFileStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("file storage initialized", slog.String("provider", cfg.StorageProvider))

	// Initialize email service
	emailService := initEmailService(cfg, logger)
	logger.Info("email service initialized", slog.String("provider", cfg.EmailProvider))

	// Initialize narrative generator
	narrativeService, err := initNarrativeService(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("narrative service initialized", slog.String("provider", cfg.AIProvider))

	return &Services{
		InspectionService: inspectionService,
		ReportService:     reportService,
		SettingsService:   settingsService,
		NarrativeService:  narrativeService,
		FileStorage:       fileStorage,
		EmailService:      emailService,
	}, nil
}

// initFileStorage creates the appropriate file storage implementation.
func initFileStorage(ctx context.Context, cfg *Config, logger *slog.Logger) (safetyhub.FileStorage, error) {
	logger.Debug("storage service configuration",
		slog.String("provider", cfg.StorageProvider),
		slog.String("local_path", cfg.StorageLocalPath),
		slog.String("s3_bucket", cfg.StorageS3Bucket),
		slog.String("s3_region", cfg.StorageS3Region))

	storageCfg := safetyhub.StorageConfig{
		Provider:  cfg.StorageProvider,
		LocalPath: cfg.StorageLocalPath,
		LocalURL:  cfg.StorageLocalURL,
		S3Bucket:  cfg.StorageS3Bucket,
		S3Region:  cfg.StorageS3Region,
		S3BaseURL: cfg.StorageS3BaseURL,
	}

	return postgres.NewFileStorage(ctx, logger, storageCfg)
}

// initEmailService creates the appropriate email service implementation.
func initEmailService(cfg *Config, logger *slog.Logger) safetyhub.EmailService {
	logger.Debug("email service configuration",
		slog.String("provider", cfg.EmailProvider),
		slog.String("from_address", cfg.EmailFromAddress),
		slog.String("from_name", cfg.EmailFromName))

	emailCfg := safetyhub.EmailConfig{
		Provider:            cfg.EmailProvider,
		FromAddress:         cfg.EmailFromAddress,
		FromName:            cfg.EmailFromName,
		ReportBaseURL:       cfg.ReportBaseURL,
		PostmarkServerToken: cfg.EmailPostmarkToken,
	}

	return postgres.NewEmailService(logger, emailCfg)
}

// initNarrativeService creates the appropriate narrative generator.
func initNarrativeService(cfg *Config, logger *slog.Logger) (safetyhub.NarrativeService, error) {
	logger.Debug("narrative service configuration",
		slog.String("provider", cfg.AIProvider))

	narrativeCfg := safetyhub.NarrativeConfig{
		Provider:     cfg.AIProvider,
		ClaudeAPIKey: cfg.AIClaudeAPIKey,
		ClaudeModel:  cfg.AIClaudeModel,
		MaxTokens:    cfg.AIMaxTokens,
		Temperature:  cfg.AITemperature,
	}

	return ai.NewNarrativeService(logger, narrativeCfg)
}
