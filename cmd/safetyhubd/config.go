package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Host        string
	Port        int
	Environment string
	LogLevel    string

	// Database settings
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Email settings
	EmailProvider      string
	EmailPostmarkToken string
	EmailFromAddress   string
	EmailFromName      string

	// Report notification settings
	ReportRecipients []string
	ReportBaseURL    string

	// Storage settings
	StorageProvider  string
	StorageLocalPath string
	StorageLocalURL  string
	StorageS3Bucket  string
	StorageS3Region  string
	StorageS3BaseURL string

	// Narrative generator settings
	AIProvider     string
	AIClaudeAPIKey string
	AIClaudeModel  string
	AIMaxTokens    int
	AITemperature  float64
}

// LoadConfig loads configuration from environment variables.
func LoadConfig(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		// Server settings
		Host:        envString(getenv, "SERVER_HOST", "localhost"),
		Port:        envInt(getenv, "SERVER_PORT", 8080),
		Environment: envString(getenv, "ENVIRONMENT", "dev"),
		LogLevel:    envString(getenv, "LOG_LEVEL", "info"),

		// Database settings
		DBUser:     envString(getenv, "DB_USER", "postgres"),
		DBPassword: envString(getenv, "DB_PASSWORD", ""),
		DBHost:     envString(getenv, "DB_HOSTNAME", "localhost"),
		DBPort:     envString(getenv, "DB_PORT", "5432"),
		DBName:     envString(getenv, "DB_NAME", "safetyhub"),

		// Email settings
		EmailProvider:      envString(getenv, "EMAIL_PROVIDER", "mock"),
		EmailPostmarkToken: envString(getenv, "POSTMARK_SERVER_TOKEN", ""),
		EmailFromAddress:   envString(getenv, "EMAIL_FROM_ADDRESS", "noreply@example.com"),
		EmailFromName:      envString(getenv, "EMAIL_FROM_NAME", "SafetyHub"),

		// Report notification settings
		ReportRecipients: envStrings(getenv, "REPORT_RECIPIENTS"),
		ReportBaseURL:    envString(getenv, "REPORT_BASE_URL", "http://localhost:8080"),

		// Storage settings
		StorageProvider:  envString(getenv, "STORAGE_PROVIDER", "local"),
		StorageLocalPath: envString(getenv, "STORAGE_LOCAL_PATH", "./uploads"),
		StorageLocalURL:  envString(getenv, "STORAGE_LOCAL_URL", "http://localhost:8080/uploads"),
		StorageS3Bucket:  envString(getenv, "STORAGE_S3_BUCKET", ""),
		StorageS3Region:  envString(getenv, "STORAGE_S3_REGION", "us-east-1"),
		StorageS3BaseURL: envString(getenv, "STORAGE_S3_BASE_URL", ""),

		// Narrative generator settings
		AIProvider:     envString(getenv, "AI_PROVIDER", "mock"),
		AIClaudeAPIKey: envString(getenv, "CLAUDE_API_KEY", ""),
		AIClaudeModel:  envString(getenv, "CLAUDE_MODEL", "claude-3-5-sonnet-20241022"),
		AIMaxTokens:    envInt(getenv, "AI_MAX_TOKENS", 1024),
		AITemperature:  envFloat(getenv, "AI_TEMPERATURE", 0.3),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// validate checks production requirements.
func (c *Config) validate() error {
	if c.AIProvider == "claude" && c.AIClaudeAPIKey == "" {
		return fmt.Errorf("CLAUDE_API_KEY must be set when AI_PROVIDER is claude")
	}
	if c.EmailProvider == "postmark" && c.EmailPostmarkToken == "" {
		return fmt.Errorf("POSTMARK_SERVER_TOKEN must be set when EMAIL_PROVIDER is postmark")
	}
	return nil
}

// Helper functions for loading environment variables with defaults.

func envString(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envStrings parses a comma-separated list, dropping blank entries.
func envStrings(getenv func(string) string, key string) []string {
	value := getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func envInt(getenv func(string) string, key string, defaultValue int) int {
	if value := getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func envFloat(getenv func(string) string, key string, defaultValue float64) float64 {
	if value := getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
