package config

import (
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	SessionDuration time.Duration
	TokenLifetime   time.Duration
	JWTSecret       string

	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./wordcraft.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionDuration: 24 * time.Hour,
		TokenLifetime:   24 * time.Hour,
		JWTSecret:       getEnv("JWT_SECRET", "dev-only-secret"),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Word Craft Arena"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
