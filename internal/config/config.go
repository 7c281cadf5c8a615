package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// Session tokens
	JWTSecret       string
	TokenTTL        time.Duration
	RememberTTL     time.Duration
	ExternalJWKSURL string // Optional: verify externally issued RS256/ES256 tokens
	// Attachment limits (overridable, defaults per application config)
	MaxAttachmentSize       int
	MaxAttachmentsPerPrompt int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     getTablePrefix(env),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		TokenTTL:        getDuration("TOKEN_TTL", time.Hour),
		RememberTTL:     getDuration("REMEMBER_TTL", 30*24*time.Hour),
		ExternalJWKSURL: getEnv("EXTERNAL_JWKS_URL", ""),

		MaxAttachmentSize:       getInt("MAX_ATTACHMENT_SIZE", DefaultMaxAttachmentSize),
		MaxAttachmentsPerPrompt: getInt("MAX_ATTACHMENTS_PER_PROMPT", DefaultMaxAttachmentsPerPrompt),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
