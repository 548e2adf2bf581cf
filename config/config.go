package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string
	BaseURL    string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional; rate limiting is disabled without it)
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// SMTP configuration (optional; account mail is skipped without it)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	EmailFrom     string
	EmailFromName string

	// S3 configuration (optional; image upload is disabled without it)
	S3Bucket string

	// CORS
	AllowedOrigins []string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets files for each value, and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment: GetEnvironment(),

		ServerHost: getValue("SERVER_HOST", "0.0.0.0"),
		ServerPort: getValue("SERVER_PORT", "8080"),
		BaseURL:    getValue("BASE_URL", "http://localhost:8080"),

		DBHost:     getValue("DB_HOST", "localhost"),
		DBPort:     getValue("DB_PORT", "5432"),
		DBUser:     getValue("DB_USER", "postgres"),
		DBPassword: getValue("DB_PASSWORD", ""),
		DBName:     getValue("DB_NAME", "aifolio"),
		DBSSLMode:  getValue("DB_SSL_MODE", "disable"),

		RedisURL:      getValue("REDIS_URL", ""),
		RedisHost:     getValue("REDIS_HOST", ""),
		RedisPort:     getValue("REDIS_PORT", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", ""),
		RedisDB:       0,

		JWTSecret: getValue("JWT_SECRET", ""),

		SMTPHost:      getValue("SMTP_HOST", ""),
		SMTPPort:      getValue("SMTP_PORT", "587"),
		SMTPUsername:  getValue("SMTP_USERNAME", ""),
		SMTPPassword:  getValue("SMTP_PASSWORD", ""),
		EmailFrom:     getValue("EMAIL_FROM", "no-reply@localhost"),
		EmailFromName: getValue("EMAIL_FROM_NAME", "Portfolio"),

		S3Bucket: getValue("S3_BUCKET_NAME", ""),
	}

	if origins := getValue("ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue reads an environment variable, falling back to the matching
// Docker secret file, then to the given default.
func getValue(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
