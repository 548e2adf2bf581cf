package config

import (
	"errors"
	"fmt"
)

// ValidateConfig checks that everything the server cannot run without is
// present. Optional subsystems (redis, SMTP, S3) validate only their own
// internal consistency.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return errors.New("server port is required")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return errors.New("database host, port, user and name are required")
	}

	if cfg.JWTSecret == "" {
		if cfg.Environment == Production {
			return errors.New("JWT_SECRET is required in production")
		}
		// Deterministic secret keeps local sessions stable across restarts.
		cfg.JWTSecret = fmt.Sprintf("%s-insecure-dev-secret", cfg.Environment)
	}

	if cfg.SMTPHost != "" && cfg.EmailFrom == "" {
		return errors.New("EMAIL_FROM is required when SMTP is configured")
	}

	return nil
}
