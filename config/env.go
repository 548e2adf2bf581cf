package config

import (
	"os"
	"strings"
)

// Environment identifies the deployment environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from ENV, defaulting
// to development.
func GetEnvironment() Environment {
	switch strings.ToLower(os.Getenv("ENV")) {
	case "production", "prod":
		return Production
	case "ci":
		return CI
	case "test":
		return Test
	default:
		return Development
	}
}

// IsDevelopment reports whether the process runs in a development-mode
// build; error responses carry underlying messages only then.
func IsDevelopment() bool {
	return GetEnvironment() == Development
}
