package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "aifolio", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	// Outside production a missing secret gets a deterministic fallback.
	assert.Equal(t, "test-insecure-dev-secret", cfg.JWTSecret)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "supersecret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfigDockerSecret(t *testing.T) {
	secretsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("from-secret\n"), 0o600))

	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("DB_PASSWORD", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.DBPassword)
}

func TestValidateConfigProductionRequiresSecret(t *testing.T) {
	cfg := &Config{
		Environment: Production,
		ServerPort:  "8080",
		DBHost:      "localhost",
		DBPort:      "5432",
		DBUser:      "postgres",
		DBName:      "aifolio",
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.JWTSecret = "real-secret"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfigSMTPNeedsSender(t *testing.T) {
	cfg := &Config{
		Environment: Development,
		ServerPort:  "8080",
		DBHost:      "localhost",
		DBPort:      "5432",
		DBUser:      "postgres",
		DBName:      "aifolio",
		SMTPHost:    "smtp.example.com",
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMAIL_FROM")
}

func TestGetEnvironment(t *testing.T) {
	cases := map[string]Environment{
		"production": Production,
		"prod":       Production,
		"ci":         CI,
		"test":       Test,
		"":           Development,
		"anything":   Development,
	}
	for value, want := range cases {
		t.Setenv("ENV", value)
		assert.Equal(t, want, GetEnvironment())
	}
}
