package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "postgres://localhost/bodymass")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.BotToken)
	assert.Equal(t, int64(100*1024), cfg.MaxFileSize)
	assert.Equal(t, 1000.0, cfg.MaxBodyWeight)
	assert.Equal(t, 0.001, cfg.MaintenanceThreshold)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "postgres://localhost/bodymass")
	t.Setenv("MAX_FILE_SIZE", "2048")
	t.Setenv("MAX_BODY_WEIGHT", "500")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	assert.Equal(t, 500.0, cfg.MaxBodyWeight)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigMissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/bodymass")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigMissingDatabaseURL(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadLimits(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero file size", "MAX_FILE_SIZE", "0"},
		{"negative body weight", "MAX_BODY_WEIGHT", "-1"},
		{"negative maintenance threshold", "MAINTENANCE_THRESHOLD", "-0.001"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_TOKEN", "test-token")
			t.Setenv("DATABASE_URL", "postgres://localhost/bodymass")
			t.Setenv(tc.key, tc.value)

			_, err := LoadConfig()
			assert.ErrorContains(t, err, tc.key)
		})
	}
}
