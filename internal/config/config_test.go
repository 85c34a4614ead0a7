package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
		"LOG_LEVEL", "APP_ENV", "MAX_FILE_SIZE", "MAX_FILES", "ALLOWED_EXTENSIONS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, int64(20*1024*1024), cfg.Conversion.MaxFileSize)
	assert.Equal(t, 50, cfg.Conversion.MaxFiles)
	assert.Equal(t, []string{"png", "jpg", "jpeg"}, cfg.Conversion.AllowedExtensions)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("READ_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("APP_ENV", "development")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("MAX_FILES", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, int64(1024), cfg.Conversion.MaxFileSize)
	assert.Equal(t, 3, cfg.Conversion.MaxFiles)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("MAX_FILES", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 50, cfg.Conversion.MaxFiles)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"LOG_LEVEL":          "verbose",
		"GIN_MODE":           "production",
		"MAX_FILES":          "0",
		"MAX_FILE_SIZE":      "-1",
		"ALLOWED_EXTENSIONS": " , ,",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_AllowedExtensions(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_EXTENSIONS", ".PNG, jpg ,,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"png", "jpg"}, cfg.Conversion.AllowedExtensions)
}
