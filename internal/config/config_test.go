package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origDir := os.Getenv("STORAGE_DIR")
	defer os.Setenv("STORAGE_DIR", origDir)

	os.Setenv("STORAGE_DIR", "/tmp/test-storage")
	os.Setenv("MAX_UPLOAD_BYTES", "1048576")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	defer os.Unsetenv("MAX_UPLOAD_BYTES")
	defer os.Unsetenv("MINIO_USE_SSL")
	defer os.Unsetenv("SHUTDOWN_TIMEOUT_SECONDS")

	cfg := Load()

	assert.Equal(t, "/tmp/test-storage", cfg.Storage.Dir)
	assert.Equal(t, int64(1048576), cfg.Storage.MaxUploadBytes)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 3, cfg.ShutdownTimeoutSeconds)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("STORAGE_BACKEND")
	os.Unsetenv("MAX_UPLOAD_BYTES")
	os.Unsetenv("PUBLIC_DIR")
	os.Unsetenv("SHUTDOWN_TIMEOUT_SECONDS")

	cfg := Load()

	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, int64(500*1024*1024), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.ShutdownTimeoutSeconds)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"

	os.Setenv(key, "5368709120")
	assert.Equal(t, int64(5368709120), getEnvInt64(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, int64(42), getEnvInt64(key, 42))

	os.Unsetenv(key)
	assert.Equal(t, int64(42), getEnvInt64(key, 42))
}
