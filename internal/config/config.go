package config

import (
	"os"
	"strconv"
)

// StorageConfig holds settings for the file storage backend.
// Backend selects the implementation: "local" (flat directory, default) or "minio".
type StorageConfig struct {
	Backend        string
	Dir            string
	MaxUploadBytes int64
}

// MinIOConfig holds object storage settings for the S3-compatible backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
// AppHost is the interface the listener binds to; empty means all interfaces.
// ShutdownTimeoutSeconds bounds the graceful drain of in-flight requests on termination.
type AppConfig struct {
	AppHost                string
	Port                   string
	PublicDir              string
	ShutdownTimeoutSeconds int
	Storage                StorageConfig
	MinIO                  MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:                getEnv("APP_HOST", ""),
		Port:                   getEnv("PORT", "8080"),
		PublicDir:              getEnv("PUBLIC_DIR", "public"),
		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
		Storage: StorageConfig{
			Backend:        getEnv("STORAGE_BACKEND", "local"),
			Dir:            getEnv("STORAGE_DIR", "storage"),
			MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 500*1024*1024),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}
