package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Extract ExtractConfig
	Queue   QueueConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr          string
	MaxUploadSize int64
	HistoryLimit  int
}

// StorageConfig holds flat-file storage locations
type StorageConfig struct {
	DataDir   string // ledger master files live here
	UploadDir string // temporary upload staging
	OutputDir string // per-document artifacts
	InboxDir  string // optional watched drop directory ("" disables the watcher)
}

// ExtractConfig holds extraction engine configuration
type ExtractConfig struct {
	SchemaPath string // YAML rule schema; "" uses the builtin declaration schema
	Pdftotext  string // external binary for PDF text acquisition
}

// QueueConfig holds background processing configuration
type QueueConfig struct {
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          getEnv("HTTP_ADDR", ":5000"),
			MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_BYTES", 50<<20),
			HistoryLimit:  getEnvAsInt("HISTORY_LIMIT", 50),
		},
		Storage: StorageConfig{
			DataDir:   getEnv("DATA_DIR", "./data"),
			UploadDir: getEnv("UPLOAD_DIR", "./data/uploads"),
			OutputDir: getEnv("OUTPUT_DIR", "./data/outputs"),
			InboxDir:  getEnv("INBOX_DIR", ""),
		},
		Extract: ExtractConfig{
			SchemaPath: getEnv("SCHEMA_PATH", ""),
			Pdftotext:  getEnv("PDFTOTEXT_BIN", "pdftotext"),
		},
		Queue: QueueConfig{
			Workers:        getEnvAsInt("QUEUE_WORKERS", 4),
			QueueSize:      getEnvAsInt("QUEUE_SIZE", 256),
			ProcessTimeout: getEnvAsDuration("PROCESS_TIMEOUT", 2*time.Minute),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Storage.DataDir == "" {
		return NewAppError("CONFIG_ERROR", "DATA_DIR is required", ErrInvalidInput)
	}
	if c.Queue.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "QUEUE_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
