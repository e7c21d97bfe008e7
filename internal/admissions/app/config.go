package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer   string // Required: expected issuer of inbound access tokens
	Audience string // Required: audience this service accepts tokens for

	AuthPublicKeyFile string // Required: PEM file with the auth service's Ed25519 public key
	AuthPublicKeyID   string // Optional: kid the key is registered under (default: "primary")

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./admissions.db)
	BroadcastMode       string        // Optional: event fan-out mode (memory, redis) (default: memory)
	RedisAddr           string        // Optional: redis address for broadcast mode "redis" (default: localhost:6379)
	EventBuffer         int           // Optional: per-subscriber event buffer (default: 16)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:   getEnvOrDefault("ADMISSIONS_ISSUER", "bartab-auth"),
		Audience: getEnvOrDefault("ADMISSIONS_AUDIENCE", "admissions"),

		AuthPublicKeyFile: os.Getenv("ADMISSIONS_AUTH_PUBLIC_KEY_FILE"),
		AuthPublicKeyID:   getEnvOrDefault("ADMISSIONS_AUTH_PUBLIC_KEY_ID", "primary"),

		DatabaseFile:  getEnvOrDefault("ADMISSIONS_DATABASE_FILE", "admissions.db"),
		BroadcastMode: getEnvOrDefault("ADMISSIONS_BROADCAST_MODE", "memory"),
		RedisAddr:     getEnvOrDefault("ADMISSIONS_REDIS_ADDR", "localhost:6379"),
		EventBuffer:   getEnvIntOrDefault("ADMISSIONS_EVENT_BUFFER", 16),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
