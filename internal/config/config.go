package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port                  int
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	ShutdownTimeout       time.Duration
	MaxBodySizeMB         int64
	MaxCommandsPerRequest int
	SessionIdleTTL        time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:                  envInt("PORT", 8080),
		ReadTimeout:           envDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:          envDuration("WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:       envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxBodySizeMB:         int64(envInt("MAX_BODY_SIZE_MB", 5)),
		MaxCommandsPerRequest: envInt("MAX_COMMANDS_PER_REQUEST", 200),
		SessionIdleTTL:        envDuration("SESSION_IDLE_TTL", 30*time.Minute),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
