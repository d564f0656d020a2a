package app

import (
	"os"
	"strconv"
	"time"

	"github.com/opsgarden/admind/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for tokens (default: admind)

	AccessSecret  string // Required: HS256 secret for access tokens
	RefreshSecret string // Required: HS256 secret for refresh tokens

	AccessTTL  time.Duration // Access token lifetime (default: 15m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 2x access)

	DatabaseFile string // Path to SQLite database file (default: ./admind.db)
	PepperFile   string // Path to the password-hashing pepper file (default: ./pepper)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	RegistryInterval    time.Duration // Refresh-token sweep interval (default: 1m)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              getEnvOrDefault("ADMIND_ISSUER", "admind"),
		AccessSecret:        os.Getenv("ADMIND_ACCESS_SECRET"),
		RefreshSecret:       os.Getenv("ADMIND_REFRESH_SECRET"),
		AccessTTL:           getEnvDurationOrDefault("ADMIND_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		DatabaseFile:        getEnvOrDefault("ADMIND_DATABASE_FILE", "admind.db"),
		PepperFile:          getEnvOrDefault("ADMIND_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		RegistryInterval:    getEnvDurationOrDefault("REGISTRY_SWEEP_INTERVAL", time.Minute),
	}

	// Refresh tokens outlive access tokens by a factor of two unless
	// overridden.
	cfg.RefreshTTL = getEnvDurationOrDefault("ADMIND_REFRESH_TTL", 2*cfg.AccessTTL)

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

	// Accept Go duration syntax ("15m", "1h30m") or plain minutes.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
