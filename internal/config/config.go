package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string // empty disables API auth (local use)
	DeviceKey string // shared key a device exchanges for a JWT

	// Fix filter thresholds
	MaxAccuracyMeters float64
	MinMovementMeters float64

	// History cap enforced by the persistence sink
	MaxStoredRuns int

	// Dev-mode replay source; empty uses the HTTP fix feed
	ReplayPath       string
	ReplayIntervalMs int
}

// Load reads configuration from the environment with defaults
func Load() *Config {
	return &Config{
		Port:              envString("PORT", ":8080"),
		DBPath:            envString("DB_PATH", "./data/runs.db"),
		JWTSecret:         envString("JWT_SECRET", ""),
		DeviceKey:         envString("DEVICE_KEY", ""),
		MaxAccuracyMeters: envFloat("MAX_ACCURACY_METERS", 30),
		MinMovementMeters: envFloat("MIN_MOVEMENT_METERS", 3),
		MaxStoredRuns:     envInt("MAX_STORED_RUNS", 200),
		ReplayPath:        envString("REPLAY_PATH", ""),
		ReplayIntervalMs:  envInt("REPLAY_INTERVAL_MS", 1000),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
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
