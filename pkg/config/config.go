package config

import (
	"os"
	"strconv"
	"time"
)

// Application settings
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Analytics AnalyticsConfig
	Providers ProviderConfig
}

// Server settings
type ServerConfig struct {
	Port string
}

// Analytics engine settings
type AnalyticsConfig struct {
	ReservationFetchLimit int
	SnapshotHistorySize   int
	RequestTimeout        time.Duration
	RateLimitPerSecond    int
}

// Upstream data provider settings
type ProviderConfig struct {
	ReservationAPIURL    string
	PropertyAPIURL       string
	ServiceRequestAPIURL string
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Analytics: AnalyticsConfig{
			ReservationFetchLimit: getIntEnv("RESERVATION_FETCH_LIMIT", 1000),
			SnapshotHistorySize:   getIntEnv("SNAPSHOT_HISTORY_SIZE", 30),
			RequestTimeout:        getDurationEnv("REQUEST_TIMEOUT", "30s"),
			RateLimitPerSecond:    getIntEnv("RATE_LIMIT_PER_SECOND", 100),
		},
		Providers: ProviderConfig{
			ReservationAPIURL:    getEnv("RESERVATION_API_URL", ""),
			PropertyAPIURL:       getEnv("PROPERTY_API_URL", ""),
			ServiceRequestAPIURL: getEnv("SERVICE_REQUEST_API_URL", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
