package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all notifier settings, populated from environment variables
// (optionally seeded from a .env file next to the binary).
type Config struct {
	// Forecast provider.
	OWMToken     string
	OWMTimeout   time.Duration
	ForecastMode string // "json" or "xml" response shape
	DefaultCity  string

	// Messaging platform.
	SlackToken   string
	SlackTimeout time.Duration
	BotName      string // sender display name on posted messages

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, applying defaults where
// unset. A missing .env file is not an error; explicit environment always
// wins because godotenv does not overwrite existing variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	owmTimeout, err := parseTimeout("OWM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	slackTimeout, err := parseTimeout("SLACK_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OWMToken:     os.Getenv("OWM_TOKEN"),
		OWMTimeout:   owmTimeout,
		ForecastMode: envOrDefault("FORECAST_MODE", "json"),
		DefaultCity:  os.Getenv("DEFAULT_CITY"),

		SlackToken:   os.Getenv("SLACK_TOKEN"),
		SlackTimeout: slackTimeout,
		BotName:      envOrDefault("SLACK_USER", "Weather Bot"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.OWMToken == "" {
		return nil, errors.New("OWM_TOKEN is required")
	}
	if cfg.SlackToken == "" {
		return nil, errors.New("SLACK_TOKEN is required")
	}
	if cfg.DefaultCity == "" {
		return nil, errors.New("DEFAULT_CITY is required")
	}
	if cfg.ForecastMode != "json" && cfg.ForecastMode != "xml" {
		return nil, fmt.Errorf("invalid FORECAST_MODE %q: want json or xml", cfg.ForecastMode)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseTimeout(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
