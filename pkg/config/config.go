package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sguter90/ambientweather/pkg/ambient"
)

// Config holds everything the CLI reads from the environment
type Config struct {
	AppEnv   string
	LogLevel slog.Level

	// Ambient Weather credentials
	ApplicationKey string
	APIKey         string
	BaseURL        string

	// Relay server
	ServerPort     string
	AllowedOrigins []string
	JWTSecret      string

	// MQTT publishing
	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string

	PollInterval time.Duration
}

// LoadFromEnv reads the configuration, applying defaults for unset values
func LoadFromEnv() (Config, error) {
	appEnv := getEnv("APP_ENV", "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	pollInterval, err := time.ParseDuration(getEnv("POLL_INTERVAL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}
	if pollInterval <= 0 {
		return Config{}, fmt.Errorf("invalid POLL_INTERVAL %s: must be positive", pollInterval)
	}

	return Config{
		AppEnv:          appEnv,
		LogLevel:        level,
		ApplicationKey:  getEnv("AMBIENT_APPLICATION_KEY", ""),
		APIKey:          getEnv("AMBIENT_API_KEY", ""),
		BaseURL:         getEnv("AMBIENT_BASE_URL", ambient.DefaultBaseURL),
		ServerPort:      getEnv("SERVER_PORT", "8059"),
		AllowedOrigins:  splitList(getEnv("SERVER_ALLOWED_ORIGINS", "")),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		MQTTBroker:      getEnv("MQTT_BROKER", ""),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "ambientweather"),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "ambientweather"),
		PollInterval:    pollInterval,
	}, nil
}

// HasCredentials reports whether both API keys are set
func (c Config) HasCredentials() bool {
	return c.ApplicationKey != "" && c.APIKey != ""
}

// getEnv returns the trimmed value of key, or defaultValue when unset or blank
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
