package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

const (
	defaultKafkaTopic      = "kiosk.events"
	defaultShutdownTimeout = 10 * time.Second
	minOperatorSecretLen   = 16
	envProduction          = "production"
)

// Config carries environment-driven settings for the kiosk processes.
type Config struct {
	Port               string
	AppEnv             string
	LogLevel           string
	TraceExporter      string
	PostgresDSN        string
	TemporalAddress    string
	TemporalNamespace  string
	TemporalDisabled   bool
	KafkaBrokers       string
	KafkaTopic         string
	CatalogFile        string
	OperatorJWTSecret  string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// LoadConfig reads the environment, after a local .env outside production, and validates it.
func LoadConfig() (Config, error) {
	if !strings.EqualFold(envDefault("APP_ENV", "local"), envProduction) {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		AppEnv:             strings.ToLower(envDefault("APP_ENV", "local")),
		LogLevel:           envDefault("LOG_LEVEL", "info"),
		TraceExporter:      envDefault("OTEL_TRACES_EXPORTER", "otlp"),
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:    envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:  envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:   isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		KafkaBrokers:       strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:         envDefault("KAFKA_TOPIC", defaultKafkaTopic),
		CatalogFile:        strings.TrimSpace(os.Getenv("CATALOG_FILE")),
		OperatorJWTSecret:  strings.TrimSpace(os.Getenv("OPERATOR_JWT_SECRET")),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		ShutdownTimeout:    defaultShutdownTimeout,
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}
	if raw := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a positive duration such as 10s, got %q", raw)
		}
		cfg.ShutdownTimeout = d
	}
	if cfg.OperatorJWTSecret != "" && len(cfg.OperatorJWTSecret) < minOperatorSecretLen {
		return Config{}, fmt.Errorf("OPERATOR_JWT_SECRET must be at least %d characters", minOperatorSecretLen)
	}
	if cfg.IsProduction() && cfg.OperatorJWTSecret == "" {
		return Config{}, errors.New("OPERATOR_JWT_SECRET is required when APP_ENV=production")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == envProduction
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
