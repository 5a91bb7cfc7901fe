package api

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config collects the environment knobs the API process reads at boot.
type Config struct {
	Addr        string
	JWTSecret   string
	TokenTTL    time.Duration
	KafkaBroker string
	KafkaTopic  string
}

// defaultDevSecret keeps local runs working without configuration. Production
// deployments must set JWT_SECRET.
const defaultDevSecret = "sales-api-dev-secret"

// LoadConfig reads configuration from the environment, applying defaults
// suitable for local development.
func LoadConfig() Config {
	cfg := Config{
		Addr:        ":8080",
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:    0,
		KafkaBroker: strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:  envOrDefault("KAFKA_TOPIC", "sales.orders"),
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultDevSecret
	}
	if raw := os.Getenv("TOKEN_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			cfg.TokenTTL = time.Duration(hours) * time.Hour
		}
	}
	return cfg
}

// KafkaBrokers splits the configured broker list.
func (c Config) KafkaBrokers() []string {
	if c.KafkaBroker == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBroker, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}

// UsingDefaultSecret reports whether the process runs on the dev fallback key.
func (c Config) UsingDefaultSecret() bool {
	return c.JWTSecret == defaultDevSecret
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
