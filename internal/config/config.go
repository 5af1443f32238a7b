package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	// DatabaseURL switches the transaction log from memory to Postgres
	// when set.
	DatabaseURL string

	// KafkaBrokers enables transfer-event publishing when non-empty.
	KafkaBrokers []string

	SMSBaseURL  string
	SMSUsername string
	SMSAPIKey   string
	SMSSenderID string
}

// Load reads .env (if present) and the process environment. The SMS
// gateway credentials are required: starting without them would silently
// disable notifications, so the process refuses to start instead.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on OS environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SMSBaseURL:  getEnv("SMS_BASE_URL", "https://api.africastalking.com"),
		SMSUsername: getEnv("SMS_USERNAME", ""),
		SMSAPIKey:   getEnv("SMS_API_KEY", ""),
		SMSSenderID: getEnv("SMS_SENDER_ID", ""),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.SMSUsername == "" {
		return nil, errors.New("SMS_USERNAME is required")
	}
	if cfg.SMSAPIKey == "" {
		return nil, errors.New("SMS_API_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
