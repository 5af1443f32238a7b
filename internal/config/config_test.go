package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// unsetenv clears a variable for the test while letting t.Setenv restore
// the original value afterwards.
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadRequiresSMSCredentials(t *testing.T) {
	t.Setenv("SMS_USERNAME", "")
	t.Setenv("SMS_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SMS_USERNAME")

	t.Setenv("SMS_USERNAME", "sandbox")
	_, err = Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SMS_API_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SMS_USERNAME", "sandbox")
	t.Setenv("SMS_API_KEY", "test-key")
	unsetenv(t, "PORT")
	unsetenv(t, "LOG_LEVEL")
	unsetenv(t, "KAFKA_BROKERS")
	unsetenv(t, "DATABASE_URL")
	unsetenv(t, "SMS_BASE_URL")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.KafkaBrokers)
	require.Empty(t, cfg.DatabaseURL)
	require.Equal(t, "https://api.africastalking.com", cfg.SMSBaseURL)
}

func TestLoadSplitsKafkaBrokers(t *testing.T) {
	t.Setenv("SMS_USERNAME", "sandbox")
	t.Setenv("SMS_API_KEY", "test-key")
	t.Setenv("KAFKA_BROKERS", "localhost:9092,localhost:9093")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.KafkaBrokers)
}
