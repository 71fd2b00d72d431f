package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "BANK_NAME", "ACCOUNT_START", "SEED_SAMPLE_DATA", "CORS_ALLOWED_ORIGINS", "KAFKA_BROKERS", "KAFKA_TOPIC"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "First National Bank", cfg.BankName)
	assert.Equal(t, 1000, cfg.AccountStart)
	assert.True(t, cfg.SeedSampleData)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "ledger_events", cfg.KafkaTopic)
	assert.False(t, cfg.Development())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("ACCOUNT_START", "5000")
	t.Setenv("SEED_SAMPLE_DATA", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bank.example")

	cfg := FromEnv()
	assert.True(t, cfg.Development())
	assert.Equal(t, 5000, cfg.AccountStart)
	assert.False(t, cfg.SeedSampleData)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://bank.example"}, cfg.CORSAllowedOrigins)
}

func TestFromEnvBadNumbersFallBack(t *testing.T) {
	t.Setenv("ACCOUNT_START", "abc")
	t.Setenv("SEED_SAMPLE_DATA", "maybe")
	cfg := FromEnv()
	assert.Equal(t, 1000, cfg.AccountStart)
	assert.True(t, cfg.SeedSampleData)
}
