package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Env                string
	HTTPAddr           string
	BankName           string
	AccountStart       int
	SeedSampleData     bool
	CORSAllowedOrigins []string
	KafkaBrokers       []string
	KafkaTopic         string
}

// Load reads an optional .env file and then the process environment.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, relying on system env vars")
	}
	return FromEnv()
}

// FromEnv builds the config from the current environment only
func FromEnv() AppConfig {
	return AppConfig{
		Env:                getEnv("APP_ENV", "production"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		BankName:           getEnv("BANK_NAME", "First National Bank"),
		AccountStart:       getEnvInt("ACCOUNT_START", 1000),
		SeedSampleData:     getEnvBool("SEED_SAMPLE_DATA", true),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		KafkaBrokers:       getEnvSlice("KAFKA_BROKERS", nil),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "ledger_events"),
	}
}

func (c AppConfig) Development() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("config: %s=%q is not a boolean, using %t", key, v, fallback)
	}
	return fallback
}
