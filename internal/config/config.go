package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Bank API
	BankAPIURL      string
	BankAPIToken    string
	BankSyncFrom    time.Time
	BankHTTPTimeout time.Duration

	// Ingestion
	CategorySeeding bool
}

// Load loads configuration from environment variables. Bank credentials live
// here and are passed explicitly into the components that need them; nothing
// reads them from process-wide state afterwards.
func Load() (*Config, error) {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "dkblytics"),
		DBPassword: getEnv("DB_PASSWORD", "dkblytics"),
		DBName:     getEnv("DB_NAME", "dkblytics"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Bank API
		BankAPIURL:   getEnv("BANK_API_URL", "http://localhost:9090"),
		BankAPIToken: getEnv("BANK_API_TOKEN", ""),

		// Ingestion
		CategorySeeding: getEnv("CATEGORY_SEEDING", "true") == "true",
	}

	// Sync lookback window start
	fromStr := getEnv("BANK_SYNC_FROM", "2023-01-01")
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BANK_SYNC_FROM value %q: %w", fromStr, err)
	}
	config.BankSyncFrom = from

	// Explicit timeout on bank fetches to bound worst-case run duration
	timeoutStr := getEnv("BANK_HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid BANK_HTTP_TIMEOUT value '%s', falling back to 30s\n", timeoutStr)
		timeout = 30 * time.Second
	}
	config.BankHTTPTimeout = timeout

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
