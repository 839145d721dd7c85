// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends for persisted client state.
const (
	StoreBackendFile  = "file"
	StoreBackendRedis = "redis"
)

// Config holds all configuration for the storefront client and the mock
// commerce API used for local development.
type Config struct {
	App     AppConfig
	API     APIConfig
	Catalog CatalogConfig
	Store   StoreConfig
	Mock    MockConfig
	Logging LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// APIConfig points the client at the remote commerce API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CatalogConfig controls catalog browsing
type CatalogConfig struct {
	PageSize int
}

// StoreConfig selects and configures the persistent state backend
type StoreConfig struct {
	Backend       string // "file" or "redis"
	FilePath      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// MockConfig configures the local mock commerce API server
type MockConfig struct {
	Port               string
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BcryptCost         int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 15*time.Second),
		},
		Catalog: CatalogConfig{
			PageSize: getEnvAsInt("CATALOG_PAGE_SIZE", 12),
		},
		Store: StoreConfig{
			Backend:       getEnv("STORE_BACKEND", StoreBackendFile),
			FilePath:      getEnv("STORE_FILE", defaultStatePath()),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			RedisPrefix:   getEnv("REDIS_PREFIX", "storefront:"),
		},
		Mock: MockConfig{
			Port:               getEnv("MOCK_PORT", "8080"),
			JWTSecret:          getEnv("MOCK_JWT_SECRET", "local-development-secret-do-not-use-in-prod"),
			AccessTokenExpiry:  getEnvAsDuration("MOCK_ACCESS_EXPIRE", 24*time.Hour),
			RefreshTokenExpiry: getEnvAsDuration("MOCK_REFRESH_EXPIRE", 7*24*time.Hour),
			BcryptCost:         getEnvAsInt("MOCK_BCRYPT_COST", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			File:   getEnv("LOG_FILE", ""),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive")
	}

	switch c.Store.Backend {
	case StoreBackendFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("STORE_FILE is required for the file backend")
		}
	case StoreBackendRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Mock.Port == "" {
		return fmt.Errorf("MOCK_PORT is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront-state.json"
	}
	return filepath.Join(home, ".storefront", "state.json")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
