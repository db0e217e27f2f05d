package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server          ServerConfig
	API             APIConfig
	Cache           CacheConfig
	Recommendations RecommendationsConfig
	Search          SearchConfig
	Reconciliation  ReconciliationConfig
	Metrics         MetricsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// APIConfig holds the kitchen API connection settings
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Token     string        `mapstructure:"token"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second
	Burst     int           `mapstructure:"burst"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RecommendationsConfig holds the expiring-ingredient ranking settings
type RecommendationsConfig struct {
	WindowDays   int `mapstructure:"window_days"`
	Limit        int `mapstructure:"limit"`
	DisplayLimit int `mapstructure:"display_limit"`
}

// SearchConfig holds the ingredient search settings
type SearchConfig struct {
	Debounce       time.Duration `mapstructure:"debounce"`
	MinQueryLength int           `mapstructure:"min_query_length"`
	Limit          int           `mapstructure:"limit"`
}

// ReconciliationConfig holds the pantry and shopping-list workflow settings
type ReconciliationConfig struct {
	TogglePolicy string `mapstructure:"toggle_policy"` // "keep" or "revert"
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from the .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pantrylens/")

	// Environment variable settings: PANTRYLENS_API_BASE_URL -> api.base_url
	v.SetEnvPrefix("PANTRYLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return gotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Kitchen API defaults
	v.SetDefault("api.base_url", "http://127.0.0.1:8000")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.rate_limit", 10)
	v.SetDefault("api.burst", 20)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "10m")

	// Recommendation defaults
	v.SetDefault("recommendations.window_days", 5)
	v.SetDefault("recommendations.limit", 20)
	v.SetDefault("recommendations.display_limit", 3)

	// Search defaults
	v.SetDefault("search.debounce", "300ms")
	v.SetDefault("search.min_query_length", 2)
	v.SetDefault("search.limit", 10)

	v.SetDefault("reconciliation.toggle_policy", "keep")
	v.SetDefault("metrics.enabled", true)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.API.BaseURL == "" {
		return fmt.Errorf("kitchen API base URL is required (set PANTRYLENS_API_BASE_URL)")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Recommendations.WindowDays < 0 || config.Recommendations.Limit < 0 || config.Recommendations.DisplayLimit < 0 {
		return fmt.Errorf("recommendation settings must not be negative")
	}

	if config.Search.Limit > 50 {
		return fmt.Errorf("search limit must be at most 50, got: %d", config.Search.Limit)
	}

	switch strings.ToLower(config.Reconciliation.TogglePolicy) {
	case "", "keep", "revert":
	default:
		return fmt.Errorf("toggle policy must be 'keep' or 'revert', got: %s", config.Reconciliation.TogglePolicy)
	}

	return nil
}
