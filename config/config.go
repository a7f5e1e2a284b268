package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Scraper  ScraperConfig
	Cache    CacheConfig
	Analysis AnalysisConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScraperConfig holds product-page scraper configuration
type ScraperConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// CacheConfig holds analysis cache configuration
type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// AnalysisConfig holds analysis pipeline configuration
type AnalysisConfig struct {
	MinTextLength int  `mapstructure:"min_text_length"`
	MaxTextLength int  `mapstructure:"max_text_length"`
	Debug         bool `mapstructure:"debug"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/truthlens/")

	// Environment variable settings
	v.SetEnvPrefix("TRUTHLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Scraper defaults
	v.SetDefault("scraper.timeout", "15s")
	v.SetDefault("scraper.user_agent", "")
	v.SetDefault("scraper.requests_per_second", 2.0)

	// Cache defaults
	v.SetDefault("cache.capacity", 100)

	// Analysis defaults
	v.SetDefault("analysis.min_text_length", 10)
	v.SetDefault("analysis.max_text_length", 10000)
	v.SetDefault("analysis.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Cache.Capacity <= 0 {
		return fmt.Errorf("cache capacity must be positive, got: %d", config.Cache.Capacity)
	}

	if config.Analysis.MinTextLength <= 0 {
		return fmt.Errorf("minimum text length must be positive, got: %d", config.Analysis.MinTextLength)
	}

	if config.Analysis.MaxTextLength <= config.Analysis.MinTextLength {
		return fmt.Errorf("maximum text length must exceed minimum, got: %d <= %d",
			config.Analysis.MaxTextLength, config.Analysis.MinTextLength)
	}

	if config.Scraper.RequestsPerSecond <= 0 {
		return fmt.Errorf("scraper requests per second must be positive, got: %v", config.Scraper.RequestsPerSecond)
	}

	return nil
}
