package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("TRUTHLENS_SERVER_PORT")
		os.Unsetenv("TRUTHLENS_SERVER_ENVIRONMENT")
		os.Unsetenv("TRUTHLENS_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("TRUTHLENS_SCRAPER_TIMEOUT")
		os.Unsetenv("TRUTHLENS_SCRAPER_USER_AGENT")
		os.Unsetenv("TRUTHLENS_SCRAPER_REQUESTS_PER_SECOND")
		os.Unsetenv("TRUTHLENS_CACHE_CAPACITY")
		os.Unsetenv("TRUTHLENS_ANALYSIS_MIN_TEXT_LENGTH")
		os.Unsetenv("TRUTHLENS_ANALYSIS_MAX_TEXT_LENGTH")
		os.Unsetenv("TRUTHLENS_ANALYSIS_DEBUG")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Scraper.Timeout != 15*time.Second {
			t.Errorf("Scraper.Timeout = %v, want 15s", cfg.Scraper.Timeout)
		}
		if cfg.Scraper.RequestsPerSecond != 2.0 {
			t.Errorf("Scraper.RequestsPerSecond = %v, want 2", cfg.Scraper.RequestsPerSecond)
		}
		if cfg.Cache.Capacity != 100 {
			t.Errorf("Cache.Capacity = %d, want 100", cfg.Cache.Capacity)
		}
		if cfg.Analysis.MinTextLength != 10 {
			t.Errorf("Analysis.MinTextLength = %d, want 10", cfg.Analysis.MinTextLength)
		}
		if cfg.Analysis.MaxTextLength != 10000 {
			t.Errorf("Analysis.MaxTextLength = %d, want 10000", cfg.Analysis.MaxTextLength)
		}
		if cfg.Analysis.Debug {
			t.Error("Analysis.Debug = true, want false")
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TRUTHLENS_SERVER_PORT", "9090")
		os.Setenv("TRUTHLENS_SERVER_ENVIRONMENT", "production")
		os.Setenv("TRUTHLENS_SCRAPER_TIMEOUT", "30s")
		os.Setenv("TRUTHLENS_SCRAPER_REQUESTS_PER_SECOND", "5")
		os.Setenv("TRUTHLENS_CACHE_CAPACITY", "500")
		os.Setenv("TRUTHLENS_ANALYSIS_DEBUG", "true")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Scraper.Timeout != 30*time.Second {
			t.Errorf("Scraper.Timeout = %v, want 30s", cfg.Scraper.Timeout)
		}
		if cfg.Scraper.RequestsPerSecond != 5 {
			t.Errorf("Scraper.RequestsPerSecond = %v, want 5", cfg.Scraper.RequestsPerSecond)
		}
		if cfg.Cache.Capacity != 500 {
			t.Errorf("Cache.Capacity = %d, want 500", cfg.Cache.Capacity)
		}
		if !cfg.Analysis.Debug {
			t.Error("Analysis.Debug = false, want true")
		}
	})

	t.Run("fails validation for non-positive cache capacity", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TRUTHLENS_CACHE_CAPACITY", "0")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for zero cache capacity")
		}
	})

	t.Run("fails validation when max text length below min", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TRUTHLENS_ANALYSIS_MIN_TEXT_LENGTH", "100")
		os.Setenv("TRUTHLENS_ANALYSIS_MAX_TEXT_LENGTH", "50")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for max < min text length")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:        "8080",
				Environment: "development",
			},
			Scraper: ScraperConfig{
				Timeout:           15 * time.Second,
				RequestsPerSecond: 2,
			},
			Cache: CacheConfig{
				Capacity: 100,
			},
			Analysis: AnalysisConfig{
				MinTextLength: 10,
				MaxTextLength: 10000,
			},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when port is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = ""

		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty port")
		}
	})

	t.Run("fails for negative requests per second", func(t *testing.T) {
		cfg := valid()
		cfg.Scraper.RequestsPerSecond = -1

		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative rate")
		}
	})

	t.Run("fails for zero minimum text length", func(t *testing.T) {
		cfg := valid()
		cfg.Analysis.MinTextLength = 0

		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero min text length")
		}
	})
}
