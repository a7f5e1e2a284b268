package main

import (
	"fmt"
	"log"
	"os"

	"github.com/truthlens/backend/config"
	httpDelivery "github.com/truthlens/backend/internal/delivery/http"
	"github.com/truthlens/backend/internal/infrastructure/cache"
	"github.com/truthlens/backend/internal/infrastructure/scraper"
	"github.com/truthlens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting TruthLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache capacity: %d analyses", cfg.Cache.Capacity)

	// Initialize infrastructure dependencies
	analysisCache := cache.NewFIFOCache(cfg.Cache.Capacity)

	productScraper := scraper.New(scraper.Config{
		Timeout:           cfg.Scraper.Timeout,
		UserAgent:         cfg.Scraper.UserAgent,
		RequestsPerSecond: cfg.Scraper.RequestsPerSecond,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		productScraper.SetDebug(true)
		log.Printf("Scraper debug mode enabled")
	}

	log.Printf("Scraper: timeout=%s, rate=%.1f req/s", cfg.Scraper.Timeout, cfg.Scraper.RequestsPerSecond)

	// Initialize usecase layer
	analysisService := usecase.NewAnalysisService(
		productScraper,
		analysisCache,
		usecase.AnalysisConfig{
			MinTextLength:      cfg.Analysis.MinTextLength,
			MaxTextLength:      cfg.Analysis.MaxTextLength,
			EnableDebugLogging: cfg.Analysis.Debug,
		},
	)

	log.Printf("Analysis: text length %d-%d, debug=%v",
		cfg.Analysis.MinTextLength,
		cfg.Analysis.MaxTextLength,
		cfg.Analysis.Debug)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
