package main

import (
	"fmt"
	"log"
	"os"

	"github.com/skinsage/backend/config"
	httpDelivery "github.com/skinsage/backend/internal/delivery/http"
	"github.com/skinsage/backend/internal/infrastructure/cache"
	"github.com/skinsage/backend/internal/infrastructure/serp"
	"github.com/skinsage/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SkinSage Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	serpClient := serp.NewClient(cfg.Serp.APIKey, cfg.Serp.BaseURL, cfg.Serp.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		serpClient.SetDebug(true)
		log.Printf("Search client debug mode enabled")
	}

	keyPreview := cfg.Serp.APIKey
	if len(keyPreview) > 8 {
		keyPreview = keyPreview[:8]
	}
	log.Printf("Search provider configured: %s (key: %s...)", cfg.Serp.BaseURL, keyPreview)

	// Initialize usecase layer
	recommendationService := usecase.NewRecommendationService(
		memoryCache,
		serpClient,
		usecase.RecommendationConfig{
			MinCandidates:      cfg.Engine.MinCandidates,
			TopN:               cfg.Engine.TopN,
			DefaultRegion:      cfg.Engine.DefaultRegion,
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Engine.EnableDebugLogging,
		},
	)

	log.Printf("Engine: min_candidates=%d, top_n=%d, default_region=%s",
		cfg.Engine.MinCandidates, cfg.Engine.TopN, cfg.Engine.DefaultRegion)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommendationService)

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
