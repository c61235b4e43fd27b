package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lorakeys/internal/characters"
	"lorakeys/internal/civitai"
	"lorakeys/internal/config"
	"lorakeys/internal/jobs"
	"lorakeys/internal/library"
	"lorakeys/internal/metrics"
	"lorakeys/internal/server"
	"lorakeys/internal/triggers"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config.yaml: %v", err)
	}
	yamlCfg.Apply(cfg)
	categories := yamlCfg.CategoryTypes()
	log.Printf("Searching catalog categories: %v", categories)

	// Keyword cache; a missing or corrupt document starts empty.
	store := triggers.Open(cfg.CacheFile)
	log.Printf("Keyword cache loaded from %s (%d entries)", cfg.CacheFile, store.Len())

	// Catalog client and resolver
	catalog := civitai.New(cfg.CatalogBaseURL, cfg.CatalogLimit, cfg.CatalogNSFW, cfg.CatalogTimeout)
	resolver := triggers.NewResolver(catalog, categories, cfg.SearchWorkers)
	svc := triggers.NewService(store, resolver)

	// Local model library
	lib := library.New(cfg.LorasDir, cfg.CheckpointsDir)

	// Character data is optional; endpoints answer 503 without it.
	chars, err := characters.Load(cfg.CharacterFile)
	if err != nil {
		log.Printf("Warning: character data unavailable: %v", err)
		chars = nil
	}

	// Metrics
	metrics.Init(store)

	// Initialize server and routes
	srv := server.New(cfg)
	srv.RegisterRoutes(svc, store, lib, chars)

	// Background retry refresher
	if cfg.RefreshEnabled {
		refresher := jobs.NewRefresher(svc, cfg.RefreshInterval, cfg.RefreshDelay)
		go refresher.Start(ctx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
