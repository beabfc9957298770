package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-labs/lorekeeper/internal/api"
	"github.com/inkwell-labs/lorekeeper/internal/catalog"
	"github.com/inkwell-labs/lorekeeper/internal/config"
	"github.com/inkwell-labs/lorekeeper/internal/database"
	"github.com/inkwell-labs/lorekeeper/internal/images"
	"github.com/inkwell-labs/lorekeeper/internal/kvstore"
	"github.com/inkwell-labs/lorekeeper/internal/prices"
	"github.com/inkwell-labs/lorekeeper/internal/pricing"
	"github.com/inkwell-labs/lorekeeper/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database (durable backing for the price cache)
	db, err := database.Initialize(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	priceCache := prices.NewCache(kvstore.New(db))
	pricingClient := pricing.NewClient(cfg.PricingAPIKey, cfg.PricingDailyLimit)

	store := catalog.NewStore(priceCache)
	engine := search.NewEngine(store, priceCache)
	resolver := images.NewResolver(cfg.ImageBundleDir)
	refresher := prices.NewRefresher(priceCache, pricingClient, store, cfg.PriceRefreshInterval)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the catalog asynchronously; queries return empty until it
	// finishes. A failed load leaves the process serving empty results —
	// a restart is the only recovery path.
	go func() {
		if err := store.Load(ctx, catalog.NewFileSource(cfg.CatalogDataDir)); err != nil {
			log.Printf("Catalog load failed: %v", err)
		}
	}()

	// Start price refresher in background with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in price refresher: %v - restarting in 30 seconds", r)
					}
				}()
				refresher.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return // Graceful shutdown
			case <-time.After(30 * time.Second):
				log.Println("Price refresher restarting after panic recovery...")
			}
		}
	}()

	router := api.SetupRouter(store, engine, resolver, refresher, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop the refresher
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
