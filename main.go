package main

import (
	"log"
	"net/http"
	"os"

	"pricewatch/config"
	"pricewatch/database"
	"pricewatch/handlers"
	"pricewatch/middleware"
	"pricewatch/monitor"
	"pricewatch/notifier"
	"pricewatch/repository"
	"pricewatch/scheduler"
	"pricewatch/scraper"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// Create tables
	if err := database.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	// Initialize repositories
	watchRepo := repository.NewWatchRepository()
	obsRepo := repository.NewObservationRepository()

	// Build the monitoring pipeline
	fetcherCfg := config.DefaultFetcherConfig()
	httpFetcher := scraper.NewFetcher(fetcherCfg)

	var renderFetcher *scraper.RenderFetcher
	if len(fetcherCfg.RenderHosts) > 0 {
		var err error
		renderFetcher, err = scraper.NewRenderFetcher()
		if err != nil {
			log.Printf("⚠️  Headless render unavailable, continuing without it: %v", err)
		} else {
			defer renderFetcher.Close()
		}
	}
	fetcher := scraper.NewFallbackFetcher(httpFetcher, renderFetcher, fetcherCfg.RenderHosts)

	registry := scraper.DefaultRegistry()
	log.Printf("Registered extraction chains: %v", registry.Sites())

	emailNotifier := notifier.NewEmailNotifier(config.DefaultEmailConfig())

	mon := monitor.NewMonitor(watchRepo, obsRepo, fetcher, registry, emailNotifier)

	// Initialize and start the scheduler
	apiCfg := config.DefaultAPIConfig()
	sched := scheduler.NewScheduler(mon, apiCfg.CheckSchedule)
	sched.Start()
	defer sched.Stop()

	// Initialize handlers
	h := handlers.NewHandlers(watchRepo, obsRepo, mon)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware(apiCfg.RateLimit))

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/prices", h.GetPrices).Methods("GET")
	api.HandleFunc("/history", h.GetHistory).Methods("GET")
	api.HandleFunc("/watch", h.AddWatchItem).Methods("POST")
	api.HandleFunc("/watch", h.GetWatchItems).Methods("GET")
	api.HandleFunc("/watch/{id}", h.DeleteWatchItem).Methods("DELETE")

	refresh := r.PathPrefix("/api/refresh").Subrouter()
	refresh.Use(middleware.APISecretMiddleware(apiCfg.Secret))
	refresh.HandleFunc("", h.Refresh).Methods("POST")

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   apiCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	host := os.Getenv("HOST")
	if host == "" {
		host = "0.0.0.0"
	}

	log.Printf("🌐 Server starting on port %s", port)
	log.Printf("📋 Endpoints:")
	log.Printf("   GET  /health - Health check")
	log.Printf("   GET  /api/prices - Recent price observations")
	log.Printf("   GET  /api/history - Observation history by product")
	log.Printf("   POST /api/watch - Add a watch item")
	log.Printf("   GET  /api/watch - List watch items")
	log.Printf("   POST /api/refresh - Run a monitoring cycle")

	// Start server
	log.Fatal(http.ListenAndServe(host+":"+port, c.Handler(r)))
}
