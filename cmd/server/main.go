package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/digitalburnout/burnout-backend/internal/config"
	"github.com/digitalburnout/burnout-backend/internal/database"
	"github.com/digitalburnout/burnout-backend/internal/middleware"
	"github.com/digitalburnout/burnout-backend/internal/routes"
	"github.com/digitalburnout/burnout-backend/internal/services"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// The signing secret must come from the environment; there is no baked-in
	// default to fall back to.
	if err := services.ConfigureTokens(cfg.JWTSecret, cfg.TokenTTL); err != nil {
		log.Fatal("Token configuration failed: ", err)
	}
	log.Printf("✅ Auth tokens configured (TTL %s)", cfg.TokenTTL)

	// Connect to PostgreSQL (user identities)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (rate limiting)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (metrics)
	log.Printf("Connecting to MongoDB...")
	if cfg.MongoURI != "" {
		// Mask password in log for security
		maskedURI := cfg.MongoURI
		if strings.Contains(maskedURI, "@") {
			parts := strings.Split(maskedURI, "@")
			if len(parts) > 0 && strings.Contains(parts[0], ":") {
				userPass := strings.Split(parts[0], ":")
				if len(userPass) >= 3 {
					maskedURI = strings.Replace(maskedURI, userPass[2], "***", 1)
				}
			}
		}
		log.Printf("MongoDB URI: %s", maskedURI)
	}
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Ensure metrics indexes and seed shared placeholder data
	if err := services.EnsureMetricsIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB metrics indexes: %v", err)
	} else {
		log.Println("✅ MongoDB metrics indexes ensured")
	}
	if err := services.SeedPlaceholderData(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to seed placeholder data: %v", err)
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
	}
	r.Use(middleware.RateLimitMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /register")
	log.Println("  POST /login")
	log.Println("  GET  /dashboard-data")
	log.Println("  GET  /api/stats/{type}/{days}")
	log.Println("  GET  /api/activity")
	log.Println("  GET  /api/recommendations")
	log.Println("  GET  /ws/dashboard")

	log.Printf("🚀 Burnout backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
